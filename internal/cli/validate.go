package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/enigma/internal/alphabet"
	"github.com/roach88/enigma/internal/config"
	"github.com/roach88/enigma/internal/engine"
	"github.com/roach88/enigma/internal/ir"
)

// ValidationResult is the JSON payload of the validate command.
type ValidationResult struct {
	Valid       bool             `json:"valid"`
	File        string           `json:"file"`
	Fingerprint string           `json:"fingerprint,omitempty"`
	Settings    *engine.Settings `json:"settings,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <settings-file>",
		Short: "Check a settings file without typing anything",
		Long: `Load a settings file, check it and set up a machine with it.

YAML and JSON files must use known field names only. CUE files are
unified with the settings schema. On success the canonical settings and
their fingerprint are printed.

Exit codes:
  0 - Settings are valid
  1 - Settings are invalid
  2 - Command error (file not found, unsupported extension)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	s, err := config.LoadSettings(path)
	if err != nil {
		return outputValidateError(formatter, err)
	}
	formatter.VerboseLog("Loaded %s", path)

	m, err := engine.New(alphabet.Latin(), s)
	if err != nil {
		return outputValidateError(formatter, &config.LoadError{
			Code:    config.ErrCodeInvalid,
			Field:   engine.FieldOf(err),
			Message: err.Error(),
		})
	}

	canonical := m.Settings()
	fingerprint, err := ir.SettingsFingerprint(canonical.Map())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to fingerprint settings", err)
	}

	result := ValidationResult{
		Valid:       true,
		File:        path,
		Fingerprint: fingerprint,
		Settings:    &canonical,
	}
	if opts.Format == "json" {
		return formatter.SuccessWithFingerprint(result, fingerprint)
	}
	outputValidateText(cmd.OutOrStdout(), result)
	return nil
}

func outputValidateText(w io.Writer, result ValidationResult) {
	s := result.Settings
	fmt.Fprintf(w, "✓ %s is valid\n", result.File)
	fmt.Fprintf(w, "  Rotors:      %s %s %s\n", s.RotorLeft.Type, s.RotorMiddle.Type, s.RotorRight.Type)
	fmt.Fprintf(w, "  Rings:       %s%s%s\n", s.RotorLeft.Offset, s.RotorMiddle.Offset, s.RotorRight.Offset)
	fmt.Fprintf(w, "  Positions:   %s%s%s\n", s.RotorLeft.Position, s.RotorMiddle.Position, s.RotorRight.Position)
	fmt.Fprintf(w, "  Reflector:   %s\n", s.Reflector.Type)
	fmt.Fprintf(w, "  Plugboard:   %s\n", s.Plugboard.Wiring)
	fmt.Fprintf(w, "  Fingerprint: %s\n", result.Fingerprint)
}

// outputValidateError reports err and picks the exit code: missing or
// unsupported files are command errors, anything else is invalid settings.
func outputValidateError(formatter *OutputFormatter, err error) error {
	if outErr := formatter.LoadError(err); outErr != nil {
		return outErr
	}

	var le *config.LoadError
	if errors.As(err, &le) && (le.Code == config.ErrCodeNotFound || le.Code == config.ErrCodeUnsupported) {
		return reportedExitError(ExitCommandError, "cannot validate", err)
	}
	return reportedExitError(ExitFailure, "validation failed", err)
}
