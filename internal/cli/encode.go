package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/enigma/internal/engine"
	"github.com/roach88/enigma/internal/ir"
	"github.com/roach88/enigma/internal/journal"
	"github.com/roach88/enigma/internal/message"
)

// EncodeOptions holds flags for the encode command.
type EncodeOptions struct {
	*RootOptions
	Settings SettingsOptions
	Group    int    // output block size, 0 for none
	Trace    bool   // print the signal path of every keypress
	Raw      bool   // only strip whitespace, no case folding or filtering
	Journal  string // optional journal database

	// IDGenerator overrides the journal session id source (for testing).
	// If nil, defaults to UUIDv7Generator.
	IDGenerator journal.IDGenerator
}

// EncodeResult is the JSON payload of the encode command.
type EncodeResult struct {
	Input     string         `json:"input"`
	Output    string         `json:"output"`
	Grouped   string         `json:"grouped,omitempty"`
	Window    string         `json:"window"`
	Dropped   int            `json:"dropped"`
	SessionID string         `json:"session_id,omitempty"`
	Trace     []engine.Trace `json:"trace,omitempty"`
}

// NewEncodeCommand creates the encode command. It is also called as
// decode, since the machine is its own inverse.
func NewEncodeCommand(rootOpts *RootOptions) *cobra.Command {
	return newEncodeCommand(&EncodeOptions{RootOptions: rootOpts})
}

func newEncodeCommand(opts *EncodeOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "encode [text...]",
		Aliases: []string{"decode"},
		Short:   "Encipher or decipher text",
		Long: `Type text into the machine and print what it lights up.

Text comes from the arguments, or from stdin when there are none. Unless
--raw is given, accents are stripped, case is folded and symbols outside
the alphabet are dropped first.

Settings come from --settings, the standard settings otherwise, with the
rotor flags applied on top. Rotor lists read left to right, like the
rotor window.

Exit codes:
  0 - Text processed
  1 - A symbol was rejected
  2 - Command error (bad settings, journal not writable)

Examples:
  enigma encode helloworld
  enigma encode --rotors I,II,III --positions adu --plugboard "ah co" attack at dawn
  enigma decode --settings key.yaml --group 5 < message.txt
  enigma encode --journal ./enigma.db --trace hello`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(opts, args, cmd)
		},
	}

	bindSettingsFlags(cmd, &opts.Settings)
	cmd.Flags().IntVar(&opts.Group, "group", 0, "split output into groups of n symbols")
	cmd.Flags().BoolVar(&opts.Trace, "trace", false, "print the signal path of every keypress")
	cmd.Flags().BoolVar(&opts.Raw, "raw", false, "type the text as is, only removing whitespace")
	cmd.Flags().StringVar(&opts.Journal, "journal", "", "record the run in this journal database")

	return cmd
}

func runEncode(opts *EncodeOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := formatter.Logger()

	m, err := opts.Settings.Machine()
	if err != nil {
		_ = formatter.LoadError(err)
		return reportedExitError(ExitCommandError, "invalid settings", err)
	}
	fingerprint, err := ir.SettingsFingerprint(m.Settings().Map())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to fingerprint settings", err)
	}
	logger.Debug("machine ready", "fingerprint", ir.Short(fingerprint), "window", m.Window())

	text, err := readText(args, cmd.InOrStdin())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read input", err)
	}

	result := EncodeResult{}
	if opts.Raw {
		result.Input = message.Ungroup(text)
	} else {
		n, err := message.Normalize(m.Alphabet(), text)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to normalize input", err)
		}
		result.Input = n.Text
		result.Dropped = n.Dropped
	}
	if result.Dropped > 0 {
		formatter.VerboseLog("Dropped %d symbol(s) outside the alphabet", result.Dropped)
	}

	steps, sessionID, err := encodeSteps(cmdContext(cmd), opts, cmd.CalledAs(), m, result.Input, logger)
	if err != nil {
		if engine.CodeOf(err) == engine.ErrCodeInvalidSymbol {
			_ = formatter.Error(ErrCodeSymbol, err.Error(), nil)
			return reportedExitError(ExitFailure, "symbol rejected", err)
		}
		_ = formatter.Error(ErrCodeJournal, err.Error(), nil)
		return reportedExitError(ExitCommandError, "failed to record run", err)
	}

	result.Output = journal.Output(steps)
	result.Window = m.Window()
	result.SessionID = sessionID
	if opts.Group > 0 {
		result.Grouped = message.Group(result.Output, opts.Group)
	}
	if opts.Trace {
		result.Trace = make([]engine.Trace, len(steps))
		for i, step := range steps {
			result.Trace[i] = *step.Trace
		}
	}

	logger.Debug("text processed", "symbols", len(steps), "window", result.Window)

	if opts.Format == "json" {
		return formatter.SuccessWithFingerprint(result, fingerprint)
	}
	return outputEncodeText(cmd.OutOrStdout(), formatter, result)
}

// encodeSteps types text on m, journaling the run when a journal is set.
func encodeSteps(ctx context.Context, opts *EncodeOptions, label string, m *engine.Machine, text string, logger *slog.Logger) ([]journal.Step, string, error) {
	if opts.Journal == "" {
		steps, err := journal.Run(m, text, opts.Trace)
		return steps, "", err
	}

	st, err := journal.Open(opts.Journal)
	if err != nil {
		return nil, "", err
	}
	defer st.Close()
	st.SetLogger(logger)

	gen := opts.IDGenerator
	if gen == nil {
		gen = journal.UUIDv7Generator{}
	}
	sess, steps, err := st.Record(ctx, gen, label, m, text, opts.Trace)
	if err != nil {
		return nil, "", err
	}
	return steps, sess.ID, nil
}

// readText joins args with spaces, or reads all of in when there are none.
func readText(args []string, in io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func outputEncodeText(w io.Writer, formatter *OutputFormatter, result EncodeResult) error {
	for i, t := range result.Trace {
		fmt.Fprintf(w, "%3d  %s\n", i+1, t)
	}
	if result.Grouped != "" {
		fmt.Fprintln(w, result.Grouped)
	} else {
		fmt.Fprintln(w, result.Output)
	}
	formatter.VerboseLog("Window: %s", result.Window)
	if result.SessionID != "" {
		formatter.VerboseLog("Session: %s", result.SessionID)
	}
	return nil
}

// cmdContext returns the command's context, or Background when unset.
func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
