package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/enigma/internal/engine"
	"github.com/roach88/enigma/internal/ir"
	"github.com/roach88/enigma/internal/journal"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database string
	Session  string
}

// TraceResult holds the stored steps of one session.
type TraceResult struct {
	Session journal.Session `json:"session"`
	Steps   []journal.Step  `json:"steps"`
	// Digest summarizes the stored traces; empty when the run was not traced.
	Digest string `json:"digest,omitempty"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Show the stored keypresses of a session",
		Long: `Show every journaled keypress of a session: input, output and rotor
window, plus the full signal path when the session was recorded with
--trace.

Examples:
  enigma trace --db ./enigma.db --session 0190a0c4-...
  enigma trace --db ./enigma.db --session 0190a0c4-... --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to journal database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Session, "session", "", "session id to show (required)")
	_ = cmd.MarkFlagRequired("session")

	return cmd
}

func runTrace(opts *TraceOptions, cmd *cobra.Command) error {
	ctx := cmdContext(cmd)
	formatter := newFormatter(opts.RootOptions, cmd)

	st, err := openJournal(opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	sess, err := st.ReadSession(ctx, opts.Session)
	if errors.Is(err, journal.ErrSessionNotFound) {
		_ = formatter.Error(ErrCodeJournal, fmt.Sprintf("session not found: %s", opts.Session), nil)
		return reportedExitError(ExitCommandError, fmt.Sprintf("session not found: %s", opts.Session), nil)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read session", err)
	}

	steps, err := st.ReadSteps(ctx, sess.ID)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read steps", err)
	}

	result := TraceResult{Session: sess, Steps: steps}
	if traces := storedTraces(steps); traces != nil {
		if result.Digest, err = ir.TraceDigest(traces); err != nil {
			return WrapExitError(ExitCommandError, "failed to digest traces", err)
		}
	}

	if opts.Format == "json" {
		return formatter.SuccessWithFingerprint(result, sess.Fingerprint)
	}
	outputTraceText(cmd.OutOrStdout(), result)
	return nil
}

// storedTraces returns the trace maps of steps, or nil if any step was
// stored without a trace.
func storedTraces(steps []journal.Step) []map[string]any {
	if len(steps) == 0 {
		return nil
	}
	traces := make([]map[string]any, len(steps))
	for i, step := range steps {
		if step.Trace == nil {
			return nil
		}
		traces[i] = step.Trace.Map()
	}
	return traces
}

// outputTraceText outputs the trace result as text.
func outputTraceText(w io.Writer, result TraceResult) {
	s := result.Session
	fmt.Fprintf(w, "Session: %s (%s)\n", s.ID, s.Label)
	fmt.Fprintf(w, "Settings: %s\n", describeSettings(s.Settings))
	fmt.Fprintf(w, "Fingerprint: %s\n", s.Fingerprint)
	fmt.Fprintln(w)

	for _, step := range result.Steps {
		if step.Trace != nil {
			fmt.Fprintf(w, "%4d  %s\n", step.Seq, step.Trace)
			continue
		}
		fmt.Fprintf(w, "%4d  %s -> %s | %s\n", step.Seq, step.Input, step.Output, step.Window)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Output: %s\n", journal.Output(result.Steps))
	if result.Digest != "" {
		fmt.Fprintf(w, "Trace digest: %s\n", result.Digest)
	}
}

// describeSettings renders settings on one line, rotors left to right.
func describeSettings(s engine.Settings) string {
	return fmt.Sprintf("rotors %s %s %s, rings %s%s%s, positions %s%s%s, reflector %s",
		s.RotorLeft.Type, s.RotorMiddle.Type, s.RotorRight.Type,
		s.RotorLeft.Offset, s.RotorMiddle.Offset, s.RotorRight.Offset,
		s.RotorLeft.Position, s.RotorMiddle.Position, s.RotorRight.Position,
		s.Reflector.Type)
}
