package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/enigma/internal/journal"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
	Session  string // optional - specific session only
}

// ReplaySummary holds the overall replay result.
type ReplaySummary struct {
	Sessions         []journal.ReplayResult `json:"sessions"`
	TotalSessions    int                    `json:"total_sessions"`
	AllDeterministic bool                   `json:"all_deterministic"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay journaled sessions and verify determinism",
		Long: `Rebuild the machine of each journaled session from its stored settings,
type the stored input again and compare every output symbol, rotor
window and stored trace.

Exit codes:
  0 - All sessions replay identically
  1 - A session differs from its journal
  2 - Command error (journal not found, unknown session, etc.)

Examples:
  enigma replay --db ./enigma.db
  enigma replay --db ./enigma.db --session 0190a0c4-...
  enigma replay --db ./enigma.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to journal database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Session, "session", "", "replay one session only")

	return cmd
}

// openJournal opens an existing journal. Unlike journal.Open it never
// creates a database.
func openJournal(path string) (*journal.Store, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, NewExitError(ExitCommandError, fmt.Sprintf("journal not found: %s", path))
	}
	st, err := journal.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	return st, nil
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	ctx := cmdContext(cmd)
	formatter := newFormatter(opts.RootOptions, cmd)

	st, err := openJournal(opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()
	st.SetLogger(formatter.Logger())

	ids, err := sessionIDs(ctx, st, opts.Session)
	if err != nil {
		return err
	}

	summary := ReplaySummary{
		Sessions:         make([]journal.ReplayResult, 0, len(ids)),
		TotalSessions:    len(ids),
		AllDeterministic: true,
	}
	for _, id := range ids {
		formatter.VerboseLog("Replaying session %s", id)
		rr, err := journal.Replay(ctx, st, id)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to replay session %s", id), err)
		}
		summary.Sessions = append(summary.Sessions, rr)
		if !rr.Deterministic {
			summary.AllDeterministic = false
		}
	}

	if opts.Format == "json" {
		return outputReplayJSON(formatter, summary)
	}
	return outputReplayText(cmd.OutOrStdout(), summary, opts.Verbose)
}

// sessionIDs returns the requested session, or every session in seq order.
func sessionIDs(ctx context.Context, st *journal.Store, only string) ([]string, error) {
	if only != "" {
		if _, err := st.ReadSession(ctx, only); err != nil {
			if errors.Is(err, journal.ErrSessionNotFound) {
				return nil, NewExitError(ExitCommandError, fmt.Sprintf("session not found: %s", only))
			}
			return nil, WrapExitError(ExitCommandError, "failed to read session", err)
		}
		return []string{only}, nil
	}

	sessions, err := st.ListSessions(ctx, "")
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to list sessions", err)
	}
	ids := make([]string, len(sessions))
	for i, s := range sessions {
		ids[i] = s.ID
	}
	return ids, nil
}

// outputReplayJSON outputs the replay result as JSON.
func outputReplayJSON(formatter *OutputFormatter, summary ReplaySummary) error {
	response := CLIResponse{Status: "ok", Data: summary}
	if !summary.AllDeterministic {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    ErrCodeDeterminism,
			Message: "determinism verification failed",
		}
	}
	if err := formatter.encode(response); err != nil {
		return err
	}

	if !summary.AllDeterministic {
		return reportedExitError(ExitFailure, "determinism verification failed", nil)
	}
	return nil
}

// outputReplayText outputs the replay result as text.
func outputReplayText(w io.Writer, summary ReplaySummary, verbose bool) error {
	if summary.TotalSessions == 0 {
		fmt.Fprintln(w, "No sessions found in journal.")
		return nil
	}

	fmt.Fprintf(w, "Replay Summary: %d session(s)\n", summary.TotalSessions)
	fmt.Fprintln(w)

	for _, s := range summary.Sessions {
		status := "✓"
		if !s.Deterministic {
			status = "✗"
		}
		fmt.Fprintf(w, "%s Session: %s\n", status, s.SessionID)
		fmt.Fprintf(w, "  Steps: %d\n", s.Steps)
		if verbose {
			fmt.Fprintf(w, "  Output: %s\n", s.Output)
		}
		for _, mm := range s.Mismatches {
			fmt.Fprintf(w, "  step %d %s: journaled %q, replayed %q\n", mm.Step, mm.Field, mm.Expected, mm.Actual)
		}
		fmt.Fprintln(w)
	}

	if summary.AllDeterministic {
		fmt.Fprintln(w, "✓ All sessions verified deterministic")
		return nil
	}

	fmt.Fprintln(w, "✗ Determinism verification failed")
	return reportedExitError(ExitFailure, "determinism verification failed", nil)
}
