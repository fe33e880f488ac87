package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/enigma/internal/ir"
	"github.com/roach88/enigma/internal/journal"
)

// SessionsOptions holds flags for the sessions command.
type SessionsOptions struct {
	*RootOptions
	Database    string
	Fingerprint string
}

// NewSessionsCommand creates the sessions command.
func NewSessionsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SessionsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List journaled sessions",
		Long: `List the sessions in a journal in the order they were recorded.

--fingerprint keeps only the sessions made with one key, as printed by
validate or encode --format json.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			formatter := newFormatter(opts.RootOptions, cmd)

			st, err := openJournal(opts.Database)
			if err != nil {
				return err
			}
			defer st.Close()

			sessions, err := st.ListSessions(ctx, opts.Fingerprint)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to list sessions", err)
			}
			if sessions == nil {
				sessions = []journal.Session{}
			}

			if opts.Format == "json" {
				return formatter.Success(sessions)
			}
			w := cmd.OutOrStdout()
			if len(sessions) == 0 {
				fmt.Fprintln(w, "No sessions found in journal.")
				return nil
			}
			for _, s := range sessions {
				fmt.Fprintf(w, "%4d  %s  %-7s %s\n", s.Seq, s.ID, s.Label, ir.Short(s.Fingerprint))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to journal database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Fingerprint, "fingerprint", "", "only sessions with this settings fingerprint")

	return cmd
}
