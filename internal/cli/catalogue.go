package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/enigma/internal/engine"
)

// CatalogueResult is the JSON payload of the catalogue command.
type CatalogueResult struct {
	Rotors     []engine.RotorType     `json:"rotors"`
	Reflectors []engine.ReflectorType `json:"reflectors"`
}

// NewCatalogueCommand creates the catalogue command.
func NewCatalogueCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "catalogue",
		Aliases: []string{"catalog"},
		Short:   "List the rotor and reflector types",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			result := CatalogueResult{
				Rotors:     engine.RotorTypes(),
				Reflectors: engine.ReflectorTypes(),
			}
			if rootOpts.Format == "json" {
				return formatter.Success(result)
			}
			outputCatalogueText(cmd.OutOrStdout(), result)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	return cmd
}

func outputCatalogueText(w io.Writer, result CatalogueResult) {
	fmt.Fprintln(w, "Rotors:")
	for _, r := range result.Rotors {
		fmt.Fprintf(w, "  %-5s %s  notch %s\n", r.Name, r.Wiring, r.Notch)
	}
	fmt.Fprintln(w, "Reflectors:")
	for _, r := range result.Reflectors {
		fmt.Fprintf(w, "  %-5s %s\n", r.Name, r.Wiring)
	}
}
