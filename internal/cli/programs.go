package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewProgramsCommand creates the programs command.
func NewProgramsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "programs",
		Short:         "List the programs scenarios can name",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := rootOpts.registry().Names()
			f := rootOpts.formatter(cmd)
			if rootOpts.Format == "json" {
				return f.Success(names)
			}
			for _, n := range names {
				fmt.Fprintln(f.Writer, n)
			}
			return nil
		},
	}
}
