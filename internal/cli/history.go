package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	DBOptions
	Limit int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{DBOptions: DBOptions{RootOptions: rootOpts}}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs, newest first",
		Example: `  teasim history --db ./runs.db
  teasim history --db ./runs.db --limit 5 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.open()
			if err != nil {
				return err
			}
			defer st.Close()

			runs, err := st.ListRuns(commandContext(cmd), opts.Limit)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to list runs", err)
			}

			f := opts.formatter(cmd)
			if opts.Format == "json" {
				return f.Success(runs)
			}
			if len(runs) == 0 {
				fmt.Fprintln(f.Writer, "No runs recorded.")
				return nil
			}
			tw := tabwriter.NewWriter(f.Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SEQ\tRUN\tSCENARIOS\tFAILED\tSOURCE")
			for _, r := range runs {
				fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%s\n", r.Seq, r.ID, r.Scenarios, r.Failed, r.Source)
			}
			return tw.Flush()
		},
	}

	opts.bind(cmd)
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "number of runs to show (0 for all)")

	return cmd
}
