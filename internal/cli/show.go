package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DBOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show [run-id]",
		Short: "Show the reports of a recorded run",
		Long: `Show the reports of a recorded run. Without a run ID, or with
"latest", the most recent run is shown.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.open()
			if err != nil {
				return err
			}
			defer st.Close()

			var arg string
			if len(args) == 1 {
				arg = args[0]
			}
			run, err := readRun(commandContext(cmd), st, arg)
			if err != nil {
				return err
			}

			f := opts.formatter(cmd)
			if opts.Format == "json" {
				return f.Respond(CLIResponse{Status: "ok", Data: run, RunID: run.ID})
			}
			fmt.Fprintf(f.Writer, "Run %s (seq %d) from %s\n", run.ID, run.Seq, run.Source)
			for _, rep := range run.Reports {
				fmt.Fprintf(f.Writer, "%s %s %s\n", Mark(rep.OK), rep.Scenario, faintColor.Sprint(shortDigest(rep.Result.Digest)))
				for _, p := range rep.Problems {
					fmt.Fprintf(f.Writer, "  %s\n", p)
				}
			}
			fmt.Fprintf(f.Writer, "%d scenario(s), %d failed\n", len(run.Reports), run.Failed())
			return nil
		},
	}

	opts.bind(cmd)
	return cmd
}

func shortDigest(d string) string {
	if len(d) > 12 {
		return d[:12]
	}
	return d
}
