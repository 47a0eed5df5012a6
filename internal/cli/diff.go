package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/teasim/internal/store"
)

// NewDiffCommand creates the diff command.
func NewDiffCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DBOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "diff <before-run> <after-run>",
		Short: "Compare two recorded runs by trace digest",
		Long: `Compare two recorded runs scenario by scenario. A scenario is listed
when its trace digest or its verdict changed, or when it exists in only
one of the runs. "latest" names the most recent run.

Exits 1 when any scenario changed.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			st, err := opts.open()
			if err != nil {
				return err
			}
			defer st.Close()

			before, err := readRun(ctx, st, args[0])
			if err != nil {
				return err
			}
			after, err := readRun(ctx, st, args[1])
			if err != nil {
				return err
			}
			changes := store.Diff(before, after)

			f := opts.formatter(cmd)
			if opts.Format == "json" {
				if changes == nil {
					changes = []store.Change{}
				}
				if err := f.Success(changes); err != nil {
					return err
				}
			} else {
				if len(changes) == 0 {
					fmt.Fprintln(f.Writer, passColor.Sprint("No changes."))
				}
				for _, c := range changes {
					fmt.Fprintf(f.Writer, "%s %s\n", Mark(c.IsOK), describeChange(c))
				}
			}

			if len(changes) > 0 {
				return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) changed", len(changes)))
			}
			return nil
		},
	}

	opts.bind(cmd)
	return cmd
}

func describeChange(c store.Change) string {
	switch {
	case c.Before == "":
		return fmt.Sprintf("%s: added", c.Scenario)
	case c.After == "":
		return fmt.Sprintf("%s: removed", c.Scenario)
	case c.WasOK != c.IsOK && c.IsOK:
		return fmt.Sprintf("%s: now meets its expectations", c.Scenario)
	case c.WasOK != c.IsOK:
		return fmt.Sprintf("%s: no longer meets its expectations", c.Scenario)
	default:
		return fmt.Sprintf("%s: trace changed %s -> %s", c.Scenario, shortDigest(c.Before), shortDigest(c.After))
	}
}
