package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/teasim/internal/harness"
	"github.com/roach88/teasim/internal/store"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	DBOptions
	Scenario string
	Kind     string // optional - filter to one step kind
}

// TraceResult holds the trace output.
type TraceResult struct {
	RunID    string               `json:"run_id"`
	Scenario string               `json:"scenario"`
	Steps    []harness.TraceEvent `json:"steps"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{DBOptions: DBOptions{RootOptions: rootOpts}}

	cmd := &cobra.Command{
		Use:   "trace [run-id]",
		Short: "Print the recorded trace of one scenario",
		Long: `Print the recorded trace of one scenario: every init, update, URL
change, page change and failure step in order, with its step ID.

Examples:
  teasim trace --db ./runs.db --scenario "todo adds items"
  teasim trace --db ./runs.db --scenario "todo adds items" --kind update 0191f3d2-...`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var arg string
			if len(args) == 1 {
				arg = args[0]
			}
			return runTrace(opts, arg, cmd)
		},
	}

	opts.bind(cmd)
	cmd.Flags().StringVar(&opts.Scenario, "scenario", "", "scenario name (required)")
	_ = cmd.MarkFlagRequired("scenario")
	cmd.Flags().StringVar(&opts.Kind, "kind", "", "only show steps of this kind")

	return cmd
}

func runTrace(opts *TraceOptions, runArg string, cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	st, err := opts.open()
	if err != nil {
		return err
	}
	defer st.Close()

	runID, err := resolveRunID(ctx, st, runArg)
	if err != nil {
		return err
	}
	steps, err := st.ReadTrace(ctx, runID, opts.Scenario)
	if errors.Is(err, store.ErrNotFound) {
		return NewExitError(ExitCommandError, fmt.Sprintf("scenario %q not found in run %s", opts.Scenario, runID))
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read trace", err)
	}

	if opts.Kind != "" {
		filtered := steps[:0]
		for _, s := range steps {
			if s.Kind == opts.Kind {
				filtered = append(filtered, s)
			}
		}
		steps = filtered
	}

	f := opts.formatter(cmd)
	result := TraceResult{RunID: runID, Scenario: opts.Scenario, Steps: steps}
	if opts.Format == "json" {
		return f.Respond(CLIResponse{Status: "ok", Data: result, RunID: runID})
	}

	tw := tabwriter.NewWriter(f.Writer, 0, 4, 2, ' ', 0)
	for _, s := range steps {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", s.Seq, s.Kind, shortDigest(s.ID), s.Detail)
	}
	return tw.Flush()
}
