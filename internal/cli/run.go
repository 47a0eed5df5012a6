package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/teasim/internal/scenario"
	"github.com/roach88/teasim/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Database string // record the run here when set
	Filter   string // glob over scenario file names
}

// RunOutput is the result of one run command.
type RunOutput struct {
	RunID   string            `json:"run_id,omitempty"`
	Reports []scenario.Report `json:"reports"`
	Passed  int               `json:"passed"`
	Failed  int               `json:"failed"`
	Total   int               `json:"total"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <scenarios-dir>",
		Short: "Run scenario files",
		Long: `Run every scenario file in a directory against the registered programs.

Each scenario drives its program through the listed steps and checks the
outcome against its expect block. With --db the reports and traces are
recorded so later runs can be compared.

Exit codes:
  0 - All scenarios met their expectations
  1 - One or more scenarios failed, or a scenario file is invalid
  2 - Command error (invalid paths, database errors, etc.)

Examples:
  teasim run ./scenarios
  teasim run ./scenarios --filter "todo_*"
  teasim run ./scenarios --db ./runs.db --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarios(commandContext(cmd), opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "record the run in this SQLite database")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter scenarios by file name glob")

	return cmd
}

func runScenarios(ctx context.Context, opts *RunOptions, dir string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	logger := opts.logger(f.GetErrWriter())

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("scenarios directory not found: %s", dir))
	}

	scenarios, err := scenario.LoadDir(dir)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to load scenarios", err)
	}
	scenarios, err = filterScenarios(scenarios, opts.Filter)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid filter", err)
	}
	logger.Debug("loaded scenarios", "dir", dir, "count", len(scenarios))

	var harnessLogger *slog.Logger
	if opts.Verbose {
		harnessLogger = logger
	}
	out := RunOutput{
		Reports: scenario.RunAll(opts.registry(), scenarios, harnessLogger),
		Total:   len(scenarios),
	}
	for _, rep := range out.Reports {
		if rep.OK {
			out.Passed++
		} else {
			out.Failed++
		}
	}

	if opts.Database != "" {
		st, err := store.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer st.Close()

		out.RunID = opts.runIDs().Generate()
		seq, err := st.WriteRun(ctx, store.Run{ID: out.RunID, Source: dir, Reports: out.Reports})
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to record run", err)
		}
		logger.Info("recorded run", "id", out.RunID, "seq", seq)
	}

	if opts.Format == "json" {
		if err := outputRunJSON(f, out); err != nil {
			return err
		}
	} else {
		outputRunText(f, out)
	}

	if out.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", out.Failed))
	}
	return nil
}

// filterScenarios keeps scenarios whose file name without extension
// matches the glob.
func filterScenarios(scenarios []*scenario.Scenario, pattern string) ([]*scenario.Scenario, error) {
	if pattern == "" {
		return scenarios, nil
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid filter pattern: %w", err)
	}
	var out []*scenario.Scenario
	for _, sc := range scenarios {
		base := filepath.Base(sc.File)
		name := strings.TrimSuffix(base, filepath.Ext(base))
		if ok, _ := filepath.Match(pattern, name); ok {
			out = append(out, sc)
		}
	}
	return out, nil
}

func outputRunJSON(f *OutputFormatter, out RunOutput) error {
	resp := CLIResponse{Status: "ok", Data: out, RunID: out.RunID}
	if out.Failed > 0 {
		resp.Status = "error"
		resp.Error = &CLIError{
			Code:    "E_SCENARIO_FAILED",
			Message: fmt.Sprintf("%d scenario(s) failed", out.Failed),
		}
	}
	return f.Respond(resp)
}

func outputRunText(f *OutputFormatter, out RunOutput) {
	w := f.Writer
	if out.Total == 0 {
		fmt.Fprintln(w, "No scenarios found.")
		return
	}
	for _, rep := range out.Reports {
		fmt.Fprintf(w, "%s %s %s\n", Mark(rep.OK), rep.Scenario,
			faintColor.Sprintf("(%s, %d steps)", rep.Program, len(rep.Result.Trace)))
		for _, p := range rep.Problems {
			fmt.Fprintf(w, "  %s\n", p)
		}
		if f.Verbose && !rep.Result.Pass {
			fmt.Fprintf(w, "  %s\n", faintColor.Sprintf("failure [%s]: %s", rep.Result.Category, rep.Result.Failure))
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Summary: %d passed, %d failed, %d total\n", out.Passed, out.Failed, out.Total)
	if out.RunID != "" {
		fmt.Fprintf(w, "Recorded run %s\n", out.RunID)
	}
	if out.Failed == 0 {
		fmt.Fprintln(w, passColor.Sprint("✓ All scenarios passed"))
	}
}
