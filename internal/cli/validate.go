package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/teasim/internal/scenario"
)

// FileCheck is the validation result of one scenario file.
type FileCheck struct {
	File  string `json:"file"`
	Name  string `json:"name,omitempty"`
	Error string `json:"error,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <scenarios-dir>",
		Short: "Check scenario files without running them",
		Long: `Check every scenario file in a directory against the scenario schema
and make sure the programs they name are registered. Unlike run, every
file is checked even after the first invalid one.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, dir string, cmd *cobra.Command) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("scenarios directory not found: %s", dir))
	}
	files, err := scenario.Files(dir)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list scenarios", err)
	}

	reg := opts.registry()
	checks := make([]FileCheck, 0, len(files))
	invalid := 0
	for _, file := range files {
		check := FileCheck{File: filepath.Base(file)}
		sc, err := scenario.Load(file)
		switch {
		case err != nil:
			check.Error = err.Error()
		default:
			check.Name = sc.Name
			if _, ok := reg.Lookup(sc.Program); !ok {
				check.Error = fmt.Sprintf("unknown program %q", sc.Program)
			}
		}
		if check.Error != "" {
			invalid++
		}
		checks = append(checks, check)
	}

	f := opts.formatter(cmd)
	if opts.Format == "json" {
		resp := CLIResponse{Status: "ok", Data: checks}
		if invalid > 0 {
			resp.Status = "error"
			resp.Error = &CLIError{Code: "E_INVALID_SCENARIO", Message: fmt.Sprintf("%d invalid scenario file(s)", invalid)}
		}
		if err := f.Respond(resp); err != nil {
			return err
		}
	} else {
		for _, c := range checks {
			fmt.Fprintf(f.Writer, "%s %s\n", Mark(c.Error == ""), c.File)
			if c.Error != "" {
				fmt.Fprintf(f.Writer, "  %s\n", c.Error)
			}
		}
	}

	if invalid > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d invalid scenario file(s)", invalid))
	}
	return nil
}
