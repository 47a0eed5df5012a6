package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/teasim/internal/store"
)

// DBOptions holds the database flag shared by the history commands.
type DBOptions struct {
	*RootOptions
	Database string
}

func (o *DBOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
}

func (o *DBOptions) open() (*store.Store, error) {
	st, err := store.Open(o.Database)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}

// resolveRunID maps "" and "latest" to the most recent run.
func resolveRunID(ctx context.Context, st *store.Store, arg string) (string, error) {
	if arg != "" && arg != "latest" {
		return arg, nil
	}
	id, err := st.LatestRunID(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return "", NewExitError(ExitCommandError, "no runs recorded")
	}
	if err != nil {
		return "", WrapExitError(ExitCommandError, "failed to find latest run", err)
	}
	return id, nil
}

func readRun(ctx context.Context, st *store.Store, arg string) (store.Run, error) {
	id, err := resolveRunID(ctx, st, arg)
	if err != nil {
		return store.Run{}, err
	}
	run, err := st.ReadRun(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return store.Run{}, NewExitError(ExitCommandError, fmt.Sprintf("run not found: %s", id))
	}
	if err != nil {
		return store.Run{}, WrapExitError(ExitCommandError, "failed to read run", err)
	}
	return run, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
