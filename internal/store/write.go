package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/teasim/internal/scenario"
)

// Run is one pass of the scenario runner.
type Run struct {
	ID      string            `json:"id"`
	Seq     int64             `json:"seq"` // assigned by WriteRun
	Source  string            `json:"source"`
	Reports []scenario.Report `json:"reports"`
}

// Failed counts reports whose expectations were not met.
func (r Run) Failed() int {
	n := 0
	for _, rep := range r.Reports {
		if !rep.OK {
			n++
		}
	}
	return n
}

// ErrDuplicateRun is returned when a run with the same ID already exists.
var ErrDuplicateRun = errors.New("run already recorded")

// WriteRun stores a run with all its reports and steps in one transaction
// and returns the seq it was given.
func (s *Store) WriteRun(ctx context.Context, run Run) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("write run: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM runs WHERE id = ?`, run.ID).Scan(&exists)
	switch {
	case err == nil:
		return 0, fmt.Errorf("write run %s: %w", run.ID, ErrDuplicateRun)
	case !errors.Is(err, sql.ErrNoRows):
		return 0, fmt.Errorf("write run: %w", err)
	}

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("write run: next seq: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, seq, source, scenarios, failed)
		VALUES (?, ?, ?, ?, ?)
	`, run.ID, seq, run.Source, len(run.Reports), run.Failed())
	if err != nil {
		return 0, fmt.Errorf("write run: %w", err)
	}

	for i, rep := range run.Reports {
		if err := writeReport(ctx, tx, run.ID, int64(i), rep); err != nil {
			return 0, fmt.Errorf("write run: report %q: %w", rep.Scenario, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("write run: commit: %w", err)
	}
	return seq, nil
}

func writeReport(ctx context.Context, tx *sql.Tx, runID string, seq int64, rep scenario.Report) error {
	problems, err := marshalProblems(rep.Problems)
	if err != nil {
		return err
	}
	r := rep.Result
	_, err = tx.ExecContext(ctx, `
		INSERT INTO reports
		(run_id, seq, scenario, program, file, ok, pass, category, failure, digest, problems)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		runID,
		seq,
		rep.Scenario,
		rep.Program,
		rep.File,
		boolInt(rep.OK),
		boolInt(r.Pass),
		r.Category,
		r.Failure,
		r.Digest,
		problems,
	)
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO steps (run_id, report_seq, seq, id, kind, detail)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, ev := range r.Trace {
		if _, err := stmt.ExecContext(ctx, runID, seq, ev.Seq, ev.ID, ev.Kind, ev.Detail); err != nil {
			return fmt.Errorf("step %d: %w", ev.Seq, err)
		}
	}
	return nil
}
