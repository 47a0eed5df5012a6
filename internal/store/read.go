package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/teasim/internal/harness"
	"github.com/roach88/teasim/internal/scenario"
)

// ErrNotFound is returned when a run or report does not exist.
var ErrNotFound = errors.New("not found")

// RunSummary is a run without its reports.
type RunSummary struct {
	ID        string `json:"id"`
	Seq       int64  `json:"seq"`
	Source    string `json:"source"`
	Scenarios int    `json:"scenarios"`
	Failed    int    `json:"failed"`
}

// ListRuns returns the most recent runs first. limit <= 0 returns all.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	query := `SELECT id, seq, source, scenarios, failed FROM runs ORDER BY seq DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []RunSummary{}
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.ID, &r.Seq, &r.Source, &r.Scenarios, &r.Failed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// LatestRunID returns the ID of the most recently written run.
func (s *Store) LatestRunID(ctx context.Context) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `SELECT id FROM runs ORDER BY seq DESC LIMIT 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("latest run: %w", ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("latest run: %w", err)
	}
	return id, nil
}

// ReadRun returns a run with its reports and their traces.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	run := Run{ID: id}
	err := s.db.QueryRowContext(ctx, `SELECT seq, source FROM runs WHERE id = ?`, id).
		Scan(&run.Seq, &run.Source)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("read run: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, scenario, program, file, ok, pass, category, failure, digest, problems
		FROM reports
		WHERE run_id = ?
		ORDER BY seq ASC
	`, id)
	if err != nil {
		return Run{}, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	var seqs []int64
	for rows.Next() {
		var (
			seq      int64
			rep      scenario.Report
			problems string
		)
		if err := rows.Scan(&seq, &rep.Scenario, &rep.Program, &rep.File, &rep.OK, &rep.Result.Pass,
			&rep.Result.Category, &rep.Result.Failure, &rep.Result.Digest, &problems); err != nil {
			return Run{}, fmt.Errorf("scan report: %w", err)
		}
		if rep.Problems, err = unmarshalProblems(problems); err != nil {
			return Run{}, err
		}
		seqs = append(seqs, seq)
		run.Reports = append(run.Reports, rep)
	}
	if err := rows.Err(); err != nil {
		return Run{}, fmt.Errorf("iterate reports: %w", err)
	}
	rows.Close()

	for i, seq := range seqs {
		trace, err := s.readSteps(ctx, id, seq)
		if err != nil {
			return Run{}, err
		}
		run.Reports[i].Result.Trace = trace
	}
	return run, nil
}

// ReadTrace returns the trace of one scenario in a run.
func (s *Store) ReadTrace(ctx context.Context, runID, scenarioName string) ([]harness.TraceEvent, error) {
	var seq int64
	err := s.db.QueryRowContext(ctx, `SELECT seq FROM reports WHERE run_id = ? AND scenario = ?`,
		runID, scenarioName).Scan(&seq)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("scenario %q in run %s: %w", scenarioName, runID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read trace: %w", err)
	}
	return s.readSteps(ctx, runID, seq)
}

func (s *Store) readSteps(ctx context.Context, runID string, reportSeq int64) ([]harness.TraceEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seq, kind, detail
		FROM steps
		WHERE run_id = ? AND report_seq = ?
		ORDER BY seq ASC
	`, runID, reportSeq)
	if err != nil {
		return nil, fmt.Errorf("query steps: %w", err)
	}
	defer rows.Close()

	trace := []harness.TraceEvent{}
	for rows.Next() {
		var ev harness.TraceEvent
		if err := rows.Scan(&ev.ID, &ev.Seq, &ev.Kind, &ev.Detail); err != nil {
			return nil, fmt.Errorf("scan step: %w", err)
		}
		trace = append(trace, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate steps: %w", err)
	}
	return trace, nil
}
