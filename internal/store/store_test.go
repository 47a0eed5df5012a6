package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/roach88/teasim/internal/scenario"
)

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
		s.Close()
	}
}

func TestOpen_Pragmas(t *testing.T) {
	s := createTestStore(t)

	for name, want := range map[string]string{
		"journal_mode": "wal",
		"foreign_keys": "1",
		"user_version": "1",
	} {
		if err := s.verifyPragma(name, want); err != nil {
			t.Error(err)
		}
	}
}

func TestOpen_RefusesNewerSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := s.db.Exec("PRAGMA user_version = 99"); err != nil {
		t.Fatalf("set user_version: %v", err)
	}
	s.Close()

	if _, err := Open(path); err == nil {
		t.Fatal("Open() accepted a newer schema version")
	}
}

func TestWriteRun_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	run := Run{
		ID:     "run-1",
		Source: "scenarios/",
		Reports: []scenario.Report{
			createTestReport("first", "d1", true, `"A"`, `"B"`),
			createTestReport("second", "d2", false, `"C"`),
		},
	}
	seq, err := s.WriteRun(ctx, run)
	if err != nil {
		t.Fatalf("WriteRun() failed: %v", err)
	}
	if seq != 1 {
		t.Errorf("seq = %d, want 1", seq)
	}

	got, err := s.ReadRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("ReadRun() failed: %v", err)
	}
	run.Seq = 1
	if !reflect.DeepEqual(got, run) {
		t.Errorf("ReadRun() = %+v\nwant %+v", got, run)
	}
}

func TestWriteRun_AssignsIncreasingSeq(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	for i, id := range []string{"b", "a", "c"} {
		seq, err := s.WriteRun(ctx, Run{ID: id, Source: "dir"})
		if err != nil {
			t.Fatalf("WriteRun(%s) failed: %v", id, err)
		}
		if seq != int64(i+1) {
			t.Errorf("WriteRun(%s) seq = %d, want %d", id, seq, i+1)
		}
	}

	runs, err := s.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	var ids []string
	for _, r := range runs {
		ids = append(ids, r.ID)
	}
	if want := []string{"c", "a"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("ListRuns(2) = %v, want %v", ids, want)
	}

	latest, err := s.LatestRunID(ctx)
	if err != nil {
		t.Fatalf("LatestRunID() failed: %v", err)
	}
	if latest != "c" {
		t.Errorf("LatestRunID() = %q, want c", latest)
	}
}

func TestWriteRun_Duplicate(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	if _, err := s.WriteRun(ctx, Run{ID: "x", Source: "dir"}); err != nil {
		t.Fatalf("WriteRun() failed: %v", err)
	}
	_, err := s.WriteRun(ctx, Run{ID: "x", Source: "dir"})
	if !errors.Is(err, ErrDuplicateRun) {
		t.Errorf("second WriteRun() = %v, want ErrDuplicateRun", err)
	}
}

func TestWriteRun_RollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	dup := createTestReport("same", "d", true)
	_, err := s.WriteRun(ctx, Run{ID: "bad", Source: "dir", Reports: []scenario.Report{dup, dup}})
	if err == nil {
		t.Fatal("WriteRun() accepted two reports with the same scenario name")
	}

	if _, err := s.ReadRun(ctx, "bad"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ReadRun() after rollback = %v, want ErrNotFound", err)
	}
}

func TestListRuns_Summary(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	_, err := s.WriteRun(ctx, Run{ID: "r", Source: "dir", Reports: []scenario.Report{
		createTestReport("a", "d1", true),
		createTestReport("b", "d2", false),
		createTestReport("c", "d3", false),
	}})
	if err != nil {
		t.Fatalf("WriteRun() failed: %v", err)
	}

	runs, err := s.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	want := []RunSummary{{ID: "r", Seq: 1, Source: "dir", Scenarios: 3, Failed: 2}}
	if !reflect.DeepEqual(runs, want) {
		t.Errorf("ListRuns() = %+v, want %+v", runs, want)
	}
}

func TestReadTrace(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	_, err := s.WriteRun(ctx, Run{ID: "r", Source: "dir", Reports: []scenario.Report{
		createTestReport("a", "d1", true, `"A"`),
		createTestReport("b", "d2", true, `"B1"`, `"B2"`),
	}})
	if err != nil {
		t.Fatalf("WriteRun() failed: %v", err)
	}

	trace, err := s.ReadTrace(ctx, "r", "b")
	if err != nil {
		t.Fatalf("ReadTrace() failed: %v", err)
	}
	if len(trace) != 2 || trace[0].Detail != `"B1"` || trace[1].Seq != 1 {
		t.Errorf("ReadTrace() = %+v", trace)
	}

	if _, err := s.ReadTrace(ctx, "r", "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ReadTrace(missing) = %v, want ErrNotFound", err)
	}
}

func TestEmptyStore(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	runs, err := s.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	if runs == nil || len(runs) != 0 {
		t.Errorf("ListRuns() = %#v, want empty non-nil slice", runs)
	}
	if _, err := s.LatestRunID(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("LatestRunID() = %v, want ErrNotFound", err)
	}
}

func TestDiff(t *testing.T) {
	before := Run{Reports: []scenario.Report{
		createTestReport("same", "d1", true),
		createTestReport("changed", "d2", true),
		createTestReport("removed", "d3", true),
		createTestReport("broke", "d4", true),
	}}
	after := Run{Reports: []scenario.Report{
		createTestReport("same", "d1", true),
		createTestReport("changed", "d2x", true),
		createTestReport("added", "d5", true),
		createTestReport("broke", "d4", false),
	}}

	want := []Change{
		{Scenario: "added", After: "d5", IsOK: true},
		{Scenario: "broke", Before: "d4", After: "d4", WasOK: true},
		{Scenario: "changed", Before: "d2", After: "d2x", WasOK: true, IsOK: true},
		{Scenario: "removed", Before: "d3", WasOK: true},
	}
	if got := Diff(before, after); !reflect.DeepEqual(got, want) {
		t.Errorf("Diff() = %+v\nwant %+v", got, want)
	}
}
