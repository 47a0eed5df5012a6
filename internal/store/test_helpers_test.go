package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/teasim/internal/harness"
	"github.com/roach88/teasim/internal/scenario"
)

// createTestStore creates a new store in a temp dir for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestReport creates a report whose trace has one init step per
// detail.
func createTestReport(name, digest string, ok bool, details ...string) scenario.Report {
	trace := make([]harness.TraceEvent, len(details))
	for i, d := range details {
		trace[i] = harness.TraceEvent{ID: name + "-step", Seq: int64(i), Kind: "update", Detail: d}
	}
	rep := scenario.Report{
		Scenario: name,
		Program:  "echo",
		File:     name + ".yaml",
		OK:       ok,
		Result:   harness.Result{Pass: ok, Trace: trace, Digest: digest},
	}
	if !ok {
		rep.Result.Category = "query"
		rep.Result.Failure = "clickButton: no element matches"
		rep.Problems = []string{"expected the run to pass, but it failed: clickButton: no element matches"}
	}
	return rep
}
