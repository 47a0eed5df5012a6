package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/teasim/internal/ir"
	"github.com/roach88/teasim/internal/vdom"
)

// TraceSnapshot is the golden form of a run.
// All fields use canonical JSON serialization for deterministic comparison.
type TraceSnapshot struct {
	Name   string
	Result Result
}

// toCanonicalMap converts a TraceSnapshot to a map[string]any for canonical JSON serialization.
func (s *TraceSnapshot) toCanonicalMap() map[string]any {
	trace := make([]any, len(s.Result.Trace))
	for i, e := range s.Result.Trace {
		trace[i] = map[string]any{
			"id":     e.ID,
			"seq":    e.Seq,
			"kind":   e.Kind,
			"detail": e.Detail,
		}
	}
	out := map[string]any{
		"name":   s.Name,
		"pass":   s.Result.Pass,
		"trace":  trace,
		"digest": s.Result.Digest,
	}
	if s.Result.Failure != "" {
		out["failure"] = s.Result.Failure
	}
	return out
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

// AssertGolden compares the result's trace against testdata/golden/{name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func AssertGolden(t *testing.T, name string, result Result) error {
	t.Helper()

	snapshot := TraceSnapshot{Name: name, Result: result}
	traceJSON, err := ir.MarshalCanonical(snapshot.toCanonicalMap())
	if err != nil {
		return err
	}
	newGoldie(t).Assert(t, name, traceJSON)
	return nil
}

// AssertGoldenView compares the rendered HTML of the harness's current view
// against testdata/golden/{name}.golden.
func AssertGoldenView[Model, Msg, Effect any](t *testing.T, name string, h Harness[Model, Msg, Effect]) error {
	t.Helper()

	root, err := h.root()
	if err != nil {
		return err
	}
	newGoldie(t).Assert(t, name, []byte(vdom.Render(root)))
	return nil
}
