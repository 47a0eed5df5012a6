package harness

import (
	"github.com/roach88/teasim/internal/engine"
	"github.com/roach88/teasim/internal/ir"
)

// TraceEvent is one recorded step of a run with its content-addressed ID.
type TraceEvent struct {
	ID     string `json:"id"`
	Seq    int64  `json:"seq"`
	Kind   string `json:"kind"` // init, update, url_change, page_change or failure
	Detail string `json:"detail"`
}

// Result is the outcome of a run.
type Result struct {
	// Pass is true while no failure has been recorded.
	Pass bool `json:"pass"`

	// Failure is the first failure's reason. Empty if Pass is true.
	Failure string `json:"failure,omitempty"`

	// Category classifies the failure.
	Category string `json:"category,omitempty"`

	// Trace contains every step in order.
	Trace []TraceEvent `json:"trace"`

	// Digest identifies the whole trace. Two runs with the same steps share
	// a digest.
	Digest string `json:"digest"`
}

func newResult(steps []engine.Step, f *engine.Failure) Result {
	r := Result{Pass: f == nil, Trace: make([]TraceEvent, 0, len(steps))}
	if f != nil {
		r.Failure = f.Reason()
		r.Category = string(f.Category)
	}
	ids := make([]string, 0, len(steps))
	for _, s := range steps {
		id, err := ir.StepID(string(s.Kind), s.Detail, s.Seq)
		if err != nil {
			// Kind and detail are plain strings; canonical encoding of them
			// cannot fail.
			panic(err)
		}
		ids = append(ids, id)
		r.Trace = append(r.Trace, TraceEvent{ID: id, Seq: s.Seq, Kind: string(s.Kind), Detail: s.Detail})
	}
	digest, err := ir.TraceDigest(ids)
	if err != nil {
		panic(err)
	}
	r.Digest = digest
	return r
}
