package engine

import (
	"fmt"
	"strconv"
)

// StepKind names what a trace step recorded.
type StepKind string

const (
	StepInit       StepKind = "init"
	StepUpdate     StepKind = "update"
	StepURLChange  StepKind = "url_change"
	StepPageChange StepKind = "page_change"
	StepFailure    StepKind = "failure"
)

// Step is one entry in a machine's trace.
type Step struct {
	Seq    int64    `json:"seq"`
	Kind   StepKind `json:"kind"`
	Detail string   `json:"detail"`
}

// Format renders a model, message or effect for traces and failure
// messages. Strings are quoted so "" and absent values stay distinguishable.
func Format(v any) string {
	switch val := v.(type) {
	case nil:
		return "<nil>"
	case string:
		return strconv.Quote(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%+v", val)
	}
}
