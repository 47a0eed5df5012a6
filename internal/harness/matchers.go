package harness

import (
	"encoding/json"

	m "github.com/launchdarkly/go-test-helpers/v2/matchers"

	"github.com/roach88/teasim/internal/ir"
)

// ToValue converts a model, message or effect to an ir.Value. Plain values
// convert directly; anything else goes through its JSON encoding.
func ToValue(v any) (ir.Value, error) {
	if val, err := ir.FromGo(v); err == nil {
		return val, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return ir.Parse(data)
}

// EqualValue matches a value whose canonical JSON equals want's.
func EqualValue(want ir.Value) m.Matcher {
	wantJSON := ir.Render(want)
	return m.New(
		func(value interface{}) bool {
			got, err := ToValue(value)
			return err == nil && ir.Render(got) == wantJSON
		},
		func() string {
			return "equal to " + wantJSON
		},
		func(value interface{}) string {
			got, err := ToValue(value)
			if err != nil {
				return "cannot be encoded: " + err.Error()
			}
			return "was " + ir.Render(got)
		},
	)
}
