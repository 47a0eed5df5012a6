package store

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/teasim/internal/ir"
)

// marshalProblems converts a report's problems to canonical JSON TEXT.
func marshalProblems(problems []string) (string, error) {
	list := make([]any, len(problems))
	for i, p := range problems {
		list[i] = p
	}
	data, err := ir.MarshalCanonical(list)
	if err != nil {
		return "", fmt.Errorf("marshal problems: %w", err)
	}
	return string(data), nil
}

// unmarshalProblems parses problems TEXT. An empty list reads back as nil.
func unmarshalProblems(data string) ([]string, error) {
	if data == "" || data == "[]" {
		return nil, nil
	}
	var problems []string
	if err := json.Unmarshal([]byte(data), &problems); err != nil {
		return nil, fmt.Errorf("unmarshal problems: %w", err)
	}
	return problems, nil
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
