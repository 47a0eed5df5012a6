package testutil

import (
	"fmt"
	"sync"
)

// SequentialIDs generates run IDs "<prefix>-0001", "<prefix>-0002", ...
//
// It satisfies the CLI's run ID generator so recorded runs and golden
// output are stable across test runs. Safe for concurrent use.
type SequentialIDs struct {
	prefix string

	mu sync.Mutex
	n  int
}

// NewSequentialIDs creates a generator. An empty prefix becomes "run".
func NewSequentialIDs(prefix string) *SequentialIDs {
	if prefix == "" {
		prefix = "run"
	}
	return &SequentialIDs{prefix: prefix}
}

// Generate returns the next ID.
func (g *SequentialIDs) Generate() string {
	g.mu.Lock()
	g.n++
	n := g.n
	g.mu.Unlock()
	return fmt.Sprintf("%s-%04d", g.prefix, n)
}

// Reset restarts the sequence at 1.
func (g *SequentialIDs) Reset() {
	g.mu.Lock()
	g.n = 0
	g.mu.Unlock()
}
