package store

import "sort"

// Change is a scenario whose outcome differs between two runs.
type Change struct {
	Scenario string `json:"scenario"`
	Before   string `json:"before,omitempty"` // digest; empty if the scenario is new
	After    string `json:"after,omitempty"`  // digest; empty if the scenario was removed
	WasOK    bool   `json:"was_ok"`
	IsOK     bool   `json:"is_ok"`
}

// Diff compares two runs scenario by scenario. Scenarios with the same
// digest and the same verdict are left out. The result is sorted by name.
func Diff(before, after Run) []Change {
	type entry struct {
		digest string
		ok     bool
	}
	old := make(map[string]entry, len(before.Reports))
	for _, r := range before.Reports {
		old[r.Scenario] = entry{r.Result.Digest, r.OK}
	}

	var changes []Change
	for _, r := range after.Reports {
		prev, found := old[r.Scenario]
		delete(old, r.Scenario)
		if found && prev.digest == r.Result.Digest && prev.ok == r.OK {
			continue
		}
		changes = append(changes, Change{
			Scenario: r.Scenario,
			Before:   prev.digest,
			After:    r.Result.Digest,
			WasOK:    prev.ok,
			IsOK:     r.OK,
		})
	}
	for name, prev := range old {
		changes = append(changes, Change{Scenario: name, Before: prev.digest, WasOK: prev.ok})
	}
	sort.Slice(changes, func(i, j int) bool { return changes[i].Scenario < changes[j].Scenario })
	return changes
}
