package query

import (
	"fmt"

	m "github.com/launchdarkly/go-test-helpers/v2/matchers"

	"github.com/roach88/teasim/internal/vdom"
)

// countMatches counts matching nodes under a View tree.
func countMatches(value interface{}, sels []Selector) (int, bool) {
	root, ok := value.(vdom.View)
	if !ok {
		return 0, false
	}
	match := all(sels)
	n := 0
	vdom.Walk(root, func(v vdom.View) bool {
		if match(v) {
			n++
		}
		return true
	})
	return n, true
}

// Has is a matcher over a rendered tree: at least one element matches every
// selector.
func Has(sels ...Selector) m.Matcher {
	return m.New(
		func(value interface{}) bool {
			n, ok := countMatches(value, sels)
			return ok && n > 0
		},
		func() string {
			return fmt.Sprintf("view has [%s]", Describe(sels))
		},
		func(value interface{}) string {
			return fmt.Sprintf("no element matches [%s]", Describe(sels))
		},
	)
}

// HasNot is a matcher over a rendered tree: no element matches every
// selector.
func HasNot(sels ...Selector) m.Matcher {
	return m.New(
		func(value interface{}) bool {
			n, ok := countMatches(value, sels)
			return ok && n == 0
		},
		func() string {
			return fmt.Sprintf("view has no [%s]", Describe(sels))
		},
		func(value interface{}) string {
			n, _ := countMatches(value, sels)
			return fmt.Sprintf("%d element(s) match [%s]", n, Describe(sels))
		},
	)
}

// HasCount is a matcher over a rendered tree: exactly n elements match.
func HasCount(n int, sels ...Selector) m.Matcher {
	return m.New(
		func(value interface{}) bool {
			got, ok := countMatches(value, sels)
			return ok && got == n
		},
		func() string {
			return fmt.Sprintf("view has %d of [%s]", n, Describe(sels))
		},
		func(value interface{}) string {
			got, _ := countMatches(value, sels)
			return fmt.Sprintf("found %d of [%s]", got, Describe(sels))
		},
	)
}
