package query

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/teasim/internal/vdom"
)

// Selector is a predicate over one node plus a human-readable description.
type Selector struct {
	Description string
	Match       func(vdom.View) bool
}

// Describe joins selector descriptions the way failure messages show them.
func Describe(sels []Selector) string {
	if len(sels) == 0 {
		return "any element"
	}
	parts := make([]string, len(sels))
	for i, s := range sels {
		parts[i] = s.Description
	}
	return strings.Join(parts, ", ")
}

// all composes selectors with AND semantics. Text nodes never match.
func all(sels []Selector) func(vdom.View) bool {
	return func(v vdom.View) bool {
		if v.IsText() {
			return false
		}
		for _, s := range sels {
			if !s.Match(v) {
				return false
			}
		}
		return true
	}
}

// Tag matches elements with the given tag name.
func Tag(name string) Selector {
	name = strings.ToLower(name)
	return Selector{
		Description: fmt.Sprintf("tag %q", name),
		Match: func(v vdom.View) bool {
			return v.TagName() == name
		},
	}
}

// Text matches elements whose own text children contain s.
// Both sides are NFC normalized so composed and decomposed accents compare
// equal.
func Text(s string) Selector {
	want := norm.NFC.String(s)
	return Selector{
		Description: fmt.Sprintf("text %q", s),
		Match: func(v vdom.View) bool {
			return strings.Contains(norm.NFC.String(v.OwnText()), want)
		},
	}
}

// ExactText matches elements whose whole text content equals s after
// trimming surrounding space.
func ExactText(s string) Selector {
	want := norm.NFC.String(strings.TrimSpace(s))
	return Selector{
		Description: fmt.Sprintf("exact text %q", s),
		Match: func(v vdom.View) bool {
			return norm.NFC.String(strings.TrimSpace(v.TextContent())) == want
		},
	}
}

// Attribute matches elements whose attribute name equals value.
func Attribute(name, value string) Selector {
	return Selector{
		Description: fmt.Sprintf("attribute %s=%q", name, value),
		Match: func(v vdom.View) bool {
			got, ok := v.Attribute(name)
			return ok && got == value
		},
	}
}

// HasAttribute matches elements carrying the attribute at all.
func HasAttribute(name string) Selector {
	return Selector{
		Description: fmt.Sprintf("attribute %s", name),
		Match: func(v vdom.View) bool {
			_, ok := v.Attribute(name)
			return ok
		},
	}
}

// ID matches the id attribute.
func ID(id string) Selector {
	return Selector{
		Description: fmt.Sprintf("id %q", id),
		Match: func(v vdom.View) bool {
			got, ok := v.Attribute("id")
			return ok && got == id
		},
	}
}

// Class matches one class among the space-separated class list.
func Class(class string) Selector {
	return Selector{
		Description: fmt.Sprintf("class %q", class),
		Match: func(v vdom.View) bool {
			got, ok := v.Attribute("class")
			return ok && slices.Contains(strings.Fields(got), class)
		},
	}
}

// Handling matches elements with a handler registered for event.
func Handling(event string) Selector {
	return Selector{
		Description: fmt.Sprintf("handler for %q", event),
		Match: func(v vdom.View) bool {
			return v.Handles(event)
		},
	}
}

// Containing matches elements with at least one strict descendant matching
// every selector in sels.
func Containing(sels ...Selector) Selector {
	match := all(sels)
	return Selector{
		Description: fmt.Sprintf("containing [%s]", Describe(sels)),
		Match: func(v vdom.View) bool {
			found := false
			for _, c := range v.Nodes() {
				vdom.Walk(c, func(d vdom.View) bool {
					if found {
						return false
					}
					if match(d) {
						found = true
						return false
					}
					return true
				})
			}
			return found
		},
	}
}
