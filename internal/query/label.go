package query

import (
	"fmt"
	"slices"

	"github.com/roach88/teasim/internal/vdom"
)

// fieldTags are the elements a label can point at.
var fieldTags = []string{"input", "textarea", "select"}

// LabelError is returned when a label resolves to no form field.
type LabelError struct {
	Label  string
	Reason string
}

// Error implements the error interface.
func (e *LabelError) Error() string {
	return fmt.Sprintf("no field associated with label %q: %s", e.Label, e.Reason)
}

// Field matches input, textarea and select elements.
func Field() Selector {
	return Selector{
		Description: "form field",
		Match: func(v vdom.View) bool {
			return slices.Contains(fieldTags, v.TagName())
		},
	}
}

// FieldForLabel resolves visible label text to the unique form field it
// names. A field is associated with a label when
//   - the label's for attribute equals the field's id,
//   - the label wraps the field, or
//   - the field's aria-label equals the text.
func FieldForLabel[Msg any](root *vdom.Node[Msg], label string) (*vdom.Node[Msg], error) {
	var candidates []*vdom.Node[Msg]
	add := func(n *vdom.Node[Msg]) {
		if !slices.Contains(candidates, n) {
			candidates = append(candidates, n)
		}
	}

	labels := FindAll(root, Tag("label"), ExactText(label))
	for _, l := range labels {
		if id, ok := l.Attribute("for"); ok {
			for _, f := range FindAll(root, Field(), ID(id)) {
				add(f)
			}
			continue
		}
		for _, c := range l.Children {
			for _, f := range FindAll(c, Field()) {
				add(f)
			}
		}
	}
	for _, f := range FindAll(root, Field(), Attribute("aria-label", label)) {
		add(f)
	}

	switch len(candidates) {
	case 1:
		return candidates[0], nil
	case 0:
		reason := "no <label> with that text"
		if len(labels) > 0 {
			reason = "the label's for attribute or contents name no input, textarea or select"
		}
		return nil, &LabelError{Label: label, Reason: reason}
	default:
		listed := make([]string, len(candidates))
		for i, c := range candidates {
			listed[i] = vdom.Describe(c)
		}
		return nil, &AmbiguousError{
			Count:    len(candidates),
			Selector: fmt.Sprintf("field labeled %q", label),
			Matches:  listed,
		}
	}
}
