package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/teasim/internal/event"
	"github.com/roach88/teasim/internal/ir"
	"github.com/roach88/teasim/internal/query"
	"github.com/roach88/teasim/internal/vdom"
)

// buttonTypes are the input types that render as buttons.
var buttonTypes = []string{"button", "submit", "reset"}

// ButtonLabeled matches a <button> whose text is label, an
// input[type=button|submit|reset] whose value is label, or any element with
// role=button. aria-label counts as text for all three.
func ButtonLabeled(label string) query.Selector {
	label = strings.TrimSpace(label)
	return query.Selector{
		Description: fmt.Sprintf("button %q", label),
		Match: func(v vdom.View) bool {
			if aria, ok := v.Attribute("aria-label"); ok && aria == label {
				return isButton(v)
			}
			switch {
			case v.TagName() == "input":
				typ, _ := v.Attribute("type")
				value, _ := v.Attribute("value")
				return slices.Contains(buttonTypes, typ) && value == label
			case isButton(v):
				return strings.TrimSpace(v.TextContent()) == label
			default:
				return false
			}
		},
	}
}

func isButton(v vdom.View) bool {
	if v.TagName() == "button" {
		return true
	}
	if role, ok := v.Attribute("role"); ok && role == "button" {
		return true
	}
	typ, _ := v.Attribute("type")
	return v.TagName() == "input" && slices.Contains(buttonTypes, typ)
}

// ClickButton clicks the unique button labeled label. A button without a
// click handler inside a form with a submit handler submits that form, as a
// browser would.
func (h Harness[Model, Msg, Effect]) ClickButton(label string) Harness[Model, Msg, Effect] {
	return h.interact("clickButton", func(h Harness[Model, Msg, Effect], root *vdom.Node[Msg]) (Harness[Model, Msg, Effect], error) {
		found, err := query.FindPath(root, ButtonLabeled(label))
		if err != nil {
			return h, err
		}
		button := found.Node
		if _, disabled := button.Attribute("disabled"); disabled {
			return h, &DisabledError{Node: vdom.Describe(button)}
		}
		if button.Handles(event.Click) {
			msg, err := event.ClickOn(button)
			if err != nil {
				return h, err
			}
			return h.apply(msg), nil
		}
		if form := enclosingForm(found); form != nil && submits(button) {
			msg, err := event.Message(form, event.Submit, ir.Object{})
			if err != nil {
				return h, err
			}
			return h.apply(msg), nil
		}
		return h, &event.NoHandlerError{Event: event.Click, Node: vdom.Describe(button)}
	})
}

// enclosingForm returns the nearest ancestor form with a submit handler.
func enclosingForm[Msg any](m query.Match[Msg]) *vdom.Node[Msg] {
	for i := len(m.Ancestors) - 1; i >= 0; i-- {
		if a := m.Ancestors[i]; a.Tag == "form" && a.Handles(event.Submit) {
			return a
		}
	}
	return nil
}

// submits reports whether a button submits its form: type=submit or no
// type at all on a <button>.
func submits[Msg any](button *vdom.Node[Msg]) bool {
	typ, ok := button.Attribute("type")
	if button.Tag == "button" {
		return !ok || typ == "submit"
	}
	return typ == "submit"
}

// FillIn types text into the form field labeled label. The field may be an
// input or a textarea; both receive an input event carrying target.value.
func (h Harness[Model, Msg, Effect]) FillIn(label, text string) Harness[Model, Msg, Effect] {
	return h.interact("fillIn", func(h Harness[Model, Msg, Effect], root *vdom.Node[Msg]) (Harness[Model, Msg, Effect], error) {
		field, err := query.FieldForLabel(root, label)
		if err != nil {
			return h, err
		}
		if field.Tag == "select" {
			return h, &FieldKindError{Label: label, Tag: field.Tag, Want: "a text field", Hint: "use SelectOption"}
		}
		return h.input(field, text)
	})
}

// FillInTextarea types text into the only textarea in scope.
func (h Harness[Model, Msg, Effect]) FillInTextarea(text string) Harness[Model, Msg, Effect] {
	return h.interact("fillInTextarea", func(h Harness[Model, Msg, Effect], root *vdom.Node[Msg]) (Harness[Model, Msg, Effect], error) {
		field, err := query.Find(root, query.Tag("textarea"))
		if err != nil {
			return h, err
		}
		return h.input(field, text)
	})
}

func (h Harness[Model, Msg, Effect]) input(field *vdom.Node[Msg], text string) (Harness[Model, Msg, Effect], error) {
	if _, disabled := field.Attribute("disabled"); disabled {
		return h, &DisabledError{Node: vdom.Describe(field)}
	}
	msg, err := event.InputOn(field, text)
	if err != nil {
		return h, err
	}
	return h.apply(msg), nil
}

// Check sets the checkbox labeled label to checked.
func (h Harness[Model, Msg, Effect]) Check(label string, checked bool) Harness[Model, Msg, Effect] {
	return h.interact("check", func(h Harness[Model, Msg, Effect], root *vdom.Node[Msg]) (Harness[Model, Msg, Effect], error) {
		field, err := query.FieldForLabel(root, label)
		if err != nil {
			return h, err
		}
		if field.Tag != "input" {
			return h, &FieldKindError{Label: label, Tag: field.Tag, Want: "a checkbox"}
		}
		if _, disabled := field.Attribute("disabled"); disabled {
			return h, &DisabledError{Node: vdom.Describe(field)}
		}
		msg, err := event.CheckOn(field, checked)
		if err != nil {
			return h, err
		}
		return h.apply(msg), nil
	})
}

// SelectOption picks the option whose text is option in the select labeled
// label. The change event carries the option's value attribute, or its text
// when it has none.
func (h Harness[Model, Msg, Effect]) SelectOption(label, option string) Harness[Model, Msg, Effect] {
	return h.interact("selectOption", func(h Harness[Model, Msg, Effect], root *vdom.Node[Msg]) (Harness[Model, Msg, Effect], error) {
		field, err := query.FieldForLabel(root, label)
		if err != nil {
			return h, err
		}
		if field.Tag != "select" {
			return h, &FieldKindError{Label: label, Tag: field.Tag, Want: "a <select>"}
		}
		opt, err := query.Find(field, query.Tag("option"), query.ExactText(option))
		if err != nil {
			return h, err
		}
		value, ok := opt.Attribute("value")
		if !ok {
			value = strings.TrimSpace(opt.TextContent())
		}
		msg, err := event.SelectOn(field, value)
		if err != nil {
			return h, err
		}
		return h.apply(msg), nil
	})
}

// SimulateDOMEvent fires event with payload at the unique node matching
// sels. A decoder that refuses the payload, deliberately or not, fails the
// harness: the caller asked for a message.
func (h Harness[Model, Msg, Effect]) SimulateDOMEvent(eventName string, payload ir.Value, sels ...query.Selector) Harness[Model, Msg, Effect] {
	return h.interact("simulateDomEvent", func(h Harness[Model, Msg, Effect], root *vdom.Node[Msg]) (Harness[Model, Msg, Effect], error) {
		node, err := query.Find(root, sels...)
		if err != nil {
			return h, err
		}
		msg, err := event.Message(node, eventName, payload)
		if err != nil {
			return h, err
		}
		return h.apply(msg), nil
	})
}
