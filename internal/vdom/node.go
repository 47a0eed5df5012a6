// Package vdom defines the abstract rendered tree a program's View returns.
//
// The tree is never painted and never diffed: the harness calls View for a
// fresh tree before every query and throws the previous one away. Event
// handlers are decoders stored on the element under their event name, so
// dispatch is a map lookup plus a function call.
package vdom

import (
	"fmt"
	"sort"
	"strings"

	"github.com/roach88/teasim/internal/decode"
	"github.com/roach88/teasim/internal/ir"
)

// NodeKind distinguishes elements from text.
type NodeKind int

const (
	ElementNode NodeKind = iota
	TextNode
)

// Response is what a handler's decoder yields for one event.
type Response[Msg any] struct {
	Message         Msg
	PreventDefault  bool
	StopPropagation bool
}

// Handler is the registration for one event name on one element.
type Handler[Msg any] struct {
	Decoder decode.Decoder[Response[Msg]]
}

// Node is an element or a text node.
type Node[Msg any] struct {
	Kind     NodeKind
	Tag      string
	Attrs    map[string]string
	Handlers map[string]Handler[Msg]
	Children []*Node[Msg]
	Text     string
}

// Option configures an element under construction.
type Option[Msg any] func(*Node[Msg])

// Element builds an element. Options set attributes and handlers; children
// are appended in order.
func Element[Msg any](tag string, opts []Option[Msg], children ...*Node[Msg]) *Node[Msg] {
	n := &Node[Msg]{
		Kind:     ElementNode,
		Tag:      strings.ToLower(tag),
		Attrs:    map[string]string{},
		Handlers: map[string]Handler[Msg]{},
		Children: children,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Text builds a text node.
func Text[Msg any](content string) *Node[Msg] {
	return &Node[Msg]{Kind: TextNode, Text: content}
}

// Attrs is a readability helper for the opts argument of Element.
func Attrs[Msg any](opts ...Option[Msg]) []Option[Msg] {
	return opts
}

// Attr sets an arbitrary attribute.
func Attr[Msg any](name, value string) Option[Msg] {
	return func(n *Node[Msg]) {
		n.Attrs[name] = value
	}
}

func ID[Msg any](id string) Option[Msg] { return Attr[Msg]("id", id) }
func Class[Msg any](class string) Option[Msg] { return Attr[Msg]("class", class) }
func Href[Msg any](href string) Option[Msg] { return Attr[Msg]("href", href) }
func For[Msg any](id string) Option[Msg] { return Attr[Msg]("for", id) }
func Type[Msg any](typ string) Option[Msg] { return Attr[Msg]("type", typ) }
func Value[Msg any](value string) Option[Msg] { return Attr[Msg]("value", value) }
func Name[Msg any](name string) Option[Msg] { return Attr[Msg]("name", name) }
func AriaLabel[Msg any](label string) Option[Msg] { return Attr[Msg]("aria-label", label) }

// Disabled marks the element disabled when on is true.
func Disabled[Msg any](on bool) Option[Msg] {
	return func(n *Node[Msg]) {
		if on {
			n.Attrs["disabled"] = ""
		} else {
			delete(n.Attrs, "disabled")
		}
	}
}

// Checked sets the checked attribute of a checkbox.
func Checked[Msg any](on bool) Option[Msg] {
	return func(n *Node[Msg]) {
		if on {
			n.Attrs["checked"] = ""
		} else {
			delete(n.Attrs, "checked")
		}
	}
}

// Custom registers a handler with full control over the response.
func Custom[Msg any](event string, d decode.Decoder[Response[Msg]]) Option[Msg] {
	return func(n *Node[Msg]) {
		n.Handlers[event] = Handler[Msg]{Decoder: d}
	}
}

// On registers a plain handler: no preventDefault, no stopPropagation.
func On[Msg any](event string, d decode.Decoder[Msg]) Option[Msg] {
	return Custom(event, decode.Map(func(m Msg) Response[Msg] {
		return Response[Msg]{Message: m}
	}, d))
}

// PreventDefaultOn registers a handler whose decoder also decides whether the
// default action is prevented.
func PreventDefaultOn[Msg any](event string, d decode.Decoder[Response[Msg]]) Option[Msg] {
	return Custom(event, d)
}

// OnClick produces msg on click regardless of payload.
func OnClick[Msg any](msg Msg) Option[Msg] {
	return On("click", decode.Succeed(msg))
}

// OnInput maps target.value of an input event to a message.
func OnInput[Msg any](toMsg func(string) Msg) Option[Msg] {
	return On("input", decode.Map(toMsg, decode.At([]string{"target", "value"}, decode.String)))
}

// OnCheck maps target.checked of a change event to a message.
func OnCheck[Msg any](toMsg func(bool) Msg) Option[Msg] {
	return On("change", decode.Map(toMsg, decode.At([]string{"target", "checked"}, decode.Bool)))
}

// OnChange maps target.value of a change event to a message (used by selects).
func OnChange[Msg any](toMsg func(string) Msg) Option[Msg] {
	return On("change", decode.Map(toMsg, decode.At([]string{"target", "value"}, decode.String)))
}

// OnSubmit produces msg when the form is submitted and prevents the default.
func OnSubmit[Msg any](msg Msg) Option[Msg] {
	return PreventDefaultOn("submit", decode.Succeed(Response[Msg]{Message: msg, PreventDefault: true}))
}

// IsText reports whether n is a text node.
func (n *Node[Msg]) IsText() bool {
	return n.Kind == TextNode
}

// Attribute returns the named attribute.
func (n *Node[Msg]) Attribute(name string) (string, bool) {
	if n.Kind != ElementNode {
		return "", false
	}
	v, ok := n.Attrs[name]
	return v, ok
}

// Handles reports whether n has a handler for event.
func (n *Node[Msg]) Handles(event string) bool {
	_, ok := n.Handlers[event]
	return ok
}

// OwnText concatenates the direct text children of n.
func (n *Node[Msg]) OwnText() string {
	if n.Kind == TextNode {
		return n.Text
	}
	var b strings.Builder
	for _, c := range n.Children {
		if c.Kind == TextNode {
			b.WriteString(c.Text)
		}
	}
	return b.String()
}

// TextContent concatenates all descendant text in document order.
func (n *Node[Msg]) TextContent() string {
	if n.Kind == TextNode {
		return n.Text
	}
	var b strings.Builder
	for _, c := range n.Children {
		b.WriteString(c.TextContent())
	}
	return b.String()
}

// Describe renders a one-line summary such as <a href="/x" id="home">.
func Describe[Msg any](n *Node[Msg]) string {
	if n == nil {
		return "<nil>"
	}
	if n.Kind == TextNode {
		return fmt.Sprintf("text %q", n.Text)
	}
	keys := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("<")
	b.WriteString(n.Tag)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%q", k, n.Attrs[k])
	}
	b.WriteString(">")
	return b.String()
}

// Payload helpers for the standard event shapes.

// ClickPayload is the payload of a plain click.
func ClickPayload() ir.Value {
	return ir.Object{}
}

// InputPayload is the payload of an input event carrying text.
func InputPayload(text string) ir.Value {
	return ir.Obj(ir.O("target", ir.Obj(ir.O("value", ir.String(text)))))
}

// CheckPayload is the payload of a checkbox change event.
func CheckPayload(checked bool) ir.Value {
	return ir.Obj(ir.O("target", ir.Obj(ir.O("checked", ir.Bool(checked)))))
}

// LinkClickPayload is a primary-button click with no modifier keys.
func LinkClickPayload() ir.Value {
	return ir.Obj(
		ir.O("ctrlKey", ir.Bool(false)),
		ir.O("metaKey", ir.Bool(false)),
		ir.O("shiftKey", ir.Bool(false)),
		ir.O("altKey", ir.Bool(false)),
		ir.O("button", ir.Int(0)),
	)
}
