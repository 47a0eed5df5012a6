package vdom

import (
	"bytes"
	"encoding/json"
	"sort"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Render serializes the tree as HTML. Handlers are shown as data-on-<event>
// attributes so snapshots record which elements are interactive.
func Render(v View) string {
	if v == nil {
		return ""
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, toHTML(v)); err != nil {
		return "<!-- render failed: " + err.Error() + " -->"
	}
	return buf.String()
}

func toHTML(v View) *html.Node {
	if v.IsText() {
		return &html.Node{Type: html.TextNode, Data: v.OwnText()}
	}
	tag := v.TagName()
	n := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	for _, k := range v.AttributeNames() {
		val, _ := v.Attribute(k)
		n.Attr = append(n.Attr, html.Attribute{Key: k, Val: val})
	}
	for _, e := range v.HandlerNames() {
		n.Attr = append(n.Attr, html.Attribute{Key: "data-on-" + e})
	}
	for _, c := range v.Nodes() {
		n.AppendChild(toHTML(c))
	}
	return n
}

// AttributeNames returns attribute names in sorted order.
func (n *Node[Msg]) AttributeNames() []string {
	keys := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// HandlerNames returns registered event names in sorted order.
func (n *Node[Msg]) HandlerNames() []string {
	keys := make([]string, 0, len(n.Handlers))
	for k := range n.Handlers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String renders the subtree as HTML.
func (n *Node[Msg]) String() string {
	if n == nil {
		return ""
	}
	return Render(n)
}

// MarshalJSON encodes the node as its HTML rendering, so matcher failure
// output shows markup instead of handler internals.
func (n *Node[Msg]) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.String())
}
