package vdom

// View is the read-only, message-agnostic face of a node. Selectors and
// matchers work against View so they need no type parameter.
type View interface {
	IsText() bool
	TagName() string
	Attribute(name string) (string, bool)
	AttributeNames() []string
	HandlerNames() []string
	Handles(event string) bool
	OwnText() string
	TextContent() string
	Nodes() []View
	Describe() string
}

// TagName returns the lower-case tag, or "" for text.
func (n *Node[Msg]) TagName() string {
	return n.Tag
}

// Nodes returns the children as Views.
func (n *Node[Msg]) Nodes() []View {
	out := make([]View, len(n.Children))
	for i, c := range n.Children {
		out[i] = c
	}
	return out
}

// Describe implements View.
func (n *Node[Msg]) Describe() string {
	return Describe(n)
}

// Walk visits v and its descendants in pre-order. Returning false from visit
// skips the node's children.
func Walk(v View, visit func(View) bool) {
	if v == nil {
		return
	}
	if !visit(v) {
		return
	}
	for _, c := range v.Nodes() {
		Walk(c, visit)
	}
}
