// Package query locates nodes in a rendered tree.
//
// Every lookup walks the whole subtree depth-first in pre-order (the root
// included) and collects all matches before deciding: exactly one match is
// success, zero or several is an error that names the selector and shows
// enough of the tree to diagnose the miss.
package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/teasim/internal/vdom"
)

// maxListedMatches caps how many ambiguous matches an error lists.
const maxListedMatches = 5

// NotFoundError is returned when no node matches. The message stays on one
// line; Subtree carries the searched tree for diagnostics.
type NotFoundError struct {
	Selector string
	Subtree  string // HTML rendering of the searched subtree
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no element matches [%s]", e.Selector)
}

// AmbiguousError is returned when more than one node matches.
type AmbiguousError struct {
	Count    int
	Selector string
	Matches  []string // one-line descriptions, at most maxListedMatches
}

// Error implements the error interface.
func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("%d elements match [%s], expected exactly one: %s",
		e.Count, e.Selector, strings.Join(e.Matches, ", "))
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsAmbiguous reports whether err is an AmbiguousError.
func IsAmbiguous(err error) bool {
	var am *AmbiguousError
	return errors.As(err, &am)
}

// Match is one hit plus the chain of ancestors from the search root down to
// (but excluding) the node itself.
type Match[Msg any] struct {
	Node      *vdom.Node[Msg]
	Ancestors []*vdom.Node[Msg]
}

// FindAllPaths returns every match in pre-order.
func FindAllPaths[Msg any](root *vdom.Node[Msg], sels ...Selector) []Match[Msg] {
	match := all(sels)
	var out []Match[Msg]
	var walk func(n *vdom.Node[Msg], ancestors []*vdom.Node[Msg])
	walk = func(n *vdom.Node[Msg], ancestors []*vdom.Node[Msg]) {
		if n == nil {
			return
		}
		if match(n) {
			out = append(out, Match[Msg]{Node: n, Ancestors: append([]*vdom.Node[Msg](nil), ancestors...)})
		}
		next := append(ancestors[:len(ancestors):len(ancestors)], n)
		for _, c := range n.Children {
			walk(c, next)
		}
	}
	walk(root, nil)
	return out
}

// FindAll returns every matching node in pre-order.
func FindAll[Msg any](root *vdom.Node[Msg], sels ...Selector) []*vdom.Node[Msg] {
	paths := FindAllPaths(root, sels...)
	out := make([]*vdom.Node[Msg], len(paths))
	for i, p := range paths {
		out[i] = p.Node
	}
	return out
}

// Count returns the number of matching nodes.
func Count[Msg any](root *vdom.Node[Msg], sels ...Selector) int {
	return len(FindAllPaths(root, sels...))
}

// FindPath returns the unique match with its ancestors.
func FindPath[Msg any](root *vdom.Node[Msg], sels ...Selector) (Match[Msg], error) {
	matches := FindAllPaths(root, sels...)
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return Match[Msg]{}, &NotFoundError{
			Selector: Describe(sels),
			Subtree:  subtree(root),
		}
	default:
		listed := make([]string, 0, maxListedMatches)
		for i, m := range matches {
			if i == maxListedMatches {
				listed = append(listed, "...")
				break
			}
			listed = append(listed, vdom.Describe(m.Node))
		}
		return Match[Msg]{}, &AmbiguousError{
			Count:    len(matches),
			Selector: Describe(sels),
			Matches:  listed,
		}
	}
}

// Find returns the unique node matching all selectors.
func Find[Msg any](root *vdom.Node[Msg], sels ...Selector) (*vdom.Node[Msg], error) {
	m, err := FindPath(root, sels...)
	if err != nil {
		return nil, err
	}
	return m.Node, nil
}

func subtree[Msg any](root *vdom.Node[Msg]) string {
	if root == nil {
		return "(empty view)"
	}
	return vdom.Render(root)
}
