package harness

import (
	"errors"
	"fmt"

	"github.com/roach88/teasim/internal/engine"
	"github.com/roach88/teasim/internal/nav"
	"github.com/roach88/teasim/internal/query"
)

// NavigationError reports a link or route operation that could not be
// simulated faithfully.
type NavigationError struct {
	Message string
}

// Error implements the error interface.
func (e *NavigationError) Error() string {
	return e.Message
}

// AssertionError reports a predicate over the model, view or effect that did
// not hold. Message is the first line of the matcher's failure description;
// Detail holds the rest, such as the full value that was tested.
type AssertionError struct {
	Message string
	Detail  string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	return e.Message
}

// DisabledError reports an interaction with a disabled control.
type DisabledError struct {
	Node string // one-line description of the control
}

// Error implements the error interface.
func (e *DisabledError) Error() string {
	return e.Node + " is disabled"
}

// FieldKindError reports a labeled field whose element cannot take the
// requested interaction.
type FieldKindError struct {
	Label string
	Tag   string
	Want  string // what the interaction needs, e.g. "a checkbox"
	Hint  string // optional
}

// Error implements the error interface.
func (e *FieldKindError) Error() string {
	msg := fmt.Sprintf("field labeled %q is a <%s>, not %s", e.Label, e.Tag, e.Want)
	if e.Hint != "" {
		msg += "; " + e.Hint
	}
	return msg
}

// failure converts an error raised inside op into the harness failure.
func failure(op string, err error) *engine.Failure {
	if f, ok := engine.AsFailure(err); ok {
		if f.Op != "" {
			return f
		}
		named := *f
		named.Op = op
		return &named
	}
	return engine.NewFailure(classify(err), op, err)
}

func classify(err error) engine.Category {
	var (
		label *query.LabelError
		pe    *nav.ParseError
		ne    *NavigationError
		kind  *FieldKindError
		ae    *AssertionError
	)
	switch {
	case query.IsNotFound(err), query.IsAmbiguous(err), errors.As(err, &label), errors.As(err, &kind):
		return engine.CategoryQuery
	case errors.As(err, &pe), errors.As(err, &ne):
		return engine.CategoryNavigation
	case errors.As(err, &ae):
		return engine.CategoryAssertion
	default:
		// no handler, decode failures, disabled controls
		return engine.CategoryDispatch
	}
}
