package engine

import (
	"errors"
	"fmt"
	"strings"
)

// Category classifies why a run failed.
type Category string

const (
	// CategoryConstruction covers bad flags and unparsable start URLs.
	CategoryConstruction Category = "construction"

	// CategoryQuery covers selectors matching zero or several nodes.
	CategoryQuery Category = "query"

	// CategoryDispatch covers missing handlers and decode failures.
	CategoryDispatch Category = "dispatch"

	// CategoryNavigation covers href mismatches, missing link interception
	// and page change mismatches.
	CategoryNavigation Category = "navigation"

	// CategoryAssertion covers model, view and effect predicates that did
	// not hold.
	CategoryAssertion Category = "assertion"

	// CategoryExplicit is a failure requested by the test itself.
	CategoryExplicit Category = "explicit"

	// CategoryProgram is a panic raised by the program's own init, update
	// or view.
	CategoryProgram Category = "program"
)

// Failure is the terminal state of a machine.
type Failure struct {
	// Category classifies the failure.
	Category Category

	// Op names the operation that failed, for example "clickButton".
	// It is the prefix of Reason.
	Op string

	// Message is a one-line human-readable description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Reason renders "<op>: <message>". When no operation is recorded the
// category stands in for it.
func (f *Failure) Reason() string {
	prefix := f.Op
	if prefix == "" {
		prefix = string(f.Category)
	}
	return fmt.Sprintf("%s: %s", prefix, f.Message)
}

// Error implements the error interface.
func (f *Failure) Error() string {
	return f.Reason()
}

// Unwrap returns the underlying error.
func (f *Failure) Unwrap() error {
	return f.Err
}

// NewFailure wraps err as a failure of op. Multi-line error text is folded
// onto one line; err keeps the original.
func NewFailure(category Category, op string, err error) *Failure {
	return &Failure{
		Category: category,
		Op:       op,
		Message:  OneLine(err.Error()),
		Err:      err,
	}
}

// Failf builds a failure from a format string.
func Failf(category Category, op, format string, args ...any) *Failure {
	return &Failure{
		Category: category,
		Op:       op,
		Message:  OneLine(fmt.Sprintf(format, args...)),
	}
}

// OneLine joins the non-blank lines of s with single spaces.
func OneLine(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	return strings.Join(strings.Fields(s), " ")
}

// AsFailure extracts a Failure from err.
// Uses errors.As to handle wrapped errors.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// IsCategory returns true if err is a Failure of the given category.
func IsCategory(err error, category Category) bool {
	f, ok := AsFailure(err)
	return ok && f.Category == category
}
