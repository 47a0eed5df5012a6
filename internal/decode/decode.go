// Package decode turns raw ir payloads into typed values.
//
// A Decoder is a plain function value. Event handlers in the view store one
// per event name, and the harness calls it with the simulated payload exactly
// as a real event system would call it with a platform event. Decoders
// compose: Field and At descend into objects, Map/Map2/Map3 combine results,
// AndThen chooses the next decoder from a decoded value, and Fail lets a
// decoder deliberately refuse an input (used to suppress an event).
package decode

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/teasim/internal/ir"
)

// Decoder converts a payload into a T or reports why it could not.
type Decoder[T any] func(v ir.Value) (T, error)

// Error describes a decode failure and where in the payload it happened.
type Error struct {
	Path    []string // field names / indexes from the payload root
	Message string
	// Deliberate is true when the failure came from Fail rather than from a
	// shape mismatch.
	Deliberate bool
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Path) == 0 {
		return e.Message
	}
	return fmt.Sprintf("at %s: %s", strings.Join(e.Path, "."), e.Message)
}

// IsDeliberate reports whether err (or an error it wraps) is a Fail decoder
// refusing its input.
func IsDeliberate(err error) bool {
	var de *Error
	return errors.As(err, &de) && de.Deliberate
}

func mismatch(expected string, v ir.Value) error {
	return &Error{Message: fmt.Sprintf("expected %s but found %s", expected, ir.KindOf(v))}
}

// prefix pushes a path segment onto a decode error raised below it.
func prefix(segment string, err error) error {
	var de *Error
	if errors.As(err, &de) {
		return &Error{
			Path:       append([]string{segment}, de.Path...),
			Message:    de.Message,
			Deliberate: de.Deliberate,
		}
	}
	return &Error{Path: []string{segment}, Message: err.Error()}
}

// Run applies d to v. A nil decoder is an error, not a panic.
func Run[T any](d Decoder[T], v ir.Value) (T, error) {
	if d == nil {
		var zero T
		return zero, &Error{Message: "no decoder"}
	}
	return d(v)
}

// String decodes a string.
func String(v ir.Value) (string, error) {
	if s, ok := v.(ir.String); ok {
		return string(s), nil
	}
	return "", mismatch("a string", v)
}

// Int decodes an integer.
func Int(v ir.Value) (int64, error) {
	if n, ok := v.(ir.Int); ok {
		return int64(n), nil
	}
	return 0, mismatch("an int", v)
}

// Float decodes any number. Integers widen to float64.
func Float(v ir.Value) (float64, error) {
	switch n := v.(type) {
	case ir.Float:
		return float64(n), nil
	case ir.Int:
		return float64(n), nil
	}
	return 0, mismatch("a number", v)
}

// Bool decodes a boolean.
func Bool(v ir.Value) (bool, error) {
	if b, ok := v.(ir.Bool); ok {
		return bool(b), nil
	}
	return false, mismatch("a bool", v)
}

// Raw returns the payload unchanged.
func Raw(v ir.Value) (ir.Value, error) {
	if v == nil {
		return ir.Null{}, nil
	}
	return v, nil
}

// Succeed ignores the payload and yields value.
func Succeed[T any](value T) Decoder[T] {
	return func(ir.Value) (T, error) {
		return value, nil
	}
}

// Fail always refuses the payload. The resulting error is Deliberate.
func Fail[T any](message string) Decoder[T] {
	return func(ir.Value) (T, error) {
		var zero T
		return zero, &Error{Message: message, Deliberate: true}
	}
}

// Field decodes the named field of an object.
func Field[T any](name string, d Decoder[T]) Decoder[T] {
	return func(v ir.Value) (T, error) {
		var zero T
		obj, ok := v.(ir.Object)
		if !ok {
			return zero, mismatch(fmt.Sprintf("an object with field %q", name), v)
		}
		fv, ok := obj[name]
		if !ok {
			return zero, &Error{Message: fmt.Sprintf("expected an object with field %q", name)}
		}
		out, err := Run(d, fv)
		if err != nil {
			return zero, prefix(name, err)
		}
		return out, nil
	}
}

// At decodes a value nested under a path of field names.
func At[T any](path []string, d Decoder[T]) Decoder[T] {
	for i := len(path) - 1; i >= 0; i-- {
		d = Field(path[i], d)
	}
	return d
}

// Index decodes element i of an array.
func Index[T any](i int, d Decoder[T]) Decoder[T] {
	return func(v ir.Value) (T, error) {
		var zero T
		arr, ok := v.(ir.Array)
		if !ok {
			return zero, mismatch("an array", v)
		}
		if i < 0 || i >= len(arr) {
			return zero, &Error{Message: fmt.Sprintf("expected an array with index %d but length is %d", i, len(arr))}
		}
		out, err := Run(d, arr[i])
		if err != nil {
			return zero, prefix(fmt.Sprintf("[%d]", i), err)
		}
		return out, nil
	}
}

// List decodes every element of an array with d.
func List[T any](d Decoder[T]) Decoder[[]T] {
	return func(v ir.Value) ([]T, error) {
		arr, ok := v.(ir.Array)
		if !ok {
			return nil, mismatch("an array", v)
		}
		out := make([]T, len(arr))
		for i, elem := range arr {
			e, err := Run(d, elem)
			if err != nil {
				return nil, prefix(fmt.Sprintf("[%d]", i), err)
			}
			out[i] = e
		}
		return out, nil
	}
}

// Map transforms a decoded value.
func Map[A, T any](f func(A) T, d Decoder[A]) Decoder[T] {
	return func(v ir.Value) (T, error) {
		a, err := Run(d, v)
		if err != nil {
			var zero T
			return zero, err
		}
		return f(a), nil
	}
}

// Map2 combines two decoders run against the same payload.
func Map2[A, B, T any](f func(A, B) T, da Decoder[A], db Decoder[B]) Decoder[T] {
	return func(v ir.Value) (T, error) {
		var zero T
		a, err := Run(da, v)
		if err != nil {
			return zero, err
		}
		b, err := Run(db, v)
		if err != nil {
			return zero, err
		}
		return f(a, b), nil
	}
}

// Map3 combines three decoders run against the same payload.
func Map3[A, B, C, T any](f func(A, B, C) T, da Decoder[A], db Decoder[B], dc Decoder[C]) Decoder[T] {
	return func(v ir.Value) (T, error) {
		var zero T
		a, err := Run(da, v)
		if err != nil {
			return zero, err
		}
		b, err := Run(db, v)
		if err != nil {
			return zero, err
		}
		c, err := Run(dc, v)
		if err != nil {
			return zero, err
		}
		return f(a, b, c), nil
	}
}

// AndThen decodes an A, then picks the decoder for the rest from it.
func AndThen[A, T any](next func(A) Decoder[T], d Decoder[A]) Decoder[T] {
	return func(v ir.Value) (T, error) {
		a, err := Run(d, v)
		if err != nil {
			var zero T
			return zero, err
		}
		return Run(next(a), v)
	}
}

// OneOf tries each decoder in order and returns the first success.
func OneOf[T any](ds ...Decoder[T]) Decoder[T] {
	return func(v ir.Value) (T, error) {
		var zero T
		if len(ds) == 0 {
			return zero, &Error{Message: "OneOf given no decoders"}
		}
		msgs := make([]string, 0, len(ds))
		deliberate := true
		for _, d := range ds {
			out, err := Run(d, v)
			if err == nil {
				return out, nil
			}
			deliberate = deliberate && IsDeliberate(err)
			msgs = append(msgs, err.Error())
		}
		return zero, &Error{
			Message:    "all alternatives failed: " + strings.Join(msgs, "; "),
			Deliberate: deliberate,
		}
	}
}

// DecodeString parses raw as JSON and decodes the result with d.
func DecodeString[T any](d Decoder[T], raw string) (T, error) {
	v, err := ir.ParseString(raw)
	if err != nil {
		var zero T
		return zero, &Error{Message: err.Error()}
	}
	return Run(d, v)
}
