// Package event invokes a node's registered handler with a simulated
// payload.
//
// Dispatch distinguishes a node that never registered the event from a
// handler whose decoder refused the payload. The harness needs both: a
// missing handler is always a failure, a refusal may be a deliberate
// suppression (see decode.Fail) that the navigation simulator treats as
// "do not intercept".
package event

import (
	"errors"
	"fmt"

	"github.com/roach88/teasim/internal/decode"
	"github.com/roach88/teasim/internal/ir"
	"github.com/roach88/teasim/internal/vdom"
)

// Standard event names.
const (
	Click  = "click"
	Input  = "input"
	Change = "change"
	Submit = "submit"
)

// NoHandlerError is returned when the node has no handler for the event.
type NoHandlerError struct {
	Event string
	Node  string // one-line description of the node
}

// Error implements the error interface.
func (e *NoHandlerError) Error() string {
	return fmt.Sprintf("%s has no handler for %q", e.Node, e.Event)
}

// DecodeFailureError is returned when the handler's decoder rejected the
// payload.
type DecodeFailureError struct {
	Event string
	Err   error
}

// Error implements the error interface.
func (e *DecodeFailureError) Error() string {
	return fmt.Sprintf("handler for %q failed to decode payload: %v", e.Event, e.Err)
}

// Unwrap returns the decode error.
func (e *DecodeFailureError) Unwrap() error {
	return e.Err
}

// Deliberate reports whether the decoder refused the payload on purpose.
func (e *DecodeFailureError) Deliberate() bool {
	return decode.IsDeliberate(e.Err)
}

// IsNoHandler reports whether err is a NoHandlerError.
func IsNoHandler(err error) bool {
	var nh *NoHandlerError
	return errors.As(err, &nh)
}

// IsDecodeFailure reports whether err is a DecodeFailureError.
func IsDecodeFailure(err error) bool {
	var df *DecodeFailureError
	return errors.As(err, &df)
}

// Dispatch runs the handler registered on node for name against payload.
func Dispatch[Msg any](node *vdom.Node[Msg], name string, payload ir.Value) (vdom.Response[Msg], error) {
	if node == nil || node.IsText() {
		return vdom.Response[Msg]{}, &NoHandlerError{Event: name, Node: vdom.Describe(node)}
	}
	h, ok := node.Handlers[name]
	if !ok {
		return vdom.Response[Msg]{}, &NoHandlerError{Event: name, Node: vdom.Describe(node)}
	}
	if payload == nil {
		payload = ir.Null{}
	}
	resp, err := decode.Run(h.Decoder, payload)
	if err != nil {
		return vdom.Response[Msg]{}, &DecodeFailureError{Event: name, Err: err}
	}
	return resp, nil
}

// Message dispatches and returns only the produced message.
func Message[Msg any](node *vdom.Node[Msg], name string, payload ir.Value) (Msg, error) {
	resp, err := Dispatch(node, name, payload)
	return resp.Message, err
}

// ClickOn simulates a plain click.
func ClickOn[Msg any](node *vdom.Node[Msg]) (Msg, error) {
	return Message(node, Click, vdom.ClickPayload())
}

// InputOn simulates typing text into a field.
func InputOn[Msg any](node *vdom.Node[Msg], text string) (Msg, error) {
	return Message(node, Input, vdom.InputPayload(text))
}

// CheckOn simulates toggling a checkbox.
func CheckOn[Msg any](node *vdom.Node[Msg], checked bool) (Msg, error) {
	return Message(node, Change, vdom.CheckPayload(checked))
}

// SelectOn simulates choosing an option value in a select.
func SelectOn[Msg any](node *vdom.Node[Msg], value string) (Msg, error) {
	return Message(node, Change, ir.Obj(ir.O("target", ir.Obj(ir.O("value", ir.String(value))))))
}
