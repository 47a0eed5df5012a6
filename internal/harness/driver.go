package harness

import (
	"fmt"

	"github.com/roach88/teasim/internal/decode"
	"github.com/roach88/teasim/internal/engine"
	"github.com/roach88/teasim/internal/ir"
	"github.com/roach88/teasim/internal/query"
	"github.com/roach88/teasim/internal/vdom"
)

// Driver is a Harness with its type parameters erased, so code that only
// knows a program by name (the scenario runner) can drive it. Messages
// arrive as ir values and are decoded by the program's message decoder;
// model and effect checks compare canonical JSON.
type Driver interface {
	Update(msg ir.Value) Driver
	ClickButton(label string) Driver
	FillIn(label, text string) Driver
	FillInTextarea(text string) Driver
	Check(label string, checked bool) Driver
	SelectOption(label, option string) Driver
	SimulateDOMEvent(eventName string, payload ir.Value, sels ...query.Selector) Driver
	ClickLink(label, href string) Driver
	RouteChange(url string) Driver
	Within(sels []query.Selector, ops func(Driver) Driver) Driver
	Fail(category, message string) Driver
	ShouldHave(sels ...query.Selector) Driver
	ShouldNotHave(sels ...query.Selector) Driver
	ShouldHaveModel(want ir.Value) Driver
	ShouldHaveLastEffect(want ir.Value) Driver
	ShouldHavePageChange(url string) Driver
	ShouldHaveBrowserURL(url string) Driver
	View() (string, error)
	Result() Result
}

// Erase wraps h as a Driver. msgs decodes the messages passed to Update.
func Erase[Model, Msg, Effect any](h Harness[Model, Msg, Effect], msgs decode.Decoder[Msg]) Driver {
	return driver[Model, Msg, Effect]{h: h, msgs: msgs}
}

type driver[Model, Msg, Effect any] struct {
	h    Harness[Model, Msg, Effect]
	msgs decode.Decoder[Msg]
}

func (d driver[Model, Msg, Effect]) with(h Harness[Model, Msg, Effect]) Driver {
	d.h = h
	return d
}

func (d driver[Model, Msg, Effect]) Update(raw ir.Value) Driver {
	if !d.h.machine.Running() {
		return d
	}
	msg, err := decode.Run(d.msgs, raw)
	if err != nil {
		return d.with(d.h.fail(engine.NewFailure(engine.CategoryDispatch, "update",
			fmt.Errorf("message %s: %w", ir.Render(raw), err))))
	}
	return d.with(d.h.Update(msg))
}

func (d driver[Model, Msg, Effect]) ClickButton(label string) Driver {
	return d.with(d.h.ClickButton(label))
}

func (d driver[Model, Msg, Effect]) FillIn(label, text string) Driver {
	return d.with(d.h.FillIn(label, text))
}

func (d driver[Model, Msg, Effect]) FillInTextarea(text string) Driver {
	return d.with(d.h.FillInTextarea(text))
}

func (d driver[Model, Msg, Effect]) Check(label string, checked bool) Driver {
	return d.with(d.h.Check(label, checked))
}

func (d driver[Model, Msg, Effect]) SelectOption(label, option string) Driver {
	return d.with(d.h.SelectOption(label, option))
}

func (d driver[Model, Msg, Effect]) SimulateDOMEvent(eventName string, payload ir.Value, sels ...query.Selector) Driver {
	return d.with(d.h.SimulateDOMEvent(eventName, payload, sels...))
}

func (d driver[Model, Msg, Effect]) ClickLink(label, href string) Driver {
	return d.with(d.h.ClickLink(label, href))
}

func (d driver[Model, Msg, Effect]) RouteChange(url string) Driver {
	return d.with(d.h.RouteChange(url))
}

func (d driver[Model, Msg, Effect]) Within(sels []query.Selector, ops func(Driver) Driver) Driver {
	return d.with(d.h.Within(sels, func(inner Harness[Model, Msg, Effect]) Harness[Model, Msg, Effect] {
		out, ok := ops(d.with(inner)).(driver[Model, Msg, Effect])
		if !ok {
			return inner.fail(engine.Failf(engine.CategoryExplicit, "within", "nested operations returned a foreign driver"))
		}
		return out.h
	}))
}

func (d driver[Model, Msg, Effect]) Fail(category, message string) Driver {
	return d.with(d.h.Fail(category, message))
}

func (d driver[Model, Msg, Effect]) ShouldHave(sels ...query.Selector) Driver {
	return d.with(d.h.ShouldHave(sels...))
}

func (d driver[Model, Msg, Effect]) ShouldNotHave(sels ...query.Selector) Driver {
	return d.with(d.h.ShouldNotHave(sels...))
}

func (d driver[Model, Msg, Effect]) ShouldHaveModel(want ir.Value) Driver {
	return d.with(d.h.assertModel("shouldHaveModel", EqualValue(want)))
}

func (d driver[Model, Msg, Effect]) ShouldHaveLastEffect(want ir.Value) Driver {
	return d.with(d.h.assertEffect("shouldHaveLastEffect", EqualValue(want)))
}

func (d driver[Model, Msg, Effect]) ShouldHavePageChange(url string) Driver {
	return d.with(d.h.expectPageChange(url))
}

func (d driver[Model, Msg, Effect]) ShouldHaveBrowserURL(url string) Driver {
	return d.with(d.h.expectBrowserURL(url))
}

func (d driver[Model, Msg, Effect]) View() (string, error) {
	root, err := d.h.root()
	if err != nil {
		return "", err
	}
	return vdom.Render(root), nil
}

func (d driver[Model, Msg, Effect]) Result() Result {
	return d.h.Result()
}
