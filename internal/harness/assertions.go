package harness

import (
	"strings"

	m "github.com/launchdarkly/go-test-helpers/v2/matchers"

	"github.com/roach88/teasim/internal/query"
	"github.com/roach88/teasim/internal/vdom"
)

// test applies matcher to value and turns a mismatch into an
// AssertionError. The matcher's first description line becomes the message.
func test(matcher m.Matcher, value any) error {
	if pass, desc := matcher.Test(value); !pass {
		msg, detail, _ := strings.Cut(desc, "\n")
		return &AssertionError{Message: msg, Detail: detail}
	}
	return nil
}

// assertView checks matcher against the scoped view root.
func (h Harness[Model, Msg, Effect]) assertView(op string, matcher m.Matcher) Harness[Model, Msg, Effect] {
	return h.interact(op, func(h Harness[Model, Msg, Effect], root *vdom.Node[Msg]) (Harness[Model, Msg, Effect], error) {
		return h, test(matcher, root)
	})
}

// assertModel checks matcher against the model. Model and effect checks
// still work after a page change: the last model is well defined.
func (h Harness[Model, Msg, Effect]) assertModel(op string, matcher m.Matcher) Harness[Model, Msg, Effect] {
	if !h.machine.Running() {
		return h
	}
	if err := test(matcher, h.machine.Model()); err != nil {
		return h.fail(failure(op, err))
	}
	return h
}

func (h Harness[Model, Msg, Effect]) assertEffect(op string, matcher m.Matcher) Harness[Model, Msg, Effect] {
	if !h.machine.Running() {
		return h
	}
	if err := test(matcher, h.machine.LastEffect()); err != nil {
		return h.fail(failure(op, err))
	}
	return h
}

// ShouldHave checks that some node in scope matches every selector.
func (h Harness[Model, Msg, Effect]) ShouldHave(sels ...query.Selector) Harness[Model, Msg, Effect] {
	return h.assertView("shouldHave", query.Has(sels...))
}

// ShouldNotHave checks that no node in scope matches every selector.
func (h Harness[Model, Msg, Effect]) ShouldNotHave(sels ...query.Selector) Harness[Model, Msg, Effect] {
	return h.assertView("shouldNotHave", query.HasNot(sels...))
}

// ShouldHaveView checks matcher against the view root (a *vdom.Node[Msg]).
func (h Harness[Model, Msg, Effect]) ShouldHaveView(matcher m.Matcher) Harness[Model, Msg, Effect] {
	return h.assertView("shouldHaveView", matcher)
}

// ShouldHaveModel checks matcher against the current model.
func (h Harness[Model, Msg, Effect]) ShouldHaveModel(matcher m.Matcher) Harness[Model, Msg, Effect] {
	return h.assertModel("shouldHaveModel", matcher)
}

// ShouldHaveLastEffect checks matcher against the most recent effect.
func (h Harness[Model, Msg, Effect]) ShouldHaveLastEffect(matcher m.Matcher) Harness[Model, Msg, Effect] {
	return h.assertEffect("shouldHaveLastEffect", matcher)
}

// Done ends the chain. It returns the first failure, or nil.
func (h Harness[Model, Msg, Effect]) Done() error {
	if f := h.machine.Failure(); f != nil {
		return f
	}
	return nil
}

// ExpectModel ends the chain with a check of the model.
func (h Harness[Model, Msg, Effect]) ExpectModel(matcher m.Matcher) error {
	return h.assertModel("expectModel", matcher).Done()
}

// ExpectView ends the chain with a check of the view root.
func (h Harness[Model, Msg, Effect]) ExpectView(matcher m.Matcher) error {
	return h.assertView("expectView", matcher).Done()
}

// ExpectViewHas ends the chain with ShouldHave.
func (h Harness[Model, Msg, Effect]) ExpectViewHas(sels ...query.Selector) error {
	return h.assertView("expectViewHas", query.Has(sels...)).Done()
}

// ExpectViewHasNot ends the chain with ShouldNotHave.
func (h Harness[Model, Msg, Effect]) ExpectViewHasNot(sels ...query.Selector) error {
	return h.assertView("expectViewHasNot", query.HasNot(sels...)).Done()
}

// ExpectLastEffect ends the chain with a check of the most recent effect.
func (h Harness[Model, Msg, Effect]) ExpectLastEffect(matcher m.Matcher) error {
	return h.assertEffect("expectLastEffect", matcher).Done()
}

// Result summarizes the run so far.
func (h Harness[Model, Msg, Effect]) Result() Result {
	return newResult(h.machine.Trace(), h.machine.Failure())
}
