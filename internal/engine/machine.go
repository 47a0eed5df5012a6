package engine

import (
	"fmt"
	"slices"

	"github.com/roach88/teasim/internal/nav"
	"github.com/roach88/teasim/internal/vdom"
)

// Machine is the state of one simulated run. The zero value is not usable;
// build one with Start or Failed.
type Machine[Model, Msg, Effect any] struct {
	update func(Msg, Model) (Model, Effect)
	view   func(Model) *vdom.Node[Msg]

	model    Model
	effect   Effect
	location *nav.Location
	page     *nav.Location

	failure *Failure
	trace   []Step
	seq     int64
}

// Start runs init and returns a running machine. A panic inside init is
// converted into a failed machine.
func Start[Flags, Model, Msg, Effect any](p Program[Flags, Model, Msg, Effect], flags Flags, loc *nav.Location) (m Machine[Model, Msg, Effect]) {
	m = Machine[Model, Msg, Effect]{update: p.Update, view: p.View}
	if p.Init == nil || p.Update == nil || p.View == nil {
		return m.Fail(Failf(CategoryConstruction, "init", "program must define Init, Update and View"))
	}
	if loc != nil {
		l := *loc
		m.location = &l
	}

	defer func() {
		if r := recover(); r != nil {
			m = m.Fail(Failf(CategoryProgram, "init", "panic: %v", r))
		}
	}()
	m.model, m.effect = p.Init(flags, m.location)
	return m.record(StepInit, Format(m.model))
}

// Failed returns a machine that failed before init could run, such as when
// flags could not be decoded.
func Failed[Model, Msg, Effect any](f *Failure) Machine[Model, Msg, Effect] {
	return Machine[Model, Msg, Effect]{}.Fail(f)
}

// record appends a step. The trace is clipped first so two machines derived
// from the same parent never share a backing array.
func (m Machine[Model, Msg, Effect]) record(kind StepKind, detail string) Machine[Model, Msg, Effect] {
	m.seq++
	m.trace = append(slices.Clip(m.trace), Step{Seq: m.seq, Kind: kind, Detail: detail})
	return m
}

// Running reports whether the machine has not failed.
func (m Machine[Model, Msg, Effect]) Running() bool {
	return m.failure == nil
}

// Failure returns the stored failure, or nil while running.
func (m Machine[Model, Msg, Effect]) Failure() *Failure {
	return m.failure
}

// Model returns the current model. Meaningless once failed during init.
func (m Machine[Model, Msg, Effect]) Model() Model {
	return m.model
}

// LastEffect returns the effect produced by the most recent init or update.
func (m Machine[Model, Msg, Effect]) LastEffect() Effect {
	return m.effect
}

// Location returns the simulated location, if the program has one.
func (m Machine[Model, Msg, Effect]) Location() (nav.Location, bool) {
	if m.location == nil {
		return nav.Location{}, false
	}
	return *m.location, true
}

// PageChange returns the URL of the full page load the run ended with.
func (m Machine[Model, Msg, Effect]) PageChange() (nav.Location, bool) {
	if m.page == nil {
		return nav.Location{}, false
	}
	return *m.page, true
}

// Trace returns a copy of the recorded steps.
func (m Machine[Model, Msg, Effect]) Trace() []Step {
	return slices.Clone(m.trace)
}

// View renders the current model. A panic inside view is returned as a
// failure.
func (m Machine[Model, Msg, Effect]) View() (root *vdom.Node[Msg], err error) {
	if m.view == nil {
		return nil, Failf(CategoryConstruction, "view", "program has no view")
	}
	defer func() {
		if r := recover(); r != nil {
			root, err = nil, Failf(CategoryProgram, "view", "panic: %v", r)
		}
	}()
	return m.view(m.model), nil
}

// Apply folds msg through update. From Failed it is a no-op.
func (m Machine[Model, Msg, Effect]) Apply(msg Msg) (next Machine[Model, Msg, Effect]) {
	if !m.Running() {
		return m
	}
	defer func() {
		if r := recover(); r != nil {
			next = m.Fail(Failf(CategoryProgram, "update", "panic on %s: %v", Format(msg), r))
		}
	}()
	next = m
	next.model, next.effect = m.update(msg, m.model)
	return next.record(StepUpdate, Format(msg))
}

// Fail moves the machine to Failed. If it has already failed the original
// failure is kept.
func (m Machine[Model, Msg, Effect]) Fail(f *Failure) Machine[Model, Msg, Effect] {
	if !m.Running() {
		return m
	}
	if f == nil {
		f = Failf(CategoryExplicit, "fail", "failed without a reason")
	}
	m.failure = f
	return m.record(StepFailure, f.Reason())
}

// Navigate replaces the simulated location. It does not dispatch anything;
// the caller decides whether the program hears about the change.
func (m Machine[Model, Msg, Effect]) Navigate(loc nav.Location) Machine[Model, Msg, Effect] {
	if !m.Running() {
		return m
	}
	m.location = &loc
	return m.record(StepURLChange, loc.Full)
}

// ChangePage records a full page load. The run cannot continue after it;
// the harness rejects further interactions.
func (m Machine[Model, Msg, Effect]) ChangePage(loc nav.Location) Machine[Model, Msg, Effect] {
	if !m.Running() {
		return m
	}
	m.page = &loc
	return m.record(StepPageChange, loc.Full)
}

// String summarizes the machine state for logs.
func (m Machine[Model, Msg, Effect]) String() string {
	if !m.Running() {
		return fmt.Sprintf("Failed{%s}", m.failure.Reason())
	}
	return fmt.Sprintf("Running{model=%s effect=%s}", Format(m.model), Format(m.effect))
}
