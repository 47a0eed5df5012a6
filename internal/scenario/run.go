package scenario

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/roach88/teasim/internal/harness"
	"github.com/roach88/teasim/internal/ir"
)

// Report is the outcome of running one scenario.
type Report struct {
	Scenario string         `json:"scenario"`
	Program  string         `json:"program"`
	File     string         `json:"file,omitempty"`
	Result   harness.Result `json:"result"`

	// OK is true when the result matched every expectation.
	OK bool `json:"ok"`

	// Problems lists each expectation the result missed.
	Problems []string `json:"problems,omitempty"`
}

// Run drives the scenario's program through its steps and compares the
// result with the scenario's expectations.
func Run(reg *Registry, sc *Scenario, logger *slog.Logger) Report {
	rep := Report{Scenario: sc.Name, Program: sc.Program, File: sc.File}

	factory, ok := reg.Lookup(sc.Program)
	if !ok {
		rep.Problems = []string{fmt.Sprintf("unknown program %q (registered: %s)",
			sc.Program, strings.Join(reg.Names(), ", "))}
		return rep
	}
	if logger != nil {
		logger = logger.With("scenario", sc.Name)
	}
	d, err := factory(Setup{Flags: sc.Flags, URL: sc.URL, BaseURL: sc.BaseURL, Logger: logger})
	if err != nil {
		rep.Problems = []string{err.Error()}
		return rep
	}

	d = apply(d, sc.Steps)
	d = expectations(d, sc.Expect)
	rep.Result = d.Result()
	rep.Problems = compare(sc.Expect, rep.Result)
	rep.OK = len(rep.Problems) == 0
	return rep
}

// RunAll runs scenarios in order.
func RunAll(reg *Registry, scenarios []*Scenario, logger *slog.Logger) []Report {
	out := make([]Report, len(scenarios))
	for i, sc := range scenarios {
		out[i] = Run(reg, sc, logger)
	}
	return out
}

func apply(d harness.Driver, steps []Step) harness.Driver {
	for _, s := range steps {
		d = step(d, s)
	}
	return d
}

func step(d harness.Driver, s Step) harness.Driver {
	switch {
	case s.Update != nil:
		return d.Update(s.Update.Value)
	case s.ClickButton != "":
		return d.ClickButton(s.ClickButton)
	case s.FillIn != nil:
		return d.FillIn(s.FillIn.Label, s.FillIn.Text)
	case s.FillInTextarea != nil:
		return d.FillInTextarea(*s.FillInTextarea)
	case s.Check != nil:
		return d.Check(s.Check.Label, s.Check.Checked)
	case s.SelectOption != nil:
		return d.SelectOption(s.SelectOption.Label, s.SelectOption.Option)
	case s.Simulate != nil:
		var payload ir.Value = ir.Null{}
		if s.Simulate.Payload != nil {
			payload = s.Simulate.Payload.Value
		}
		var target SelectorSpec
		if s.Simulate.Target != nil {
			target = *s.Simulate.Target
		}
		return d.SimulateDOMEvent(s.Simulate.Event, payload, target.Selectors()...)
	case s.ClickLink != nil:
		return d.ClickLink(s.ClickLink.Label, s.ClickLink.Href)
	case s.RouteChange != "":
		return d.RouteChange(s.RouteChange)
	case s.Within != nil:
		nested := s.Within.Steps
		return d.Within(s.Within.Selector.Selectors(), func(inner harness.Driver) harness.Driver {
			return apply(inner, nested)
		})
	case s.ShouldHave != nil:
		return d.ShouldHave(s.ShouldHave.Selectors()...)
	case s.ShouldNotHave != nil:
		return d.ShouldNotHave(s.ShouldNotHave.Selectors()...)
	case s.ShouldHaveModel != nil:
		return d.ShouldHaveModel(s.ShouldHaveModel.Value)
	case s.ShouldHaveLastEffect != nil:
		return d.ShouldHaveLastEffect(s.ShouldHaveLastEffect.Value)
	case s.Fail != nil:
		return d.Fail(s.Fail.Category, s.Fail.Message)
	}
	return d
}

func expectations(d harness.Driver, e Expect) harness.Driver {
	for _, sel := range e.ViewHas {
		d = d.ShouldHave(sel.Selectors()...)
	}
	for _, sel := range e.ViewHasNot {
		d = d.ShouldNotHave(sel.Selectors()...)
	}
	if e.Model != nil {
		d = d.ShouldHaveModel(e.Model.Value)
	}
	if e.LastEffect != nil {
		d = d.ShouldHaveLastEffect(e.LastEffect.Value)
	}
	if e.PageChange != "" {
		d = d.ShouldHavePageChange(e.PageChange)
	}
	if e.BrowserURL != "" {
		d = d.ShouldHaveBrowserURL(e.BrowserURL)
	}
	return d
}

func compare(e Expect, r harness.Result) []string {
	var problems []string
	switch want := e.WantPass(); {
	case want && !r.Pass:
		problems = append(problems, fmt.Sprintf("expected the run to pass, but it failed: %s", r.Failure))
	case !want && r.Pass:
		problems = append(problems, "expected the run to fail, but it passed")
	}
	if e.Category != "" && !r.Pass && r.Category != e.Category {
		problems = append(problems, fmt.Sprintf("expected failure category %s, got %s", e.Category, r.Category))
	}
	if e.Failure != "" && !r.Pass && !strings.Contains(r.Failure, e.Failure) {
		problems = append(problems, fmt.Sprintf("expected the failure to mention %q, got %q", e.Failure, r.Failure))
	}
	if e.Digest != "" && r.Digest != e.Digest {
		problems = append(problems, fmt.Sprintf("expected trace digest %s, got %s", e.Digest, r.Digest))
	}
	return problems
}
