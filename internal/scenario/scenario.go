// Package scenario loads YAML scenario files and runs them against programs
// registered by name.
//
// A scenario names a program, how to start it (flags, start URL or base
// URL), a list of interaction and assertion steps, and what the outcome
// should be. Files are checked against an embedded CUE schema before they
// are decoded, so typos and malformed steps are reported with the line they
// appear on.
package scenario

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/teasim/internal/ir"
)

// Scenario is one simulated run and its expected outcome.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario checks.
	Description string `yaml:"description,omitempty"`

	// Program is the registry name of the program to drive.
	Program string `yaml:"program"`

	// Flags is raw JSON handed to the program's flags decoder.
	Flags string `yaml:"flags,omitempty"`

	// URL starts a program with navigation at this location.
	URL string `yaml:"url,omitempty"`

	// BaseURL resolves links for programs started without navigation.
	BaseURL string `yaml:"base_url,omitempty"`

	Steps  []Step `yaml:"steps"`
	Expect Expect `yaml:"expect,omitempty"`

	// File is the path the scenario was loaded from.
	File string `yaml:"-"`
}

// Step is one operation. Exactly one field is set.
type Step struct {
	Update               *Value        `yaml:"update,omitempty"`
	ClickButton          string        `yaml:"click_button,omitempty"`
	FillIn               *FillIn       `yaml:"fill_in,omitempty"`
	FillInTextarea       *string       `yaml:"fill_in_textarea,omitempty"`
	Check                *Check        `yaml:"check,omitempty"`
	SelectOption         *SelectOption `yaml:"select_option,omitempty"`
	Simulate             *Simulate     `yaml:"simulate,omitempty"`
	ClickLink            *ClickLink    `yaml:"click_link,omitempty"`
	RouteChange          string        `yaml:"route_change,omitempty"`
	Within               *Within       `yaml:"within,omitempty"`
	ShouldHave           *SelectorSpec `yaml:"should_have,omitempty"`
	ShouldNotHave        *SelectorSpec `yaml:"should_not_have,omitempty"`
	ShouldHaveModel      *Value        `yaml:"should_have_model,omitempty"`
	ShouldHaveLastEffect *Value        `yaml:"should_have_last_effect,omitempty"`
	Fail                 *ExplicitFail `yaml:"fail,omitempty"`
}

// FillIn types text into a labeled field.
type FillIn struct {
	Label string `yaml:"label"`
	Text  string `yaml:"text"`
}

// Check sets a labeled checkbox.
type Check struct {
	Label   string `yaml:"label"`
	Checked bool   `yaml:"checked"`
}

// SelectOption picks an option of a labeled select.
type SelectOption struct {
	Label  string `yaml:"label"`
	Option string `yaml:"option"`
}

// Simulate dispatches a raw event on the node target selects.
type Simulate struct {
	Event   string        `yaml:"event"`
	Payload *Value        `yaml:"payload,omitempty"`
	Target  *SelectorSpec `yaml:"target,omitempty"`
}

// ClickLink clicks a labeled link and checks its href.
type ClickLink struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}

// Within runs nested steps scoped to one node.
type Within struct {
	Selector SelectorSpec `yaml:"selector"`
	Steps    []Step       `yaml:"steps"`
}

// ExplicitFail ends the run with a failure of the scenario's choosing.
type ExplicitFail struct {
	Category string `yaml:"category"`
	Message  string `yaml:"message"`
}

// Expect is checked once all steps ran. Model, LastEffect, ViewHas,
// ViewHasNot, PageChange and BrowserURL are assertions appended to the run;
// the rest compare the final result.
type Expect struct {
	// Pass defaults to true.
	Pass *bool `yaml:"pass,omitempty"`

	// Category and Failure describe the expected failure. Failure is a
	// substring of the reason.
	Category string `yaml:"category,omitempty"`
	Failure  string `yaml:"failure,omitempty"`

	Model      *Value         `yaml:"model,omitempty"`
	LastEffect *Value         `yaml:"last_effect,omitempty"`
	ViewHas    []SelectorSpec `yaml:"view_has,omitempty"`
	ViewHasNot []SelectorSpec `yaml:"view_has_not,omitempty"`
	PageChange string         `yaml:"page_change,omitempty"`
	BrowserURL string         `yaml:"browser_url,omitempty"`

	// Digest pins the whole trace.
	Digest string `yaml:"digest,omitempty"`
}

// WantPass reports whether the run is expected to pass.
func (e Expect) WantPass() bool {
	return e.Pass == nil || *e.Pass
}

// Value is a YAML value carried into a run as an ir.Value.
type Value struct {
	ir.Value
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *Value) UnmarshalYAML(n *yaml.Node) error {
	var raw any
	if err := n.Decode(&raw); err != nil {
		return err
	}
	val, err := ir.FromGo(raw)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	v.Value = val
	return nil
}

// Load reads, schema-checks and decodes one scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	sc, err := Parse(path, data)
	if err != nil {
		return nil, err
	}
	sc.File = path
	return sc, nil
}

// Parse decodes a scenario from YAML. filename is used in error positions.
func Parse(filename string, data []byte) (*Scenario, error) {
	if err := checkSchema(filename, data); err != nil {
		return nil, err
	}

	var sc Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := Validate(&sc); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &sc, nil
}

// Files returns the .yaml and .yml files in dir, sorted by name.
func Files(dir string) ([]string, error) {
	var paths []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)
	return paths, nil
}

// LoadDir loads every scenario file in dir, sorted by file name.
// Duplicate scenario names are an error.
func LoadDir(dir string) ([]*Scenario, error) {
	paths, err := Files(dir)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]string, len(paths))
	out := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		sc, err := Load(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		if prev, dup := seen[sc.Name]; dup {
			return nil, fmt.Errorf("%s: scenario %q already defined in %s", p, sc.Name, prev)
		}
		seen[sc.Name] = p
		out = append(out, sc)
	}
	return out, nil
}

// Validate checks what the schema cannot: one operation per step and
// mutually exclusive start options. Flags need a url or no start option,
// since a base_url start has no flags constructor.
func Validate(sc *Scenario) error {
	if sc.Name == "" {
		return fmt.Errorf("name is required")
	}
	if sc.Program == "" {
		return fmt.Errorf("program is required")
	}
	if sc.URL != "" && sc.BaseURL != "" {
		return fmt.Errorf("url and base_url are exclusive")
	}
	if sc.Flags != "" && sc.BaseURL != "" {
		return fmt.Errorf("flags cannot be combined with base_url")
	}
	if !sc.Expect.WantPass() && sc.Expect.Category == "" && sc.Expect.Failure == "" {
		return fmt.Errorf("expect: a failing scenario needs a category or failure")
	}
	return validateSteps("steps", sc.Steps)
}

func validateSteps(path string, steps []Step) error {
	for i, s := range steps {
		at := fmt.Sprintf("%s[%d]", path, i)
		if n := s.operations(); n != 1 {
			return fmt.Errorf("%s: expected exactly one operation, found %d", at, n)
		}
		if s.Within != nil {
			if s.Within.Selector.empty() {
				return fmt.Errorf("%s.within: selector is required", at)
			}
			if err := validateSteps(at+".within.steps", s.Within.Steps); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s Step) operations() int {
	n := 0
	for _, set := range []bool{
		s.Update != nil,
		s.ClickButton != "",
		s.FillIn != nil,
		s.FillInTextarea != nil,
		s.Check != nil,
		s.SelectOption != nil,
		s.Simulate != nil,
		s.ClickLink != nil,
		s.RouteChange != "",
		s.Within != nil,
		s.ShouldHave != nil,
		s.ShouldNotHave != nil,
		s.ShouldHaveModel != nil,
		s.ShouldHaveLastEffect != nil,
		s.Fail != nil,
	} {
		if set {
			n++
		}
	}
	return n
}
