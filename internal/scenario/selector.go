package scenario

import (
	"github.com/roach88/teasim/internal/harness"
	"github.com/roach88/teasim/internal/query"
)

// SelectorSpec is a node query written in a scenario. Every set field must
// hold for a node to match.
type SelectorSpec struct {
	Tag       string         `yaml:"tag,omitempty"`
	Text      string         `yaml:"text,omitempty"`
	ExactText string         `yaml:"exact_text,omitempty"`
	ID        string         `yaml:"id,omitempty"`
	Class     string         `yaml:"class,omitempty"`
	Button    string         `yaml:"button,omitempty"` // a button labeled this
	Link      string         `yaml:"link,omitempty"`   // a link labeled this
	Handling  string         `yaml:"handling,omitempty"`
	Attribute *AttributeSpec `yaml:"attribute,omitempty"`
}

// AttributeSpec matches an attribute. Without a value, presence is enough.
type AttributeSpec struct {
	Name  string  `yaml:"name"`
	Value *string `yaml:"value,omitempty"`
}

func (s SelectorSpec) empty() bool {
	return len(s.Selectors()) == 0
}

// Selectors converts the fields that are set into query selectors, in field order.
func (s SelectorSpec) Selectors() []query.Selector {
	var out []query.Selector
	if s.Tag != "" {
		out = append(out, query.Tag(s.Tag))
	}
	if s.Text != "" {
		out = append(out, query.Text(s.Text))
	}
	if s.ExactText != "" {
		out = append(out, query.ExactText(s.ExactText))
	}
	if s.ID != "" {
		out = append(out, query.ID(s.ID))
	}
	if s.Class != "" {
		out = append(out, query.Class(s.Class))
	}
	if s.Button != "" {
		out = append(out, harness.ButtonLabeled(s.Button))
	}
	if s.Link != "" {
		out = append(out, harness.LinkLabeled(s.Link))
	}
	if s.Handling != "" {
		out = append(out, query.Handling(s.Handling))
	}
	if a := s.Attribute; a != nil {
		if a.Value != nil {
			out = append(out, query.Attribute(a.Name, *a.Value))
		} else {
			out = append(out, query.HasAttribute(a.Name))
		}
	}
	return out
}
