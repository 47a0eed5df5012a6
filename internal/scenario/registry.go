package scenario

import (
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/roach88/teasim/internal/decode"
	"github.com/roach88/teasim/internal/engine"
	"github.com/roach88/teasim/internal/harness"
)

// Setup is how a scenario asks for its harness to be built.
type Setup struct {
	Flags   string // raw JSON, decoded by the program's flags decoder
	URL     string // start URL; requires a program with navigation
	BaseURL string // link resolution only
	Logger  *slog.Logger
}

// Factory builds a driver for one scenario.
type Factory func(Setup) (harness.Driver, error)

// Registry maps program names to factories.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a program. Registering a name twice panics.
func (r *Registry) Register(name string, f Factory) {
	if _, dup := r.factories[name]; dup {
		panic(fmt.Sprintf("scenario: program %q registered twice", name))
	}
	r.factories[name] = f
}

// Lookup returns the factory registered under name.
func (r *Registry) Lookup(name string) (Factory, bool) {
	f, ok := r.factories[name]
	return f, ok
}

// Names returns the registered program names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for n := range r.factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Definition describes a program well enough to build a harness for any
// Setup.
type Definition[Flags, Model, Msg, Effect any] struct {
	Program engine.Program[Flags, Model, Msg, Effect]

	// Navigation is required for scenarios with a start URL.
	Navigation *engine.Navigation[Msg]

	// Flags decodes Setup.Flags. Required for scenarios with flags.
	Flags decode.Decoder[Flags]

	// Messages decodes the values of update steps.
	Messages decode.Decoder[Msg]
}

// Drive turns a definition into a factory that picks the harness
// constructor matching the setup.
func Drive[Flags, Model, Msg, Effect any](def Definition[Flags, Model, Msg, Effect]) Factory {
	return func(s Setup) (harness.Driver, error) {
		logger := s.Logger
		if logger == nil {
			logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		}
		opts := []harness.Option{harness.WithLogger(logger)}

		if s.Flags != "" && def.Flags == nil {
			return nil, fmt.Errorf("program takes no flags")
		}
		if s.URL != "" && def.Navigation == nil {
			return nil, fmt.Errorf("program has no navigation; use base_url instead of url")
		}
		if s.URL != "" && s.BaseURL != "" {
			return nil, fmt.Errorf("url and base_url are exclusive")
		}
		if s.Flags != "" && s.BaseURL != "" {
			return nil, fmt.Errorf("flags cannot be combined with base_url")
		}

		var h harness.Harness[Model, Msg, Effect]
		switch {
		case s.URL != "" && s.Flags != "":
			h = harness.CreateWithNavigationAndJSONStringFlags(def.Program, *def.Navigation, s.URL, def.Flags, s.Flags, opts...)
		case s.URL != "":
			h = harness.CreateWithNavigation(def.Program, *def.Navigation, s.URL, opts...)
		case s.BaseURL != "":
			h = harness.CreateWithBaseURL(def.Program, s.BaseURL, opts...)
		case s.Flags != "":
			h = harness.CreateWithJSONStringFlags(def.Program, def.Flags, s.Flags, opts...)
		default:
			h = harness.Create(def.Program, opts...)
		}
		return harness.Erase(h, def.Messages), nil
	}
}
