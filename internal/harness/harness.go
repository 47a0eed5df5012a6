package harness

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/roach88/teasim/internal/decode"
	"github.com/roach88/teasim/internal/engine"
	"github.com/roach88/teasim/internal/nav"
	"github.com/roach88/teasim/internal/query"
	"github.com/roach88/teasim/internal/vdom"
)

// Harness is one simulated run of a program.
type Harness[Model, Msg, Effect any] struct {
	machine    engine.Machine[Model, Msg, Effect]
	navigation *engine.Navigation[Msg]
	scope      [][]query.Selector
	logger     *slog.Logger
}

// Option configures a harness at construction.
type Option func(*config)

type config struct {
	logger *slog.Logger
}

// WithLogger sends a debug record per operation and a warning on the first
// failure to logger. By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// setup describes how init is invoked. Every constructor fills one in and
// hands it to start.
type setup[Flags, Msg any] struct {
	op         string
	flags      func() (Flags, error)
	startURL   string
	baseURL    string
	navigation *engine.Navigation[Msg]

	// hasStartURL and hasBaseURL mark constructors that take the URL, so an
	// empty string fails construction instead of meaning "no URL".
	hasStartURL bool
	hasBaseURL  bool
}

func start[Flags, Model, Msg, Effect any](p engine.Program[Flags, Model, Msg, Effect], s setup[Flags, Msg], opts []Option) Harness[Model, Msg, Effect] {
	cfg := config{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&cfg)
	}
	h := Harness[Model, Msg, Effect]{
		navigation: s.navigation,
		logger:     cfg.logger.With("harness", s.op),
	}

	constructionFailure := func(err error) Harness[Model, Msg, Effect] {
		h.machine = engine.Failed[Model, Msg, Effect](engine.NewFailure(engine.CategoryConstruction, s.op, err))
		h.logger.Warn("construction failed", "reason", h.machine.Failure().Reason())
		return h
	}

	var flags Flags
	if s.flags != nil {
		var err error
		if flags, err = s.flags(); err != nil {
			return constructionFailure(fmt.Errorf("could not decode flags: %w", err))
		}
	}

	var startLoc *nav.Location
	if s.hasStartURL {
		if s.startURL == "" {
			return constructionFailure(fmt.Errorf("start URL is empty"))
		}
		loc, err := nav.Parse(s.startURL)
		if err != nil {
			return constructionFailure(err)
		}
		startLoc = &loc
	}
	if s.navigation != nil && s.navigation.OnURLChange == nil {
		return constructionFailure(fmt.Errorf("navigation requires OnURLChange"))
	}

	h.machine = engine.Start(p, flags, startLoc)

	if s.hasBaseURL {
		if s.baseURL == "" {
			return constructionFailure(fmt.Errorf("base URL is empty"))
		}
		base, err := nav.Parse(s.baseURL)
		if err != nil {
			return constructionFailure(err)
		}
		h.machine = h.machine.Navigate(base)
	}

	if f := h.machine.Failure(); f != nil {
		h.logger.Warn("init failed", "reason", f.Reason())
	} else {
		h.logger.Debug("started", "model", engine.Format(h.machine.Model()))
	}
	return h
}

// Create starts a program with zero flags and no location.
func Create[Flags, Model, Msg, Effect any](p engine.Program[Flags, Model, Msg, Effect], opts ...Option) Harness[Model, Msg, Effect] {
	return start(p, setup[Flags, Msg]{op: "create"}, opts)
}

// CreateWithFlags starts a program with the given flags.
func CreateWithFlags[Flags, Model, Msg, Effect any](p engine.Program[Flags, Model, Msg, Effect], flags Flags, opts ...Option) Harness[Model, Msg, Effect] {
	return start(p, setup[Flags, Msg]{
		op:    "createWithFlags",
		flags: func() (Flags, error) { return flags, nil },
	}, opts)
}

// CreateWithJSONStringFlags decodes rawJSON with flagsDecoder and starts the
// program with the result. Invalid JSON or a decode failure fails the
// harness at construction.
func CreateWithJSONStringFlags[Flags, Model, Msg, Effect any](p engine.Program[Flags, Model, Msg, Effect], flagsDecoder decode.Decoder[Flags], rawJSON string, opts ...Option) Harness[Model, Msg, Effect] {
	return start(p, setup[Flags, Msg]{
		op:    "createWithJsonStringFlags",
		flags: func() (Flags, error) { return decode.DecodeString(flagsDecoder, rawJSON) },
	}, opts)
}

// CreateWithNavigation starts a program at startURL. Init receives the
// parsed location and every later location change is mapped to a message by
// navigation.OnURLChange.
func CreateWithNavigation[Flags, Model, Msg, Effect any](p engine.Program[Flags, Model, Msg, Effect], navigation engine.Navigation[Msg], startURL string, opts ...Option) Harness[Model, Msg, Effect] {
	return start(p, setup[Flags, Msg]{
		op:          "createWithNavigation",
		startURL:    startURL,
		hasStartURL: true,
		navigation:  &navigation,
	}, opts)
}

// CreateWithNavigationAndFlags combines CreateWithNavigation and
// CreateWithFlags.
func CreateWithNavigationAndFlags[Flags, Model, Msg, Effect any](p engine.Program[Flags, Model, Msg, Effect], navigation engine.Navigation[Msg], startURL string, flags Flags, opts ...Option) Harness[Model, Msg, Effect] {
	return start(p, setup[Flags, Msg]{
		op:          "createWithNavigationAndFlags",
		flags:       func() (Flags, error) { return flags, nil },
		startURL:    startURL,
		hasStartURL: true,
		navigation:  &navigation,
	}, opts)
}

// CreateWithNavigationAndJSONStringFlags combines CreateWithNavigation and
// CreateWithJSONStringFlags.
func CreateWithNavigationAndJSONStringFlags[Flags, Model, Msg, Effect any](p engine.Program[Flags, Model, Msg, Effect], navigation engine.Navigation[Msg], startURL string, flagsDecoder decode.Decoder[Flags], rawJSON string, opts ...Option) Harness[Model, Msg, Effect] {
	return start(p, setup[Flags, Msg]{
		op:          "createWithNavigationAndJsonStringFlags",
		flags:       func() (Flags, error) { return decode.DecodeString(flagsDecoder, rawJSON) },
		startURL:    startURL,
		hasStartURL: true,
		navigation:  &navigation,
	}, opts)
}

// CreateWithBaseURL starts a program without navigation wiring. baseURL is
// only used to resolve links; init does not see it.
func CreateWithBaseURL[Flags, Model, Msg, Effect any](p engine.Program[Flags, Model, Msg, Effect], baseURL string, opts ...Option) Harness[Model, Msg, Effect] {
	return start(p, setup[Flags, Msg]{
		op:         "createWithBaseUrl",
		baseURL:    baseURL,
		hasBaseURL: true,
	}, opts)
}

// Failure returns the first failure, or nil while running.
func (h Harness[Model, Msg, Effect]) Failure() *engine.Failure {
	return h.machine.Failure()
}

// Model returns the current model.
func (h Harness[Model, Msg, Effect]) Model() Model {
	return h.machine.Model()
}

// LastEffect returns the most recent effect.
func (h Harness[Model, Msg, Effect]) LastEffect() Effect {
	return h.machine.LastEffect()
}

// fail records f unless the harness has already failed.
func (h Harness[Model, Msg, Effect]) fail(f *engine.Failure) Harness[Model, Msg, Effect] {
	if !h.machine.Running() {
		return h
	}
	h.machine = h.machine.Fail(f)
	h.logger.Warn("failed", "category", f.Category, "reason", f.Reason())
	return h
}

// Fail ends the run with an explicit failure. The reason reads
// "<category>: <message>".
func (h Harness[Model, Msg, Effect]) Fail(category, message string) Harness[Model, Msg, Effect] {
	return h.fail(engine.Failf(engine.CategoryExplicit, category, "%s", message))
}

// Update dispatches msg directly, as if some event had produced it.
func (h Harness[Model, Msg, Effect]) Update(msg Msg) Harness[Model, Msg, Effect] {
	h, ok := h.guard("update")
	if !ok {
		return h
	}
	return h.apply(msg)
}

// apply folds msg into the machine and logs the transition.
func (h Harness[Model, Msg, Effect]) apply(msg Msg) Harness[Model, Msg, Effect] {
	h.machine = h.machine.Apply(msg)
	if f := h.machine.Failure(); f != nil {
		h.logger.Warn("failed", "category", f.Category, "reason", f.Reason())
		return h
	}
	h.logger.Debug("update", "message", engine.Format(msg), "model", engine.Format(h.machine.Model()))
	return h
}

// root renders the view and resolves the current Within scope.
func (h Harness[Model, Msg, Effect]) root() (*vdom.Node[Msg], error) {
	root, err := h.machine.View()
	if err != nil {
		return nil, err
	}
	for _, sels := range h.scope {
		root, err = query.Find(root, sels...)
		if err != nil {
			return nil, fmt.Errorf("within [%s]: %w", query.Describe(sels), err)
		}
	}
	return root, nil
}

// guard reports whether op may run: the harness has not failed and no page
// change has ended the program.
func (h Harness[Model, Msg, Effect]) guard(op string) (Harness[Model, Msg, Effect], bool) {
	if !h.machine.Running() {
		return h, false
	}
	if page, ok := h.machine.PageChange(); ok {
		return h.fail(engine.Failf(engine.CategoryNavigation, op,
			"the page changed to %s; the program is no longer running", page.Full)), false
	}
	return h, true
}

// interact runs one operation against the scoped view. Errors returned by
// fn become the failure of op.
func (h Harness[Model, Msg, Effect]) interact(op string, fn func(Harness[Model, Msg, Effect], *vdom.Node[Msg]) (Harness[Model, Msg, Effect], error)) Harness[Model, Msg, Effect] {
	h, ok := h.guard(op)
	if !ok {
		return h
	}
	root, err := h.root()
	if err != nil {
		return h.fail(failure(op, err))
	}
	h.logger.Debug(op)
	next, err := fn(h, root)
	if err != nil {
		return h.fail(failure(op, err))
	}
	return next
}

// Within runs ops with queries re-rooted at the unique node matching sels.
// The previous scope is restored afterwards; model and effect carry over.
func (h Harness[Model, Msg, Effect]) Within(sels []query.Selector, ops func(Harness[Model, Msg, Effect]) Harness[Model, Msg, Effect]) Harness[Model, Msg, Effect] {
	outer := h.scope
	inner := h.interact("within", func(h Harness[Model, Msg, Effect], root *vdom.Node[Msg]) (Harness[Model, Msg, Effect], error) {
		if _, err := query.Find(root, sels...); err != nil {
			return h, err
		}
		h.scope = append(slices.Clip(outer), sels)
		return h, nil
	})
	if !inner.machine.Running() {
		return inner
	}
	out := ops(inner)
	out.scope = outer
	return out
}
