package engine

import (
	"github.com/roach88/teasim/internal/nav"
	"github.com/roach88/teasim/internal/vdom"
)

// Program is the pure triple a harness drives.
//
// Init receives the flags and, for programs started at a URL, the parsed
// start location. Programs without navigation receive a nil location.
type Program[Flags, Model, Msg, Effect any] struct {
	Init   func(flags Flags, loc *nav.Location) (Model, Effect)
	Update func(msg Msg, model Model) (Model, Effect)
	View   func(model Model) *vdom.Node[Msg]
}

// Navigation wires a program into the simulated browser location.
//
// OnURLChange maps every new location to a message and is required.
// OnURLRequest maps a followed link to a message; when nil, links fall back
// to full page loads.
type Navigation[Msg any] struct {
	OnURLChange  func(loc nav.Location) Msg
	OnURLRequest func(req nav.URLRequest) Msg
}
