// Package demo holds small programs the scenario runner can drive by name.
//
// Each program is ordinary init/update/view code. Register adds all of them
// to a scenario registry together with the decoders that turn scenario
// flags and update steps into typed values.
package demo

import "github.com/roach88/teasim/internal/scenario"

// Register adds every demo program to reg.
func Register(reg *scenario.Registry) {
	reg.Register("echo", scenario.Drive(Echo()))
	reg.Register("todo", scenario.Drive(Todo()))
	reg.Register("router", scenario.Drive(Router()))
}
