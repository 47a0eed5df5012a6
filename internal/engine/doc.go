// Package engine implements the program state machine behind a harness.
//
// A Machine owns the program's update and view functions together with the
// current model, the last effect, the simulated location and the outcome of
// the run so far. It is always in exactly one of two states:
//
//   - Running: Apply folds a message through update and replaces the model
//     and last effect.
//   - Failed: terminal. Every transition is a no-op that returns the machine
//     unchanged, so the first failure is the one reported.
//
// Machines are values. Every transition returns a new Machine and never
// touches the receiver, which lets a harness chain branch without aliasing.
//
// ORDERING:
// Each transition that changes state appends one Step to the trace, stamped
// with a logical sequence number starting at 1. No wall-clock time is
// recorded, so the same interactions always produce the same trace.
package engine
