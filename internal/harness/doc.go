// Package harness drives an update/view program through simulated user
// interactions and checks the outcome.
//
// A Harness is a value. Every operation returns a new Harness, so a test
// reads as a single chain:
//
//	err := harness.Create(app).
//		ClickButton("Click Me").
//		FillIn("Name", "Ada").
//		ShouldHave(query.Tag("span"), query.Text("Ada")).
//		ExpectModel(m.Equal(want))
//
// # Failure
//
// Nothing in the chain panics or returns an error mid-way. A query that
// matches no node, a handler that rejects its payload or an assertion that
// does not hold moves the harness to a failed state with a one-line reason
// of the form "<operation>: <message>". Every later operation is a no-op
// that keeps that reason, so the terminal operation (Done or an Expect*)
// reports the first cause.
//
// # Scoping
//
// Within re-roots queries at a subtree for the operations it wraps, then
// restores the previous root. The scope is a list of selectors resolved
// against a fresh view every time, never a pointer into an old tree.
//
// # Navigation
//
// Programs built with CreateWithNavigation receive every location change as
// a message and may intercept link clicks. Programs built with
// CreateWithBaseURL only use the URL to resolve links; following one is
// recorded as a page change that ExpectPageChange can check.
//
// # Determinism
//
// There is no clock and no scheduler. The same chain of operations always
// yields the same model, view, effect and trace.
package harness
