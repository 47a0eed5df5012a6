// Package store records scenario runs in SQLite so results can be listed,
// inspected and compared later.
//
// A run is one pass of the scenario runner over a directory. It holds one
// report per scenario, and each report holds the trace steps with their
// content-addressed IDs.
//
// Ordering never uses wall time: runs get an increasing seq when written,
// reports and steps keep the order they were produced in, and every query
// sorts by those columns.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
