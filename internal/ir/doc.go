// Package ir provides the value representation for raw event payloads and
// program flags.
//
// A payload is what the simulated platform hands to an event decoder: a small
// JSON-shaped value. This package contains value types only; every other
// internal package may import ir, and ir imports nothing internal.
//
// Key design constraints:
//   - Numbers render in one canonical form (integers as Int, everything else
//     as Float in its shortest round-trip form) so that payloads, traces and
//     golden snapshots are bit-for-bit reproducible
//   - Object keys are iterated in RFC 8785 order (SortedKeys)
//   - Canonical JSON (MarshalCanonical) is the only serialization used for
//     trace identity and golden comparison
package ir
