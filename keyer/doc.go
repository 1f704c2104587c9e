// Package keyer derives canonical cache keys from call arguments.
//
// It provides a Keyer interface with a JSON-based implementation that
// canonicalizes arguments (maps sorted by key) so the same logical
// arguments always produce the same key. Keys embed both an xxhash of
// the canonical form and the canonical form itself, so two distinct
// argument tuples can never silently collide.
package keyer
