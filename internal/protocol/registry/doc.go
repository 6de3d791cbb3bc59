// Package registry encodes recovery-protocol actions into the typed
// argument sets the registry contract's entry points expect.
//
// One canonical encoding is pinned per entry point (the schema table in
// schema.go); the entry-point name itself is the action discriminator, so
// no numeric discriminator travels in the arguments. Registration is the
// only action executed as bootstrap code: a fresh owner has no stored
// contract reference to call against. Every later action is a stored call
// against the shared registry contract.
//
// All precondition checks here are local and fail fast; nothing in this
// package performs I/O.
package registry
