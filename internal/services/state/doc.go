// Package state answers read-only protocol questions from the ledger's
// committed state: whether an owner has registered guardians, which
// identities they are, and the configured threshold.
//
// Reads are soft-failing by design. "Not yet registered" and "query error"
// are operationally the same to a caller deciding whether to bootstrap, so
// absent records, decode failures, and transport trouble all resolve to the
// safe defaults (false, nil, 0) and are logged rather than returned. These
// reads back informational paths, never authorization decisions.
package state
