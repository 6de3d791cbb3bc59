// Package domain defines core data models and contracts shared across keyward.
// It contains plain protocol types (identities, recovery ids, outcomes) and
// the error taxonomy only; no I/O happens here.
package domain
