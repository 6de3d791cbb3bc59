package domain

import "errors"

var (
	// ErrInvalidKeyEncoding is returned for malformed public-key hex input.
	ErrInvalidKeyEncoding = errors.New("invalid public key encoding")

	// ErrSchemaMismatch is returned when a value cannot be represented in the
	// width or kind an entry point declares. It always fires before any
	// network call.
	ErrSchemaMismatch = errors.New("argument does not match entry point schema")

	// ErrSubmissionFailure is returned when the node rejects a signed
	// transaction outright. Submission is never retried: resubmitting a
	// signed transaction without idempotency tracking is unsafe.
	ErrSubmissionFailure = errors.New("transaction submission rejected")

	// ErrNotFound is returned by state queries when the named record does
	// not exist under the queried root.
	ErrNotFound = errors.New("value not found")

	// ErrTimeout marks an inconclusive confirmation wait. The transaction
	// may still execute after the client stops watching; callers should
	// re-poll, not resubmit.
	ErrTimeout = errors.New("confirmation timed out")
)
