// Package confirm owns the asynchronous tail of every write action:
// submitting the signed deploy and watching for its execution outcome.
//
// Submission is a single attempt; resubmitting a signed transaction without
// idempotency tracking is unsafe, so a rejected submit surfaces immediately.
// Confirmation is a fixed-interval poll bounded by a deadline. A poll that
// cannot see the transaction yet is retried silently; only a found-and-failed
// execution produces a failure. Running out the deadline yields an
// inconclusive pending outcome, not an error: the transaction may still
// execute after the client stops watching.
package confirm
