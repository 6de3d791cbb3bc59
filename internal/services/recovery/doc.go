// Package recovery orchestrates the protocol's write actions: guardian
// registration, starting a recovery, guardian approval, threshold check,
// and finalization.
//
// Each operation follows the same pipeline: validate and encode arguments
// locally (fail fast, nothing submitted on a bad input), build and sign the
// deploy, submit once, then await the execution outcome under a bounded
// timeout. Validation errors come back as errors; submission and execution
// failures come back inside the Result, which is the stable surface for
// any caller.
package recovery
