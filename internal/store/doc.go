// Package store persists the caller's signing key on disk.
//
// The key is sealed in a passphrase-derived envelope (scrypt key derivation,
// ChaCha20-Poly1305) and written as a JSON blob under the configured home
// directory via a temp-file-then-rename. Nothing else is persisted: all
// protocol state lives on the ledger and the client re-derives what it
// needs per call.
package store
