// Package encoding implements the typed-argument codec for ledger calls.
//
// Every entry-point argument is a Value: a kind plus its canonical byte
// form. Constructors validate widths up front, so a value that cannot be
// represented in the declared width (a threshold above 255, a recovery id
// at or beyond 2^256) fails with ErrSchemaMismatch locally, before any
// transaction exists. Args pairs values with argument names and validates
// the whole set against a Schema, the ordered field list one entry point
// expects.
//
// Byte forms are little-endian fixed-width integers, length-prefixed byte
// strings, raw 32-byte identities, and count-prefixed identity lists. The
// decode half of the codec is used by the state reader to turn stored
// records back into protocol types.
package encoding
