// Package crypto implements the identity codec: parsing hex-encoded public
// keys, deriving the fixed-width account identity the ledger uses, and
// building the named-state lookup keys the registry contract writes under.
//
// Contents
//
//   - Public-key hex parsing for the supported key algorithms
//     (ParsePublicKeyHex)
//   - Deterministic account-identity derivation (AccountIdentity)
//   - Named-state key construction (LookupKey and the Prefix* constants)
//
// # Notes
//
// Everything here is pure and deterministic. The lookup-key naming scheme is
// the contract's storage addressing convention and must be reproduced
// byte-for-byte: a mismatched prefix yields "absent", not an error.
package crypto
