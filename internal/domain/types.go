package domain

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/holiman/uint256"
)

// AccountID is the fixed-width account identifier the ledger derives from a
// public key. Derivation is one-way; two equal keys always map to the same id.
type AccountID [32]byte

func (a AccountID) Slice() []byte { return a[:] }

// Hex returns the lowercase hex form used in named-state lookup keys.
func (a AccountID) Hex() string { return hex.EncodeToString(a[:]) }

// ParseAccountID decodes a 64-hex-char account identifier.
func ParseAccountID(s string) (AccountID, error) {
	var out AccountID
	b, err := hex.DecodeString(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || len(b) != len(out) {
		return out, fmt.Errorf("account id %q: %w", s, ErrInvalidKeyEncoding)
	}
	copy(out[:], b)
	return out, nil
}

// ContractHash addresses the deployed registry contract for stored calls.
type ContractHash [32]byte

func (h ContractHash) Slice() []byte { return h[:] }
func (h ContractHash) Hex() string   { return hex.EncodeToString(h[:]) }

// ParseContractHash decodes a 64-hex-char contract hash.
func ParseContractHash(s string) (ContractHash, error) {
	var out ContractHash
	b, err := hex.DecodeString(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || len(b) != len(out) {
		return out, fmt.Errorf("contract hash %q: %w", s, ErrInvalidKeyEncoding)
	}
	copy(out[:], b)
	return out, nil
}

// KeyAlgorithm is the wire tag identifying a public key's signature scheme.
type KeyAlgorithm byte

const (
	AlgoEd25519   KeyAlgorithm = 0x01
	AlgoSecp256k1 KeyAlgorithm = 0x02
)

func (a KeyAlgorithm) String() string {
	switch a {
	case AlgoEd25519:
		return "ed25519"
	case AlgoSecp256k1:
		return "secp256k1"
	default:
		return fmt.Sprintf("unknown(%#02x)", byte(a))
	}
}

// PublicKey is a tagged public key as accepted and emitted by the ledger.
type PublicKey struct {
	Algo KeyAlgorithm
	Key  []byte
}

// Tagged returns the algorithm tag followed by the raw key bytes.
func (p PublicKey) Tagged() []byte {
	out := make([]byte, 0, 1+len(p.Key))
	out = append(out, byte(p.Algo))
	return append(out, p.Key...)
}

// Hex returns the lowercase tagged-hex form of the key.
func (p PublicKey) Hex() string { return hex.EncodeToString(p.Tagged()) }

// RecoveryID identifies one recovery request. The ledger issues it; the
// client treats it as an opaque unsigned value in [0, 2^256).
type RecoveryID struct {
	n uint256.Int
}

// ParseRecoveryID parses a decimal numeric string. Values that do not fit in
// 256 bits fail with ErrSchemaMismatch before anything is submitted.
func ParseRecoveryID(s string) (RecoveryID, error) {
	var id RecoveryID
	s = strings.TrimSpace(s)
	if s == "" {
		return id, fmt.Errorf("empty recovery id: %w", ErrSchemaMismatch)
	}
	if err := id.n.SetFromDecimal(s); err != nil {
		return id, fmt.Errorf("recovery id %q: %w", s, ErrSchemaMismatch)
	}
	return id, nil
}

// String renders the id back as a decimal string.
func (r RecoveryID) String() string { return r.n.Dec() }

// BigEndian returns the minimal big-endian byte form of the id.
func (r RecoveryID) BigEndian() []byte { return r.n.Bytes() }

// GuardianSet is the registered guardian configuration for one owner.
// It is immutable once registered; no update action is exposed.
type GuardianSet struct {
	Owner     AccountID
	Guardians []AccountID
	Threshold uint8
}

// TxStatus classifies the execution outcome of a submitted transaction.
type TxStatus int

const (
	StatusPending TxStatus = iota
	StatusSuccess
	StatusFailure
)

func (s TxStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Outcome is the result of confirmation polling. Reason carries the
// contract's failure message verbatim when Status is StatusFailure.
type Outcome struct {
	Status TxStatus
	Reason string
}

// Result is the stable surface every write action returns to callers.
// TransactionID stays empty until submission completes.
type Result struct {
	TransactionID string `json:"transactionId"`
	Success       bool   `json:"success"`
	Message       string `json:"message"`
}
