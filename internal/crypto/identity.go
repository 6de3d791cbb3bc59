package crypto

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"

	"keyward/internal/domain"
)

const (
	secp256k1KeyBytes = 33
)

// Named-state record prefixes written by the registry contract. The full key
// is the prefix immediately followed by the lowercase-hex account identity,
// with no further delimiter.
const (
	PrefixRegistered = "grp_registered_"
	PrefixGuardians  = "grp_guardians_"
	PrefixThreshold  = "grp_threshold_"
)

// ParsePublicKeyHex decodes a hex public key in either tagged form
// (algorithm byte followed by the raw key) or bare ed25519 form (exactly 32
// bytes). Letter case is irrelevant. Malformed input fails with
// ErrInvalidKeyEncoding.
func ParsePublicKeyHex(s string) (domain.PublicKey, error) {
	raw, err := hex.DecodeString(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return domain.PublicKey{}, fmt.Errorf("public key %q: %w", s, domain.ErrInvalidKeyEncoding)
	}

	switch {
	case len(raw) == ed25519.PublicKeySize:
		// Bare untagged key; only ed25519 keys are 32 bytes.
		return domain.PublicKey{Algo: domain.AlgoEd25519, Key: raw}, nil
	case len(raw) == 1+ed25519.PublicKeySize && raw[0] == byte(domain.AlgoEd25519):
		return domain.PublicKey{Algo: domain.AlgoEd25519, Key: raw[1:]}, nil
	case len(raw) == 1+secp256k1KeyBytes && raw[0] == byte(domain.AlgoSecp256k1):
		return domain.PublicKey{Algo: domain.AlgoSecp256k1, Key: raw[1:]}, nil
	default:
		return domain.PublicKey{}, fmt.Errorf("public key %q: unsupported length or tag: %w",
			s, domain.ErrInvalidKeyEncoding)
	}
}

// AccountIdentity derives the 32-byte account identity for a public key:
// blake2b-256 over the lowercase algorithm name, a zero separator byte, and
// the raw key bytes. The derivation is one-way.
func AccountIdentity(pub domain.PublicKey) domain.AccountID {
	h, _ := blake2b.New256(nil)
	h.Write([]byte(pub.Algo.String()))
	h.Write([]byte{0})
	h.Write(pub.Key)

	var id domain.AccountID
	copy(id[:], h.Sum(nil))
	return id
}

// LookupKey builds the named-state key for one record of one account.
func LookupKey(prefix string, id domain.AccountID) string {
	return prefix + id.Hex()
}
