package store

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"keyward/internal/domain"
)

const signerFile = "signer.json"

// KeyStore keeps the caller's ed25519 signing key sealed on disk.
type KeyStore struct {
	home string
}

// NewKeyStore returns a store rooted at the given home directory.
func NewKeyStore(home string) *KeyStore { return &KeyStore{home: home} }

func (s *KeyStore) path() string { return filepath.Join(s.home, signerFile) }

// Exists reports whether a signing key has been stored.
func (s *KeyStore) Exists() bool {
	_, err := os.Stat(s.path())
	return err == nil
}

// Save seals the private key under the passphrase and writes it atomically.
func (s *KeyStore) Save(passphrase string, priv ed25519.PrivateKey) error {
	if len(priv) != ed25519.PrivateKeySize {
		return fmt.Errorf("signing key: want %d bytes, got %d", ed25519.PrivateKeySize, len(priv))
	}
	blob, err := seal(passphrase, priv)
	if err != nil {
		return fmt.Errorf("seal signing key: %w", err)
	}
	tmp := s.path() + ".tmp"
	if err := os.WriteFile(tmp, blob, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path())
}

// Load opens the sealed signing key with the passphrase.
func (s *KeyStore) Load(passphrase string) (ed25519.PrivateKey, error) {
	blob, err := os.ReadFile(s.path())
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("no signing key in %s (run \"key init\" first)", s.home)
	}
	if err != nil {
		return nil, err
	}
	raw, err := open(passphrase, blob)
	if err != nil {
		return nil, err
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, errWrongPassphrase
	}
	return ed25519.PrivateKey(raw), nil
}

// Generate creates a fresh signing key, stores it sealed, and returns the
// tagged public key.
func (s *KeyStore) Generate(passphrase string) (domain.PublicKey, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return domain.PublicKey{}, err
	}
	if err := s.Save(passphrase, priv); err != nil {
		return domain.PublicKey{}, err
	}
	return domain.PublicKey{Algo: domain.AlgoEd25519, Key: pub}, nil
}

// Public derives the tagged public key from the stored private key.
func Public(priv ed25519.PrivateKey) domain.PublicKey {
	pub := priv.Public().(ed25519.PublicKey)
	return domain.PublicKey{Algo: domain.AlgoEd25519, Key: pub}
}
