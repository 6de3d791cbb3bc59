package deploy

import (
	"crypto/ed25519"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/blake2b"

	"keyward/internal/domain"
	"keyward/internal/encoding"
)

const defaultTTL = 30 * time.Minute

// Params carries the header fields supplied by the caller.
type Params struct {
	Account   domain.PublicKey // caller identity; also the signer
	ChainName string
	Timestamp time.Time     // zero means now
	TTL       time.Duration // zero means defaultTTL
}

// Payment is the fee budget attached to the transaction.
type Payment struct {
	Amount uint64
}

func (p Payment) body() []byte {
	out := make([]byte, 8)
	binary.LittleEndian.PutUint64(out, p.Amount)
	return out
}

// Session selects the call mode and carries the encoded arguments.
type Session interface {
	tag() byte
	body() []byte
	sessionJSON() any
}

// ModuleBytes runs one-shot bootstrap code. Used for guardian registration,
// which has no stored contract reference to call against yet.
type ModuleBytes struct {
	Module []byte
	Args   encoding.Args
}

func (m ModuleBytes) tag() byte { return 0 }

func (m ModuleBytes) body() []byte {
	out := make([]byte, 4, 4+len(m.Module))
	binary.LittleEndian.PutUint32(out, uint32(len(m.Module)))
	out = append(out, m.Module...)
	return append(out, m.Args.Encode()...)
}

func (m ModuleBytes) sessionJSON() any {
	return map[string]any{
		"ModuleBytes": map[string]string{
			"module_bytes": hex.EncodeToString(m.Module),
			"args":         hex.EncodeToString(m.Args.Encode()),
		},
	}
}

// StoredContractByHash invokes a named entry point on the deployed registry.
type StoredContractByHash struct {
	Hash       domain.ContractHash
	EntryPoint string
	Args       encoding.Args
}

func (s StoredContractByHash) tag() byte { return 1 }

func (s StoredContractByHash) body() []byte {
	out := make([]byte, 0, 32+4+len(s.EntryPoint))
	out = append(out, s.Hash.Slice()...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(s.EntryPoint)))
	out = append(out, s.EntryPoint...)
	return append(out, s.Args.Encode()...)
}

func (s StoredContractByHash) sessionJSON() any {
	return map[string]any{
		"StoredContractByHash": map[string]string{
			"hash":        s.Hash.Hex(),
			"entry_point": s.EntryPoint,
			"args":        hex.EncodeToString(s.Args.Encode()),
		},
	}
}

// Approval is one signature over the deploy hash.
type Approval struct {
	Signer    string `json:"signer"`
	Signature string `json:"signature"`
}

// Deploy is the signable transaction artifact.
type Deploy struct {
	params    Params
	payment   Payment
	session   Session
	bodyHash  [32]byte
	hash      [32]byte
	approvals []Approval
}

// New assembles a deploy and computes its body and deploy hashes.
func New(params Params, payment Payment, session Session) (*Deploy, error) {
	if len(params.Account.Key) == 0 {
		return nil, errors.New("deploy: caller account key required")
	}
	if params.ChainName == "" {
		return nil, errors.New("deploy: chain name required")
	}
	if session == nil {
		return nil, errors.New("deploy: session item required")
	}
	if params.Timestamp.IsZero() {
		params.Timestamp = time.Now().UTC()
	}
	if params.TTL <= 0 {
		params.TTL = defaultTTL
	}

	d := &Deploy{params: params, payment: payment, session: session}

	body := append(payment.body(), session.tag())
	body = append(body, session.body()...)
	d.bodyHash = blake2b.Sum256(body)

	header := params.Account.Tagged()
	header = binary.LittleEndian.AppendUint64(header, uint64(params.Timestamp.UnixMilli()))
	header = binary.LittleEndian.AppendUint64(header, uint64(params.TTL.Milliseconds()))
	header = append(header, d.bodyHash[:]...)
	header = append(header, params.ChainName...)
	d.hash = blake2b.Sum256(header)

	return d, nil
}

// Hash is the transaction id: the lowercase hex deploy hash.
func (d *Deploy) Hash() string { return hex.EncodeToString(d.hash[:]) }

// BodyHash is the lowercase hex hash over payment and session.
func (d *Deploy) BodyHash() string { return hex.EncodeToString(d.bodyHash[:]) }

// Account is the caller identity named in the header.
func (d *Deploy) Account() domain.PublicKey { return d.params.Account }

// Approvals returns the collected signatures.
func (d *Deploy) Approvals() []Approval { return d.approvals }

// Sign appends an approval by the caller's ed25519 key. Signing never
// mutates the hashes; the signature covers the deploy hash.
func (d *Deploy) Sign(priv ed25519.PrivateKey) error {
	if len(priv) != ed25519.PrivateKeySize {
		return fmt.Errorf("deploy: bad signing key length %d", len(priv))
	}
	sig := ed25519.Sign(priv, d.hash[:])
	d.approvals = append(d.approvals, Approval{
		Signer:    d.params.Account.Hex(),
		Signature: hex.EncodeToString(sig),
	})
	return nil
}

// MarshalJSON renders the wire form submitted to the node.
func (d *Deploy) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"hash": d.Hash(),
		"header": map[string]any{
			"account":    d.params.Account.Hex(),
			"timestamp":  d.params.Timestamp.UTC().Format(time.RFC3339Nano),
			"ttl":        d.params.TTL.String(),
			"body_hash":  d.BodyHash(),
			"chain_name": d.params.ChainName,
		},
		"payment":   map[string]string{"amount": fmt.Sprintf("%d", d.payment.Amount)},
		"session":   d.session.sessionJSON(),
		"approvals": d.approvals,
	})
}
