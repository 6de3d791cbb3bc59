package state

import (
	"context"

	"github.com/rs/zerolog"

	"keyward/internal/crypto"
	"keyward/internal/domain"
	"keyward/internal/encoding"
	"keyward/internal/ledger"
)

// Service reads the registry's named records for one contract.
type Service struct {
	client   ledger.Client
	contract domain.ContractHash
	log      zerolog.Logger
}

// New returns a reader bound to the registry contract.
func New(client ledger.Client, contract domain.ContractHash, log zerolog.Logger) *Service {
	return &Service{client: client, contract: contract, log: log}
}

// IsRegistered reports whether the owner has a guardian set registered.
// Absent record, malformed record, or query trouble all read as false.
func (s *Service) IsRegistered(ctx context.Context, ownerKeyHex string) bool {
	raw, ok := s.record(ctx, crypto.PrefixRegistered, ownerKeyHex)
	if !ok {
		return false
	}
	registered, err := encoding.DecodeBool(raw)
	if err != nil {
		s.log.Debug().Err(err).Msg("registered record undecodable")
		return false
	}
	return registered
}

// Guardians returns the owner's guardian identities in registration order,
// as lowercase hex strings. Absent or malformed records read as empty.
func (s *Service) Guardians(ctx context.Context, ownerKeyHex string) []string {
	raw, ok := s.record(ctx, crypto.PrefixGuardians, ownerKeyHex)
	if !ok {
		return nil
	}
	ids, err := encoding.DecodeIdentityList(raw)
	if err != nil {
		s.log.Debug().Err(err).Msg("guardians record undecodable")
		return nil
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.Hex()
	}
	return out
}

// Threshold returns the owner's approval threshold. Zero means "no
// threshold configured"; real thresholds are always at least 1.
func (s *Service) Threshold(ctx context.Context, ownerKeyHex string) uint8 {
	raw, ok := s.record(ctx, crypto.PrefixThreshold, ownerKeyHex)
	if !ok {
		return 0
	}
	t, err := encoding.DecodeU8(raw)
	if err != nil {
		s.log.Debug().Err(err).Msg("threshold record undecodable")
		return 0
	}
	return t
}

// Set assembles the owner's full registered configuration from the three
// named records. The second return is false when no set is registered or
// any record fails to read.
func (s *Service) Set(ctx context.Context, ownerKeyHex string) (domain.GuardianSet, bool) {
	pub, err := crypto.ParsePublicKeyHex(ownerKeyHex)
	if err != nil || !s.IsRegistered(ctx, ownerKeyHex) {
		return domain.GuardianSet{}, false
	}
	raw, ok := s.record(ctx, crypto.PrefixGuardians, ownerKeyHex)
	if !ok {
		return domain.GuardianSet{}, false
	}
	ids, err := encoding.DecodeIdentityList(raw)
	if err != nil {
		s.log.Debug().Err(err).Msg("guardians record undecodable")
		return domain.GuardianSet{}, false
	}
	return domain.GuardianSet{
		Owner:     crypto.AccountIdentity(pub),
		Guardians: ids,
		Threshold: s.Threshold(ctx, ownerKeyHex),
	}, true
}

// IsGuardian reports whether the given key is one of the owner's guardians.
func (s *Service) IsGuardian(ctx context.Context, ownerKeyHex, guardianKeyHex string) bool {
	pub, err := crypto.ParsePublicKeyHex(guardianKeyHex)
	if err != nil {
		s.log.Debug().Err(err).Msg("guardian key unparseable")
		return false
	}
	want := crypto.AccountIdentity(pub).Hex()
	for _, g := range s.Guardians(ctx, ownerKeyHex) {
		if g == want {
			return true
		}
	}
	return false
}

// record fetches one named record for the owner under the latest root known
// to the queried node. Any trouble resolves to "absent".
func (s *Service) record(ctx context.Context, prefix, ownerKeyHex string) ([]byte, bool) {
	pub, err := crypto.ParsePublicKeyHex(ownerKeyHex)
	if err != nil {
		s.log.Debug().Err(err).Msg("owner key unparseable")
		return nil, false
	}
	id := crypto.AccountIdentity(pub)

	root, err := s.client.StateRootHash(ctx)
	if err != nil {
		s.log.Debug().Err(err).Msg("state root unavailable")
		return nil, false
	}

	name := crypto.LookupKey(prefix, id)
	sv, err := s.client.QueryState(ctx, root, "hash-"+s.contract.Hex(), []string{name})
	if err != nil {
		s.log.Debug().Err(err).Str("record", name).Msg("record read failed")
		return nil, false
	}
	return sv.Bytes, true
}
