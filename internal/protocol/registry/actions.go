package registry

import (
	"fmt"

	"keyward/internal/domain"
	"keyward/internal/encoding"
)

// InitializeGuardiansArgs encodes a guardian registration. Preconditions are
// checked client-side before a transaction exists: at least one guardian, no
// duplicates, and a threshold between 1 and the guardian count. The contract
// enforces the same rules again on-chain.
func InitializeGuardiansArgs(owner domain.AccountID, guardians []domain.AccountID, threshold uint) (encoding.Args, error) {
	if len(guardians) == 0 {
		return nil, fmt.Errorf("no guardians given: %w", domain.ErrSchemaMismatch)
	}
	if threshold == 0 || threshold > uint(len(guardians)) {
		return nil, fmt.Errorf("threshold %d out of range [1, %d]: %w",
			threshold, len(guardians), domain.ErrSchemaMismatch)
	}
	seen := make(map[domain.AccountID]struct{}, len(guardians))
	for _, g := range guardians {
		if _, dup := seen[g]; dup {
			return nil, fmt.Errorf("duplicate guardian %s: %w", g.Hex(), domain.ErrSchemaMismatch)
		}
		seen[g] = struct{}{}
	}

	t, err := encoding.U8(threshold)
	if err != nil {
		return nil, err
	}
	return validated(EPInitializeGuardians, encoding.Args{
		{Name: argOwner, Value: encoding.Identity(owner)},
		{Name: argGuardians, Value: encoding.IdentityList(guardians)},
		{Name: argThreshold, Value: t},
	})
}

// StartRecoveryArgs encodes the opening of a recovery request naming the
// replacement key. The key travels raw; the client does not interpret it.
func StartRecoveryArgs(target domain.AccountID, replacement domain.PublicKey) (encoding.Args, error) {
	return validated(EPStartRecovery, encoding.Args{
		{Name: argTarget, Value: encoding.Identity(target)},
		{Name: argReplacementKey, Value: encoding.RawBytes(replacement.Tagged())},
	})
}

// ApproveArgs encodes one guardian approval of a recovery request.
func ApproveArgs(id domain.RecoveryID) (encoding.Args, error) {
	return recoveryIDArgs(EPApproveRecovery, id)
}

// CheckThresholdArgs encodes a threshold check. The check runs as a
// transaction like any other action; the ledger exposes no free query entry
// point for it.
func CheckThresholdArgs(id domain.RecoveryID) (encoding.Args, error) {
	return recoveryIDArgs(EPCheckThreshold, id)
}

// FinalizeArgs encodes recovery finalization. Finalization is terminal: the
// request is consumed and the replacement key installed.
func FinalizeArgs(id domain.RecoveryID) (encoding.Args, error) {
	return recoveryIDArgs(EPFinalizeRecovery, id)
}

// HasGuardiansArgs encodes the on-chain registration check for an account.
func HasGuardiansArgs(account domain.AccountID) (encoding.Args, error) {
	return accountArgs(EPHasGuardians, account)
}

// GetGuardiansArgs encodes the on-chain guardian-list fetch for an account.
func GetGuardiansArgs(account domain.AccountID) (encoding.Args, error) {
	return accountArgs(EPGetGuardians, account)
}

func recoveryIDArgs(entryPoint string, id domain.RecoveryID) (encoding.Args, error) {
	return validated(entryPoint, encoding.Args{
		{Name: argRecoveryID, Value: encoding.U256(id)},
	})
}

func accountArgs(entryPoint string, account domain.AccountID) (encoding.Args, error) {
	return validated(entryPoint, encoding.Args{
		{Name: argAccount, Value: encoding.Identity(account)},
	})
}

func validated(entryPoint string, args encoding.Args) (encoding.Args, error) {
	sch, ok := SchemaFor(entryPoint)
	if !ok {
		return nil, fmt.Errorf("no schema for entry point %q: %w", entryPoint, domain.ErrSchemaMismatch)
	}
	if err := args.Validate(sch); err != nil {
		return nil, err
	}
	return args, nil
}
