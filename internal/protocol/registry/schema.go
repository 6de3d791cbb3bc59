package registry

import "keyward/internal/encoding"

// Entry points exposed by the recovery registry contract.
const (
	EPInitializeGuardians = "initialize_guardians"
	EPStartRecovery       = "start_recovery"
	EPApproveRecovery     = "approve_recovery"
	EPCheckThreshold      = "check_threshold"
	EPFinalizeRecovery    = "finalize_recovery"
	EPHasGuardians        = "has_guardians"
	EPGetGuardians        = "get_guardians"
)

// Argument names shared across entry points.
const (
	argOwner          = "owner"
	argAccount        = "account"
	argTarget         = "target"
	argGuardians      = "guardians"
	argThreshold      = "threshold"
	argRecoveryID     = "recovery_id"
	argReplacementKey = "replacement_key"
)

// schemas pins the one canonical argument layout per entry point.
var schemas = map[string]encoding.Schema{
	EPInitializeGuardians: {
		EntryPoint: EPInitializeGuardians,
		Fields: []encoding.Field{
			{Name: argOwner, Kind: encoding.KindIdentity},
			{Name: argGuardians, Kind: encoding.KindIdentityList},
			{Name: argThreshold, Kind: encoding.KindU8},
		},
	},
	EPStartRecovery: {
		EntryPoint: EPStartRecovery,
		Fields: []encoding.Field{
			{Name: argTarget, Kind: encoding.KindIdentity},
			{Name: argReplacementKey, Kind: encoding.KindBytes},
		},
	},
	EPApproveRecovery: {
		EntryPoint: EPApproveRecovery,
		Fields: []encoding.Field{
			{Name: argRecoveryID, Kind: encoding.KindU256},
		},
	},
	EPCheckThreshold: {
		EntryPoint: EPCheckThreshold,
		Fields: []encoding.Field{
			{Name: argRecoveryID, Kind: encoding.KindU256},
		},
	},
	EPFinalizeRecovery: {
		EntryPoint: EPFinalizeRecovery,
		Fields: []encoding.Field{
			{Name: argRecoveryID, Kind: encoding.KindU256},
		},
	},
	EPHasGuardians: {
		EntryPoint: EPHasGuardians,
		Fields: []encoding.Field{
			{Name: argAccount, Kind: encoding.KindIdentity},
		},
	},
	EPGetGuardians: {
		EntryPoint: EPGetGuardians,
		Fields: []encoding.Field{
			{Name: argAccount, Kind: encoding.KindIdentity},
		},
	},
}

// SchemaFor returns the declared schema for an entry point.
func SchemaFor(entryPoint string) (encoding.Schema, bool) {
	s, ok := schemas[entryPoint]
	return s, ok
}
