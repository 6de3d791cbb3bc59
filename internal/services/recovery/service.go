package recovery

import (
	"context"
	"crypto/ed25519"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"keyward/internal/confirm"
	"keyward/internal/crypto"
	"keyward/internal/deploy"
	"keyward/internal/domain"
	"keyward/internal/encoding"
	"keyward/internal/protocol/registry"
)

// Signer is the caller identity used for every deploy this service builds.
type Signer struct {
	Public  domain.PublicKey
	Private ed25519.PrivateKey
}

// NewSigner derives the tagged public key from an ed25519 private key.
func NewSigner(priv ed25519.PrivateKey) Signer {
	pub := priv.Public().(ed25519.PublicKey)
	return Signer{
		Public:  domain.PublicKey{Algo: domain.AlgoEd25519, Key: pub},
		Private: priv,
	}
}

// Config fixes the ledger-side constants for one service instance.
type Config struct {
	ChainName string
	Contract  domain.ContractHash
	Payment   uint64        // fee budget per deploy
	Module    []byte        // bootstrap code for registration
	Timeout   time.Duration // confirmation wait per write action
}

// Service drives the protocol's write path.
type Service struct {
	cfg     Config
	signer  Signer
	confirm *confirm.Manager
	log     zerolog.Logger
}

// New returns a write-path service for one signer.
func New(cfg Config, signer Signer, cm *confirm.Manager, log zerolog.Logger) *Service {
	return &Service{cfg: cfg, signer: signer, confirm: cm, log: log}
}

// RegisterGuardians registers the guardian set for an owner. This is the one
// bootstrap-mode action: a fresh owner has no stored contract reference yet,
// so the registration runs as one-shot module bytes that create the initial
// named state.
func (s *Service) RegisterGuardians(ctx context.Context, ownerKeyHex string, guardianKeyHexes []string, threshold uint) (domain.Result, error) {
	if len(s.cfg.Module) == 0 {
		return domain.Result{}, errors.New("register guardians: bootstrap module not configured")
	}
	owner, err := accountOf(ownerKeyHex)
	if err != nil {
		return domain.Result{}, err
	}
	guardians := make([]domain.AccountID, len(guardianKeyHexes))
	for i, g := range guardianKeyHexes {
		if guardians[i], err = accountOf(g); err != nil {
			return domain.Result{}, err
		}
	}

	args, err := registry.InitializeGuardiansArgs(owner, guardians, threshold)
	if err != nil {
		return domain.Result{}, err
	}
	s.log.Info().Str("owner", owner.Hex()).Int("guardians", len(guardians)).
		Uint("threshold", threshold).Msg("registering guardian set")
	return s.execute(ctx, deploy.ModuleBytes{Module: s.cfg.Module, Args: args})
}

// StartRecovery opens a recovery request for the target owner, naming the
// replacement public key. The ledger assigns the recovery id; callers learn
// it from the execution effects, not from this result.
func (s *Service) StartRecovery(ctx context.Context, targetKeyHex, replacementKeyHex string) (domain.Result, error) {
	target, err := accountOf(targetKeyHex)
	if err != nil {
		return domain.Result{}, err
	}
	replacement, err := crypto.ParsePublicKeyHex(replacementKeyHex)
	if err != nil {
		return domain.Result{}, err
	}

	args, err := registry.StartRecoveryArgs(target, replacement)
	if err != nil {
		return domain.Result{}, err
	}
	s.log.Info().Str("target", target.Hex()).Msg("starting recovery")
	return s.execute(ctx, s.storedCall(registry.EPStartRecovery, args))
}

// Approve records this signer's guardian approval of a recovery request.
// The contract enforces at-most-once approval per guardian; a duplicate
// comes back as an execution failure, not a client error.
func (s *Service) Approve(ctx context.Context, recoveryID string) (domain.Result, error) {
	return s.recoveryIDCall(ctx, registry.EPApproveRecovery, recoveryID, registry.ApproveArgs)
}

// CheckThreshold executes the on-chain threshold check for a request. There
// is no free query entry point, so the check runs as a transaction.
func (s *Service) CheckThreshold(ctx context.Context, recoveryID string) (domain.Result, error) {
	return s.recoveryIDCall(ctx, registry.EPCheckThreshold, recoveryID, registry.CheckThresholdArgs)
}

// Finalize consumes a recovery request whose approvals meet the threshold
// and installs the replacement key. Finalization is terminal.
func (s *Service) Finalize(ctx context.Context, recoveryID string) (domain.Result, error) {
	return s.recoveryIDCall(ctx, registry.EPFinalizeRecovery, recoveryID, registry.FinalizeArgs)
}

// HasGuardians executes the on-chain registration check for an account.
func (s *Service) HasGuardians(ctx context.Context, targetKeyHex string) (domain.Result, error) {
	return s.accountCall(ctx, registry.EPHasGuardians, targetKeyHex, registry.HasGuardiansArgs)
}

// GetGuardians executes the on-chain guardian-list fetch for an account.
func (s *Service) GetGuardians(ctx context.Context, targetKeyHex string) (domain.Result, error) {
	return s.accountCall(ctx, registry.EPGetGuardians, targetKeyHex, registry.GetGuardiansArgs)
}

func (s *Service) recoveryIDCall(ctx context.Context, entryPoint, recoveryID string,
	encode func(domain.RecoveryID) (encoding.Args, error)) (domain.Result, error) {

	id, err := domain.ParseRecoveryID(recoveryID)
	if err != nil {
		return domain.Result{}, err
	}
	args, err := encode(id)
	if err != nil {
		return domain.Result{}, err
	}
	s.log.Info().Str("entry_point", entryPoint).Str("recovery_id", id.String()).Msg("calling registry")
	return s.execute(ctx, s.storedCall(entryPoint, args))
}

func (s *Service) accountCall(ctx context.Context, entryPoint, targetKeyHex string,
	encode func(domain.AccountID) (encoding.Args, error)) (domain.Result, error) {

	target, err := accountOf(targetKeyHex)
	if err != nil {
		return domain.Result{}, err
	}
	args, err := encode(target)
	if err != nil {
		return domain.Result{}, err
	}
	s.log.Info().Str("entry_point", entryPoint).Str("account", target.Hex()).Msg("calling registry")
	return s.execute(ctx, s.storedCall(entryPoint, args))
}

func (s *Service) storedCall(entryPoint string, args encoding.Args) deploy.Session {
	return deploy.StoredContractByHash{
		Hash:       s.cfg.Contract,
		EntryPoint: entryPoint,
		Args:       args,
	}
}

// execute runs the shared build-sign-submit-await tail. From here on,
// trouble is reported inside the Result: the transaction artifact exists and
// the caller needs its id and message, not a control-flow error.
func (s *Service) execute(ctx context.Context, session deploy.Session) (domain.Result, error) {
	d, err := deploy.New(deploy.Params{
		Account:   s.signer.Public,
		ChainName: s.cfg.ChainName,
	}, deploy.Payment{Amount: s.cfg.Payment}, session)
	if err != nil {
		return domain.Result{}, err
	}
	if err := d.Sign(s.signer.Private); err != nil {
		return domain.Result{}, err
	}

	txID, err := s.confirm.Submit(ctx, d)
	if err != nil {
		return domain.Result{Success: false, Message: err.Error()}, nil
	}

	out := s.confirm.Await(ctx, txID, s.cfg.Timeout)
	switch out.Status {
	case domain.StatusSuccess:
		return domain.Result{TransactionID: txID, Success: true, Message: "executed"}, nil
	case domain.StatusFailure:
		return domain.Result{TransactionID: txID, Success: false, Message: out.Reason}, nil
	default:
		return domain.Result{
			TransactionID: txID,
			Success:       false,
			Message:       fmt.Sprintf("%s; transaction may still execute, re-poll its status", out.Reason),
		}, nil
	}
}

func accountOf(keyHex string) (domain.AccountID, error) {
	pub, err := crypto.ParsePublicKeyHex(keyHex)
	if err != nil {
		return domain.AccountID{}, err
	}
	return crypto.AccountIdentity(pub), nil
}
