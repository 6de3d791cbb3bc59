package recovery_test

import (
	"context"
	"crypto/ed25519"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyward/internal/confirm"
	"keyward/internal/crypto"
	"keyward/internal/deploy"
	"keyward/internal/domain"
	"keyward/internal/encoding"
	"keyward/internal/ledger"
	"keyward/internal/services/recovery"
	"keyward/internal/services/state"
)

const maxU256Dec = "115792089237316195423570985008687907853269984665640564039457584007913129639935"

func signerFromSeed(b byte) recovery.Signer {
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = b
	}
	return recovery.NewSigner(ed25519.NewKeyFromSeed(seed))
}

func keyHex(s recovery.Signer) string {
	return hex.EncodeToString(s.Public.Key)
}

type recoveryReq struct {
	target    domain.AccountID
	approvals map[domain.AccountID]bool
	finalized bool
}

// fakeRegistry executes submitted deploys against in-memory contract state
// and serves the named records the writes produce.
type fakeRegistry struct {
	t *testing.T

	guardians  map[domain.AccountID][]domain.AccountID
	thresholds map[domain.AccountID]uint8
	recoveries map[string]*recoveryReq
	records    map[string][]byte
	results    map[string]ledger.DeployInfo

	nextRecovery   uint64
	puts           int
	sawModuleBytes bool
	rejectPuts     error
}

func newFakeRegistry(t *testing.T) *fakeRegistry {
	return &fakeRegistry{
		t:          t,
		guardians:  make(map[domain.AccountID][]domain.AccountID),
		thresholds: make(map[domain.AccountID]uint8),
		recoveries: make(map[string]*recoveryReq),
		records:    make(map[string][]byte),
		results:    make(map[string]ledger.DeployInfo),
	}
}

func (f *fakeRegistry) StateRootHash(ctx context.Context) (string, error) {
	return "root", nil
}

func (f *fakeRegistry) QueryState(ctx context.Context, rootHash, key string, path []string) (ledger.StoredValue, error) {
	if len(path) != 1 {
		return ledger.StoredValue{}, domain.ErrNotFound
	}
	raw, ok := f.records[path[0]]
	if !ok {
		return ledger.StoredValue{}, domain.ErrNotFound
	}
	return ledger.StoredValue{Bytes: raw}, nil
}

func (f *fakeRegistry) PutDeploy(ctx context.Context, d *deploy.Deploy) (string, error) {
	if f.rejectPuts != nil {
		return "", f.rejectPuts
	}
	f.puts++

	blob, err := json.Marshal(d)
	require.NoError(f.t, err)
	var wire struct {
		Hash   string `json:"hash"`
		Header struct {
			Account string `json:"account"`
		} `json:"header"`
		Session map[string]map[string]string `json:"session"`
	}
	require.NoError(f.t, json.Unmarshal(blob, &wire))

	caller := identityOfHex(f.t, wire.Header.Account)
	var res ledger.ExecutionResult
	if mb, ok := wire.Session["ModuleBytes"]; ok {
		f.sawModuleBytes = true
		res = f.run(caller, "initialize_guardians", decodeArgs(f.t, mb["args"]))
	} else {
		sc, ok := wire.Session["StoredContractByHash"]
		require.True(f.t, ok, "unknown session mode")
		res = f.run(caller, sc["entry_point"], decodeArgs(f.t, sc["args"]))
	}
	f.results[wire.Hash] = ledger.DeployInfo{Executed: true, Result: res}
	return wire.Hash, nil
}

func (f *fakeRegistry) GetDeploy(ctx context.Context, txID string) (ledger.DeployInfo, error) {
	info, ok := f.results[txID]
	if !ok {
		return ledger.DeployInfo{}, domain.ErrNotFound
	}
	return info, nil
}

func (f *fakeRegistry) run(caller domain.AccountID, entryPoint string, args map[string][]byte) ledger.ExecutionResult {
	fail := func(msg string) ledger.ExecutionResult {
		return ledger.ExecutionResult{Success: false, Reason: msg}
	}
	switch entryPoint {
	case "initialize_guardians":
		owner := asID(f.t, args["owner"])
		if _, done := f.thresholds[owner]; done {
			return fail("guardians already initialized")
		}
		gs, err := encoding.DecodeIdentityList(args["guardians"])
		if err != nil {
			return fail("malformed guardian list")
		}
		threshold := args["threshold"][0]
		f.guardians[owner] = gs
		f.thresholds[owner] = threshold
		f.records[crypto.LookupKey(crypto.PrefixRegistered, owner)] = encoding.Bool(true).Bytes()
		f.records[crypto.LookupKey(crypto.PrefixGuardians, owner)] = encoding.IdentityList(gs).Bytes()
		f.records[crypto.LookupKey(crypto.PrefixThreshold, owner)] = []byte{threshold}
	case "start_recovery":
		target := asID(f.t, args["target"])
		if _, ok := f.thresholds[target]; !ok {
			return fail("no guardians registered for account")
		}
		f.nextRecovery++
		f.recoveries[u256Key(f.t, f.nextRecovery)] = &recoveryReq{
			target:    target,
			approvals: make(map[domain.AccountID]bool),
		}
	case "approve_recovery":
		req, ok := f.recoveries[hex.EncodeToString(args["recovery_id"])]
		if !ok {
			return fail("no such recovery request")
		}
		if !isGuardianOf(f.guardians[req.target], caller) {
			return fail("caller is not a guardian")
		}
		if req.approvals[caller] {
			return fail("guardian already approved")
		}
		req.approvals[caller] = true
	case "check_threshold":
		req, ok := f.recoveries[hex.EncodeToString(args["recovery_id"])]
		if !ok {
			return fail("no such recovery request")
		}
		if len(req.approvals) < int(f.thresholds[req.target]) {
			return fail("threshold not met")
		}
	case "finalize_recovery":
		req, ok := f.recoveries[hex.EncodeToString(args["recovery_id"])]
		if !ok {
			return fail("no such recovery request")
		}
		if req.finalized {
			return fail("recovery already finalized")
		}
		if len(req.approvals) < int(f.thresholds[req.target]) {
			return fail("threshold not met")
		}
		req.finalized = true
	case "has_guardians", "get_guardians":
	default:
		return fail("no such entry point")
	}
	return ledger.ExecutionResult{Success: true}
}

func identityOfHex(t *testing.T, keyHex string) domain.AccountID {
	t.Helper()
	pub, err := crypto.ParsePublicKeyHex(keyHex)
	require.NoError(t, err)
	return crypto.AccountIdentity(pub)
}

func asID(t *testing.T, raw []byte) domain.AccountID {
	t.Helper()
	require.Len(t, raw, 32)
	var id domain.AccountID
	copy(id[:], raw)
	return id
}

func isGuardianOf(guardians []domain.AccountID, caller domain.AccountID) bool {
	for _, g := range guardians {
		if g == caller {
			return true
		}
	}
	return false
}

func u256Key(t *testing.T, n uint64) string {
	t.Helper()
	id, err := domain.ParseRecoveryID(strconv.FormatUint(n, 10))
	require.NoError(t, err)
	return hex.EncodeToString(encoding.U256(id).Bytes())
}

// decodeArgs parses the argument wire form back into payloads by name.
func decodeArgs(t *testing.T, hexArgs string) map[string][]byte {
	t.Helper()
	raw, err := hex.DecodeString(hexArgs)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(raw), 4)
	count := binary.LittleEndian.Uint32(raw)
	raw = raw[4:]
	out := make(map[string][]byte, count)
	for i := uint32(0); i < count; i++ {
		n := binary.LittleEndian.Uint32(raw)
		name := string(raw[4 : 4+n])
		raw = raw[4+n:]
		pl := binary.LittleEndian.Uint32(raw)
		out[name] = raw[4 : 4+pl]
		raw = raw[4+pl+1:] // skip payload and kind tag
	}
	require.Empty(t, raw, "trailing bytes after last argument")
	return out
}

func serviceFor(fake *fakeRegistry, signer recovery.Signer) *recovery.Service {
	var contract domain.ContractHash
	contract[0] = 0xc0
	cfg := recovery.Config{
		ChainName: "keyward-test",
		Contract:  contract,
		Payment:   100_000_000,
		Module:    []byte{0x00, 0x61, 0x73, 0x6d},
		Timeout:   time.Second,
	}
	cm := confirm.New(fake, time.Millisecond, zerolog.Nop())
	return recovery.New(cfg, signer, cm, zerolog.Nop())
}

func TestRegisterGuardians(t *testing.T) {
	fake := newFakeRegistry(t)
	owner := signerFromSeed(1)
	g1, g2, g3 := signerFromSeed(2), signerFromSeed(3), signerFromSeed(4)
	svc := serviceFor(fake, owner)

	res, err := svc.RegisterGuardians(context.Background(), keyHex(owner),
		[]string{keyHex(g1), keyHex(g2), keyHex(g3)}, 2)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "executed", res.Message)
	assert.NotEmpty(t, res.TransactionID)
	assert.True(t, fake.sawModuleBytes, "registration must run as bootstrap code")

	var contract domain.ContractHash
	contract[0] = 0xc0
	reader := state.New(fake, contract, zerolog.Nop())
	assert.True(t, reader.IsRegistered(context.Background(), keyHex(owner)))
	assert.Len(t, reader.Guardians(context.Background(), keyHex(owner)), 3)
	assert.Equal(t, uint8(2), reader.Threshold(context.Background(), keyHex(owner)))
	assert.True(t, reader.IsGuardian(context.Background(), keyHex(owner), keyHex(g2)))
}

func TestRegisterGuardians_ValidationBeforeSubmit(t *testing.T) {
	fake := newFakeRegistry(t)
	owner := signerFromSeed(1)
	g1, g2 := signerFromSeed(2), signerFromSeed(3)
	svc := serviceFor(fake, owner)
	ctx := context.Background()

	_, err := svc.RegisterGuardians(ctx, "not-hex", []string{keyHex(g1)}, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidKeyEncoding)

	_, err = svc.RegisterGuardians(ctx, keyHex(owner), []string{keyHex(g1), "zz"}, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidKeyEncoding)

	_, err = svc.RegisterGuardians(ctx, keyHex(owner), []string{keyHex(g1), keyHex(g2)}, 3)
	assert.ErrorIs(t, err, domain.ErrSchemaMismatch)

	_, err = svc.RegisterGuardians(ctx, keyHex(owner), []string{keyHex(g1), keyHex(g1)}, 1)
	assert.ErrorIs(t, err, domain.ErrSchemaMismatch)

	assert.Zero(t, fake.puts, "invalid input must not reach the node")
}

func TestApprove_MalformedIDFailsBeforeSubmit(t *testing.T) {
	fake := newFakeRegistry(t)
	svc := serviceFor(fake, signerFromSeed(1))

	_, err := svc.Approve(context.Background(), "12x4")
	assert.ErrorIs(t, err, domain.ErrSchemaMismatch)
	assert.Zero(t, fake.puts)
}

func TestSubmissionFailureReportedInResult(t *testing.T) {
	fake := newFakeRegistry(t)
	fake.rejectPuts = errors.New("node unreachable")
	owner := signerFromSeed(1)
	svc := serviceFor(fake, owner)

	res, err := svc.StartRecovery(context.Background(), keyHex(owner), keyHex(signerFromSeed(9)))
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Empty(t, res.TransactionID)
	assert.Contains(t, res.Message, "node unreachable")
}

func TestRecoveryLifecycle(t *testing.T) {
	fake := newFakeRegistry(t)
	owner := signerFromSeed(1)
	g1, g2, g3 := signerFromSeed(2), signerFromSeed(3), signerFromSeed(4)
	stranger := signerFromSeed(5)
	replacement := signerFromSeed(6)
	ctx := context.Background()

	ownerSvc := serviceFor(fake, owner)
	g1Svc := serviceFor(fake, g1)
	g2Svc := serviceFor(fake, g2)
	strangerSvc := serviceFor(fake, stranger)

	res, err := ownerSvc.RegisterGuardians(ctx, keyHex(owner),
		[]string{keyHex(g1), keyHex(g2), keyHex(g3)}, 2)
	require.NoError(t, err)
	require.True(t, res.Success)

	res, err = g1Svc.StartRecovery(ctx, keyHex(owner), keyHex(replacement))
	require.NoError(t, err)
	require.True(t, res.Success, res.Message)

	// first guardian approves once; the second attempt is refused on-chain
	res, err = g1Svc.Approve(ctx, "1")
	require.NoError(t, err)
	assert.True(t, res.Success, res.Message)

	res, err = g1Svc.Approve(ctx, "1")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "guardian already approved", res.Message)

	res, err = strangerSvc.Approve(ctx, "1")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "caller is not a guardian", res.Message)

	res, err = ownerSvc.CheckThreshold(ctx, "1")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "threshold not met", res.Message)

	res, err = g2Svc.Approve(ctx, "1")
	require.NoError(t, err)
	assert.True(t, res.Success, res.Message)

	res, err = ownerSvc.CheckThreshold(ctx, "1")
	require.NoError(t, err)
	assert.True(t, res.Success, res.Message)

	res, err = ownerSvc.Finalize(ctx, "1")
	require.NoError(t, err)
	assert.True(t, res.Success, res.Message)

	res, err = ownerSvc.Finalize(ctx, "1")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "recovery already finalized", res.Message)
}

func TestRecoveryIDBoundary(t *testing.T) {
	fake := newFakeRegistry(t)
	svc := serviceFor(fake, signerFromSeed(1))

	// largest representable id still travels; it just names no request here
	res, err := svc.Approve(context.Background(), maxU256Dec)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "no such recovery request", res.Message)
	assert.Equal(t, 1, fake.puts)
}

func TestHasGuardians_RunsAsTransaction(t *testing.T) {
	fake := newFakeRegistry(t)
	owner := signerFromSeed(1)
	svc := serviceFor(fake, owner)

	res, err := svc.HasGuardians(context.Background(), keyHex(owner))
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.False(t, fake.sawModuleBytes, "lookups call the stored contract")
}

func TestRegisterGuardians_RequiresModule(t *testing.T) {
	fake := newFakeRegistry(t)
	owner := signerFromSeed(1)
	cm := confirm.New(fake, time.Millisecond, zerolog.Nop())
	svc := recovery.New(recovery.Config{ChainName: "keyward-test", Payment: 1}, owner, cm, zerolog.Nop())

	_, err := svc.RegisterGuardians(context.Background(), keyHex(owner),
		[]string{keyHex(signerFromSeed(2))}, 1)
	require.Error(t, err)
	assert.Zero(t, fake.puts)
}
