package deploy_test

import (
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyward/internal/deploy"
	"keyward/internal/domain"
	"keyward/internal/encoding"
)

func testParams(t *testing.T) deploy.Params {
	t.Helper()
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	return deploy.Params{
		Account:   domain.PublicKey{Algo: domain.AlgoEd25519, Key: pub},
		ChainName: "keyward-test",
		Timestamp: time.Unix(1700000000, 0).UTC(),
		TTL:       30 * time.Minute,
	}
}

func storedSession() deploy.Session {
	var hash domain.ContractHash
	hash[0] = 0xc0
	var acct domain.AccountID
	args := encoding.Args{{Name: "account", Value: encoding.Identity(acct)}}
	return deploy.StoredContractByHash{Hash: hash, EntryPoint: "has_guardians", Args: args}
}

func TestNew_HashesAreDeterministic(t *testing.T) {
	params := testParams(t)

	a, err := deploy.New(params, deploy.Payment{Amount: 1000}, storedSession())
	require.NoError(t, err)
	b, err := deploy.New(params, deploy.Payment{Amount: 1000}, storedSession())
	require.NoError(t, err)

	assert.Equal(t, a.Hash(), b.Hash())
	assert.Equal(t, a.BodyHash(), b.BodyHash())
	assert.Len(t, a.Hash(), 64)
}

func TestNew_HashBindsHeaderAndBody(t *testing.T) {
	params := testParams(t)
	base, err := deploy.New(params, deploy.Payment{Amount: 1000}, storedSession())
	require.NoError(t, err)

	otherChain := params
	otherChain.ChainName = "keyward-main"
	changed, err := deploy.New(otherChain, deploy.Payment{Amount: 1000}, storedSession())
	require.NoError(t, err)
	assert.NotEqual(t, base.Hash(), changed.Hash())

	higherFee, err := deploy.New(params, deploy.Payment{Amount: 2000}, storedSession())
	require.NoError(t, err)
	assert.NotEqual(t, base.BodyHash(), higherFee.BodyHash())
	assert.NotEqual(t, base.Hash(), higherFee.Hash())
}

func TestNew_Validation(t *testing.T) {
	params := testParams(t)

	_, err := deploy.New(deploy.Params{ChainName: "x"}, deploy.Payment{}, storedSession())
	assert.Error(t, err)

	noChain := params
	noChain.ChainName = ""
	_, err = deploy.New(noChain, deploy.Payment{}, storedSession())
	assert.Error(t, err)

	_, err = deploy.New(params, deploy.Payment{}, nil)
	assert.Error(t, err)
}

func TestSign_SignatureCoversDeployHash(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	params := testParams(t)
	params.Account = domain.PublicKey{Algo: domain.AlgoEd25519, Key: pub}
	d, err := deploy.New(params, deploy.Payment{Amount: 1}, storedSession())
	require.NoError(t, err)
	require.NoError(t, d.Sign(priv))

	approvals := d.Approvals()
	require.Len(t, approvals, 1)
	assert.Equal(t, params.Account.Hex(), approvals[0].Signer)

	hash, err := hex.DecodeString(d.Hash())
	require.NoError(t, err)
	sig, err := hex.DecodeString(approvals[0].Signature)
	require.NoError(t, err)
	assert.True(t, ed25519.Verify(pub, hash, sig))
}

func TestSign_RejectsBadKeyLength(t *testing.T) {
	d, err := deploy.New(testParams(t), deploy.Payment{Amount: 1}, storedSession())
	require.NoError(t, err)
	assert.Error(t, d.Sign(make([]byte, 10)))
}

func TestMarshalJSON_SessionModes(t *testing.T) {
	params := testParams(t)

	stored, err := deploy.New(params, deploy.Payment{Amount: 5}, storedSession())
	require.NoError(t, err)
	blob, err := json.Marshal(stored)
	require.NoError(t, err)
	assert.Contains(t, string(blob), "StoredContractByHash")
	assert.Contains(t, string(blob), "has_guardians")

	boot, err := deploy.New(params, deploy.Payment{Amount: 5},
		deploy.ModuleBytes{Module: []byte{0x00, 0x61, 0x73, 0x6d}})
	require.NoError(t, err)
	blob, err = json.Marshal(boot)
	require.NoError(t, err)
	assert.Contains(t, string(blob), "ModuleBytes")
	assert.Contains(t, string(blob), "0061736d")
}
