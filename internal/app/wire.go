package app

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"keyward/internal/confirm"
	"keyward/internal/domain"
	"keyward/internal/ledger"
	"keyward/internal/services/recovery"
	"keyward/internal/services/state"
	"keyward/internal/store"
)

// Wire bundles the clients, services and stores the CLI runs on.
type Wire struct {
	Config  Config
	Ledger  ledger.Client
	Confirm *confirm.Manager
	State   *state.Service
	Keys    *store.KeyStore
	Log     zerolog.Logger

	contract domain.ContractHash
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config, log zerolog.Logger) (*Wire, error) {
	var contract domain.ContractHash
	if cfg.ContractHash != "" {
		var err error
		if contract, err = domain.ParseContractHash(cfg.ContractHash); err != nil {
			return nil, err
		}
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	lc := ledger.NewRPC(cfg.NodeURL, httpClient, log)
	cm := confirm.New(lc, cfg.PollInterval.Duration, log)

	return &Wire{
		Config:   cfg,
		Ledger:   lc,
		Confirm:  cm,
		State:    state.New(lc, contract, log),
		Keys:     store.NewKeyStore(cfg.Home),
		Log:      log,
		contract: contract,
	}, nil
}

// Recovery unseals the signing key and builds the write-path service.
func (w *Wire) Recovery(passphrase string) (*recovery.Service, error) {
	priv, err := w.Keys.Load(passphrase)
	if err != nil {
		return nil, err
	}

	var module []byte
	if w.Config.ModulePath != "" {
		if module, err = os.ReadFile(w.Config.ModulePath); err != nil {
			return nil, fmt.Errorf("bootstrap module: %w", err)
		}
	}

	return recovery.New(recovery.Config{
		ChainName: w.Config.ChainName,
		Contract:  w.contract,
		Payment:   w.Config.Payment,
		Module:    module,
		Timeout:   w.Config.ConfirmTimeout.Duration,
	}, recovery.NewSigner(priv), w.Confirm, w.Log), nil
}
