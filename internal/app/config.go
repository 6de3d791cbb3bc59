package app

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// Duration wraps time.Duration so TOML values can be written as "90s".
type Duration struct {
	time.Duration
}

// UnmarshalText parses the usual Go duration syntax.
func (d *Duration) UnmarshalText(text []byte) error {
	dur, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = dur
	return nil
}

// Config holds runtime wiring options for building the app.
type Config struct {
	Home           string   `toml:"home"`            // key/config directory, e.g. $HOME/.keyward
	NodeURL        string   `toml:"node_url"`        // node JSON-RPC endpoint
	ChainName      string   `toml:"chain"`           // target chain name in deploy headers
	ContractHash   string   `toml:"contract_hash"`   // registry contract, 64 hex chars
	ModulePath     string   `toml:"module_path"`     // bootstrap module for registration
	Payment        uint64   `toml:"payment"`         // fee budget per deploy
	PollInterval   Duration `toml:"poll_interval"`   // confirmation poll spacing
	ConfirmTimeout Duration `toml:"confirm_timeout"` // per-action confirmation wait
}

// Default returns the baseline configuration before file and flag overrides.
func Default() Config {
	return Config{
		NodeURL:        "http://127.0.0.1:7777/rpc",
		ChainName:      "keyward-test",
		Payment:        100_000_000,
		PollInterval:   Duration{2 * time.Second},
		ConfirmTimeout: Duration{3 * time.Minute},
	}
}

// Load reads a TOML config file over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}
