package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"keyward/internal/app"
	"keyward/internal/domain"
	"keyward/internal/services/recovery"
)

var (
	cfgPath    string
	home       string
	nodeURL    string
	passphrase string
	verbose    bool

	wire *app.Wire
)

func Execute() error {
	root := &cobra.Command{
		Use:           "keyward",
		Short:         "Guardian-based account recovery client",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := zerolog.WarnLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				Level(level).With().Timestamp().Logger()

			cfg, err := app.Load(cfgPath)
			if err != nil {
				return err
			}
			if home != "" {
				cfg.Home = home
			}
			if cfg.Home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				cfg.Home = filepath.Join(dir, ".keyward")
			}
			if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
				return err
			}
			if nodeURL != "" {
				cfg.NodeURL = nodeURL
			}

			wire, err = app.NewWire(cfg, logger)
			return err
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "TOML config file")
	root.PersistentFlags().StringVar(&home, "home", "", "key directory (default ~/.keyward)")
	root.PersistentFlags().StringVar(&nodeURL, "node", "", "node JSON-RPC endpoint")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting the signing key")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		keyCmd(),
		registerCmd(),
		recoverCmd(),
		statusCmd(),
		guardiansCmd(),
		thresholdCmd(),
		registeredCmd(),
		isGuardianCmd(),
	)
	return root.Execute()
}

// signerService builds the write-path service, which needs the unsealed key.
func signerService() (*recovery.Service, error) {
	if passphrase == "" {
		return nil, fmt.Errorf("passphrase required (-p)")
	}
	return wire.Recovery(passphrase)
}

func printResult(res domain.Result) {
	fmt.Printf("transaction: %s\nsuccess:     %v\nmessage:     %s\n",
		res.TransactionID, res.Success, res.Message)
}
