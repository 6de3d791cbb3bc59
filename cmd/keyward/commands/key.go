package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"keyward/internal/crypto"
	"keyward/internal/store"
)

func keyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the local signing key",
	}
	cmd.AddCommand(keyInitCmd(), keyShowCmd())
	return cmd
}

func keyInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Generate a signing key and store it sealed",
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			if wire.Keys.Exists() {
				return fmt.Errorf("a signing key already exists in %s", wire.Config.Home)
			}
			pub, err := wire.Keys.Generate(passphrase)
			if err != nil {
				return err
			}
			fmt.Printf("Signing key created.\nPublic key: %s\nAccount:    %s\n",
				pub.Hex(), crypto.AccountIdentity(pub).Hex())
			return nil
		},
	}
}

func keyShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the public key and account identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			priv, err := wire.Keys.Load(passphrase)
			if err != nil {
				return err
			}
			pub := store.Public(priv)
			fmt.Printf("Public key: %s\nAccount:    %s\n",
				pub.Hex(), crypto.AccountIdentity(pub).Hex())
			return nil
		},
	}
}
