package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"keyward/internal/store"
)

func registerCmd() *cobra.Command {
	var (
		owner     string
		guardians []string
		threshold uint
	)
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a guardian set for an owner account",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := signerService()
			if err != nil {
				return err
			}
			if owner == "" {
				// Default to registering for the signer itself.
				priv, err := wire.Keys.Load(passphrase)
				if err != nil {
					return err
				}
				owner = store.Public(priv).Hex()
			}
			if len(guardians) == 0 {
				return fmt.Errorf("at least one --guardian required")
			}

			res, err := svc.RegisterGuardians(cmd.Context(), owner, guardians, threshold)
			if err != nil {
				return err
			}
			printResult(res)
			return nil
		},
	}
	cmd.Flags().StringVar(&owner, "owner", "", "owner public key hex (default: the signer)")
	cmd.Flags().StringSliceVar(&guardians, "guardian", nil, "guardian public key hex (repeatable)")
	cmd.Flags().UintVar(&threshold, "threshold", 0, "approvals required to finalize a recovery")
	return cmd
}
