package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func guardiansCmd() *cobra.Command {
	var onchain bool
	cmd := &cobra.Command{
		Use:   "guardians [owner-key-hex]",
		Short: "List the guardian identities registered for an owner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if onchain {
				svc, err := signerService()
				if err != nil {
					return err
				}
				res, err := svc.GetGuardians(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				printResult(res)
				return nil
			}

			set, ok := wire.State.Set(cmd.Context(), args[0])
			if !ok {
				fmt.Println("no guardians registered")
				return nil
			}
			for i, g := range set.Guardians {
				fmt.Printf("%d. %s\n", i+1, g.Hex())
			}
			fmt.Printf("threshold: %d of %d\n", set.Threshold, len(set.Guardians))
			return nil
		},
	}
	cmd.Flags().BoolVar(&onchain, "onchain", false, "execute the registry's get_guardians entry point instead of reading state")
	return cmd
}

func thresholdCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "threshold [owner-key-hex]",
		Short: "Print the owner's approval threshold (0 = none configured)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(wire.State.Threshold(cmd.Context(), args[0]))
			return nil
		},
	}
}

func registeredCmd() *cobra.Command {
	var onchain bool
	cmd := &cobra.Command{
		Use:   "registered [owner-key-hex]",
		Short: "Report whether the owner has a guardian set registered",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if onchain {
				svc, err := signerService()
				if err != nil {
					return err
				}
				res, err := svc.HasGuardians(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				printResult(res)
				return nil
			}
			fmt.Println(wire.State.IsRegistered(cmd.Context(), args[0]))
			return nil
		},
	}
	cmd.Flags().BoolVar(&onchain, "onchain", false, "execute the registry's has_guardians entry point instead of reading state")
	return cmd
}

func isGuardianCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "is-guardian [owner-key-hex] [guardian-key-hex]",
		Short: "Report whether a key is one of the owner's guardians",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(wire.State.IsGuardian(cmd.Context(), args[0], args[1]))
			return nil
		},
	}
}
