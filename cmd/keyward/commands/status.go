package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"keyward/internal/domain"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [transaction-id]",
		Short: "One-shot probe of a submitted transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := wire.Confirm.Status(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("status: %s\n", out.Status)
			if out.Status == domain.StatusFailure {
				fmt.Printf("reason: %s\n", out.Reason)
			}
			return nil
		},
	}
}
