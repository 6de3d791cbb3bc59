package commands

import (
	"context"

	"github.com/spf13/cobra"

	"keyward/internal/domain"
)

func recoverCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recover",
		Short: "Drive a recovery request through its lifecycle",
	}
	cmd.AddCommand(
		recoverStartCmd(),
		recoveryIDSubcmd("approve", "Approve a recovery request as a guardian",
			func(ctx context.Context, id string) (domain.Result, error) {
				svc, err := signerService()
				if err != nil {
					return domain.Result{}, err
				}
				return svc.Approve(ctx, id)
			}),
		recoveryIDSubcmd("check", "Run the on-chain threshold check for a request",
			func(ctx context.Context, id string) (domain.Result, error) {
				svc, err := signerService()
				if err != nil {
					return domain.Result{}, err
				}
				return svc.CheckThreshold(ctx, id)
			}),
		recoveryIDSubcmd("finalize", "Finalize a request and install the replacement key",
			func(ctx context.Context, id string) (domain.Result, error) {
				svc, err := signerService()
				if err != nil {
					return domain.Result{}, err
				}
				return svc.Finalize(ctx, id)
			}),
	)
	return cmd
}

func recoverStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start [target-key-hex] [replacement-key-hex]",
		Short: "Open a recovery request naming a replacement key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := signerService()
			if err != nil {
				return err
			}
			res, err := svc.StartRecovery(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			printResult(res)
			return nil
		},
	}
}

func recoveryIDSubcmd(use, short string, run func(context.Context, string) (domain.Result, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [recovery-id]",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := run(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printResult(res)
			return nil
		},
	}
}
