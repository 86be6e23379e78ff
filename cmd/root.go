package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "paws",
		Short:         "paws: unattended quest automation for PAWS accounts",
		Long:          "paws authenticates the configured accounts against the PAWS community API, keeps their bearer tokens on disk, links payout wallets, and completes and claims reward quests on a daily cycle.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newAccountCmd(app),
		newTokenCmd(app),
		newStatusCmd(app),
		newRunCmd(app),
	)

	return rootCmd
}
