package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zainarain279/paws/internal/application"
)

func newRunCmd(app *app) *cobra.Command {
	var quests bool
	var seasonal bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the quest automation loop",
		Long:  "Authenticates every configured account, links wallets, completes and claims quests, then sleeps for the cycle interval and repeats until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// The two gates are captured once, before the loop starts, and
			// hold for the whole run.
			var err error
			if !cmd.Flags().Changed("quests") {
				quests, err = promptYesNo(cmd, "Process quests?")
				if err != nil {
					return err
				}
			}
			if !cmd.Flags().Changed("seasonal") {
				seasonal, err = promptYesNo(cmd, "Process seasonal quests?")
				if err != nil {
					return err
				}
			}

			accounts, err := app.source.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("load accounts: %w", err)
			}
			if len(accounts) == 0 {
				return errors.New("no accounts configured")
			}

			cfg := app.runnerCfg
			cfg.Quests = quests
			cfg.SeasonalQuests = seasonal

			runner := application.NewRunner(accounts, app.gateways, app.sessions, app.quests, cfg, app.log)

			if err := runner.Run(cmd.Context()); err != nil {
				if errors.Is(err, context.Canceled) {
					app.log.Info("shutting down")
					return nil
				}
				return err
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&quests, "quests", true, "Process ordinary quests (asked interactively when unset)")
	cmd.Flags().BoolVar(&seasonal, "seasonal", false, "Process seasonal quests (asked interactively when unset)")

	return cmd
}

func promptYesNo(cmd *cobra.Command, question string) (bool, error) {
	reader := bufio.NewReader(cmd.InOrStdin())
	for {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s [y/n]: ", question); err != nil {
			return false, err
		}

		line, err := reader.ReadString('\n')
		if err != nil {
			return false, fmt.Errorf("read answer: %w", err)
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
	}
}
