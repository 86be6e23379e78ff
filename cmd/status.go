package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	statusrender "github.com/zainarain279/paws/internal/adapters/render/status"
	"github.com/zainarain279/paws/internal/application"
)

func newStatusCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Resolve a session for every account and show balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			accounts, err := app.source.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("load accounts: %w", err)
			}

			var statuses []application.Status
			fetch := func(ctx context.Context) error {
				statuses = application.Snapshot(ctx, app.sessions, app.gateways, accounts)
				return nil
			}

			if err := runStatusFetchSpinner(cmd.Context(), cmd.ErrOrStderr(), fetch); err != nil {
				return err
			}

			rendered, err := statusrender.Render(statuses)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}
}
