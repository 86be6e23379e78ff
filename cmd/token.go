package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zainarain279/paws/internal/domain"
)

func newTokenCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Inspect or drop stored bearer tokens",
	}

	cmd.AddCommand(
		newTokenShowCmd(app),
		newTokenClearCmd(app),
	)

	return cmd
}

func newTokenShowCmd(app *app) *cobra.Command {
	var accountID string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the stored token for an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, expired, err := app.sessions.StoredToken(cmd.Context(), domain.AccountID(accountID))
			if err != nil {
				if errors.Is(err, domain.ErrTokenNotFound) {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "no token stored for account %s\n", accountID)
					return nil
				}
				return err
			}

			state := "valid"
			if expired {
				state = "expired"
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", state, token)
			return err
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "External account id")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}

func newTokenClearCmd(app *app) *cobra.Command {
	var accountID string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Drop the stored token so the next run re-authenticates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.sessions.DropToken(cmd.Context(), domain.AccountID(accountID))
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "External account id")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}
