package application

import (
	"context"

	"github.com/zainarain279/paws/internal/domain"
	"github.com/zainarain279/paws/internal/ports"
)

// Status is one account's view for rendering: either a live session or
// the error that prevented one.
type Status struct {
	Account      domain.Account
	Balance      float64
	WalletLinked bool
	Err          error
}

// Snapshot resolves a session for every account and collects the results.
// Failures are captured per account instead of aborting the snapshot.
func Snapshot(ctx context.Context, sessions *SessionService, gateways ports.GatewayFactory, accounts []domain.Account) []Status {
	statuses := make([]Status, 0, len(accounts))
	for _, account := range accounts {
		if ctx.Err() != nil {
			break
		}

		session, err := sessions.EnsureSession(ctx, gateways(account), account)
		if err != nil {
			statuses = append(statuses, Status{Account: account, Err: err})
			continue
		}

		statuses = append(statuses, Status{
			Account:      account,
			Balance:      session.Balance,
			WalletLinked: session.WalletLinked,
		})
	}

	return statuses
}
