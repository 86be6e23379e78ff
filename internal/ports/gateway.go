package ports

import (
	"context"

	"github.com/zainarain279/paws/internal/domain"
)

// Gateway is the remote quest service seen through one account's client.
// Implementations own transport-level retries; callers interpret the
// decoded envelopes.
type Gateway interface {
	// Authenticate exchanges the account's raw init payload for a bearer
	// token and the server-side user record.
	Authenticate(ctx context.Context, account domain.Account) (string, domain.UserRecord, error)
	CurrentUser(ctx context.Context, token string) (domain.UserRecord, error)
	LinkWallet(ctx context.Context, token string, wallet string) error

	// ListQuests fetches the quest list; questType is empty for the
	// ordinary list or a seasonal type selector.
	ListQuests(ctx context.Context, token string, questType string) ([]domain.Quest, error)
	CompleteQuest(ctx context.Context, token string, questID string) (domain.CompletionOutcome, error)
	ClaimQuest(ctx context.Context, token string, questID string) error
}

// GatewayFactory builds a Gateway bound to one account, so per-account
// proxy settings stay an account concern.
type GatewayFactory func(account domain.Account) Gateway
