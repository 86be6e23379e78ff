package ports

import (
	"context"

	"github.com/zainarain279/paws/internal/domain"
)

// TokenStore holds at most one current bearer token per account id.
type TokenStore interface {
	Get(ctx context.Context, id domain.AccountID) (string, error)
	Put(ctx context.Context, id domain.AccountID, token string) error
	Delete(ctx context.Context, id domain.AccountID) error
}
