package ports

import (
	"context"

	"github.com/zainarain279/paws/internal/domain"
)

// AccountSource loads the configured account book once at startup.
type AccountSource interface {
	Load(ctx context.Context) ([]domain.Account, error)
}
