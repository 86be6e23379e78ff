package application

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/zainarain279/paws/internal/domain"
	"github.com/zainarain279/paws/internal/ports"
)

// Session is the ephemeral pairing of an account with its current token,
// valid for one pass of the run loop.
type Session struct {
	Account      domain.Account
	Token        string
	Balance      float64
	WalletLinked bool
}

// SessionService owns the token lifecycle: it decides per account whether
// the stored token is still usable or must be replaced, and it is the only
// writer of the token store.
type SessionService struct {
	tokens ports.TokenStore
	clock  ports.Clock
	log    *zap.Logger
}

func NewSessionService(tokens ports.TokenStore, clock ports.Clock, log *zap.Logger) *SessionService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &SessionService{tokens: tokens, clock: clock, log: log}
}

// EnsureSession returns a usable session for the account, authenticating
// and persisting a fresh token when the stored one is absent or expired,
// or refreshing the user record when it is still valid. A server-side
// unlinked wallet is linked on the way; link failures are logged but never
// block the session.
func (s *SessionService) EnsureSession(ctx context.Context, gateway ports.Gateway, account domain.Account) (Session, error) {
	stored, err := s.tokens.Get(ctx, account.ID)
	if err != nil && !errors.Is(err, domain.ErrTokenNotFound) {
		return Session{}, fmt.Errorf("load stored token: %w", err)
	}

	session := Session{Account: account}

	var user domain.UserRecord
	if stored == "" || domain.TokenExpired(stored, s.clock.Now()) {
		token, record, err := gateway.Authenticate(ctx, account)
		if err != nil {
			return Session{}, fmt.Errorf("authenticate account %s: %w", account.ID, err)
		}
		if err := s.tokens.Put(ctx, account.ID, token); err != nil {
			return Session{}, fmt.Errorf("persist token for account %s: %w", account.ID, err)
		}

		s.log.Info("authenticated",
			zap.String("account", string(account.ID)),
			zap.String("name", account.Name))

		session.Token = token
		user = record
	} else {
		record, err := gateway.CurrentUser(ctx, stored)
		if err != nil {
			return Session{}, fmt.Errorf("refresh account %s: %w", account.ID, err)
		}

		session.Token = stored
		user = record
	}

	session.Balance = user.Balance
	session.WalletLinked = user.WalletLinked()

	if !session.WalletLinked && account.Wallet != "" {
		if err := gateway.LinkWallet(ctx, session.Token, account.Wallet); err != nil {
			s.log.Warn("wallet link failed",
				zap.String("account", string(account.ID)),
				zap.Error(err))
		} else {
			s.log.Info("wallet linked",
				zap.String("account", string(account.ID)),
				zap.String("wallet", account.Wallet))
			session.WalletLinked = true
		}
	}

	return session, nil
}

// DropToken removes the stored token for an account, forcing a fresh
// authentication on the next pass.
func (s *SessionService) DropToken(ctx context.Context, id domain.AccountID) error {
	if err := s.tokens.Delete(ctx, id); err != nil {
		return fmt.Errorf("drop token for account %s: %w", id, err)
	}
	return nil
}

// StoredToken returns the currently persisted token for an account along
// with its expiry verdict.
func (s *SessionService) StoredToken(ctx context.Context, id domain.AccountID) (string, bool, error) {
	token, err := s.tokens.Get(ctx, id)
	if err != nil {
		return "", false, err
	}

	return token, domain.TokenExpired(token, s.clock.Now()), nil
}
