package application

import (
	"context"
	"errors"

	"github.com/zainarain279/paws/internal/domain"
)

type fakeTokenStore struct {
	tokens  map[domain.AccountID]string
	puts    int
	putErr  error
	getErr  error
	deletes int
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[domain.AccountID]string{}}
}

func (s *fakeTokenStore) Get(_ context.Context, id domain.AccountID) (string, error) {
	if s.getErr != nil {
		return "", s.getErr
	}
	token, ok := s.tokens[id]
	if !ok {
		return "", domain.ErrTokenNotFound
	}
	return token, nil
}

func (s *fakeTokenStore) Put(_ context.Context, id domain.AccountID, token string) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.puts++
	s.tokens[id] = token
	return nil
}

func (s *fakeTokenStore) Delete(_ context.Context, id domain.AccountID) error {
	s.deletes++
	delete(s.tokens, id)
	return nil
}

type fakeGateway struct {
	authToken string
	authUser  domain.UserRecord
	authErr   error
	authCalls int

	userRecord domain.UserRecord
	userErr    error
	userCalls  int

	linkErr   error
	linkCalls []string

	quests    map[string][]domain.Quest
	listErr   error
	listTypes []string

	outcomes      map[string]domain.CompletionOutcome
	completeErrs  map[string]error
	completeCalls []string

	claimErrs  map[string]error
	claimCalls []string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		quests:       map[string][]domain.Quest{},
		outcomes:     map[string]domain.CompletionOutcome{},
		completeErrs: map[string]error{},
		claimErrs:    map[string]error{},
	}
}

func (g *fakeGateway) Authenticate(_ context.Context, _ domain.Account) (string, domain.UserRecord, error) {
	g.authCalls++
	if g.authErr != nil {
		return "", domain.UserRecord{}, g.authErr
	}
	return g.authToken, g.authUser, nil
}

func (g *fakeGateway) CurrentUser(_ context.Context, _ string) (domain.UserRecord, error) {
	g.userCalls++
	if g.userErr != nil {
		return domain.UserRecord{}, g.userErr
	}
	return g.userRecord, nil
}

func (g *fakeGateway) LinkWallet(_ context.Context, _ string, wallet string) error {
	g.linkCalls = append(g.linkCalls, wallet)
	return g.linkErr
}

func (g *fakeGateway) ListQuests(_ context.Context, _ string, questType string) ([]domain.Quest, error) {
	g.listTypes = append(g.listTypes, questType)
	if g.listErr != nil {
		return nil, g.listErr
	}
	return g.quests[questType], nil
}

func (g *fakeGateway) CompleteQuest(_ context.Context, _ string, questID string) (domain.CompletionOutcome, error) {
	g.completeCalls = append(g.completeCalls, questID)
	if err := g.completeErrs[questID]; err != nil {
		return domain.CompletionNotEligible, err
	}
	return g.outcomes[questID], nil
}

func (g *fakeGateway) ClaimQuest(_ context.Context, _ string, questID string) error {
	g.claimCalls = append(g.claimCalls, questID)
	return g.claimErrs[questID]
}

var errBoom = errors.New("boom")
