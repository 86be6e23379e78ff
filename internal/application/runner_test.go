package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zainarain279/paws/internal/domain"
	"github.com/zainarain279/paws/internal/ports"
)

func runnerFixture(t *testing.T, accounts []domain.Account, gateways map[domain.AccountID]*fakeGateway, cfg RunnerConfig) *Runner {
	t.Helper()

	store := newFakeTokenStore()
	for _, account := range accounts {
		store.tokens[account.ID] = tokenWithExp(t, 0)
	}

	factory := func(account domain.Account) ports.Gateway {
		return gateways[account.ID]
	}

	sessions := NewSessionService(store, fixedClock{now: testNow}, nil)
	quests := NewQuestService(nil, WithQuestPacing(0, 0))
	cfg.AccountPause = 0

	return NewRunner(accounts, factory, sessions, quests, cfg, nil)
}

func TestRunCycleProcessesEveryAccount(t *testing.T) {
	accounts := []domain.Account{{ID: "1", Name: "Ann"}, {ID: "2", Name: "Bob"}}
	gateways := map[domain.AccountID]*fakeGateway{
		"1": newFakeGateway(),
		"2": newFakeGateway(),
	}
	gateways["1"].quests[""] = []domain.Quest{{ID: "q1"}}
	gateways["2"].quests[""] = []domain.Quest{{ID: "q2"}}

	runner := runnerFixture(t, accounts, gateways, RunnerConfig{Quests: true})
	runner.RunCycle(context.Background())

	assert.Equal(t, []string{"q1"}, gateways["1"].completeCalls)
	assert.Equal(t, []string{"q2"}, gateways["2"].completeCalls)
}

func TestRunCycleSkipsFailedAccountAndContinues(t *testing.T) {
	accounts := []domain.Account{{ID: "1", Name: "Ann"}, {ID: "2", Name: "Bob"}}
	gateways := map[domain.AccountID]*fakeGateway{
		"1": newFakeGateway(),
		"2": newFakeGateway(),
	}
	gateways["1"].userErr = errBoom
	gateways["2"].quests[""] = []domain.Quest{{ID: "q2"}}

	runner := runnerFixture(t, accounts, gateways, RunnerConfig{Quests: true})
	runner.RunCycle(context.Background())

	assert.Empty(t, gateways["1"].completeCalls)
	assert.Equal(t, []string{"q2"}, gateways["2"].completeCalls)
}

func TestRunCycleRespectsQuestGates(t *testing.T) {
	accounts := []domain.Account{{ID: "1", Name: "Ann"}}
	gateways := map[domain.AccountID]*fakeGateway{"1": newFakeGateway()}

	runner := runnerFixture(t, accounts, gateways, RunnerConfig{})
	runner.RunCycle(context.Background())

	assert.Equal(t, 1, gateways["1"].userCalls)
	assert.Empty(t, gateways["1"].listTypes)
}

func TestRunCycleSeasonalGateSelectsSeasonalList(t *testing.T) {
	accounts := []domain.Account{{ID: "1", Name: "Ann"}}
	gateways := map[domain.AccountID]*fakeGateway{"1": newFakeGateway()}

	runner := runnerFixture(t, accounts, gateways, RunnerConfig{SeasonalQuests: true})
	runner.RunCycle(context.Background())

	assert.Equal(t, []string{"christmas"}, gateways["1"].listTypes)
}

func TestRunReturnsWhenContextIsCancelled(t *testing.T) {
	accounts := []domain.Account{{ID: "1", Name: "Ann"}}
	gateways := map[domain.AccountID]*fakeGateway{"1": newFakeGateway()}

	runner := runnerFixture(t, accounts, gateways, RunnerConfig{CycleInterval: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- runner.Run(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop after cancellation")
	}
}

func TestSnapshotCapturesPerAccountFailures(t *testing.T) {
	accounts := []domain.Account{{ID: "1", Name: "Ann"}, {ID: "2", Name: "Bob"}}
	gateways := map[domain.AccountID]*fakeGateway{
		"1": newFakeGateway(),
		"2": newFakeGateway(),
	}
	gateways["1"].userRecord = domain.UserRecord{ID: "1", Balance: 4200, Wallet: "UQwallet"}
	gateways["2"].userErr = errBoom

	store := newFakeTokenStore()
	for _, account := range accounts {
		store.tokens[account.ID] = tokenWithExp(t, 0)
	}
	sessions := NewSessionService(store, fixedClock{now: testNow}, nil)
	factory := func(account domain.Account) ports.Gateway { return gateways[account.ID] }

	statuses := Snapshot(context.Background(), sessions, factory, accounts)
	require.Len(t, statuses, 2)

	assert.NoError(t, statuses[0].Err)
	assert.Equal(t, 4200.0, statuses[0].Balance)
	assert.True(t, statuses[0].WalletLinked)

	require.Error(t, statuses[1].Err)
	assert.ErrorIs(t, statuses[1].Err, errBoom)
}
