package application

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/zainarain279/paws/internal/domain"
	"github.com/zainarain279/paws/internal/ports"
)

const (
	defaultCycleInterval = 24 * time.Hour
	defaultAccountPause  = 5 * time.Second
)

// RunnerConfig gates quest processing and sets the loop's pacing. The
// quest gates are captured once before the loop starts and never change
// for the life of the run.
type RunnerConfig struct {
	Quests         bool
	SeasonalQuests bool
	CycleInterval  time.Duration
	AccountPause   time.Duration
}

func (c RunnerConfig) withDefaults() RunnerConfig {
	if c.CycleInterval <= 0 {
		c.CycleInterval = defaultCycleInterval
	}
	if c.AccountPause < 0 {
		c.AccountPause = defaultAccountPause
	}
	return c
}

// Runner visits every account in fixed order once per cycle, resolves its
// session and runs the enabled quest passes, then sleeps for the cycle
// interval and starts over. Accounts are processed strictly sequentially;
// one account's failure only costs that account its cycle.
type Runner struct {
	accounts []domain.Account
	gateways ports.GatewayFactory
	sessions *SessionService
	quests   *QuestService
	cfg      RunnerConfig
	log      *zap.Logger
}

func NewRunner(accounts []domain.Account, gateways ports.GatewayFactory, sessions *SessionService, quests *QuestService, cfg RunnerConfig, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}

	return &Runner{
		accounts: accounts,
		gateways: gateways,
		sessions: sessions,
		quests:   quests,
		cfg:      cfg.withDefaults(),
		log:      log,
	}
}

// Run loops forever; it returns only when the context is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	for cycle := 1; ; cycle++ {
		r.log.Info("cycle started",
			zap.Int("cycle", cycle),
			zap.Int("accounts", len(r.accounts)))

		r.RunCycle(ctx)

		if err := ctx.Err(); err != nil {
			return err
		}

		r.log.Info("cycle finished, sleeping",
			zap.Int("cycle", cycle),
			zap.Duration("interval", r.cfg.CycleInterval))

		if !wait(ctx, r.cfg.CycleInterval) {
			return ctx.Err()
		}
	}
}

// RunCycle performs one pass over all accounts.
func (r *Runner) RunCycle(ctx context.Context) {
	for _, account := range r.accounts {
		if ctx.Err() != nil {
			return
		}

		gateway := r.gateways(account)

		session, err := r.sessions.EnsureSession(ctx, gateway, account)
		if err != nil {
			r.log.Error("account skipped for this cycle",
				zap.String("account", string(account.ID)),
				zap.String("name", account.Name),
				zap.Error(err))
			continue
		}

		r.log.Info("session ready",
			zap.String("account", string(account.ID)),
			zap.String("name", account.Name),
			zap.Float64("balance", session.Balance),
			zap.Bool("wallet_linked", session.WalletLinked))

		if r.cfg.Quests {
			r.quests.ProcessQuests(ctx, gateway, session.Token)
		}
		if r.cfg.SeasonalQuests {
			r.quests.ProcessSeasonalQuests(ctx, gateway, session.Token)
		}

		if !wait(ctx, r.cfg.AccountPause) {
			return
		}
	}
}

// wait blocks for d or until the context is cancelled, reporting whether
// the full duration elapsed.
func wait(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
