package application

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/zainarain279/paws/internal/domain"
	"github.com/zainarain279/paws/internal/ports"
)

const seasonalListType = "christmas"

const (
	defaultQuestPause    = 2 * time.Second
	defaultSeasonalPause = 3 * time.Second
)

// QuestService drives quests through the list -> complete -> claim
// progression. One failing quest never aborts the batch, and a fixed pause
// between quests keeps the client under the service's rate limits.
type QuestService struct {
	questPause    time.Duration
	seasonalPause time.Duration
	log           *zap.Logger
}

type QuestServiceOption func(*QuestService)

// WithQuestPacing overrides the inter-quest pauses, mainly for tests.
func WithQuestPacing(ordinary, seasonal time.Duration) QuestServiceOption {
	return func(s *QuestService) {
		s.questPause = ordinary
		s.seasonalPause = seasonal
	}
}

func NewQuestService(log *zap.Logger, opts ...QuestServiceOption) *QuestService {
	if log == nil {
		log = zap.NewNop()
	}

	service := &QuestService{
		questPause:    defaultQuestPause,
		seasonalPause: defaultSeasonalPause,
		log:           log,
	}
	for _, opt := range opts {
		opt(service)
	}

	return service
}

// ProcessQuests completes and claims every unclaimed ordinary quest.
func (s *QuestService) ProcessQuests(ctx context.Context, gateway ports.Gateway, token string) {
	quests, err := gateway.ListQuests(ctx, token, "")
	if err != nil {
		s.log.Warn("quest list failed", zap.Error(err))
		return
	}

	s.processBatch(ctx, gateway, token, domain.Pending(quests), s.questPause)
}

// ProcessSeasonalQuests completes and claims the open quests of the
// time-boxed seasonal series.
func (s *QuestService) ProcessSeasonalQuests(ctx context.Context, gateway ports.Gateway, token string) {
	quests, err := gateway.ListQuests(ctx, token, seasonalListType)
	if err != nil {
		s.log.Warn("seasonal quest list failed", zap.Error(err))
		return
	}

	s.processBatch(ctx, gateway, token, domain.PendingSeasonal(quests), s.seasonalPause)
}

func (s *QuestService) processBatch(ctx context.Context, gateway ports.Gateway, token string, quests []domain.Quest, pause time.Duration) {
	for _, quest := range quests {
		if ctx.Err() != nil {
			return
		}

		s.processQuest(ctx, gateway, token, quest)

		if !wait(ctx, pause) {
			return
		}
	}
}

func (s *QuestService) processQuest(ctx context.Context, gateway ports.Gateway, token string, quest domain.Quest) {
	fields := []zap.Field{
		zap.String("quest", quest.ID),
		zap.String("title", quest.Title),
	}

	outcome, err := gateway.CompleteQuest(ctx, token, quest.ID)
	if err != nil {
		s.log.Warn("quest completion failed", append(fields, zap.Error(err))...)
		return
	}

	switch outcome {
	case domain.CompletionNotEligible:
		s.log.Debug("quest prerequisites not met", fields...)
		return
	case domain.CompletionAlreadySatisfied:
		// Satisfied server-side on an earlier pass but never claimed;
		// go straight to the claim without a second completion call.
		s.log.Debug("quest already satisfied, claiming", fields...)
	case domain.CompletionDone:
	}

	if err := gateway.ClaimQuest(ctx, token, quest.ID); err != nil {
		s.log.Warn("quest claim failed", append(fields, zap.Error(err))...)
		return
	}

	s.log.Info("quest claimed", append(fields, zap.Float64("reward", quest.Reward))...)
}
