package domain

import (
	"strconv"
	"strings"
)

const (
	seasonalCodePrefix = "christmas_"
	seasonalMaxSuffix  = 6

	progressFinished = "finished"
)

// Quest is a server-defined task. Quests are never stored locally; a fresh
// list is fetched every cycle and discarded after processing.
type Quest struct {
	ID       string
	Title    string
	Code     string
	Reward   float64
	Progress QuestProgress
}

type QuestProgress struct {
	Claimed bool
	Status  string
}

// Pending filters out quests whose reward was already claimed.
func Pending(quests []Quest) []Quest {
	pending := make([]Quest, 0, len(quests))
	for _, quest := range quests {
		if !quest.Progress.Claimed {
			pending = append(pending, quest)
		}
	}
	return pending
}

// PendingSeasonal keeps unclaimed seasonal quests that are still open.
func PendingSeasonal(quests []Quest) []Quest {
	pending := make([]Quest, 0, len(quests))
	for _, quest := range quests {
		if !quest.Seasonal() {
			continue
		}
		if quest.Progress.Claimed || quest.Progress.Status == progressFinished {
			continue
		}
		pending = append(pending, quest)
	}
	return pending
}

// CompletionOutcome is the server's answer to a completion request.
type CompletionOutcome int

const (
	// CompletionDone: the quest was completed now and can be claimed.
	CompletionDone CompletionOutcome = iota
	// CompletionAlreadySatisfied: the server had already registered the
	// quest as satisfied but unclaimed, so a claim can be issued directly.
	CompletionAlreadySatisfied
	// CompletionNotEligible: the account has not met the prerequisites.
	CompletionNotEligible
)

// Seasonal reports whether the quest code names an entry of the time-boxed
// seasonal series: the fixed prefix followed by a number no greater than 6.
func (q Quest) Seasonal() bool {
	if !strings.HasPrefix(q.Code, seasonalCodePrefix) {
		return false
	}

	suffix, err := strconv.Atoi(strings.TrimPrefix(q.Code, seasonalCodePrefix))
	if err != nil {
		return false
	}

	return suffix <= seasonalMaxSuffix
}
