package paws

import (
	"encoding/json"

	"github.com/zainarain279/paws/internal/domain"
)

// Every endpoint answers with the same envelope; data's shape depends on
// the call and is decoded by the caller.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type authRequest struct {
	Data         string `json:"data"`
	ReferralCode string `json:"referralCode"`
}

type walletRequest struct {
	Wallet string `json:"wallet"`
}

type questActionRequest struct {
	QuestID string `json:"questId"`
}

type userSchema struct {
	ID        json.Number `json:"id"`
	FirstName string      `json:"firstName"`
	Balance   float64     `json:"balance"`
	Wallet    string      `json:"wallet"`
}

type rewardSchema struct {
	Amount float64 `json:"amount"`
}

type questSchema struct {
	ID       string         `json:"_id"`
	Title    string         `json:"title"`
	Code     string         `json:"code"`
	Rewards  []rewardSchema `json:"rewards"`
	Progress struct {
		Claimed bool   `json:"claimed"`
		Status  string `json:"status"`
	} `json:"progress"`
}

func fromUserSchema(user userSchema) domain.UserRecord {
	return domain.UserRecord{
		ID:      domain.AccountID(user.ID.String()),
		Name:    user.FirstName,
		Balance: user.Balance,
		Wallet:  user.Wallet,
	}
}

func fromQuestSchema(quest questSchema) domain.Quest {
	reward := 0.0
	if len(quest.Rewards) > 0 {
		reward = quest.Rewards[0].Amount
	}

	return domain.Quest{
		ID:     quest.ID,
		Title:  quest.Title,
		Code:   quest.Code,
		Reward: reward,
		Progress: domain.QuestProgress{
			Claimed: quest.Progress.Claimed,
			Status:  quest.Progress.Status,
		},
	}
}
