package paws

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	browser "github.com/itzngga/fake-useragent"

	"github.com/zainarain279/paws/internal/domain"
	"github.com/zainarain279/paws/internal/ports"
)

const (
	DefaultBaseURL = "https://api.paws.community/v1"

	defaultTimeout   = 60 * time.Second
	defaultRetries   = 2
	defaultRetryWait = 5 * time.Second

	origin = "https://app.paws.community"
)

var jsonNull = []byte("null")

// Config carries the transport knobs shared by every account client.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	Retries   int
	RetryWait time.Duration
	UserAgent string
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.Retries < 0 {
		c.Retries = defaultRetries
	}
	if c.RetryWait <= 0 {
		c.RetryWait = defaultRetryWait
	}
	if c.UserAgent == "" {
		c.UserAgent = browser.Chrome()
	}
	return c
}

// Client talks to the quest service on behalf of a single account. The
// underlying resty client retries transport failures with a fixed wait;
// status codes are interpreted here, never by the retry layer.
type Client struct {
	http *resty.Client
}

var _ ports.Gateway = (*Client)(nil)

func NewClient(cfg Config, account domain.Account) *Client {
	cfg = cfg.withDefaults()

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.Retries).
		SetRetryWaitTime(cfg.RetryWait).
		SetRetryMaxWaitTime(cfg.RetryWait).
		AddRetryCondition(func(_ *resty.Response, err error) bool {
			return err != nil
		}).
		SetHeader("Accept", "application/json").
		SetHeader("Origin", origin).
		SetHeader("Referer", origin+"/").
		SetHeader("User-Agent", cfg.UserAgent)

	if account.Proxy != "" {
		httpClient.SetProxy(account.Proxy)
	}

	return &Client{http: httpClient}
}

// Factory returns a per-account gateway constructor sharing cfg.
func Factory(cfg Config) ports.GatewayFactory {
	return func(account domain.Account) ports.Gateway {
		return NewClient(cfg, account)
	}
}

func (c *Client) Authenticate(ctx context.Context, account domain.Account) (string, domain.UserRecord, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(authRequest{Data: account.InitData, ReferralCode: ""}).
		Post("/user/auth")
	if err != nil {
		return "", domain.UserRecord{}, fmt.Errorf("authenticate: %w", err)
	}

	env, err := decodeEnvelope(resp, "authenticate")
	if err != nil {
		return "", domain.UserRecord{}, err
	}

	// Auth data is a two-element array: the bearer token, then the user
	// record.
	var pair []json.RawMessage
	if err := json.Unmarshal(env.Data, &pair); err != nil || len(pair) < 2 {
		return "", domain.UserRecord{}, errors.New("authenticate: malformed auth payload")
	}

	var token string
	if err := json.Unmarshal(pair[0], &token); err != nil || token == "" {
		return "", domain.UserRecord{}, errors.New("authenticate: missing token in auth payload")
	}

	var user userSchema
	if err := json.Unmarshal(pair[1], &user); err != nil {
		return "", domain.UserRecord{}, fmt.Errorf("authenticate: decode user record: %w", err)
	}

	return token, fromUserSchema(user), nil
}

func (c *Client) CurrentUser(ctx context.Context, token string) (domain.UserRecord, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		Get("/user")
	if err != nil {
		return domain.UserRecord{}, fmt.Errorf("current user: %w", err)
	}

	env, err := decodeEnvelope(resp, "current user")
	if err != nil {
		return domain.UserRecord{}, err
	}

	var user userSchema
	if err := json.Unmarshal(env.Data, &user); err != nil {
		return domain.UserRecord{}, fmt.Errorf("current user: decode user record: %w", err)
	}

	return fromUserSchema(user), nil
}

func (c *Client) LinkWallet(ctx context.Context, token string, wallet string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(walletRequest{Wallet: wallet}).
		Post("/user/wallet")
	if err != nil {
		return fmt.Errorf("link wallet: %w", err)
	}

	if _, err := decodeEnvelope(resp, "link wallet"); err != nil {
		return err
	}

	return nil
}

func (c *Client) ListQuests(ctx context.Context, token string, questType string) ([]domain.Quest, error) {
	req := c.http.R().
		SetContext(ctx).
		SetAuthToken(token)
	if questType != "" {
		req.SetQueryParam("type", questType)
	}

	resp, err := req.Get("/quests/list")
	if err != nil {
		return nil, fmt.Errorf("list quests: %w", err)
	}

	env, err := decodeEnvelope(resp, "list quests")
	if err != nil {
		return nil, err
	}

	var entries []questSchema
	if err := json.Unmarshal(env.Data, &entries); err != nil {
		return nil, fmt.Errorf("list quests: decode quest list: %w", err)
	}

	quests := make([]domain.Quest, 0, len(entries))
	for _, entry := range entries {
		quests = append(quests, fromQuestSchema(entry))
	}

	return quests, nil
}

func (c *Client) CompleteQuest(ctx context.Context, token string, questID string) (domain.CompletionOutcome, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(questActionRequest{QuestID: questID}).
		Post("/quests/completed")
	if err != nil {
		return domain.CompletionNotEligible, fmt.Errorf("complete quest: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return domain.CompletionNotEligible, fmt.Errorf("complete quest: decode response: %w", err)
	}

	if env.Success {
		if len(env.Data) == 0 || bytes.Equal(env.Data, jsonNull) {
			return domain.CompletionNotEligible, errors.New("complete quest: success without data")
		}
		return domain.CompletionDone, nil
	}

	// success=false carries a boolean verdict: true means the quest was
	// already satisfied server-side but never claimed, false means the
	// prerequisites are not met yet.
	var satisfied bool
	if err := json.Unmarshal(env.Data, &satisfied); err != nil {
		return domain.CompletionNotEligible, fmt.Errorf("complete quest: %s", failureReason(resp.StatusCode(), env))
	}
	if satisfied {
		return domain.CompletionAlreadySatisfied, nil
	}

	return domain.CompletionNotEligible, nil
}

func (c *Client) ClaimQuest(ctx context.Context, token string, questID string) error {
	// Any response at all counts as claimed; the service answers claim
	// calls inconsistently and the next cycle's list is the authority.
	_, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(questActionRequest{QuestID: questID}).
		Post("/quests/claim")
	if err != nil {
		return fmt.Errorf("claim quest: %w", err)
	}

	return nil
}

func decodeEnvelope(resp *resty.Response, operation string) (envelope, error) {
	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		if resp.IsError() {
			return envelope{}, fmt.Errorf("%s: status %d: %s", operation, resp.StatusCode(), strings.TrimSpace(resp.String()))
		}
		return envelope{}, fmt.Errorf("%s: decode response: %w", operation, err)
	}

	if resp.IsError() || !env.Success {
		return envelope{}, fmt.Errorf("%s: %s", operation, failureReason(resp.StatusCode(), env))
	}

	return env, nil
}

func failureReason(statusCode int, env envelope) string {
	if env.Error != "" {
		return env.Error
	}
	return fmt.Sprintf("status %d", statusCode)
}
