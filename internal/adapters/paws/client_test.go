package paws

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zainarain279/paws/internal/domain"
)

func testClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()

	return NewClient(Config{
		BaseURL:   server.URL,
		Timeout:   5 * time.Second,
		RetryWait: 10 * time.Millisecond,
	}, domain.Account{ID: "123", InitData: "user=%7B%22id%22%3A123%7D"})
}

func TestAuthenticateDecodesTokenAndUserRecord(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/user/auth", r.URL.Path)

		var body authRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "user=%7B%22id%22%3A123%7D", body.Data)
		assert.Equal(t, "", body.ReferralCode)

		w.WriteHeader(http.StatusCreated)
		_, _ = fmt.Fprint(w, `{"success":true,"data":["tok-abc",{"id":123,"firstName":"Zain","balance":7500,"wallet":""}]}`)
	}))
	t.Cleanup(server.Close)

	client := testClient(t, server)

	token, user, err := client.Authenticate(context.Background(), domain.Account{ID: "123", InitData: "user=%7B%22id%22%3A123%7D"})
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", token)
	assert.Equal(t, domain.AccountID("123"), user.ID)
	assert.Equal(t, "Zain", user.Name)
	assert.Equal(t, 7500.0, user.Balance)
	assert.False(t, user.WalletLinked())
}

func TestAuthenticateRejectsFailureEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = fmt.Fprint(w, `{"success":false,"error":"invalid init data"}`)
	}))
	t.Cleanup(server.Close)

	client := testClient(t, server)

	_, _, err := client.Authenticate(context.Background(), domain.Account{ID: "123"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid init data")
}

func TestCurrentUserReturnsBalanceAndWallet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/user", r.URL.Path)
		assert.Equal(t, "Bearer tok-abc", r.Header.Get("Authorization"))

		_, _ = fmt.Fprint(w, `{"success":true,"data":{"id":123,"firstName":"Zain","balance":9000,"wallet":"UQabc"}}`)
	}))
	t.Cleanup(server.Close)

	client := testClient(t, server)

	user, err := client.CurrentUser(context.Background(), "tok-abc")
	require.NoError(t, err)
	assert.Equal(t, 9000.0, user.Balance)
	assert.True(t, user.WalletLinked())
}

func TestListQuestsPassesSeasonalTypeSelector(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/quests/list", r.URL.Path)
		assert.Equal(t, "christmas", r.URL.Query().Get("type"))

		_, _ = fmt.Fprint(w, `{"success":true,"data":[
			{"_id":"q1","title":"Day three","code":"christmas_003","rewards":[{"amount":500}],"progress":{"claimed":false,"status":"active"}}
		]}`)
	}))
	t.Cleanup(server.Close)

	client := testClient(t, server)

	quests, err := client.ListQuests(context.Background(), "tok-abc", "christmas")
	require.NoError(t, err)
	require.Len(t, quests, 1)
	assert.Equal(t, "q1", quests[0].ID)
	assert.Equal(t, "christmas_003", quests[0].Code)
	assert.Equal(t, 500.0, quests[0].Reward)
	assert.Equal(t, "active", quests[0].Progress.Status)
}

func TestCompleteQuestOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		outcome domain.CompletionOutcome
		wantErr bool
	}{
		{name: "completed now", reply: `{"success":true,"data":{"claimed":false}}`, outcome: domain.CompletionDone},
		{name: "already satisfied", reply: `{"success":false,"data":true}`, outcome: domain.CompletionAlreadySatisfied},
		{name: "prerequisites unmet", reply: `{"success":false,"data":false}`, outcome: domain.CompletionNotEligible},
		{name: "success without data", reply: `{"success":true,"data":null}`, wantErr: true},
		{name: "failure without verdict", reply: `{"success":false,"error":"boom"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/quests/completed", r.URL.Path)

				var body questActionRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, "q1", body.QuestID)

				_, _ = fmt.Fprint(w, tt.reply)
			}))
			t.Cleanup(server.Close)

			client := testClient(t, server)

			outcome, err := client.CompleteQuest(context.Background(), "tok-abc", "q1")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.outcome, outcome)
		})
	}
}

func TestClaimQuestTreatsAnyResponseAsSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/quests/claim", r.URL.Path)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client := testClient(t, server)

	require.NoError(t, client.ClaimQuest(context.Background(), "tok-abc", "q1"))
}

func TestTransportFailuresAreRetriedTwiceThenPropagated(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts.Add(1)

		// Kill the connection so the client sees a transport error, not a
		// status code.
		hijacker, ok := w.(http.Hijacker)
		require.True(t, ok)
		conn, _, err := hijacker.Hijack()
		require.NoError(t, err)
		_ = conn.Close()
	}))
	t.Cleanup(server.Close)

	client := testClient(t, server)

	start := time.Now()
	_, err := client.CurrentUser(context.Background(), "tok-abc")
	require.Error(t, err)

	assert.Equal(t, int32(3), attempts.Load())
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestStatusCodesAreNotRetried(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusBadGateway)
		_, _ = fmt.Fprint(w, `{"success":false,"error":"upstream"}`)
	}))
	t.Cleanup(server.Close)

	client := testClient(t, server)

	_, err := client.CurrentUser(context.Background(), "tok-abc")
	require.Error(t, err)
	assert.Equal(t, int32(1), attempts.Load())
}
