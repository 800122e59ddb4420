package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	summaryMemory "risk-advisor/internal/advisory/repository/memory"
	"risk-advisor/internal/advisory/usecase"
	"risk-advisor/internal/agent"
	"risk-advisor/internal/agent/runner"
	"risk-advisor/internal/memory/inmem"
	"risk-advisor/internal/session"
	"risk-advisor/pkg/llmprovider"
	pkgLog "risk-advisor/pkg/log"
	"risk-advisor/pkg/response"
)

// fakeLLM answers with the next scripted text and keeps every request.
type fakeLLM struct {
	mu       sync.Mutex
	replies  []string
	err      error
	requests []*llmprovider.Request
}

func (f *fakeLLM) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	text := f.replies[0]
	if len(f.replies) > 1 {
		f.replies = f.replies[1:]
	}
	return &llmprovider.Response{Content: llmprovider.Message{
		Role:  llmprovider.RoleModel,
		Parts: []llmprovider.Part{{Text: text}},
	}}, nil
}

func (f *fakeLLM) lastUserText() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	msgs := f.requests[len(f.requests)-1].Messages
	return msgs[len(msgs)-1].Text()
}

type testServer struct {
	router    *gin.Engine
	risk      *fakeLLM
	sentiment *fakeLLM
	advisor   *fakeLLM
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	l := pkgLog.NewNop()
	sessions := session.New(session.Config{AppName: "RiskAssessorApp", UserID: "user_1"})
	sink, err := inmem.New(l, 10)
	require.NoError(t, err)

	ts := &testServer{
		risk:      &fakeLLM{replies: []string{"Question 1 of 5"}},
		sentiment: &fakeLLM{replies: []string{"Gold: bullish"}},
		advisor:   &fakeLLM{replies: []string{"<b>ADVISOR_SUMMARY</b>: balanced allocation"}},
	}
	registry := agent.NewToolRegistry()
	uc := usecase.New(l, sessions, summaryMemory.New(10, 0), sink, usecase.Invokers{
		Risk:      runner.New(l, agent.RiskAssessor(""), ts.risk, sessions, registry, 0),
		Sentiment: runner.New(l, agent.SentimentAssessor(""), ts.sentiment, sessions, registry, 0),
		Advisor:   runner.New(l, agent.Advisor(""), ts.advisor, sessions, registry, 0),
	})

	ts.router = gin.New()
	RegisterRoutes(ts.router, ts.router.Group("/api/v1"), New(l, uc))
	return ts
}

func (ts *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func (ts *testServer) chat(t *testing.T, path, message string) chatResp {
	t.Helper()
	raw, _ := json.Marshal(map[string]string{"message": message, "session_id": "s1"})
	w := ts.do(t, http.MethodPost, path, string(raw))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out chatResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func (ts *testServer) summary(t *testing.T) summaryResp {
	t.Helper()
	w := ts.do(t, http.MethodGet, "/api/v1/sessions/s1/summary", "")
	require.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Data summaryResp `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env.Data
}

func TestRisk_FirstTurnIsPending(t *testing.T) {
	ts := newTestServer(t)

	out := ts.chat(t, "/risk", "Ready")
	assert.Equal(t, chatResp{Response: "Question 1 of 5", IsComplete: false}, out)
	assert.Nil(t, ts.summary(t).RiskSummary)
}

func TestRisk_CompletionStoresExactSummary(t *testing.T) {
	ts := newTestServer(t)
	final := "<b>Risk Assessment Summary</b>\nProfile: Moderate"
	ts.risk.replies = []string{"Question 1 of 5", final}

	assert.False(t, ts.chat(t, "/risk", "Ready").IsComplete)
	out := ts.chat(t, "/risk", "B")
	assert.True(t, out.IsComplete)

	got := ts.summary(t)
	require.NotNil(t, got.RiskSummary)
	assert.Equal(t, final, *got.RiskSummary)
	assert.NotNil(t, got.UpdatedAt)
}

func TestSentiment_AlwaysCompleteAndUpdated(t *testing.T) {
	ts := newTestServer(t)
	ts.sentiment.replies = []string{"Gold: bearish", "Gold: bullish"}

	for _, want := range []string{"Gold: bearish", "Gold: bullish"} {
		out := ts.chat(t, "/sentiment", "gold")
		assert.True(t, out.IsComplete)

		got := ts.summary(t)
		require.NotNil(t, got.SentimentSummary)
		assert.Equal(t, want, *got.SentimentSummary)
	}
}

func TestAdvisor_PayloadEmbedsBothSummaries(t *testing.T) {
	ts := newTestServer(t)
	ts.risk.replies = []string{"Risk Assessment Summary: Aggressive"}

	require.True(t, ts.chat(t, "/risk", "D").IsComplete)
	require.True(t, ts.chat(t, "/sentiment", "bitcoin").IsComplete)

	out := ts.chat(t, "/advisor", "whatever the page sends")
	assert.True(t, out.IsComplete)

	payload := ts.advisor.lastUserText()
	assert.Contains(t, payload, "RISK PROFILE:\nRisk Assessment Summary: Aggressive\n")
	assert.Contains(t, payload, "MARKET SENTIMENT:\nGold: bullish\n")
	assert.NotContains(t, payload, "whatever the page sends")
}

func TestLaneHistoriesStaySeparate(t *testing.T) {
	ts := newTestServer(t)
	ts.risk.replies = []string{"Q1", "Q2"}

	ts.chat(t, "/risk", "Ready")
	ts.chat(t, "/sentiment", "gold")
	ts.chat(t, "/risk", "A")

	riskMsgs := ts.risk.requests[1].Messages
	require.Len(t, riskMsgs, 3)
	for _, m := range riskMsgs {
		assert.NotEqual(t, "gold", m.Text())
	}
	require.Len(t, ts.sentiment.requests[0].Messages, 1)
}

func TestChat_BadRequests(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		path string
		body string
	}{
		{name: "malformed json", path: "/risk", body: "{"},
		{name: "missing session", path: "/sentiment", body: `{"message":"gold"}`},
		{name: "blank session", path: "/risk", body: `{"message":"Ready","session_id":"  "}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.do(t, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var env response.Resp
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
			assert.Equal(t, response.ValidationErrorCode, env.ErrorCode)
		})
	}
	assert.Empty(t, ts.risk.requests)
}

func TestRisk_EmptyMessageIsATurn(t *testing.T) {
	ts := newTestServer(t)
	ts.risk.replies = []string{"Please type 'Ready' when you want to begin."}

	out := ts.chat(t, "/risk", "")
	assert.False(t, out.IsComplete)
	require.Len(t, ts.risk.requests, 1)
	assert.Equal(t, "", ts.risk.lastUserText())
}

func TestChat_ProviderFailureIsGeneric500(t *testing.T) {
	ts := newTestServer(t)
	ts.risk.err = llmprovider.ErrAllProvidersFailed

	w := ts.do(t, http.MethodPost, "/risk", `{"message":"Ready","session_id":"s1"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var env response.Resp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, response.DefaultErrorMessage, env.Message)
	assert.NotContains(t, w.Body.String(), "providers")
}

func TestReset(t *testing.T) {
	ts := newTestServer(t)
	ts.chat(t, "/sentiment", "gold")

	w := ts.do(t, http.MethodDelete, "/api/v1/sessions/s1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, ts.summary(t).SentimentSummary)

	ts.chat(t, "/sentiment", "gold")
	assert.Len(t, ts.sentiment.requests[1].Messages, 1, "lane history starts over")
}

func TestPages(t *testing.T) {
	ts := newTestServer(t)

	for path, want := range map[string]string{
		"/":          "Risk Advisor",
		"/risk":      "Risk Profile",
		"/sentiment": "Market Sentiment",
		"/advisor":   "Final Insight",
	} {
		w := ts.do(t, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		assert.True(t, bytes.Contains(w.Body.Bytes(), []byte(want)), path)
	}
}
