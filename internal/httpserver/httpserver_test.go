package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"risk-advisor/config"
	"risk-advisor/internal/advisory"
	advisoryHTTP "risk-advisor/internal/advisory/delivery/http"
	"risk-advisor/internal/middleware"
	"risk-advisor/pkg/log"
)

type stubUseCase struct{}

func (stubUseCase) Risk(ctx context.Context, in advisory.ChatInput) (advisory.ChatOutput, error) {
	return advisory.ChatOutput{Response: "Question 1 of 5"}, nil
}
func (stubUseCase) Sentiment(ctx context.Context, in advisory.ChatInput) (advisory.ChatOutput, error) {
	return advisory.ChatOutput{Response: "bullish", IsComplete: true}, nil
}
func (stubUseCase) Advisor(ctx context.Context, in advisory.ChatInput) (advisory.ChatOutput, error) {
	return advisory.ChatOutput{}, nil
}
func (stubUseCase) Summary(ctx context.Context, id string) (advisory.SummaryOutput, error) {
	return advisory.SummaryOutput{}, nil
}
func (stubUseCase) Reset(ctx context.Context, id string) error { return nil }

func newServer(t *testing.T, rl config.RateLimitConfig) *HTTPServer {
	t.Helper()
	l := log.NewNop()
	srv, err := New(l, Config{
		Logger:          l,
		Port:            8080,
		Mode:            "test",
		Environment:     "development",
		Middleware:      middleware.New(l, rl),
		AdvisoryHandler: advisoryHTTP.New(l, stubUseCase{}),
	})
	require.NoError(t, err)
	return srv
}

func get(srv *HTTPServer, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestNew_Validation(t *testing.T) {
	l := log.NewNop()
	_, err := New(l, Config{Mode: "test", Port: 8080})
	assert.ErrorContains(t, err, "advisory handler")

	_, err = New(nil, Config{Mode: "test", Port: 8080})
	assert.ErrorContains(t, err, "logger")
}

func TestSystemRoutes(t *testing.T) {
	srv := newServer(t, config.RateLimitConfig{})

	for _, path := range []string{"/health", "/ready", "/live"} {
		w := get(srv, path)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Body.String(), ServiceName)
		assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))
	}

	w := get(srv, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestDomainRoutes(t *testing.T) {
	srv := newServer(t, config.RateLimitConfig{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sentiment", strings.NewReader(`{"message":"gold","session_id":"s1"}`))
	req.Header.Set("Content-Type", "application/json")
	srv.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"response":"bullish","is_complete":true}`, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	assert.Equal(t, http.StatusOK, get(srv, "/risk").Code)
	assert.Equal(t, http.StatusOK, get(srv, "/api/v1/sessions/s1/summary").Code)
}

func TestRateLimitSparesSystemRoutes(t *testing.T) {
	srv := newServer(t, config.RateLimitConfig{Enabled: true, PerMin: 60, Burst: 1})

	assert.Equal(t, http.StatusOK, get(srv, "/").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(srv, "/").Code)
	assert.Equal(t, http.StatusOK, get(srv, "/health").Code)
}

func TestRun_StopsOnCancel(t *testing.T) {
	l := log.NewNop()
	srv, err := New(l, Config{
		Logger:          l,
		Port:            18089,
		Mode:            "test",
		ShutdownTimeout: time.Second,
		Middleware:      middleware.New(l, config.RateLimitConfig{}),
		AdvisoryHandler: advisoryHTTP.New(l, stubUseCase{}),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}
