package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"risk-advisor/internal/advisory"
	"risk-advisor/internal/advisory/repository"
	summaryMemory "risk-advisor/internal/advisory/repository/memory"
	"risk-advisor/internal/memory"
	"risk-advisor/internal/model"
	"risk-advisor/internal/session"
	"risk-advisor/pkg/llmprovider"
	pkgLog "risk-advisor/pkg/log"
)

// scriptedInvoker replies from a script and records what it was sent.
type scriptedInvoker struct {
	name     string
	sessions *session.Store
	replies  []string
	err      error
	keys     []string
	inputs   []string
}

func (s *scriptedInvoker) Name() string { return s.name }

func (s *scriptedInvoker) Invoke(ctx context.Context, key, text string) (string, error) {
	s.keys = append(s.keys, key)
	s.inputs = append(s.inputs, text)
	if _, err := s.sessions.Append(ctx, key, llmprovider.Message{Role: llmprovider.RoleUser, Parts: []llmprovider.Part{{Text: text}}}); err != nil {
		return "", err
	}
	if s.err != nil {
		return "", s.err
	}
	reply := s.replies[0]
	if len(s.replies) > 1 {
		s.replies = s.replies[1:]
	}
	return reply, nil
}

type recordingSink struct {
	added []session.Snapshot
	err   error
}

func (r *recordingSink) AddSession(ctx context.Context, snap session.Snapshot) error {
	if r.err != nil {
		return r.err
	}
	r.added = append(r.added, snap)
	return nil
}

func (r *recordingSink) Search(ctx context.Context, opt memory.SearchOptions) ([]memory.Entry, error) {
	return nil, nil
}

type fixture struct {
	uc        *implUseCase
	sessions  *session.Store
	summaries repository.SummaryRepository
	sink      *recordingSink
	risk      *scriptedInvoker
	sentiment *scriptedInvoker
	advisor   *scriptedInvoker
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		sessions:  session.New(session.Config{AppName: "RiskAssessorApp", UserID: "user_1"}),
		summaries: summaryMemory.New(0, 0),
		sink:      &recordingSink{},
	}
	f.risk = &scriptedInvoker{name: "risk_assessor", sessions: f.sessions, replies: []string{"Question 1 of 5"}}
	f.sentiment = &scriptedInvoker{name: "market_state_sentiment_assessor", sessions: f.sessions, replies: []string{"Gold is bullish"}}
	f.advisor = &scriptedInvoker{name: "advisor_agent", sessions: f.sessions, replies: []string{"<b>ADVISOR_SUMMARY</b>: hold"}}
	f.uc = New(pkgLog.NewNop(), f.sessions, f.summaries, f.sink, Invokers{Risk: f.risk, Sentiment: f.sentiment, Advisor: f.advisor})
	return f
}

func (f *fixture) summary(t *testing.T, id string) model.SummaryRecord {
	t.Helper()
	rec, err := f.summaries.GetSummary(context.Background(), id)
	require.NoError(t, err)
	return rec
}

func TestRisk_Pending(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.Risk(context.Background(), advisory.ChatInput{SessionID: "s1", Message: "Ready"})
	require.NoError(t, err)
	assert.Equal(t, advisory.ChatOutput{Response: "Question 1 of 5", IsComplete: false}, out)
	assert.Equal(t, []string{"s1"}, f.risk.keys)

	_, ok := f.summary(t, "s1").Get(model.SummaryRisk)
	assert.False(t, ok)
	assert.Empty(t, f.sink.added)
}

func TestRisk_CompleteStoresSummaryAndMemory(t *testing.T) {
	f := newFixture(t)
	final := "<b>Risk Assessment Summary</b>\nProfile: Moderate"
	f.risk.replies = []string{"Question 5 of 5", final}

	_, err := f.uc.Risk(context.Background(), advisory.ChatInput{SessionID: "s1", Message: "Ready"})
	require.NoError(t, err)
	out, err := f.uc.Risk(context.Background(), advisory.ChatInput{SessionID: "s1", Message: "B"})
	require.NoError(t, err)
	assert.True(t, out.IsComplete)

	got, ok := f.summary(t, "s1").Get(model.SummaryRisk)
	require.True(t, ok)
	assert.Equal(t, final, got)

	require.Len(t, f.sink.added, 1)
	assert.Equal(t, "s1", f.sink.added[0].Key)
	assert.Len(t, f.sink.added[0].Messages, 2)
}

func TestSentiment_AlwaysCompleteAndOverwrites(t *testing.T) {
	f := newFixture(t)
	f.sentiment.replies = []string{"bearish", "bullish"}

	for _, want := range []string{"bearish", "bullish"} {
		out, err := f.uc.Sentiment(context.Background(), advisory.ChatInput{SessionID: "s1", Message: "gold"})
		require.NoError(t, err)
		assert.True(t, out.IsComplete)

		got, _ := f.summary(t, "s1").Get(model.SummarySentiment)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, []string{"s1_sentiment", "s1_sentiment"}, f.sentiment.keys)
	assert.Len(t, f.sink.added, 2)
}

func TestAdvisor_PayloadFromSummaries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.summaries.SetSummary(ctx, repository.SetSummaryOptions{SessionID: "s1", Field: model.SummaryRisk, Text: "Risk Assessment Summary: Moderate"}))
	require.NoError(t, f.summaries.SetSummary(ctx, repository.SetSummaryOptions{SessionID: "s1", Field: model.SummarySentiment, Text: "Gold is bullish"}))

	out, err := f.uc.Advisor(ctx, advisory.ChatInput{SessionID: "s1", Message: "ignored"})
	require.NoError(t, err)
	assert.True(t, out.IsComplete)

	require.Len(t, f.advisor.inputs, 1)
	payload := f.advisor.inputs[0]
	assert.Contains(t, payload, "RISK PROFILE:\nRisk Assessment Summary: Moderate\n")
	assert.Contains(t, payload, "MARKET SENTIMENT:\nGold is bullish\n")
	assert.NotContains(t, payload, "ignored")
	assert.Equal(t, []string{"s1_advisor"}, f.advisor.keys)
	assert.Empty(t, f.sink.added)
}

func TestAdvisor_Placeholders(t *testing.T) {
	f := newFixture(t)
	f.advisor.replies = []string{"partial insight"}

	out, err := f.uc.Advisor(context.Background(), advisory.ChatInput{SessionID: "s1"})
	require.NoError(t, err)
	assert.False(t, out.IsComplete)
	assert.Contains(t, f.advisor.inputs[0], PlaceholderRisk)
	assert.Contains(t, f.advisor.inputs[0], PlaceholderSentiment)
}

func TestLanesAreIsolated(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Risk(ctx, advisory.ChatInput{SessionID: "s1", Message: "Ready"})
	require.NoError(t, err)
	_, err = f.uc.Sentiment(ctx, advisory.ChatInput{SessionID: "s1", Message: "gold"})
	require.NoError(t, err)

	risk, err := f.sessions.Snapshot(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, risk.Messages, 1)
	assert.Equal(t, "Ready", risk.Messages[0].Text())

	sentiment, err := f.sessions.Snapshot(ctx, "s1_sentiment")
	require.NoError(t, err)
	require.Len(t, sentiment.Messages, 1)
	assert.Equal(t, "gold", sentiment.Messages[0].Text())
}

func TestValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Risk(ctx, advisory.ChatInput{Message: "Ready"})
	assert.ErrorIs(t, err, advisory.ErrEmptySessionID)
	_, err = f.uc.Sentiment(ctx, advisory.ChatInput{Message: "gold"})
	assert.ErrorIs(t, err, advisory.ErrEmptySessionID)
	_, err = f.uc.Advisor(ctx, advisory.ChatInput{})
	assert.ErrorIs(t, err, advisory.ErrEmptySessionID)
	assert.Empty(t, f.risk.keys)
	assert.Empty(t, f.sentiment.keys)
}

func TestRisk_EmptyMessageIsForwarded(t *testing.T) {
	f := newFixture(t)
	f.risk.replies = []string{"Please type 'Ready' when you want to begin."}

	out, err := f.uc.Risk(context.Background(), advisory.ChatInput{SessionID: "s1"})
	require.NoError(t, err)
	assert.False(t, out.IsComplete)
	assert.Equal(t, []string{""}, f.risk.inputs)
	assert.Equal(t, []string{"s1"}, f.risk.keys)
}

func TestFailuresPropagate(t *testing.T) {
	t.Run("provider", func(t *testing.T) {
		f := newFixture(t)
		f.sentiment.err = llmprovider.ErrAllProvidersFailed

		_, err := f.uc.Sentiment(context.Background(), advisory.ChatInput{SessionID: "s1", Message: "gold"})
		assert.ErrorIs(t, err, llmprovider.ErrAllProvidersFailed)
		_, ok := f.summary(t, "s1").Get(model.SummarySentiment)
		assert.False(t, ok)
	})

	t.Run("memory sink", func(t *testing.T) {
		f := newFixture(t)
		f.sink.err = errors.New("qdrant down")

		_, err := f.uc.Sentiment(context.Background(), advisory.ChatInput{SessionID: "s1", Message: "gold"})
		assert.ErrorContains(t, err, "qdrant down")
	})
}

func TestSummaryAndReset(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Sentiment(ctx, advisory.ChatInput{SessionID: "s1", Message: "gold"})
	require.NoError(t, err)

	out, err := f.uc.Summary(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Gold is bullish", out.Record.Fields[model.SummarySentiment])

	require.NoError(t, f.uc.Reset(ctx, "s1"))
	_, err = f.sessions.Get(ctx, "s1_sentiment")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
	out, err = f.uc.Summary(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, out.Record.Fields)

	assert.ErrorIs(t, f.uc.Reset(ctx, ""), advisory.ErrEmptySessionID)
}

func TestBuildAdvisorPayload(t *testing.T) {
	rec := model.SummaryRecord{Fields: map[model.SummaryField]string{model.SummaryRisk: "R"}}

	want := "Generate a coherent final insight combining the user's risk profile and market sentiment. " +
		"You may call load_memory() if earlier data is needed.\n\n" +
		"--- PROVIDED DATA ---\n" +
		"RISK PROFILE:\nR\n\n" +
		"MARKET SENTIMENT:\n" + PlaceholderSentiment + "\n"
	assert.Equal(t, want, BuildAdvisorPayload(rec))
}
