package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"risk-advisor/internal/model"
	"risk-advisor/pkg/llmprovider"
)

func userMsg(text string) llmprovider.Message {
	return llmprovider.Message{Role: llmprovider.RoleUser, Parts: []llmprovider.Part{{Text: text}}}
}

func TestStore_EnsureIsIdempotent(t *testing.T) {
	st := New(Config{AppName: "RiskAssessorApp", UserID: "user_1"})
	ctx := context.Background()

	first, err := st.Ensure(ctx, "s1")
	require.NoError(t, err)
	first.Append(userMsg("Ready"))

	second, err := st.Ensure(ctx, "s1")
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Len(t, second.History(), 1)
	assert.Equal(t, "RiskAssessorApp", second.AppName)
	assert.Equal(t, "user_1", second.UserID)
}

func TestStore_EnsureRejectsEmptyKey(t *testing.T) {
	_, err := New(Config{}).Ensure(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyKey)
}

func TestStore_GetUnknown(t *testing.T) {
	st := New(Config{})
	_, err := st.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = st.Append(context.Background(), "missing", userMsg("x"))
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStore_AppendReturnsFullHistoryCopy(t *testing.T) {
	st := New(Config{})
	ctx := context.Background()
	_, err := st.Ensure(ctx, "s1")
	require.NoError(t, err)

	_, err = st.Append(ctx, "s1", userMsg("Ready"))
	require.NoError(t, err)
	history, err := st.Append(ctx, "s1", userMsg("A"))
	require.NoError(t, err)
	require.Len(t, history, 2)

	_ = append(history[:1], userMsg("overwrites the copy only"))

	snap, err := st.Snapshot(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, snap.Messages, 2)
	assert.Equal(t, "A", snap.Messages[1].Text())
	assert.Equal(t, "s1", snap.Key)
}

func TestStore_LanesAreIsolated(t *testing.T) {
	st := New(Config{})
	ctx := context.Background()

	for _, lane := range model.Lanes {
		_, err := st.Ensure(ctx, lane.Key("S"))
		require.NoError(t, err)
	}
	_, err := st.Append(ctx, model.LaneSentiment.Key("S"), userMsg("gold"))
	require.NoError(t, err)
	_, err = st.Append(ctx, model.LaneRisk.Key("S"), userMsg("Ready"))
	require.NoError(t, err)

	risk, _ := st.Snapshot(ctx, model.LaneRisk.Key("S"))
	sentiment, _ := st.Snapshot(ctx, model.LaneSentiment.Key("S"))
	advisor, _ := st.Snapshot(ctx, model.LaneAdvisor.Key("S"))

	require.Len(t, risk.Messages, 1)
	require.Len(t, sentiment.Messages, 1)
	assert.Equal(t, "Ready", risk.Messages[0].Text())
	assert.Equal(t, "gold", sentiment.Messages[0].Text())
	assert.Empty(t, advisor.Messages)
}

func TestStore_BoundedBySize(t *testing.T) {
	st := New(Config{MaxSize: 2})
	ctx := context.Background()

	for _, k := range []string{"a", "b", "c"} {
		_, err := st.Ensure(ctx, k)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, st.Len())
	_, err := st.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStore_IdleTTL(t *testing.T) {
	st := New(Config{TTL: 50 * time.Millisecond})
	ctx := context.Background()
	_, err := st.Ensure(ctx, "s1")
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		_, err := st.Get(ctx, "s1")
		return err != nil
	}, time.Second, 10*time.Millisecond)
}

func TestStore_TouchRestoresEvictedSession(t *testing.T) {
	st := New(Config{MaxSize: 1})
	ctx := context.Background()

	s1, _ := st.Ensure(ctx, "s1")
	_, _ = st.Ensure(ctx, "s2")
	_, err := st.Get(ctx, "s1")
	require.ErrorIs(t, err, ErrSessionNotFound)

	st.Touch(s1)
	got, err := st.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Same(t, s1, got)
}

func TestStore_DeleteAndClear(t *testing.T) {
	st := New(Config{})
	ctx := context.Background()
	_, _ = st.Ensure(ctx, "s1")
	_, _ = st.Ensure(ctx, "s1_sentiment")

	assert.True(t, st.Delete(ctx, "s1"))
	assert.False(t, st.Delete(ctx, "s1"))
	assert.Equal(t, 1, st.Len())

	st.Clear(ctx)
	assert.Equal(t, 0, st.Len())
}

func TestStore_TouchDoesNotRestoreDeletedSession(t *testing.T) {
	st := New(Config{})
	ctx := context.Background()

	s1, _ := st.Ensure(ctx, "s1")
	s1.Append(userMsg("Ready"))
	require.True(t, st.Delete(ctx, "s1"))

	st.Touch(s1)
	_, err := st.Get(ctx, "s1")
	require.ErrorIs(t, err, ErrSessionNotFound)

	s2, _ := st.Ensure(ctx, "s2")
	st.Clear(ctx)
	st.Touch(s2)
	assert.Equal(t, 0, st.Len())

	fresh, err := st.Ensure(ctx, "s1")
	require.NoError(t, err)
	assert.NotSame(t, s1, fresh)
	assert.Empty(t, fresh.History())
}

func TestSession_AcquireTurn(t *testing.T) {
	st := New(Config{})
	s, _ := st.Ensure(context.Background(), "s1")

	release, err := s.AcquireTurn(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = s.AcquireTurn(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	release()
	release()

	again, err := s.AcquireTurn(context.Background())
	require.NoError(t, err)
	again()
}

func TestStore_ConcurrentEnsure(t *testing.T) {
	st := New(Config{})
	ctx := context.Background()

	var wg sync.WaitGroup
	got := make([]*Session, 32)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := st.Ensure(ctx, "s1")
			if err == nil {
				s.Append(userMsg("x"))
			}
			got[i] = s
		}(i)
	}
	wg.Wait()

	for _, s := range got {
		assert.Same(t, got[0], s)
	}
	assert.Len(t, got[0].History(), 32)
}
