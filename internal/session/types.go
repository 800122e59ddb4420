package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"risk-advisor/pkg/llmprovider"
)

// Session is the conversation history of one lane.
type Session struct {
	Key       string
	AppName   string
	UserID    string
	CreatedAt time.Time

	mu        sync.Mutex
	history   []llmprovider.Message
	updatedAt time.Time

	// turn admits one in-flight turn per lane.
	turn chan struct{}
	// deleted is set by Store.Delete and Store.Clear; Touch never restores it.
	deleted atomic.Bool
}

func newSession(key, appName, userID string, now time.Time) *Session {
	return &Session{
		Key:       key,
		AppName:   appName,
		UserID:    userID,
		CreatedAt: now,
		updatedAt: now,
		turn:      make(chan struct{}, 1),
	}
}

// AcquireTurn blocks until no other turn runs on this lane or ctx is done.
// The returned func releases the turn.
func (s *Session) AcquireTurn(ctx context.Context) (func(), error) {
	select {
	case s.turn <- struct{}{}:
		var once sync.Once
		return func() { once.Do(func() { <-s.turn }) }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Append extends the history and returns a copy of the full history.
func (s *Session) Append(msgs ...llmprovider.Message) []llmprovider.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, msgs...)
	s.updatedAt = time.Now()
	return s.copyLocked()
}

// History returns a copy of the history.
func (s *Session) History() []llmprovider.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLocked()
}

// Snapshot returns an immutable copy for the memory sink.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Key:       s.Key,
		AppName:   s.AppName,
		UserID:    s.UserID,
		Messages:  s.copyLocked(),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.updatedAt,
	}
}

func (s *Session) copyLocked() []llmprovider.Message {
	out := make([]llmprovider.Message, len(s.history))
	copy(out, s.history)
	return out
}

// Snapshot is a point-in-time copy of a session.
type Snapshot struct {
	Key       string
	AppName   string
	UserID    string
	Messages  []llmprovider.Message
	CreatedAt time.Time
	UpdatedAt time.Time
}
