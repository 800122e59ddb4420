package session

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"risk-advisor/pkg/llmprovider"
)

const (
	DefaultMaxSize = 10000
	DefaultTTL     = 2 * time.Hour
)

var evictions = promauto.NewCounter(prometheus.CounterOpts{
	Name: "session_store_evictions_total",
	Help: "Lane sessions removed from the store by eviction, expiry or deletion.",
})

// Config scopes new sessions and bounds the store.
type Config struct {
	AppName string
	UserID  string
	MaxSize int
	// TTL is an idle timeout: every append restarts it.
	TTL time.Duration
}

// Store maps lane keys to sessions. Safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	cache   *expirable.LRU[string, *Session]
	appName string
	userID  string
}

func New(cfg Config) *Store {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = DefaultMaxSize
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	return &Store{
		cache: expirable.NewLRU[string, *Session](cfg.MaxSize, func(string, *Session) {
			evictions.Inc()
		}, cfg.TTL),
		appName: cfg.AppName,
		userID:  cfg.UserID,
	}
}

// Ensure creates the session if absent. Repeated calls return the same *Session.
func (st *Store) Ensure(ctx context.Context, key string) (*Session, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if s, ok := st.cache.Get(key); ok {
		return s, nil
	}
	s := newSession(key, st.appName, st.userID, time.Now())
	st.cache.Add(key, s)
	return s, nil
}

// Get returns ErrSessionNotFound for a key never ensured (or evicted).
func (st *Store) Get(ctx context.Context, key string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.cache.Get(key)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Append extends the session history and returns the full history.
func (st *Store) Append(ctx context.Context, key string, msgs ...llmprovider.Message) ([]llmprovider.Message, error) {
	s, err := st.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	history := s.Append(msgs...)
	st.Touch(s)
	return history, nil
}

// Touch restarts the idle TTL of s, re-inserting it if it was evicted meanwhile.
// Sessions dropped through Delete or Clear stay dropped.
func (st *Store) Touch(s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if s.deleted.Load() {
		return
	}
	if cur, ok := st.cache.Peek(s.Key); ok && cur != s {
		return
	}
	st.cache.Add(s.Key, s)
}

// Snapshot returns an immutable copy of the session.
func (st *Store) Snapshot(ctx context.Context, key string) (Snapshot, error) {
	s, err := st.Get(ctx, key)
	if err != nil {
		return Snapshot{}, err
	}
	return s.Snapshot(), nil
}

// Delete drops one session. It reports whether the key was present.
func (st *Store) Delete(ctx context.Context, key string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.cache.Peek(key); ok {
		s.deleted.Store(true)
	}
	return st.cache.Remove(key)
}

// Clear drops every session.
func (st *Store) Clear(ctx context.Context) {
	st.mu.Lock()
	defer st.mu.Unlock()
	for _, s := range st.cache.Values() {
		s.deleted.Store(true)
	}
	st.cache.Purge()
}

func (st *Store) Len() int {
	return st.cache.Len()
}
