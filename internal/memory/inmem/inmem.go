// Package inmem keeps memories for the lifetime of the process and recalls
// them by keyword overlap.
package inmem

import (
	"context"
	"regexp"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"risk-advisor/internal/memory"
	"risk-advisor/internal/session"
	pkgLog "risk-advisor/pkg/log"
)

const DefaultMaxSessions = 1000

var wordPattern = regexp.MustCompile(`[A-Za-z]+`)

type scope struct {
	appName string
	userID  string
}

type sessionKey struct {
	scope
	sessionID string
}

type storedEntry struct {
	memory.Entry
	words map[string]struct{}
}

type implSink struct {
	mu       sync.Mutex
	sessions *lru.Cache[sessionKey, []storedEntry]
	l        pkgLog.Logger
}

// New returns a sink holding at most maxSessions sessions. The least recently
// added session is dropped first.
func New(l pkgLog.Logger, maxSessions int) (memory.Sink, error) {
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	cache, err := lru.New[sessionKey, []storedEntry](maxSessions)
	if err != nil {
		return nil, err
	}
	return &implSink{sessions: cache, l: l}, nil
}

func (s *implSink) AddSession(ctx context.Context, snap session.Snapshot) error {
	if snap.AppName == "" || snap.UserID == "" {
		return memory.ErrEmptyScope
	}

	entries := memory.EntriesFromSnapshot(snap)
	stored := make([]storedEntry, len(entries))
	for i, e := range entries {
		stored[i] = storedEntry{Entry: e, words: wordsOf(e.Text)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions.Add(sessionKey{scope{snap.AppName, snap.UserID}, snap.Key}, stored)

	s.l.Debugf(ctx, "memory.inmem.AddSession: stored %d entries for %s", len(stored), snap.Key)
	return nil
}

// Search returns every entry sharing at least one word with the query,
// oldest session first. Score is the share of query words found.
func (s *implSink) Search(ctx context.Context, opt memory.SearchOptions) ([]memory.Entry, error) {
	if opt.AppName == "" || opt.UserID == "" {
		return nil, memory.ErrEmptyScope
	}
	query := strings.Fields(strings.ToLower(opt.Query))
	if len(query) == 0 {
		return nil, memory.ErrEmptyQuery
	}
	want := scope{opt.AppName, opt.UserID}

	s.mu.Lock()
	defer s.mu.Unlock()

	var out []memory.Entry
	for _, key := range s.sessions.Keys() {
		if key.scope != want {
			continue
		}
		stored, ok := s.sessions.Peek(key)
		if !ok {
			continue
		}
		for _, se := range stored {
			hits := 0
			for _, w := range query {
				if _, ok := se.words[w]; ok {
					hits++
				}
			}
			if hits == 0 {
				continue
			}
			e := se.Entry
			e.Score = float64(hits) / float64(len(query))
			out = append(out, e)
			if opt.Limit > 0 && len(out) == opt.Limit {
				return out, nil
			}
		}
	}
	return out, nil
}

func wordsOf(text string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, w := range wordPattern.FindAllString(text, -1) {
		words[strings.ToLower(w)] = struct{}{}
	}
	return words
}
