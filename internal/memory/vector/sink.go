package vector

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"risk-advisor/internal/memory"
	"risk-advisor/internal/session"
	pkgQdrant "risk-advisor/pkg/qdrant"
	"risk-advisor/pkg/voyage"
)

// AddSession drops the session's previous points and stores one point per text turn.
func (s *implSink) AddSession(ctx context.Context, snap session.Snapshot) error {
	if snap.AppName == "" || snap.UserID == "" {
		return memory.ErrEmptyScope
	}

	if err := s.client.DeletePoints(ctx, s.collectionName, pkgQdrant.DeletePointsRequest{
		Filter: pkgQdrant.MatchFilter(map[string]string{
			payloadAppName:   snap.AppName,
			payloadUserID:    snap.UserID,
			payloadSessionID: snap.Key,
		}),
	}); err != nil {
		s.l.Errorf(ctx, "memory.vector.AddSession: delete %s: %v", snap.Key, err)
		return fmt.Errorf("memory.vector: delete session points: %w", err)
	}

	entries := memory.EntriesFromSnapshot(snap)
	if len(entries) == 0 {
		return nil
	}

	texts := make([]string, len(entries))
	for i, e := range entries {
		texts[i] = e.Text
	}
	vectors, err := s.embedder.Embed(ctx, texts, voyage.InputDocument)
	if err != nil {
		s.l.Errorf(ctx, "memory.vector.AddSession: embed %s: %v", snap.Key, err)
		return fmt.Errorf("memory.vector: embed session: %w", err)
	}

	points := make([]pkgQdrant.Point, len(entries))
	for i, e := range entries {
		points[i] = pkgQdrant.Point{
			ID:     uuid.NewString(),
			Vector: vectors[i],
			Payload: map[string]any{
				payloadAppName:   e.AppName,
				payloadUserID:    e.UserID,
				payloadSessionID: e.SessionID,
				payloadAuthor:    e.Author,
				payloadText:      e.Text,
				payloadTimestamp: e.Timestamp.UTC().Format(time.RFC3339),
			},
		}
	}

	if err := s.client.UpsertPoints(ctx, s.collectionName, pkgQdrant.UpsertPointsRequest{Points: points}); err != nil {
		s.l.Errorf(ctx, "memory.vector.AddSession: upsert %s: %v", snap.Key, err)
		return fmt.Errorf("memory.vector: upsert points: %w", err)
	}

	s.l.Infof(ctx, "memory.vector.AddSession: stored %d points for %s", len(points), snap.Key)
	return nil
}

// Search embeds the query and returns the nearest turns of the same app and user.
func (s *implSink) Search(ctx context.Context, opt memory.SearchOptions) ([]memory.Entry, error) {
	if opt.AppName == "" || opt.UserID == "" {
		return nil, memory.ErrEmptyScope
	}
	if opt.Query == "" {
		return nil, memory.ErrEmptyQuery
	}
	limit := opt.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	vectors, err := s.embedder.Embed(ctx, []string{opt.Query}, voyage.InputQuery)
	if err != nil {
		s.l.Errorf(ctx, "memory.vector.Search: embed query: %v", err)
		return nil, fmt.Errorf("memory.vector: embed query: %w", err)
	}

	resp, err := s.client.SearchPoints(ctx, s.collectionName, pkgQdrant.SearchRequest{
		Vector:      vectors[0],
		Limit:       limit,
		WithPayload: true,
		Filter: pkgQdrant.MatchFilter(map[string]string{
			payloadAppName: opt.AppName,
			payloadUserID:  opt.UserID,
		}),
	})
	if err != nil {
		s.l.Errorf(ctx, "memory.vector.Search: %v", err)
		return nil, fmt.Errorf("memory.vector: search: %w", err)
	}

	entries := make([]memory.Entry, 0, len(resp.Result))
	for _, p := range resp.Result {
		text := payloadString(p.Payload, payloadText)
		if text == "" {
			s.l.Warnf(ctx, "memory.vector.Search: point %v has no text payload", p.ID)
			continue
		}
		e := memory.Entry{
			AppName:   payloadString(p.Payload, payloadAppName),
			UserID:    payloadString(p.Payload, payloadUserID),
			SessionID: payloadString(p.Payload, payloadSessionID),
			Author:    payloadString(p.Payload, payloadAuthor),
			Text:      text,
			Score:     p.Score,
		}
		if ts, err := time.Parse(time.RFC3339, payloadString(p.Payload, payloadTimestamp)); err == nil {
			e.Timestamp = ts
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func payloadString(payload map[string]any, key string) string {
	s, _ := payload[key].(string)
	return s
}
