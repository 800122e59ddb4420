package memory

import (
	"strings"
	"time"

	"risk-advisor/internal/session"
)

// SearchOptions scopes a recall to one app and user.
type SearchOptions struct {
	AppName string
	UserID  string
	Query   string
	// Limit caps the result count. Zero means no cap.
	Limit int
}

// Entry is one remembered turn.
type Entry struct {
	AppName   string
	UserID    string
	SessionID string
	Author    string
	Text      string
	Timestamp time.Time
	Score     float64
}

// EntriesFromSnapshot keeps the text turns of a snapshot. Tool calls and
// tool results are not remembered.
func EntriesFromSnapshot(snap session.Snapshot) []Entry {
	entries := make([]Entry, 0, len(snap.Messages))
	for _, msg := range snap.Messages {
		var parts []string
		for _, p := range msg.Parts {
			if p.FunctionCall != nil || p.FunctionResponse != nil {
				continue
			}
			if t := strings.TrimSpace(p.Text); t != "" {
				parts = append(parts, t)
			}
		}
		if len(parts) == 0 {
			continue
		}
		entries = append(entries, Entry{
			AppName:   snap.AppName,
			UserID:    snap.UserID,
			SessionID: snap.Key,
			Author:    msg.Role,
			Text:      strings.Join(parts, "\n"),
			Timestamp: snap.UpdatedAt,
		})
	}
	return entries
}
