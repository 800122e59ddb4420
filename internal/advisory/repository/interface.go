package repository

import (
	"context"

	"risk-advisor/internal/model"
)

// SummaryRepository caches completed lane outputs per base session.
type SummaryRepository interface {
	// SetSummary overwrites one field. Last write wins.
	SetSummary(ctx context.Context, opt SetSummaryOptions) error
	// GetSummary returns a record without fields when nothing was written.
	GetSummary(ctx context.Context, sessionID string) (model.SummaryRecord, error)
	DeleteSummary(ctx context.Context, sessionID string) error
}
