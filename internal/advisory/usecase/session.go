package usecase

import (
	"context"
	"strings"

	"risk-advisor/internal/advisory"
	"risk-advisor/internal/model"
)

// Summary returns the cached lane outputs of a base session.
func (uc *implUseCase) Summary(ctx context.Context, sessionID string) (advisory.SummaryOutput, error) {
	if strings.TrimSpace(sessionID) == "" {
		return advisory.SummaryOutput{}, advisory.ErrEmptySessionID
	}

	rec, err := uc.summaries.GetSummary(ctx, sessionID)
	if err != nil {
		uc.l.Errorf(ctx, "uc.Summary GetSummary: %v", err)
		return advisory.SummaryOutput{}, err
	}
	return advisory.SummaryOutput{Record: rec}, nil
}

// Reset drops every lane of a base session and its summaries. Long-term
// memory is kept.
func (uc *implUseCase) Reset(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return advisory.ErrEmptySessionID
	}

	for _, lane := range model.Lanes {
		uc.sessions.Delete(ctx, lane.Key(sessionID))
	}
	if err := uc.summaries.DeleteSummary(ctx, sessionID); err != nil {
		uc.l.Errorf(ctx, "uc.Reset DeleteSummary: %v", err)
		return err
	}

	uc.l.Infof(ctx, "uc.Reset: session %s cleared", sessionID)
	return nil
}
