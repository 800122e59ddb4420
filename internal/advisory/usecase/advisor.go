package usecase

import (
	"context"

	"risk-advisor/internal/advisory"
	"risk-advisor/internal/model"
)

// Advisor ignores the caller's message and sends the advisor a payload built
// from the stored summaries. Nothing is stored afterwards.
func (uc *implUseCase) Advisor(ctx context.Context, input advisory.ChatInput) (advisory.ChatOutput, error) {
	if err := validateChat(input); err != nil {
		return advisory.ChatOutput{}, err
	}

	rec, err := uc.summaries.GetSummary(ctx, input.SessionID)
	if err != nil {
		uc.l.Errorf(ctx, "uc.Advisor GetSummary: %v", err)
		return advisory.ChatOutput{}, err
	}

	out, err := uc.converse(ctx, model.LaneAdvisor, uc.agents.Advisor, input.SessionID, BuildAdvisorPayload(rec))
	if err != nil {
		uc.l.Errorf(ctx, "uc.Advisor converse: %v", err)
		return advisory.ChatOutput{}, err
	}

	uc.l.Infof(ctx, "uc.Advisor: session %s response: %s", input.SessionID, out.Response)
	return out, nil
}
