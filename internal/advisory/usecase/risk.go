package usecase

import (
	"context"

	"risk-advisor/internal/advisory"
	"risk-advisor/internal/model"
)

// Risk runs one questionnaire turn. The turn that carries the final summary
// stores it and pushes the lane to memory.
func (uc *implUseCase) Risk(ctx context.Context, input advisory.ChatInput) (advisory.ChatOutput, error) {
	if err := validateChat(input); err != nil {
		return advisory.ChatOutput{}, err
	}

	out, err := uc.converse(ctx, model.LaneRisk, uc.agents.Risk, input.SessionID, input.Message)
	if err != nil {
		uc.l.Errorf(ctx, "uc.Risk converse: %v", err)
		return advisory.ChatOutput{}, err
	}

	if out.IsComplete {
		if err := uc.remember(ctx, model.LaneRisk, model.SummaryRisk, input.SessionID, out.Response); err != nil {
			uc.l.Errorf(ctx, "uc.Risk remember: %v", err)
			return advisory.ChatOutput{}, err
		}
		uc.l.Infof(ctx, "uc.Risk: assessment complete for session %s", input.SessionID)
	}

	return out, nil
}
