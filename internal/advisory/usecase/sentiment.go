package usecase

import (
	"context"

	"risk-advisor/internal/advisory"
	"risk-advisor/internal/model"
)

// Sentiment answers in a single turn. Every answer replaces the stored
// sentiment summary.
func (uc *implUseCase) Sentiment(ctx context.Context, input advisory.ChatInput) (advisory.ChatOutput, error) {
	if err := validateChat(input); err != nil {
		return advisory.ChatOutput{}, err
	}

	out, err := uc.converse(ctx, model.LaneSentiment, uc.agents.Sentiment, input.SessionID, input.Message)
	if err != nil {
		uc.l.Errorf(ctx, "uc.Sentiment converse: %v", err)
		return advisory.ChatOutput{}, err
	}

	if err := uc.remember(ctx, model.LaneSentiment, model.SummarySentiment, input.SessionID, out.Response); err != nil {
		uc.l.Errorf(ctx, "uc.Sentiment remember: %v", err)
		return advisory.ChatOutput{}, err
	}

	return out, nil
}
