package advisory

import "context"

//go:generate mockery --name UseCase
type UseCase interface {
	// Chat flows
	Risk(ctx context.Context, input ChatInput) (ChatOutput, error)
	Sentiment(ctx context.Context, input ChatInput) (ChatOutput, error)
	Advisor(ctx context.Context, input ChatInput) (ChatOutput, error)

	// Session state
	Summary(ctx context.Context, sessionID string) (SummaryOutput, error)
	Reset(ctx context.Context, sessionID string) error
}
