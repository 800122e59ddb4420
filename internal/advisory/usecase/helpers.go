package usecase

import (
	"context"
	"fmt"
	"strings"

	"risk-advisor/internal/advisory"
	"risk-advisor/internal/advisory/repository"
	"risk-advisor/internal/agent/completion"
	"risk-advisor/internal/model"
)

// validateChat only checks the session. An empty message is still a turn:
// the agents answer it like any other invalid input.
func validateChat(input advisory.ChatInput) error {
	if strings.TrimSpace(input.SessionID) == "" {
		return advisory.ErrEmptySessionID
	}
	return nil
}

// converse ensures the lane session, runs one turn and classifies the reply.
func (uc *implUseCase) converse(ctx context.Context, lane model.Lane, agent Invoker, sessionID, text string) (advisory.ChatOutput, error) {
	key := lane.Key(sessionID)
	if _, err := uc.sessions.Ensure(ctx, key); err != nil {
		return advisory.ChatOutput{}, fmt.Errorf("ensure %s session: %w", lane, err)
	}

	reply, err := agent.Invoke(ctx, key, text)
	if err != nil {
		return advisory.ChatOutput{}, fmt.Errorf("invoke %s: %w", agent.Name(), err)
	}

	res := completion.ForLane(lane).Detect(reply)
	turnsTotal.WithLabelValues(string(lane), res.Status.String()).Inc()
	return advisory.ChatOutput{Response: reply, IsComplete: res.IsComplete()}, nil
}

// remember caches a completed lane output and hands the lane to the memory sink.
func (uc *implUseCase) remember(ctx context.Context, lane model.Lane, field model.SummaryField, sessionID, text string) error {
	if err := uc.summaries.SetSummary(ctx, repository.SetSummaryOptions{
		SessionID: sessionID,
		Field:     field,
		Text:      text,
	}); err != nil {
		return fmt.Errorf("set %s: %w", field, err)
	}

	snap, err := uc.sessions.Snapshot(ctx, lane.Key(sessionID))
	if err != nil {
		return fmt.Errorf("snapshot %s session: %w", lane, err)
	}
	if err := uc.sink.AddSession(ctx, snap); err != nil {
		return fmt.Errorf("add %s session to memory: %w", lane, err)
	}
	return nil
}
