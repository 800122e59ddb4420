package runner

import (
	"context"

	"risk-advisor/pkg/llmprovider"
)

// Generator produces one model reply. *llmprovider.Manager satisfies it.
type Generator interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}

// Event is one step of a turn.
type Event struct {
	// Author is the agent name, or the tool name for tool results.
	Author  string
	Content llmprovider.Message
	Step    int
	final   bool
}

// IsFinalResponse reports whether the event carries the turn's answer.
func (e *Event) IsFinalResponse() bool {
	return e.final
}

// NewEvent builds an event. Exposed for callers that replay or fake streams.
func NewEvent(author string, content llmprovider.Message, final bool) *Event {
	return &Event{Author: author, Content: content, final: final}
}
