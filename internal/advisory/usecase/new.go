package usecase

import (
	"context"

	"risk-advisor/internal/advisory/repository"
	"risk-advisor/internal/memory"
	"risk-advisor/internal/session"
	"risk-advisor/pkg/log"
)

// Invoker runs one agent turn on a lane and returns the collected text.
// *runner.Runner satisfies it.
type Invoker interface {
	Invoke(ctx context.Context, key, text string) (string, error)
	Name() string
}

// Invokers holds the agent of each lane.
type Invokers struct {
	Risk      Invoker
	Sentiment Invoker
	Advisor   Invoker
}

// implUseCase is the private implementation of advisory.UseCase.
type implUseCase struct {
	l         log.Logger
	sessions  *session.Store
	summaries repository.SummaryRepository
	sink      memory.Sink
	agents    Invokers
}

// New creates the advisory UseCase.
func New(l log.Logger, sessions *session.Store, summaries repository.SummaryRepository, sink memory.Sink, agents Invokers) *implUseCase {
	return &implUseCase{
		l:         l,
		sessions:  sessions,
		summaries: summaries,
		sink:      sink,
		agents:    agents,
	}
}
