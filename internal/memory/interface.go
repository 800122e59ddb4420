package memory

import (
	"context"

	"risk-advisor/internal/session"
)

// Searcher recalls remembered turns.
type Searcher interface {
	Search(ctx context.Context, opt SearchOptions) ([]Entry, error)
}

// Sink is the long-term memory agents can recall from.
type Sink interface {
	Searcher
	// AddSession stores the text turns of a lane. Adding the same session
	// again replaces what was stored for it.
	AddSession(ctx context.Context, snap session.Snapshot) error
}
