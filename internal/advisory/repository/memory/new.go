// Package memory keeps summary records in a bounded in-process cache.
package memory

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"risk-advisor/internal/advisory/repository"
	"risk-advisor/internal/model"
)

const (
	DefaultMaxSize = 10000
	DefaultTTL     = 24 * time.Hour
)

type implRepository struct {
	mu      sync.Mutex
	records *expirable.LRU[string, model.SummaryRecord]
	now     func() time.Time
}

// New creates a summary repository holding at most maxSize records, each kept
// for ttl after its last write.
func New(maxSize int, ttl time.Duration) repository.SummaryRepository {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &implRepository{
		records: expirable.NewLRU[string, model.SummaryRecord](maxSize, nil, ttl),
		now:     time.Now,
	}
}
