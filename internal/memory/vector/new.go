// Package vector stores memories as Voyage embeddings in a Qdrant collection.
package vector

import (
	"context"
	"fmt"

	"risk-advisor/internal/memory"
	pkgLog "risk-advisor/pkg/log"
	pkgQdrant "risk-advisor/pkg/qdrant"
	"risk-advisor/pkg/voyage"
)

const (
	payloadAppName   = "app_name"
	payloadUserID    = "user_id"
	payloadSessionID = "session_id"
	payloadAuthor    = "author"
	payloadText      = "text"
	payloadTimestamp = "timestamp"

	DefaultSearchLimit = 5
)

type implSink struct {
	client         pkgQdrant.IQdrant
	embedder       voyage.IVoyage
	collectionName string
	l              pkgLog.Logger
}

// New returns a sink over an existing collection. Call EnsureCollection first
// on a fresh Qdrant.
func New(client pkgQdrant.IQdrant, embedder voyage.IVoyage, collectionName string, l pkgLog.Logger) memory.Sink {
	return &implSink{
		client:         client,
		embedder:       embedder,
		collectionName: collectionName,
		l:              l,
	}
}

// EnsureCollection creates the collection with cosine distance if it is missing.
func EnsureCollection(ctx context.Context, client pkgQdrant.IQdrant, name string, vectorSize int) error {
	exists, err := client.CollectionExists(ctx, name)
	if err != nil {
		return fmt.Errorf("memory.vector: check collection %s: %w", name, err)
	}
	if exists {
		return nil
	}
	if err := client.CreateCollection(ctx, pkgQdrant.CreateCollectionRequest{
		Name:    name,
		Vectors: pkgQdrant.VectorConfig{Size: vectorSize, Distance: pkgQdrant.DistanceCosine},
	}); err != nil {
		return fmt.Errorf("memory.vector: create collection %s: %w", name, err)
	}
	return nil
}
