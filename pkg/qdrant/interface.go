package qdrant

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// IQdrant is the subset of the Qdrant HTTP API used by vector memory.
type IQdrant interface {
	CollectionExists(ctx context.Context, name string) (bool, error)
	CreateCollection(ctx context.Context, req CreateCollectionRequest) error
	UpsertPoints(ctx context.Context, collectionName string, req UpsertPointsRequest) error
	SearchPoints(ctx context.Context, collectionName string, req SearchRequest) (*SearchResponse, error)
	DeletePoints(ctx context.Context, collectionName string, req DeletePointsRequest) error
}

const DefaultTimeout = 10 * time.Second

// New creates a new Qdrant client. A nil httpClient gets DefaultTimeout.
func New(baseURL string, httpClient *http.Client) IQdrant {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &qdrantImpl{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}
