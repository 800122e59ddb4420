package voyage

import (
	"context"
)

// IVoyage defines the interface for Voyage AI embeddings.
// Implementations are safe for concurrent use.
type IVoyage interface {
	// Embed returns one vector per text, in input order.
	Embed(ctx context.Context, texts []string, inputType InputType) ([][]float32, error)
	Model() string
}

// New creates a new Voyage AI client.
func New(cfg Config) (IVoyage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &voyageImpl{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		model:      cfg.Model,
		httpClient: cfg.HTTPClient,
	}, nil
}
