package qdrant

// CreateCollectionRequest defines the schema for creating a collection.
type CreateCollectionRequest struct {
	Name    string       `json:"-"` // Collection name (in URL)
	Vectors VectorConfig `json:"vectors"`
}

// VectorConfig defines vector dimension and distance metric.
type VectorConfig struct {
	Size     int    `json:"size"`
	Distance string `json:"distance"` // "Cosine", "Euclid", "Dot"
}

const DistanceCosine = "Cosine"

// Point represents a vector with payload (metadata).
// Qdrant only accepts UUID strings or unsigned integers as ids.
type Point struct {
	ID      string         `json:"id"`
	Vector  []float32      `json:"vector"`
	Payload map[string]any `json:"payload"`
}

// UpsertPointsRequest is the request to insert/update points.
type UpsertPointsRequest struct {
	Points []Point `json:"points"`
}

// Filter is a boolean payload filter.
type Filter struct {
	Must []FieldCondition `json:"must,omitempty"`
}

// FieldCondition matches a payload key against an exact value.
type FieldCondition struct {
	Key   string     `json:"key"`
	Match MatchValue `json:"match"`
}

// MatchValue is an exact keyword match.
type MatchValue struct {
	Value any `json:"value"`
}

// MatchFilter builds a filter requiring every key to equal its value.
func MatchFilter(kv map[string]string) *Filter {
	f := &Filter{}
	for k, v := range kv {
		f.Must = append(f.Must, FieldCondition{Key: k, Match: MatchValue{Value: v}})
	}
	return f
}

// SearchRequest is the request for semantic search.
type SearchRequest struct {
	Vector         []float32 `json:"vector"`
	Limit          int       `json:"limit"`
	WithPayload    bool      `json:"with_payload"`
	Filter         *Filter   `json:"filter,omitempty"`
	ScoreThreshold float64   `json:"score_threshold,omitempty"`
}

// SearchResponse contains search results.
type SearchResponse struct {
	Result []ScoredPoint `json:"result"`
}

// ScoredPoint is a search result with similarity score.
type ScoredPoint struct {
	ID      any            `json:"id"`
	Score   float64        `json:"score"`
	Payload map[string]any `json:"payload"`
}

// DeletePointsRequest deletes by explicit ids or by filter.
type DeletePointsRequest struct {
	Points []string `json:"points,omitempty"`
	Filter *Filter  `json:"filter,omitempty"`
}

// ErrorResponse is the error body returned by Qdrant.
type ErrorResponse struct {
	Status struct {
		Error string `json:"error"`
	} `json:"status"`
}
