package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type qdrantImpl struct {
	baseURL    string
	httpClient *http.Client
}

// CollectionExists reports whether the collection is present.
func (c *qdrantImpl) CollectionExists(ctx context.Context, name string) (bool, error) {
	var out struct {
		Result struct {
			Exists bool `json:"exists"`
		} `json:"result"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/collections/%s/exists", name), nil, &out); err != nil {
		return false, err
	}
	return out.Result.Exists, nil
}

// CreateCollection creates a new collection with the given configuration.
func (c *qdrantImpl) CreateCollection(ctx context.Context, req CreateCollectionRequest) error {
	return c.do(ctx, http.MethodPut, "/collections/"+req.Name, req, nil)
}

// UpsertPoints inserts or updates points (vectors) in a collection.
func (c *qdrantImpl) UpsertPoints(ctx context.Context, collectionName string, req UpsertPointsRequest) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/collections/%s/points?wait=true", collectionName), req, nil)
}

// SearchPoints performs semantic search in a collection.
func (c *qdrantImpl) SearchPoints(ctx context.Context, collectionName string, req SearchRequest) (*SearchResponse, error) {
	var result SearchResponse
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/collections/%s/points/search", collectionName), req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeletePoints deletes points by ids or by filter.
func (c *qdrantImpl) DeletePoints(ctx context.Context, collectionName string, req DeletePointsRequest) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/collections/%s/points/delete?wait=true", collectionName), req, nil)
}

func (c *qdrantImpl) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("qdrant: failed to marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("qdrant: failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("qdrant: API call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var errResp ErrorResponse
		raw, _ := io.ReadAll(resp.Body)
		if jsonErr := json.Unmarshal(raw, &errResp); jsonErr == nil && errResp.Status.Error != "" {
			return fmt.Errorf("qdrant: API error %d: %s", resp.StatusCode, errResp.Status.Error)
		}
		return fmt.Errorf("qdrant: API error %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("qdrant: failed to decode response: %w", err)
	}
	return nil
}
