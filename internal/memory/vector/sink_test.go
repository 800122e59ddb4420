package vector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"risk-advisor/internal/memory"
	"risk-advisor/internal/session"
	"risk-advisor/pkg/llmprovider"
	pkgLog "risk-advisor/pkg/log"
	pkgQdrant "risk-advisor/pkg/qdrant"
	"risk-advisor/pkg/voyage"
)

type mockQdrant struct {
	exists   bool
	created  *pkgQdrant.CreateCollectionRequest
	deleted  []pkgQdrant.DeletePointsRequest
	upserted []pkgQdrant.Point
	searched *pkgQdrant.SearchRequest
	result   []pkgQdrant.ScoredPoint
	err      error
}

func (m *mockQdrant) CollectionExists(ctx context.Context, name string) (bool, error) {
	return m.exists, m.err
}

func (m *mockQdrant) CreateCollection(ctx context.Context, req pkgQdrant.CreateCollectionRequest) error {
	m.created = &req
	return m.err
}

func (m *mockQdrant) UpsertPoints(ctx context.Context, collectionName string, req pkgQdrant.UpsertPointsRequest) error {
	m.upserted = append(m.upserted, req.Points...)
	return m.err
}

func (m *mockQdrant) SearchPoints(ctx context.Context, collectionName string, req pkgQdrant.SearchRequest) (*pkgQdrant.SearchResponse, error) {
	m.searched = &req
	if m.err != nil {
		return nil, m.err
	}
	return &pkgQdrant.SearchResponse{Result: m.result}, nil
}

func (m *mockQdrant) DeletePoints(ctx context.Context, collectionName string, req pkgQdrant.DeletePointsRequest) error {
	m.deleted = append(m.deleted, req)
	return m.err
}

type mockVoyage struct {
	inputType voyage.InputType
	texts     []string
	err       error
}

func (m *mockVoyage) Embed(ctx context.Context, texts []string, inputType voyage.InputType) ([][]float32, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.texts, m.inputType = texts, inputType
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{float32(i), 1}
	}
	return out, nil
}

func (m *mockVoyage) Model() string { return "voyage-3" }

func filterValues(f *pkgQdrant.Filter) map[string]any {
	out := make(map[string]any)
	for _, c := range f.Must {
		out[c.Key] = c.Match.Value
	}
	return out
}

func riskSnapshot() session.Snapshot {
	return session.Snapshot{
		Key: "abc", AppName: "RiskAssessorApp", UserID: "user_1",
		Messages: []llmprovider.Message{
			{Role: llmprovider.RoleUser, Parts: []llmprovider.Part{{Text: "Ready"}}},
			{Role: llmprovider.RoleModel, Parts: []llmprovider.Part{{Text: "Risk Assessment Summary"}}},
		},
		UpdatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestEnsureCollection(t *testing.T) {
	q := &mockQdrant{}
	require.NoError(t, EnsureCollection(context.Background(), q, "advisory_memory", 1024))
	require.NotNil(t, q.created)
	assert.Equal(t, "advisory_memory", q.created.Name)
	assert.Equal(t, 1024, q.created.Vectors.Size)

	existing := &mockQdrant{exists: true}
	require.NoError(t, EnsureCollection(context.Background(), existing, "advisory_memory", 1024))
	assert.Nil(t, existing.created)
}

func TestSink_AddSession(t *testing.T) {
	q, v := &mockQdrant{}, &mockVoyage{}
	s := New(q, v, "advisory_memory", pkgLog.NewNop())

	require.NoError(t, s.AddSession(context.Background(), riskSnapshot()))

	require.Len(t, q.deleted, 1)
	assert.Equal(t, map[string]any{"app_name": "RiskAssessorApp", "user_id": "user_1", "session_id": "abc"},
		filterValues(q.deleted[0].Filter))

	assert.Equal(t, voyage.InputDocument, v.inputType)
	require.Len(t, q.upserted, 2)
	assert.NotEqual(t, q.upserted[0].ID, q.upserted[1].ID)
	assert.Equal(t, "Risk Assessment Summary", q.upserted[1].Payload["text"])
	assert.Equal(t, "2026-03-01T00:00:00Z", q.upserted[1].Payload["timestamp"])
}

func TestSink_AddSessionErrors(t *testing.T) {
	s := New(&mockQdrant{}, &mockVoyage{err: errors.New("quota")}, "c", pkgLog.NewNop())
	assert.ErrorContains(t, s.AddSession(context.Background(), riskSnapshot()), "quota")

	s = New(&mockQdrant{err: errors.New("down")}, &mockVoyage{}, "c", pkgLog.NewNop())
	assert.ErrorContains(t, s.AddSession(context.Background(), riskSnapshot()), "down")

	assert.ErrorIs(t, s.AddSession(context.Background(), session.Snapshot{Key: "abc"}), memory.ErrEmptyScope)
}

func TestSink_Search(t *testing.T) {
	q := &mockQdrant{result: []pkgQdrant.ScoredPoint{
		{ID: "p1", Score: 0.91, Payload: map[string]any{
			"app_name": "RiskAssessorApp", "user_id": "user_1", "session_id": "abc",
			"author": "model", "text": "Risk Assessment Summary", "timestamp": "2026-03-01T00:00:00Z",
		}},
		{ID: "p2", Score: 0.5, Payload: map[string]any{"app_name": "RiskAssessorApp"}},
	}}
	v := &mockVoyage{}
	s := New(q, v, "advisory_memory", pkgLog.NewNop())

	got, err := s.Search(context.Background(), memory.SearchOptions{
		AppName: "RiskAssessorApp", UserID: "user_1", Query: "risk profile",
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "abc", got[0].SessionID)
	assert.Equal(t, 0.91, got[0].Score)
	assert.Equal(t, 2026, got[0].Timestamp.Year())

	assert.Equal(t, voyage.InputQuery, v.inputType)
	assert.Equal(t, DefaultSearchLimit, q.searched.Limit)
	assert.Equal(t, map[string]any{"app_name": "RiskAssessorApp", "user_id": "user_1"}, filterValues(q.searched.Filter))

	_, err = s.Search(context.Background(), memory.SearchOptions{AppName: "a", UserID: "u"})
	assert.ErrorIs(t, err, memory.ErrEmptyQuery)
}
