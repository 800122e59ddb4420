package tools

import (
	"context"
	"fmt"
	"strings"

	"risk-advisor/internal/agent"
	"risk-advisor/internal/memory"
	pkgLog "risk-advisor/pkg/log"
)

const DefaultMemoryLimit = 5

// LoadMemoryTool lets an agent recall earlier turns of the same user.
type LoadMemoryTool struct {
	sink  memory.Searcher
	limit int
	l     pkgLog.Logger
}

// NewLoadMemoryTool creates the load_memory tool.
func NewLoadMemoryTool(sink memory.Searcher, limit int, l pkgLog.Logger) agent.Tool {
	if limit <= 0 {
		limit = DefaultMemoryLimit
	}
	return &LoadMemoryTool{sink: sink, limit: limit, l: l}
}

func (t *LoadMemoryTool) Name() string {
	return agent.ToolLoadMemory
}

func (t *LoadMemoryTool) Description() string {
	return "Loads memories of earlier conversations with the current user. Use it when earlier risk or sentiment results are needed."
}

func (t *LoadMemoryTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"query": map[string]interface{}{
				"type":        "string",
				"description": "Words to look for in earlier conversations",
			},
		},
		"required": []string{"query"},
	}
}

func (t *LoadMemoryTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	query, _ := params["query"].(string)
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("query parameter is required")
	}

	sc, ok := agent.ScopeFrom(ctx)
	if !ok {
		return nil, fmt.Errorf("load_memory: no invocation scope")
	}

	entries, err := t.sink.Search(ctx, memory.SearchOptions{
		AppName: sc.AppName,
		UserID:  sc.UserID,
		Query:   query,
		Limit:   t.limit,
	})
	if err != nil {
		t.l.Errorf(ctx, "tools.load_memory: search failed: %v", err)
		return nil, fmt.Errorf("memory search failed: %w", err)
	}

	memories := make([]map[string]interface{}, 0, len(entries))
	for _, e := range entries {
		memories = append(memories, map[string]interface{}{
			"author":     e.Author,
			"session_id": e.SessionID,
			"text":       e.Text,
			"timestamp":  e.Timestamp.Format("2006-01-02 15:04:05"),
		})
	}

	return map[string]interface{}{
		"memories": memories,
		"count":    len(memories),
	}, nil
}
