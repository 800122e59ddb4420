package agent_test

import (
	"context"
	"testing"

	"risk-advisor/internal/agent"
)

type mockTool struct {
	name        string
	description string
	params      map[string]interface{}
}

func (m *mockTool) Name() string                       { return m.name }
func (m *mockTool) Description() string                { return m.description }
func (m *mockTool) Parameters() map[string]interface{} { return m.params }
func (m *mockTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	return nil, nil
}

func TestToolRegistry(t *testing.T) {
	registry := agent.NewToolRegistry(
		&mockTool{name: "load_memory", description: "recall past sessions"},
		&mockTool{name: "echo", description: "echo"},
	)

	t.Run("Get existing tool", func(t *testing.T) {
		got, ok := registry.Get("load_memory")
		if !ok || got.Name() != "load_memory" {
			t.Errorf("expected load_memory to be found")
		}
	})

	t.Run("Get non-existing tool", func(t *testing.T) {
		if _, ok := registry.Get("google_search"); ok {
			t.Errorf("expected google_search to not be a function tool")
		}
	})

	t.Run("List is sorted", func(t *testing.T) {
		tools := registry.List()
		if len(tools) != 2 || tools[0].Name() != "echo" || tools[1].Name() != "load_memory" {
			t.Errorf("unexpected order: %v", tools)
		}
	})

	t.Run("Subset", func(t *testing.T) {
		sub := registry.Subset("load_memory", "missing")
		defs := sub.ToFunctionDefinitions()
		if len(defs) != 1 || defs[0].Name != "load_memory" {
			t.Fatalf("unexpected subset %v", defs)
		}
		if defs[0].Description != "recall past sessions" {
			t.Errorf("description not carried: %q", defs[0].Description)
		}
	})
}
