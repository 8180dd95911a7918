package tools

import (
	"context"
	"testing"
)

// echoTool is a minimal Tool for registry tests.
type echoTool struct {
	name string
}

func (t *echoTool) Name() string        { return t.name }
func (t *echoTool) Description() string { return "echoes its arguments" }
func (t *echoTool) Schema() map[string]interface{} {
	return BaseToolSchema(map[string]interface{}{}, nil)
}
func (t *echoTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	return string(argsXML), nil, nil
}

func TestRegistry(t *testing.T) {
	t.Run("register and get", func(t *testing.T) {
		r := NewRegistry()
		if err := r.Register(&echoTool{name: "echo"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		tool, ok := r.Get("echo")
		if !ok {
			t.Fatal("registered tool not found")
		}
		if tool.Name() != "echo" {
			t.Errorf("expected 'echo', got '%s'", tool.Name())
		}

		if _, ok := r.Get("missing"); ok {
			t.Error("expected false for unknown tool")
		}
	})

	t.Run("duplicate registration fails", func(t *testing.T) {
		r := NewRegistry()
		if err := r.Register(&echoTool{name: "echo"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := r.Register(&echoTool{name: "echo"}); err == nil {
			t.Error("expected error for duplicate registration")
		}
	})

	t.Run("tools preserves registration order", func(t *testing.T) {
		r := NewRegistry()
		for _, name := range []string{"c", "a", "b"} {
			if err := r.Register(&echoTool{name: name}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		tools := r.Tools()
		if len(tools) != 3 {
			t.Fatalf("expected 3 tools, got %d", len(tools))
		}
		if tools[0].Name() != "c" || tools[1].Name() != "a" || tools[2].Name() != "b" {
			t.Error("tools not in registration order")
		}
	})
}

func TestRegistryDispatch(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&echoTool{name: "echo"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("dispatches to the named tool", func(t *testing.T) {
		call, _, err := ParseToolCall(`<tool><tool_name>echo</tool_name><arguments><x>1</x></arguments></tool>`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		result, _, err := r.Dispatch(context.Background(), call)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result == "" {
			t.Error("expected echoed arguments")
		}
	})

	t.Run("unknown tool fails", func(t *testing.T) {
		call := &ToolCall{ToolName: "missing"}
		if _, _, err := r.Dispatch(context.Background(), call); err == nil {
			t.Error("expected error for unknown tool")
		}
	})
}

func TestBaseToolSchema(t *testing.T) {
	schema := BaseToolSchema(map[string]interface{}{
		"url": map[string]interface{}{"type": "string"},
	}, []string{"url"})

	if schema["type"] != "object" {
		t.Errorf("expected object schema, got '%v'", schema["type"])
	}
	props, ok := schema["properties"].(map[string]interface{})
	if !ok {
		t.Fatal("expected properties map")
	}
	if _, ok := props["url"]; !ok {
		t.Error("expected url property")
	}
	required, ok := schema["required"].([]string)
	if !ok || len(required) != 1 || required[0] != "url" {
		t.Errorf("expected required [url], got %v", schema["required"])
	}
}
