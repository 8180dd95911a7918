package tools

import (
	"context"
	"encoding/xml"
	"fmt"
)

// Tool represents one named browser operation exposed to the calling agent.
// Tools are invoked through XML-formatted calls and return a result string
// plus optional structured metadata.
//
// Example tool call format:
//
//	<tool>
//	<tool_name>browser_navigate</tool_name>
//	<arguments>
//	  <url>https://example.com</url>
//	</arguments>
//	</tool>
type Tool interface {
	// Name returns the unique identifier for this tool (e.g. "browser_click")
	Name() string

	// Description returns a human-readable description of what this tool does
	Description() string

	// Schema returns the JSON schema for this tool's input parameters
	Schema() map[string]interface{}

	// Execute runs the tool with the given XML arguments.
	// Returns: (result string, metadata map, error). Metadata is optional
	// and can be nil.
	Execute(ctx context.Context, argumentsXML []byte) (string, map[string]interface{}, error)
}

// ToolCall represents a parsed tool invocation.
type ToolCall struct {
	XMLName   xml.Name       `xml:"tool"`
	ToolName  string         `xml:"tool_name"`
	Arguments ArgumentsBlock `xml:"arguments"`
}

// ArgumentsBlock holds the raw XML of the arguments element.
type ArgumentsBlock struct {
	InnerXML []byte `xml:",innerxml"`
}

// GetArgumentsXML returns the arguments wrapped in <arguments> tags for
// unmarshaling into a tool's input struct.
func (tc *ToolCall) GetArgumentsXML() []byte {
	wrapped := make([]byte, 0, len(tc.Arguments.InnerXML)+len("<arguments></arguments>"))
	wrapped = append(wrapped, "<arguments>"...)
	wrapped = append(wrapped, tc.Arguments.InnerXML...)
	wrapped = append(wrapped, "</arguments>"...)
	return wrapped
}

// BaseToolSchema creates a common JSON schema structure for a tool with the
// given properties and required fields.
func BaseToolSchema(properties map[string]interface{}, required []string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// Registry maps tool names to tools and dispatches calls.
type Registry struct {
	tools map[string]Tool
	order []string
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool. Duplicate names are an error.
func (r *Registry) Register(tool Tool) error {
	if _, exists := r.tools[tool.Name()]; exists {
		return fmt.Errorf("tool %q already registered", tool.Name())
	}
	r.tools[tool.Name()] = tool
	r.order = append(r.order, tool.Name())
	return nil
}

// Get returns the tool with the given name.
func (r *Registry) Get(name string) (Tool, bool) {
	tool, ok := r.tools[name]
	return tool, ok
}

// Tools returns every registered tool in registration order.
func (r *Registry) Tools() []Tool {
	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Dispatch parses and executes one tool call.
func (r *Registry) Dispatch(ctx context.Context, call *ToolCall) (string, map[string]interface{}, error) {
	tool, ok := r.Get(call.ToolName)
	if !ok {
		return "", nil, fmt.Errorf("unknown tool: %s", call.ToolName)
	}
	return tool.Execute(ctx, call.GetArgumentsXML())
}
