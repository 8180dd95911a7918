package browser

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/voyager/pkg/tools"
)

// ConsoleMessagesTool returns the session's captured console log.
type ConsoleMessagesTool struct {
	manager *SessionManager
}

// NewConsoleMessagesTool creates a new console messages tool.
func NewConsoleMessagesTool(manager *SessionManager) *ConsoleMessagesTool {
	return &ConsoleMessagesTool{manager: manager}
}

// Name returns the tool name.
func (t *ConsoleMessagesTool) Name() string {
	return "browser_console_messages"
}

// Description returns the tool description.
func (t *ConsoleMessagesTool) Description() string {
	return "Return console messages captured across all pages of the session, optionally filtered to errors only."
}

// Schema returns the tool's JSON schema.
func (t *ConsoleMessagesTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"session": sessionSchemaProperty(),
			"only_errors": map[string]interface{}{
				"type":        "boolean",
				"description": "Only return error messages",
			},
		},
		nil,
	)
}

// Execute returns the console log.
func (t *ConsoleMessagesTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input struct {
		XMLName    xml.Name `xml:"arguments"`
		Session    string   `xml:"session"`
		OnlyErrors bool     `xml:"only_errors"`
	}
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}

	key := sessionOrDefault(input.Session)
	session, err := t.manager.Resolve(key)
	if err != nil {
		return "", nil, err
	}

	messages := session.ConsoleMessages(input.OnlyErrors)
	data, err := json.MarshalIndent(messages, "", "  ")
	if err != nil {
		return "", nil, fmt.Errorf("failed to encode console messages: %w", err)
	}
	return string(data), nil, nil
}
