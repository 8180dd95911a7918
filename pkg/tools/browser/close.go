package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/voyager/pkg/tools"
)

// CloseTool closes a session's browser and removes the session.
type CloseTool struct {
	manager *SessionManager
}

// NewCloseTool creates a new close tool.
func NewCloseTool(manager *SessionManager) *CloseTool {
	return &CloseTool{manager: manager}
}

// Name returns the tool name.
func (t *CloseTool) Name() string {
	return "browser_close"
}

// Description returns the tool description.
func (t *CloseTool) Description() string {
	return "Close the browser and clean up all resources for a session. Closing an unknown session is not an error."
}

// Schema returns the tool's JSON schema.
func (t *CloseTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"session": sessionSchemaProperty(),
		},
		nil,
	)
}

// CloseInput defines the input parameters for closing a session.
type CloseInput struct {
	XMLName xml.Name `xml:"arguments"`
	Session string   `xml:"session"`
}

// Execute closes the session.
func (t *CloseTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input CloseInput
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}

	key := sessionOrDefault(input.Session)
	if err := t.manager.Close(key); err != nil {
		return failure(t.manager, key, err, "close"), nil, nil
	}
	return fmt.Sprintf("Browser closed and resources cleaned up for session %s", key), nil, nil
}
