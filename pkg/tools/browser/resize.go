package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/voyager/pkg/tools"
)

// ResizeTool resizes the viewport of a session's current page.
type ResizeTool struct {
	manager *SessionManager
}

// NewResizeTool creates a new resize tool.
func NewResizeTool(manager *SessionManager) *ResizeTool {
	return &ResizeTool{manager: manager}
}

// Name returns the tool name.
func (t *ResizeTool) Name() string {
	return "browser_resize"
}

// Description returns the tool description.
func (t *ResizeTool) Description() string {
	return "Resize the browser viewport of the current page."
}

// Schema returns the tool's JSON schema.
func (t *ResizeTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"session": sessionSchemaProperty(),
			"width": map[string]interface{}{
				"type":        "integer",
				"description": "Viewport width in pixels",
			},
			"height": map[string]interface{}{
				"type":        "integer",
				"description": "Viewport height in pixels",
			},
		},
		[]string{"width", "height"},
	)
}

// Execute resizes the viewport.
func (t *ResizeTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input struct {
		XMLName xml.Name `xml:"arguments"`
		Session string   `xml:"session"`
		Width   int      `xml:"width"`
		Height  int      `xml:"height"`
	}
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if input.Width < 1 || input.Height < 1 {
		return "", nil, fmt.Errorf("width and height must be positive")
	}

	key := sessionOrDefault(input.Session)
	session, err := t.manager.Resolve(key)
	if err != nil {
		return "", nil, err
	}

	result, err := session.Resize(input.Width, input.Height)
	if err != nil {
		return failure(t.manager, key, err, "resize"), nil, nil
	}
	return result.JSON(), nil, nil
}
