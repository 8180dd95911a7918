package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/voyager/pkg/tools"
)

// NavigateTool navigates a session's current page to a URL.
type NavigateTool struct {
	manager *SessionManager
}

// NewNavigateTool creates a new navigate tool.
func NewNavigateTool(manager *SessionManager) *NavigateTool {
	return &NavigateTool{manager: manager}
}

// Name returns the tool name.
func (t *NavigateTool) Name() string {
	return "browser_navigate"
}

// Description returns the tool description.
func (t *NavigateTool) Description() string {
	return "Navigate to a URL. Opens the browser with default settings if the session has none, then returns the page's accessibility snapshot."
}

// Schema returns the tool's JSON schema.
func (t *NavigateTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"session": sessionSchemaProperty(),
			"url": map[string]interface{}{
				"type":        "string",
				"description": "URL to navigate to (must include protocol, e.g., https://example.com)",
			},
		},
		[]string{"url"},
	)
}

// NavigateInput defines the input parameters for navigation.
type NavigateInput struct {
	XMLName xml.Name `xml:"arguments"`
	Session string   `xml:"session"`
	URL     string   `xml:"url"`
}

// Execute navigates to a URL.
func (t *NavigateTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input NavigateInput
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if input.URL == "" {
		return "", nil, fmt.Errorf("URL is required")
	}

	key := sessionOrDefault(input.Session)
	session, err := t.manager.Resolve(key)
	if err != nil {
		return "", nil, err
	}

	result, err := session.Navigate(input.URL)
	if err != nil {
		return failure(t.manager, key, err, fmt.Sprintf("navigate to %s", input.URL)), nil, nil
	}
	return result.JSON(), nil, nil
}

// NavigateBackTool goes back to the previous page in a session's history.
type NavigateBackTool struct {
	manager *SessionManager
}

// NewNavigateBackTool creates a new navigate-back tool.
func NewNavigateBackTool(manager *SessionManager) *NavigateBackTool {
	return &NavigateBackTool{manager: manager}
}

// Name returns the tool name.
func (t *NavigateBackTool) Name() string {
	return "browser_navigate_back"
}

// Description returns the tool description.
func (t *NavigateBackTool) Description() string {
	return "Go back to the previous page in the session's history."
}

// Schema returns the tool's JSON schema.
func (t *NavigateBackTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"session": sessionSchemaProperty(),
		},
		nil,
	)
}

// Execute navigates back.
func (t *NavigateBackTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input struct {
		XMLName xml.Name `xml:"arguments"`
		Session string   `xml:"session"`
	}
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}

	key := sessionOrDefault(input.Session)
	session, err := t.manager.Resolve(key)
	if err != nil {
		return "", nil, err
	}

	result, err := session.NavigateBack()
	if err != nil {
		return failure(t.manager, key, err, "navigate back"), nil, nil
	}
	return result.JSON(), nil, nil
}
