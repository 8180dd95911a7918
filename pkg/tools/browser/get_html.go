package browser

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/voyager/pkg/tools"
)

// GetHTMLTool returns cleaned page markup for debugging when locators fail.
type GetHTMLTool struct {
	manager *SessionManager
}

// NewGetHTMLTool creates a new get-html tool.
func NewGetHTMLTool(manager *SessionManager) *GetHTMLTool {
	return &GetHTMLTool{manager: manager}
}

// Name returns the tool name.
func (t *GetHTMLTool) Name() string {
	return "browser_get_html"
}

// Description returns the tool description.
func (t *GetHTMLTool) Description() string {
	return "Get cleaned HTML content for debugging when locators fail. Scripts and styles are stripped and output is length-capped."
}

// Schema returns the tool's JSON schema.
func (t *GetHTMLTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"session": sessionSchemaProperty(),
			"selector": map[string]interface{}{
				"type":        "string",
				"description": "CSS selector to get HTML from (defaults to body)",
			},
			"max_length": map[string]interface{}{
				"type":        "integer",
				"description": "Maximum characters to return (default 50000)",
			},
		},
		nil,
	)
}

// Execute returns the cleaned HTML.
func (t *GetHTMLTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input struct {
		XMLName   xml.Name `xml:"arguments"`
		Session   string   `xml:"session"`
		Selector  string   `xml:"selector"`
		MaxLength int      `xml:"max_length"`
	}
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}

	key := sessionOrDefault(input.Session)
	session, err := t.manager.Resolve(key)
	if err != nil {
		return "", nil, err
	}

	cleaned, err := session.HTML(input.Selector, input.MaxLength)
	if err != nil {
		return failure(t.manager, key, err, "get html"), nil, nil
	}

	selector := input.Selector
	if selector == "" {
		selector = "body"
	}
	payload := map[string]interface{}{
		"selector":        selector,
		"html":            cleaned.HTML,
		"length":          cleaned.Length,
		"original_length": cleaned.OriginalLength,
		"truncated":       cleaned.Truncated,
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return string(data), nil, nil
}
