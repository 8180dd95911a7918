package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/voyager/pkg/tools"
)

// ClickTool clicks an element resolved from a role/name or selector
// reference.
type ClickTool struct {
	manager *SessionManager
}

// NewClickTool creates a new click tool.
func NewClickTool(manager *SessionManager) *ClickTool {
	return &ClickTool{manager: manager}
}

// Name returns the tool name.
func (t *ClickTool) Name() string {
	return "browser_click"
}

// Description returns the tool description.
func (t *ClickTool) Description() string {
	return "Click an element on the page. Prefer role+name references from the snapshot; a CSS selector is the fallback. Supports double clicks, mouse buttons and modifier keys."
}

// Schema returns the tool's JSON schema.
func (t *ClickTool) Schema() map[string]interface{} {
	properties := refSchemaProperties()
	properties["session"] = sessionSchemaProperty()
	properties["double_click"] = map[string]interface{}{
		"type":        "boolean",
		"description": "Perform a double click",
	}
	properties["button"] = map[string]interface{}{
		"type":        "string",
		"description": "Mouse button to use: 'left' (default), 'right', or 'middle'",
	}
	properties["modifiers"] = map[string]interface{}{
		"type":        "array",
		"items":       map[string]interface{}{"type": "string"},
		"description": "Modifier keys held during the click (Alt, Control, Meta, Shift)",
	}
	return tools.BaseToolSchema(properties, []string{"element"})
}

// ClickInput defines the input parameters for clicking.
type ClickInput struct {
	XMLName     xml.Name `xml:"arguments"`
	Session     string   `xml:"session"`
	Element     string   `xml:"element"`
	Role        string   `xml:"role"`
	ElemName    string   `xml:"name"`
	Selector    string   `xml:"selector"`
	Index       *int     `xml:"index"`
	DoubleClick bool     `xml:"double_click"`
	Button      string   `xml:"button"`
	Modifiers   []string `xml:"modifiers>modifier"`
}

// Execute clicks the element.
func (t *ClickTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input ClickInput
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}

	if input.Button != "" {
		validButtons := map[string]bool{"left": true, "right": true, "middle": true}
		if !validButtons[input.Button] {
			return "", nil, fmt.Errorf("invalid button: %s (must be 'left', 'right', or 'middle')", input.Button)
		}
	}

	key := sessionOrDefault(input.Session)
	session, err := t.manager.Resolve(key)
	if err != nil {
		return "", nil, err
	}

	ref := ElementRef{
		Role:     input.Role,
		Name:     input.ElemName,
		Selector: input.Selector,
		Index:    input.Index,
	}
	result, err := session.Click(ref, ClickOptions{
		DoubleClick: input.DoubleClick,
		Button:      input.Button,
		Modifiers:   input.Modifiers,
	})
	if err != nil {
		return failure(t.manager, key, err, input.Element), nil, nil
	}
	return result.JSON(), nil, nil
}
