package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/voyager/pkg/tools"
)

// HoverTool hovers over an element on the page.
type HoverTool struct {
	manager *SessionManager
}

// NewHoverTool creates a new hover tool.
func NewHoverTool(manager *SessionManager) *HoverTool {
	return &HoverTool{manager: manager}
}

// Name returns the tool name.
func (t *HoverTool) Name() string {
	return "browser_hover"
}

// Description returns the tool description.
func (t *HoverTool) Description() string {
	return "Hover over an element on the page, e.g. to reveal a menu or tooltip."
}

// Schema returns the tool's JSON schema.
func (t *HoverTool) Schema() map[string]interface{} {
	properties := refSchemaProperties()
	properties["session"] = sessionSchemaProperty()
	return tools.BaseToolSchema(properties, []string{"element"})
}

// Execute hovers over the element.
func (t *HoverTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input struct {
		XMLName  xml.Name `xml:"arguments"`
		Session  string   `xml:"session"`
		Element  string   `xml:"element"`
		Role     string   `xml:"role"`
		ElemName string   `xml:"name"`
		Selector string   `xml:"selector"`
		Index    *int     `xml:"index"`
	}
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
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
	result, err := session.Hover(ref)
	if err != nil {
		return failure(t.manager, key, err, input.Element), nil, nil
	}
	return result.JSON(), nil, nil
}
