package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/voyager/pkg/tools"
)

// DragTool drags one element onto another.
type DragTool struct {
	manager *SessionManager
}

// NewDragTool creates a new drag tool.
func NewDragTool(manager *SessionManager) *DragTool {
	return &DragTool{manager: manager}
}

// Name returns the tool name.
func (t *DragTool) Name() string {
	return "browser_drag"
}

// Description returns the tool description.
func (t *DragTool) Description() string {
	return "Perform drag and drop between two elements. Each endpoint is referenced by role+name or by a CSS selector."
}

// Schema returns the tool's JSON schema.
func (t *DragTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"session": sessionSchemaProperty(),
			"start_element": map[string]interface{}{
				"type":        "string",
				"description": "Human-readable description of the element to drag",
			},
			"start_role": map[string]interface{}{
				"type":        "string",
				"description": "ARIA role of the source element",
			},
			"start_name": map[string]interface{}{
				"type":        "string",
				"description": "Accessible name of the source element",
			},
			"start_selector": map[string]interface{}{
				"type":        "string",
				"description": "CSS selector for the source element",
			},
			"end_element": map[string]interface{}{
				"type":        "string",
				"description": "Human-readable description of the drop target",
			},
			"end_role": map[string]interface{}{
				"type":        "string",
				"description": "ARIA role of the target element",
			},
			"end_name": map[string]interface{}{
				"type":        "string",
				"description": "Accessible name of the target element",
			},
			"end_selector": map[string]interface{}{
				"type":        "string",
				"description": "CSS selector for the target element",
			},
		},
		[]string{"start_element", "end_element"},
	)
}

// DragInput defines the input parameters for dragging.
type DragInput struct {
	XMLName       xml.Name `xml:"arguments"`
	Session       string   `xml:"session"`
	StartElement  string   `xml:"start_element"`
	StartRole     string   `xml:"start_role"`
	StartName     string   `xml:"start_name"`
	StartSelector string   `xml:"start_selector"`
	EndElement    string   `xml:"end_element"`
	EndRole       string   `xml:"end_role"`
	EndName       string   `xml:"end_name"`
	EndSelector   string   `xml:"end_selector"`
}

// Execute performs the drag.
func (t *DragTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input DragInput
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}

	key := sessionOrDefault(input.Session)
	session, err := t.manager.Resolve(key)
	if err != nil {
		return "", nil, err
	}

	start := ElementRef{Role: input.StartRole, Name: input.StartName, Selector: input.StartSelector}
	end := ElementRef{Role: input.EndRole, Name: input.EndName, Selector: input.EndSelector}
	result, err := session.Drag(start, end)
	if err != nil {
		context := fmt.Sprintf("drag %s to %s", input.StartElement, input.EndElement)
		return failure(t.manager, key, err, context), nil, nil
	}
	return result.JSON(), nil, nil
}
