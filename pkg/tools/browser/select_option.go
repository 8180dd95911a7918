package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/voyager/pkg/tools"
)

// SelectOptionTool selects one or more options in a dropdown.
type SelectOptionTool struct {
	manager *SessionManager
}

// NewSelectOptionTool creates a new select-option tool.
func NewSelectOptionTool(manager *SessionManager) *SelectOptionTool {
	return &SelectOptionTool{manager: manager}
}

// Name returns the tool name.
func (t *SelectOptionTool) Name() string {
	return "browser_select_option"
}

// Description returns the tool description.
func (t *SelectOptionTool) Description() string {
	return "Select one or more options in a dropdown element."
}

// Schema returns the tool's JSON schema.
func (t *SelectOptionTool) Schema() map[string]interface{} {
	properties := refSchemaProperties()
	properties["session"] = sessionSchemaProperty()
	properties["values"] = map[string]interface{}{
		"type":        "array",
		"items":       map[string]interface{}{"type": "string"},
		"description": "Values to select; multiple values only work for multi-select dropdowns",
	}
	return tools.BaseToolSchema(properties, []string{"element", "values"})
}

// SelectOptionInput defines the input parameters for selecting options.
type SelectOptionInput struct {
	XMLName  xml.Name `xml:"arguments"`
	Session  string   `xml:"session"`
	Element  string   `xml:"element"`
	Role     string   `xml:"role"`
	ElemName string   `xml:"name"`
	Selector string   `xml:"selector"`
	Index    *int     `xml:"index"`
	Values   []string `xml:"values>value"`
}

// Execute selects the options.
func (t *SelectOptionTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input SelectOptionInput
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if len(input.Values) == 0 {
		return "", nil, fmt.Errorf("at least one value is required")
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
	result, err := session.SelectOption(ref, input.Values)
	if err != nil {
		return failure(t.manager, key, err, input.Element), nil, nil
	}
	return result.JSON(), nil, nil
}
