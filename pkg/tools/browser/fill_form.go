package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/voyager/pkg/tools"
)

// FillFormTool fills multiple form fields in one call.
type FillFormTool struct {
	manager *SessionManager
}

// NewFillFormTool creates a new fill-form tool.
func NewFillFormTool(manager *SessionManager) *FillFormTool {
	return &FillFormTool{manager: manager}
}

// Name returns the tool name.
func (t *FillFormTool) Name() string {
	return "browser_fill_form"
}

// Description returns the tool description.
func (t *FillFormTool) Description() string {
	return "Fill multiple form fields in a single call. Each field is referenced by role+name or a CSS selector and carries the value to fill."
}

// Schema returns the tool's JSON schema.
func (t *FillFormTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"session": sessionSchemaProperty(),
			"fields": map[string]interface{}{
				"type":        "array",
				"description": "Fields to fill, in order",
				"items": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"element": map[string]interface{}{
							"type":        "string",
							"description": "Human-readable description of the field",
						},
						"role": map[string]interface{}{
							"type":        "string",
							"description": "ARIA role of the field",
						},
						"name": map[string]interface{}{
							"type":        "string",
							"description": "Accessible name of the field",
						},
						"selector": map[string]interface{}{
							"type":        "string",
							"description": "CSS selector for the field",
						},
						"value": map[string]interface{}{
							"type":        "string",
							"description": "Value to fill into the field",
						},
					},
					"required": []string{"element", "value"},
				},
			},
		},
		[]string{"fields"},
	)
}

// FillFormField is one field entry of a fill-form call.
type FillFormField struct {
	Element  string `xml:"element"`
	Role     string `xml:"role"`
	Name     string `xml:"name"`
	Selector string `xml:"selector"`
	Value    string `xml:"value"`
}

// FillFormInput defines the input parameters for filling a form.
type FillFormInput struct {
	XMLName xml.Name        `xml:"arguments"`
	Session string          `xml:"session"`
	Fields  []FillFormField `xml:"fields>field"`
}

// Execute fills the form fields.
func (t *FillFormTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input FillFormInput
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if len(input.Fields) == 0 {
		return "", nil, fmt.Errorf("at least one field is required")
	}

	key := sessionOrDefault(input.Session)
	session, err := t.manager.Resolve(key)
	if err != nil {
		return "", nil, err
	}

	fields := make([]FormField, 0, len(input.Fields))
	for _, f := range input.Fields {
		fields = append(fields, FormField{
			Element:  f.Element,
			Role:     f.Role,
			Name:     f.Name,
			Selector: f.Selector,
			Value:    f.Value,
		})
	}
	result, err := session.FillForm(fields)
	if err != nil {
		return failure(t.manager, key, err, "fill form"), nil, nil
	}
	return result.JSON(), nil, nil
}
