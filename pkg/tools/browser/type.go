package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/voyager/pkg/tools"
)

// TypeTool types text into an editable element.
type TypeTool struct {
	manager *SessionManager
}

// NewTypeTool creates a new type tool.
func NewTypeTool(manager *SessionManager) *TypeTool {
	return &TypeTool{manager: manager}
}

// Name returns the tool name.
func (t *TypeTool) Name() string {
	return "browser_type"
}

// Description returns the tool description.
func (t *TypeTool) Description() string {
	return "Type text into an editable element. Can optionally press Enter afterwards to submit, or type one character at a time."
}

// Schema returns the tool's JSON schema.
func (t *TypeTool) Schema() map[string]interface{} {
	properties := refSchemaProperties()
	properties["session"] = sessionSchemaProperty()
	properties["text"] = map[string]interface{}{
		"type":        "string",
		"description": "Text to type into the element",
	}
	properties["submit"] = map[string]interface{}{
		"type":        "boolean",
		"description": "Press Enter after typing",
	}
	properties["slowly"] = map[string]interface{}{
		"type":        "boolean",
		"description": "Type one character at a time instead of filling at once",
	}
	return tools.BaseToolSchema(properties, []string{"element", "text"})
}

// TypeInput defines the input parameters for typing.
type TypeInput struct {
	XMLName  xml.Name `xml:"arguments"`
	Session  string   `xml:"session"`
	Element  string   `xml:"element"`
	Text     string   `xml:"text"`
	Role     string   `xml:"role"`
	ElemName string   `xml:"name"`
	Selector string   `xml:"selector"`
	Index    *int     `xml:"index"`
	Submit   bool     `xml:"submit"`
	Slowly   bool     `xml:"slowly"`
}

// Execute types the text.
func (t *TypeTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input TypeInput
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if input.Text == "" {
		return "", nil, fmt.Errorf("text is required")
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
	result, err := session.Type(ref, input.Text, TypeOptions{
		Submit: input.Submit,
		Slowly: input.Slowly,
	})
	if err != nil {
		return failure(t.manager, key, err, input.Element), nil, nil
	}
	return result.JSON(), nil, nil
}
