package browser

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/voyager/pkg/tools"
)

// EvaluateTool runs a JavaScript expression on the page or on one element.
type EvaluateTool struct {
	manager *SessionManager
}

// NewEvaluateTool creates a new evaluate tool.
func NewEvaluateTool(manager *SessionManager) *EvaluateTool {
	return &EvaluateTool{manager: manager}
}

// Name returns the tool name.
func (t *EvaluateTool) Name() string {
	return "browser_evaluate"
}

// Description returns the tool description.
func (t *EvaluateTool) Description() string {
	return "Evaluate a JavaScript expression on the page, or on one element when an element reference is given. The expression should be a function, e.g. '() => document.title' or '(el) => el.textContent'."
}

// Schema returns the tool's JSON schema.
func (t *EvaluateTool) Schema() map[string]interface{} {
	properties := refSchemaProperties()
	properties["session"] = sessionSchemaProperty()
	properties["function"] = map[string]interface{}{
		"type":        "string",
		"description": "JavaScript function to evaluate",
	}
	return tools.BaseToolSchema(properties, []string{"function"})
}

// EvaluateInput defines the input parameters for evaluating JavaScript.
type EvaluateInput struct {
	XMLName  xml.Name `xml:"arguments"`
	Session  string   `xml:"session"`
	Function string   `xml:"function"`
	Element  string   `xml:"element"`
	Role     string   `xml:"role"`
	ElemName string   `xml:"name"`
	Selector string   `xml:"selector"`
	Index    *int     `xml:"index"`
}

// Execute evaluates the expression and returns the JSON-encoded value.
func (t *EvaluateTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input EvaluateInput
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if input.Function == "" {
		return "", nil, fmt.Errorf("function is required")
	}

	key := sessionOrDefault(input.Session)
	session, err := t.manager.Resolve(key)
	if err != nil {
		return "", nil, err
	}

	var ref *ElementRef
	if input.Role != "" || input.Selector != "" {
		ref = &ElementRef{
			Role:     input.Role,
			Name:     input.ElemName,
			Selector: input.Selector,
			Index:    input.Index,
		}
	}
	value, err := session.Evaluate(input.Function, ref)
	if err != nil {
		return failure(t.manager, key, err, "evaluate"), nil, nil
	}

	payload := map[string]interface{}{
		"status":  "success",
		"message": "Evaluated JavaScript expression",
		"result":  value,
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return string(data), nil, nil
}
