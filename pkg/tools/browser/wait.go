package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/voyager/pkg/tools"
)

// WaitForTool waits for a duration, or for text to appear or disappear.
type WaitForTool struct {
	manager *SessionManager
}

// NewWaitForTool creates a new wait tool.
func NewWaitForTool(manager *SessionManager) *WaitForTool {
	return &WaitForTool{manager: manager}
}

// Name returns the tool name.
func (t *WaitForTool) Name() string {
	return "browser_wait_for"
}

// Description returns the tool description.
func (t *WaitForTool) Description() string {
	return "Wait for a fixed number of seconds, for text to appear on the page, or for text to disappear. Exactly one condition should be given."
}

// Schema returns the tool's JSON schema.
func (t *WaitForTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"session": sessionSchemaProperty(),
			"time": map[string]interface{}{
				"type":        "number",
				"description": "Seconds to wait",
			},
			"text": map[string]interface{}{
				"type":        "string",
				"description": "Text to wait for",
			},
			"text_gone": map[string]interface{}{
				"type":        "string",
				"description": "Text to wait to disappear",
			},
		},
		[]string{},
	)
}

// WaitForInput defines the input parameters for waiting.
type WaitForInput struct {
	XMLName  xml.Name `xml:"arguments"`
	Session  string   `xml:"session"`
	Time     *float64 `xml:"time"`
	Text     string   `xml:"text"`
	TextGone string   `xml:"text_gone"`
}

// Execute performs the wait.
func (t *WaitForTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input WaitForInput
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if input.Time == nil && input.Text == "" && input.TextGone == "" {
		return "", nil, fmt.Errorf("one of time, text or text_gone is required")
	}

	key := sessionOrDefault(input.Session)
	session, err := t.manager.Resolve(key)
	if err != nil {
		return "", nil, err
	}

	message, err := session.WaitFor(WaitForOptions{
		Seconds:  input.Time,
		Text:     input.Text,
		TextGone: input.TextGone,
	})
	if err != nil {
		return failure(t.manager, key, err, "wait"), nil, nil
	}

	result, err := session.ActionSummary(message)
	if err != nil {
		return failure(t.manager, key, err, "wait"), nil, nil
	}
	return result.JSON(), nil, nil
}
