package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/voyager/pkg/tools"
)

// PressKeyTool presses a key on the keyboard.
type PressKeyTool struct {
	manager *SessionManager
}

// NewPressKeyTool creates a new press-key tool.
func NewPressKeyTool(manager *SessionManager) *PressKeyTool {
	return &PressKeyTool{manager: manager}
}

// Name returns the tool name.
func (t *PressKeyTool) Name() string {
	return "browser_press_key"
}

// Description returns the tool description.
func (t *PressKeyTool) Description() string {
	return "Press a key on the keyboard (e.g. ArrowLeft, a, Enter)."
}

// Schema returns the tool's JSON schema.
func (t *PressKeyTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"session": sessionSchemaProperty(),
			"key": map[string]interface{}{
				"type":        "string",
				"description": "Name of the key to press",
			},
		},
		[]string{"key"},
	)
}

// Execute presses the key.
func (t *PressKeyTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input struct {
		XMLName xml.Name `xml:"arguments"`
		Session string   `xml:"session"`
		Key     string   `xml:"key"`
	}
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if input.Key == "" {
		return "", nil, fmt.Errorf("key is required")
	}

	key := sessionOrDefault(input.Session)
	session, err := t.manager.Resolve(key)
	if err != nil {
		return "", nil, err
	}

	result, err := session.PressKey(input.Key)
	if err != nil {
		return failure(t.manager, key, err, fmt.Sprintf("press key %s", input.Key)), nil, nil
	}
	return result.JSON(), nil, nil
}
