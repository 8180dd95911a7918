package browser

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/voyager/pkg/tools"
)

// HandleDialogTool arms a one-shot handler for the next page dialog.
type HandleDialogTool struct {
	manager *SessionManager
}

// NewHandleDialogTool creates a new dialog handler tool.
func NewHandleDialogTool(manager *SessionManager) *HandleDialogTool {
	return &HandleDialogTool{manager: manager}
}

// Name returns the tool name.
func (t *HandleDialogTool) Name() string {
	return "browser_handle_dialog"
}

// Description returns the tool description.
func (t *HandleDialogTool) Description() string {
	return "Arm a handler for the next dialog (alert, confirm, prompt) before triggering the action that opens it. Unhandled dialogs are dismissed automatically."
}

// Schema returns the tool's JSON schema.
func (t *HandleDialogTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"session": sessionSchemaProperty(),
			"accept": map[string]interface{}{
				"type":        "boolean",
				"description": "Accept the dialog instead of dismissing it",
			},
			"prompt_text": map[string]interface{}{
				"type":        "string",
				"description": "Text to enter when accepting a prompt dialog",
			},
		},
		[]string{"accept"},
	)
}

// HandleDialogInput defines the input parameters for arming a dialog handler.
type HandleDialogInput struct {
	XMLName    xml.Name `xml:"arguments"`
	Session    string   `xml:"session"`
	Accept     bool     `xml:"accept"`
	PromptText string   `xml:"prompt_text"`
}

// Execute arms the dialog handler.
func (t *HandleDialogTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input HandleDialogInput
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}

	key := sessionOrDefault(input.Session)
	session, err := t.manager.Resolve(key)
	if err != nil {
		return "", nil, err
	}

	session.ArmDialog(input.Accept, input.PromptText)

	action := "dismissed"
	if input.Accept {
		action = "accepted"
	}
	payload := map[string]interface{}{
		"status":  "success",
		"message": fmt.Sprintf("Next dialog will be %s", action),
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return string(data), nil, nil
}
