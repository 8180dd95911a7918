package browser

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/voyager/pkg/tools"
)

// TabsTool lists, creates, closes and selects browser tabs.
type TabsTool struct {
	manager *SessionManager
}

// NewTabsTool creates a new tabs tool.
func NewTabsTool(manager *SessionManager) *TabsTool {
	return &TabsTool{manager: manager}
}

// Name returns the tool name.
func (t *TabsTool) Name() string {
	return "browser_tabs"
}

// Description returns the tool description.
func (t *TabsTool) Description() string {
	return "Manage browser tabs: 'list' open tabs, 'create' a new one, 'close' the current or an indexed tab, 'select' a tab by index."
}

// Schema returns the tool's JSON schema.
func (t *TabsTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"session": sessionSchemaProperty(),
			"action": map[string]interface{}{
				"type":        "string",
				"description": "One of 'list', 'create', 'close', 'select'",
			},
			"index": map[string]interface{}{
				"type":        "integer",
				"description": "Tab index for 'close' and 'select'; 'close' defaults to the current tab",
			},
		},
		[]string{"action"},
	)
}

// TabsInput defines the input parameters for tab management.
type TabsInput struct {
	XMLName xml.Name `xml:"arguments"`
	Session string   `xml:"session"`
	Action  string   `xml:"action"`
	Index   *int     `xml:"index"`
}

// Execute performs the tab action.
func (t *TabsTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input TabsInput
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}

	key := sessionOrDefault(input.Session)
	session, err := t.manager.Resolve(key)
	if err != nil {
		return "", nil, err
	}

	switch input.Action {
	case "list":
		tabs, err := session.Tabs()
		if err != nil {
			return failure(t.manager, key, err, "list tabs"), nil, nil
		}
		payload := map[string]interface{}{
			"status": "success",
			"tabs":   tabs,
		}
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return "", nil, fmt.Errorf("failed to encode result: %w", err)
		}
		return string(data), nil, nil

	case "create":
		index, err := session.CreateTab()
		if err != nil {
			return failure(t.manager, key, err, "create tab"), nil, nil
		}
		result, err := session.ActionSummary(fmt.Sprintf("Opened new tab at index %d", index))
		if err != nil {
			return failure(t.manager, key, err, "create tab"), nil, nil
		}
		return result.JSON(), nil, nil

	case "close":
		closed, err := session.CloseTab(input.Index)
		if err != nil {
			return failure(t.manager, key, err, "close tab"), nil, nil
		}
		message := fmt.Sprintf("Closed tab %d", closed)
		if session.PageCount() == 0 {
			payload := map[string]interface{}{
				"status":  "success",
				"message": message + "; no tabs remain open",
			}
			data, err := json.MarshalIndent(payload, "", "  ")
			if err != nil {
				return "", nil, fmt.Errorf("failed to encode result: %w", err)
			}
			return string(data), nil, nil
		}
		result, err := session.ActionSummary(message)
		if err != nil {
			return failure(t.manager, key, err, "close tab"), nil, nil
		}
		return result.JSON(), nil, nil

	case "select":
		if input.Index == nil {
			return "", nil, fmt.Errorf("index is required for 'select'")
		}
		if err := session.SelectTab(*input.Index); err != nil {
			return failure(t.manager, key, err, "select tab"), nil, nil
		}
		result, err := session.ActionSummary(fmt.Sprintf("Selected tab %d", *input.Index))
		if err != nil {
			return failure(t.manager, key, err, "select tab"), nil, nil
		}
		return result.JSON(), nil, nil

	default:
		return "", nil, fmt.Errorf("invalid action: %s (must be 'list', 'create', 'close', or 'select')", input.Action)
	}
}
