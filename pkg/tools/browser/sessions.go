package browser

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/entrhq/voyager/pkg/tools"
)

// ListSessionsTool reports every live session and its state.
type ListSessionsTool struct {
	manager *SessionManager
}

// NewListSessionsTool creates a new session-listing tool.
func NewListSessionsTool(manager *SessionManager) *ListSessionsTool {
	return &ListSessionsTool{manager: manager}
}

// Name returns the tool name.
func (t *ListSessionsTool) Name() string {
	return "session_list"
}

// Description returns the tool description.
func (t *ListSessionsTool) Description() string {
	return "List all active browser sessions with their state, page count and idle time."
}

// Schema returns the tool's JSON schema.
func (t *ListSessionsTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(map[string]interface{}{}, []string{})
}

// Execute lists the sessions.
func (t *ListSessionsTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	sessions := t.manager.List()
	payload := map[string]interface{}{
		"status":   "success",
		"count":    len(sessions),
		"sessions": sessions,
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return string(data), nil, nil
}

// CreateSessionTool mints an isolated session with a generated key.
type CreateSessionTool struct {
	manager *SessionManager
}

// NewCreateSessionTool creates a new session-creation tool.
func NewCreateSessionTool(manager *SessionManager) *CreateSessionTool {
	return &CreateSessionTool{manager: manager}
}

// Name returns the tool name.
func (t *CreateSessionTool) Name() string {
	return "session_create"
}

// Description returns the tool description.
func (t *CreateSessionTool) Description() string {
	return "Create a new isolated browser session and return its generated session id. Pass the id as 'session' to other browser tools."
}

// Schema returns the tool's JSON schema.
func (t *CreateSessionTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(map[string]interface{}{}, []string{})
}

// Execute creates the session.
func (t *CreateSessionTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	key := uuid.NewString()
	if _, err := t.manager.Resolve(key); err != nil {
		return "", nil, err
	}
	payload := map[string]interface{}{
		"status":     "success",
		"message":    "Created new browser session",
		"session_id": key,
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return string(data), nil, nil
}
