package browser

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolRegistryRegistersAllTools(t *testing.T) {
	m := NewSessionManager()
	registry := NewToolRegistry(m)

	tools := registry.RegisterTools()
	require.NotEmpty(t, tools)

	names := make(map[string]bool)
	for _, tool := range tools {
		assert.NotEmpty(t, tool.Name())
		assert.NotEmpty(t, tool.Description())
		assert.NotNil(t, tool.Schema())
		assert.False(t, names[tool.Name()], "duplicate tool name %s", tool.Name())
		names[tool.Name()] = true
	}

	expected := []string{
		"browser_open", "browser_close", "session_list", "session_create",
		"browser_navigate", "browser_navigate_back", "browser_resize",
		"browser_snapshot", "browser_take_screenshot", "browser_get_html",
		"browser_console_messages", "browser_network_requests",
		"browser_click", "browser_hover", "browser_type", "browser_press_key",
		"browser_drag", "browser_select_option", "browser_fill_form",
		"browser_file_upload", "browser_evaluate", "browser_wait_for",
		"browser_handle_dialog", "browser_tabs",
	}
	for _, name := range expected {
		assert.True(t, names[name], "missing tool %s", name)
	}
	assert.Len(t, tools, len(expected))

	// Registration is memoized.
	assert.Len(t, registry.RegisterTools(), len(expected))
	assert.Same(t, m, registry.GetSessionManager())
}

func TestClickToolRejectsInvalidButton(t *testing.T) {
	tool := NewClickTool(NewSessionManager())

	args := []byte(`<arguments><element>go</element><selector>#go</selector><button>side</button></arguments>`)
	_, _, err := tool.Execute(context.Background(), args)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid button")
}

func TestClickToolNotOpenEnvelope(t *testing.T) {
	m := NewSessionManager()
	tool := NewClickTool(m)

	args := []byte(`<arguments><element>go</element><selector>#go</selector></arguments>`)
	result, _, err := tool.Execute(context.Background(), args)
	require.NoError(t, err, "operation failures are reported in the envelope, not as Go errors")

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(result), &envelope))
	assert.Equal(t, "error", envelope["status"])
	assert.NotEmpty(t, envelope["error"])

	// The registry now tracks the implicitly-created default session.
	require.Len(t, m.List(), 1)
	assert.Equal(t, DefaultSessionKey, m.List()[0].Key)
}

func TestTypeToolRequiresText(t *testing.T) {
	tool := NewTypeTool(NewSessionManager())

	args := []byte(`<arguments><element>field</element><selector>#field</selector></arguments>`)
	_, _, err := tool.Execute(context.Background(), args)
	require.Error(t, err)
}

func TestPressKeyToolRequiresKey(t *testing.T) {
	tool := NewPressKeyTool(NewSessionManager())

	_, _, err := tool.Execute(context.Background(), []byte(`<arguments></arguments>`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key is required")
}

func TestTabsToolRejectsUnknownAction(t *testing.T) {
	tool := NewTabsTool(NewSessionManager())

	args := []byte(`<arguments><action>explode</action></arguments>`)
	_, _, err := tool.Execute(context.Background(), args)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid action")
}

func TestTabsToolCreateOpensNewTab(t *testing.T) {
	manager := NewSessionManager()
	session, _, fctx := newOpenSession(DefaultSessionKey, newFakePage("Home", "https://example.com"))
	manager.sessions[DefaultSessionKey] = session

	tool := NewTabsTool(manager)
	args := []byte(`<arguments><action>create</action></arguments>`)
	result, _, err := tool.Execute(context.Background(), args)
	require.NoError(t, err)

	var payload struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal([]byte(result), &payload))
	assert.Equal(t, "success", payload.Status)
	assert.Contains(t, payload.Message, "Opened new tab at index 1")
	assert.Len(t, fctx.created, 1)
	assert.Equal(t, 2, session.PageCount())
}

func TestTabsToolSelectRequiresIndex(t *testing.T) {
	tool := NewTabsTool(NewSessionManager())

	args := []byte(`<arguments><action>select</action></arguments>`)
	_, _, err := tool.Execute(context.Background(), args)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index is required")
}

func TestSelectOptionToolRequiresValues(t *testing.T) {
	tool := NewSelectOptionTool(NewSessionManager())

	args := []byte(`<arguments><element>menu</element><selector>#menu</selector></arguments>`)
	_, _, err := tool.Execute(context.Background(), args)
	require.Error(t, err)
}

func TestCreateSessionTool(t *testing.T) {
	m := NewSessionManager()
	tool := NewCreateSessionTool(m)

	result, _, err := tool.Execute(context.Background(), []byte(`<arguments></arguments>`))
	require.NoError(t, err)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(result), &payload))
	assert.Equal(t, "success", payload["status"])

	key, ok := payload["session_id"].(string)
	require.True(t, ok)
	assert.NotEmpty(t, key)
	assert.NotEqual(t, DefaultSessionKey, key)

	// The minted key is registered.
	infos := m.List()
	require.Len(t, infos, 1)
	assert.Equal(t, key, infos[0].Key)

	// Two mints never collide.
	second, _, err := tool.Execute(context.Background(), []byte(`<arguments></arguments>`))
	require.NoError(t, err)
	var payload2 map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(second), &payload2))
	assert.NotEqual(t, payload["session_id"], payload2["session_id"])
}

func TestListSessionsTool(t *testing.T) {
	m := NewSessionManager()
	_, err := m.Resolve("alpha")
	require.NoError(t, err)
	_, err = m.Resolve("beta")
	require.NoError(t, err)

	tool := NewListSessionsTool(m)
	result, _, err := tool.Execute(context.Background(), []byte(`<arguments></arguments>`))
	require.NoError(t, err)

	var payload struct {
		Status   string        `json:"status"`
		Count    int           `json:"count"`
		Sessions []SessionInfo `json:"sessions"`
	}
	require.NoError(t, json.Unmarshal([]byte(result), &payload))
	assert.Equal(t, "success", payload.Status)
	assert.Equal(t, 2, payload.Count)
	require.Len(t, payload.Sessions, 2)
	for _, info := range payload.Sessions {
		assert.False(t, info.BrowserOpen)
	}
}

func TestCloseToolUnknownSession(t *testing.T) {
	tool := NewCloseTool(NewSessionManager())

	result, _, err := tool.Execute(context.Background(), []byte(`<arguments><session>ghost</session></arguments>`))
	require.NoError(t, err, "closing an unknown session is not an error")
	assert.Contains(t, result, "ghost")
}

func TestHandleDialogToolArms(t *testing.T) {
	m := NewSessionManager()
	tool := NewHandleDialogTool(m)

	result, _, err := tool.Execute(context.Background(), []byte(`<arguments><accept>true</accept><prompt_text>ok</prompt_text></arguments>`))
	require.NoError(t, err)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(result), &payload))
	assert.Equal(t, "success", payload["status"])

	session, err := m.Resolve(DefaultSessionKey)
	require.NoError(t, err)
	session.dialogMu.Lock()
	defer session.dialogMu.Unlock()
	require.NotNil(t, session.dialog)
	assert.True(t, session.dialog.accept)
	assert.Equal(t, "ok", session.dialog.promptText)
}

func TestWaitForToolRequiresCondition(t *testing.T) {
	tool := NewWaitForTool(NewSessionManager())

	_, _, err := tool.Execute(context.Background(), []byte(`<arguments></arguments>`))
	require.Error(t, err)
}

func TestEvaluateToolRequiresFunction(t *testing.T) {
	tool := NewEvaluateTool(NewSessionManager())

	_, _, err := tool.Execute(context.Background(), []byte(`<arguments></arguments>`))
	require.Error(t, err)
}
