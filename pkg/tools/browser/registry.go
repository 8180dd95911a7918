package browser

import (
	"github.com/entrhq/voyager/pkg/tools"
)

// ToolRegistry builds the browser tool set over one session manager.
type ToolRegistry struct {
	manager *SessionManager
	tools   []tools.Tool
}

// NewToolRegistry creates a new browser tool registry.
func NewToolRegistry(manager *SessionManager) *ToolRegistry {
	return &ToolRegistry{
		manager: manager,
		tools:   make([]tools.Tool, 0),
	}
}

// RegisterTools creates and returns all browser tools.
// This should be called by the main tool registry to get the browser tools.
func (r *ToolRegistry) RegisterTools() []tools.Tool {
	if len(r.tools) > 0 {
		return r.tools
	}

	// Session management tools (always available)
	r.tools = append(r.tools,
		NewOpenTool(r.manager),
		NewCloseTool(r.manager),
		NewListSessionsTool(r.manager),
		NewCreateSessionTool(r.manager),
	)

	// Navigation and capture tools
	r.tools = append(r.tools,
		NewNavigateTool(r.manager),
		NewNavigateBackTool(r.manager),
		NewResizeTool(r.manager),
		NewSnapshotTool(r.manager),
		NewScreenshotTool(r.manager),
		NewGetHTMLTool(r.manager),
		NewConsoleMessagesTool(r.manager),
		NewNetworkRequestsTool(r.manager),
	)

	// Interaction tools
	r.tools = append(r.tools,
		NewClickTool(r.manager),
		NewHoverTool(r.manager),
		NewTypeTool(r.manager),
		NewPressKeyTool(r.manager),
		NewDragTool(r.manager),
		NewSelectOptionTool(r.manager),
		NewFillFormTool(r.manager),
		NewFileUploadTool(r.manager),
		NewEvaluateTool(r.manager),
		NewWaitForTool(r.manager),
		NewHandleDialogTool(r.manager),
		NewTabsTool(r.manager),
	)

	return r.tools
}

// GetTools returns the current set of registered tools.
func (r *ToolRegistry) GetTools() []tools.Tool {
	return r.tools
}

// GetSessionManager returns the underlying session manager.
// This allows external code to check session state if needed.
func (r *ToolRegistry) GetSessionManager() *SessionManager {
	return r.manager
}
