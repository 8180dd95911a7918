package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/voyager/pkg/tools"
)

// OpenTool opens a browser for a session.
type OpenTool struct {
	manager *SessionManager
}

// NewOpenTool creates a new open tool.
func NewOpenTool(manager *SessionManager) *OpenTool {
	return &OpenTool{manager: manager}
}

// Name returns the tool name.
func (t *OpenTool) Name() string {
	return "browser_open"
}

// Description returns the tool description.
func (t *OpenTool) Description() string {
	return "Open a new browser instance for a session. Each session owns an isolated browser; subsequent operations with the same session identifier reuse it."
}

// Schema returns the tool's JSON schema.
func (t *OpenTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"session": sessionSchemaProperty(),
			"headless": map[string]interface{}{
				"type":        "boolean",
				"description": "Run browser in headless mode. Default: true",
			},
			"width": map[string]interface{}{
				"type":        "integer",
				"description": "Initial viewport width in pixels. Default: 1920",
			},
			"height": map[string]interface{}{
				"type":        "integer",
				"description": "Initial viewport height in pixels. Default: 1080",
			},
		},
		nil,
	)
}

// OpenInput defines the input parameters for opening a browser.
type OpenInput struct {
	XMLName  xml.Name `xml:"arguments"`
	Session  string   `xml:"session"`
	Headless *bool    `xml:"headless"`
	Width    *int     `xml:"width"`
	Height   *int     `xml:"height"`
}

// Execute opens the browser for a session.
func (t *OpenTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input OpenInput
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}

	key := sessionOrDefault(input.Session)
	session, err := t.manager.Resolve(key)
	if err != nil {
		return "", nil, err
	}

	opts := t.manager.DefaultOptions()
	if input.Headless != nil {
		opts.Headless = *input.Headless
	}
	if input.Width != nil && *input.Width > 0 {
		opts.Viewport.Width = *input.Width
	}
	if input.Height != nil && *input.Height > 0 {
		opts.Viewport.Height = *input.Height
	}
	if opts.Viewport.Width < 1 || opts.Viewport.Height < 1 {
		return "", nil, fmt.Errorf("viewport dimensions must be positive")
	}

	if err := session.Open(opts); err != nil {
		return failure(t.manager, key, err, "open"), nil, nil
	}

	mode := "headed"
	if opts.Headless {
		mode = "headless"
	}
	return fmt.Sprintf("Browser opened in %s mode for session %s with viewport %dx%d",
		mode, key, opts.Viewport.Width, opts.Viewport.Height), nil, nil
}
