package browser

import (
	"context"
	"encoding/base64"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/voyager/pkg/tools"
)

// ScreenshotTool captures the current page, or one element, as an image.
type ScreenshotTool struct {
	manager *SessionManager
}

// NewScreenshotTool creates a new screenshot tool.
func NewScreenshotTool(manager *SessionManager) *ScreenshotTool {
	return &ScreenshotTool{manager: manager}
}

// Name returns the tool name.
func (t *ScreenshotTool) Name() string {
	return "browser_take_screenshot"
}

// Description returns the tool description.
func (t *ScreenshotTool) Description() string {
	return "Take a screenshot of the current page, or of one element. Prefer browser_snapshot for state inspection; screenshots are for visual verification."
}

// Schema returns the tool's JSON schema.
func (t *ScreenshotTool) Schema() map[string]interface{} {
	properties := refSchemaProperties()
	properties["session"] = sessionSchemaProperty()
	properties["type"] = map[string]interface{}{
		"type":        "string",
		"description": "Image format: 'png' (default) or 'jpeg'",
	}
	properties["full_page"] = map[string]interface{}{
		"type":        "boolean",
		"description": "Capture the full scrollable page instead of the viewport",
	}
	return tools.BaseToolSchema(properties, nil)
}

// ScreenshotInput defines the input parameters for a screenshot.
type ScreenshotInput struct {
	XMLName  xml.Name `xml:"arguments"`
	Session  string   `xml:"session"`
	Type     string   `xml:"type"`
	FullPage bool     `xml:"full_page"`
	Role     string   `xml:"role"`
	ElemName string   `xml:"name"`
	Selector string   `xml:"selector"`
	Index    *int     `xml:"index"`
}

// Execute captures the screenshot and returns the bytes base64-encoded in
// the metadata map along with the format tag.
func (t *ScreenshotTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input ScreenshotInput
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}

	key := sessionOrDefault(input.Session)
	session, err := t.manager.Resolve(key)
	if err != nil {
		return "", nil, err
	}

	opts := ScreenshotOptions{
		Format:   input.Type,
		FullPage: input.FullPage,
	}
	if input.Role != "" || input.ElemName != "" || input.Selector != "" {
		opts.Ref = &ElementRef{
			Role:     input.Role,
			Name:     input.ElemName,
			Selector: input.Selector,
			Index:    input.Index,
		}
	}

	data, format, err := session.Screenshot(opts)
	if err != nil {
		return failure(t.manager, key, err, "screenshot"), nil, nil
	}

	metadata := map[string]interface{}{
		"format":      format,
		"data_base64": base64.StdEncoding.EncodeToString(data),
	}
	return fmt.Sprintf("Captured %s screenshot (%d bytes)", format, len(data)), metadata, nil
}
