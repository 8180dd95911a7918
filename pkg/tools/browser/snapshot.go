package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/voyager/pkg/tools"
)

// SnapshotTool captures the accessibility snapshot of the current page.
// Agents use the snapshot's roles and names to build element references
// for the interaction tools.
type SnapshotTool struct {
	manager *SessionManager
}

// NewSnapshotTool creates a new snapshot tool.
func NewSnapshotTool(manager *SessionManager) *SnapshotTool {
	return &SnapshotTool{manager: manager}
}

// Name returns the tool name.
func (t *SnapshotTool) Name() string {
	return "browser_snapshot"
}

// Description returns the tool description.
func (t *SnapshotTool) Description() string {
	return "Capture an accessibility snapshot of the current page: a structured tree of roles and names, better than a screenshot for choosing what to interact with."
}

// Schema returns the tool's JSON schema.
func (t *SnapshotTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"session": sessionSchemaProperty(),
		},
		nil,
	)
}

// Execute captures the snapshot.
func (t *SnapshotTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input struct {
		XMLName xml.Name `xml:"arguments"`
		Session string   `xml:"session"`
	}
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}

	key := sessionOrDefault(input.Session)
	session, err := t.manager.Resolve(key)
	if err != nil {
		return "", nil, err
	}

	result, err := session.Snapshot()
	if err != nil {
		return failure(t.manager, key, err, "snapshot"), nil, nil
	}
	return result.JSON(), nil, nil
}
