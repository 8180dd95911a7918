package browser

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/voyager/pkg/tools"
)

// NetworkRequestsTool returns the session's captured outbound requests.
type NetworkRequestsTool struct {
	manager *SessionManager
}

// NewNetworkRequestsTool creates a new network requests tool.
func NewNetworkRequestsTool(manager *SessionManager) *NetworkRequestsTool {
	return &NetworkRequestsTool{manager: manager}
}

// Name returns the tool name.
func (t *NetworkRequestsTool) Name() string {
	return "browser_network_requests"
}

// Description returns the tool description.
func (t *NetworkRequestsTool) Description() string {
	return "Return all network requests captured since the session's pages started loading."
}

// Schema returns the tool's JSON schema.
func (t *NetworkRequestsTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"session": sessionSchemaProperty(),
		},
		nil,
	)
}

// Execute returns the captured requests.
func (t *NetworkRequestsTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
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

	requests := session.NetworkRequests()
	data, err := json.MarshalIndent(requests, "", "  ")
	if err != nil {
		return "", nil, fmt.Errorf("failed to encode network requests: %w", err)
	}
	return string(data), nil, nil
}
