package browser

import "encoding/json"

// Viewport represents the browser viewport dimensions.
type Viewport struct {
	Width  int
	Height int
}

// SessionOptions configures the browser launched for a session.
type SessionOptions struct {
	// Headless controls whether the browser runs without a visible window
	Headless bool

	// Viewport sets the initial viewport size
	Viewport *Viewport

	// Timeout sets the default timeout for page operations (in milliseconds)
	Timeout float64
}

// ConsoleMessage is a captured browser console entry.
type ConsoleMessage struct {
	Type     string `json:"type"`
	Text     string `json:"text"`
	Location string `json:"location,omitempty"`
}

// NetworkRequest is a captured outbound request.
type NetworkRequest struct {
	URL          string            `json:"url"`
	Method       string            `json:"method"`
	ResourceType string            `json:"resourceType"`
	Headers      map[string]string `json:"headers,omitempty"`
}

// TabInfo describes one page of a session. Indices are positional and shift
// down when an earlier tab is closed.
type TabInfo struct {
	Index   int    `json:"index"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Current bool   `json:"current"`
}

// SessionInfo contains metadata about a registered session.
type SessionInfo struct {
	Key            string `json:"session_id"`
	BrowserOpen    bool   `json:"browser_open"`
	PageCount      int    `json:"num_pages"`
	CreatedAt      string `json:"created_at"`
	LastActivityAt string `json:"last_activity"`
	IdleSeconds    int    `json:"inactive_seconds"`
}

// ActionResult is the uniform envelope every browser operation returns.
// Success carries a fresh accessibility snapshot so agents can chain actions
// without a separate inspection call; failure carries the error and its
// originating context.
type ActionResult struct {
	Status   string `json:"status"`
	Message  string `json:"message,omitempty"`
	URL      string `json:"url,omitempty"`
	Title    string `json:"title,omitempty"`
	Snapshot string `json:"snapshot,omitempty"`
	Error    string `json:"error,omitempty"`
	Context  string `json:"context,omitempty"`
}

// JSON renders the result for the tool response.
func (r *ActionResult) JSON() string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return `{"status":"error","error":"failed to encode result"}`
	}
	return string(data)
}

// Default values for sessions and the registry.
const (
	// DefaultSessionKey is the well-known key calls bind to when no
	// session is supplied, preserving single-client ergonomics.
	DefaultSessionKey = "default"

	DefaultMaxSessions     = 10
	DefaultSessionTimeout  = 1800 // seconds
	DefaultCleanupInterval = 300  // seconds
	DefaultMaxLogEntries   = 1000

	DefaultTimeout        = 30000.0 // milliseconds
	DefaultViewportWidth  = 1920
	DefaultViewportHeight = 1080
	DefaultMaxHTMLLength  = 50000
)
