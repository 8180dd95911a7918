package config

import (
	"fmt"
	"sync"
)

const (
	// SectionIDBrowser is the identifier for the browser settings section
	SectionIDBrowser = "browser"

	// Default values for browser settings
	defaultMaxSessions            = 10
	defaultSessionTimeoutSeconds  = 1800
	defaultCleanupIntervalSeconds = 300
	defaultHeadless               = true
	defaultViewportWidth          = 1920
	defaultViewportHeight         = 1080
	defaultMaxLogEntries          = 1000
	defaultActionTimeoutMs        = 30000
)

// BrowserSection manages browser session configuration settings.
type BrowserSection struct {
	MaxSessions            int  `json:"max_sessions"`
	SessionTimeoutSeconds  int  `json:"session_timeout_seconds"`
	CleanupIntervalSeconds int  `json:"cleanup_interval_seconds"`
	Headless               bool `json:"headless"`
	ViewportWidth          int  `json:"viewport_width"`
	ViewportHeight         int  `json:"viewport_height"`
	MaxLogEntries          int  `json:"max_log_entries"`
	ActionTimeoutMs        int  `json:"action_timeout_ms"`
	mu                     sync.RWMutex
}

// NewBrowserSection creates a new browser section with default settings.
func NewBrowserSection() *BrowserSection {
	return &BrowserSection{
		MaxSessions:            defaultMaxSessions,
		SessionTimeoutSeconds:  defaultSessionTimeoutSeconds,
		CleanupIntervalSeconds: defaultCleanupIntervalSeconds,
		Headless:               defaultHeadless,
		ViewportWidth:          defaultViewportWidth,
		ViewportHeight:         defaultViewportHeight,
		MaxLogEntries:          defaultMaxLogEntries,
		ActionTimeoutMs:        defaultActionTimeoutMs,
	}
}

// ID returns the section identifier.
func (s *BrowserSection) ID() string {
	return SectionIDBrowser
}

// Title returns the section title.
func (s *BrowserSection) Title() string {
	return "Browser Settings"
}

// Description returns the section description.
func (s *BrowserSection) Description() string {
	return "Configure browser session limits, idle reclamation and page defaults."
}

// Data returns the current configuration data.
func (s *BrowserSection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"max_sessions":             s.MaxSessions,
		"session_timeout_seconds":  s.SessionTimeoutSeconds,
		"cleanup_interval_seconds": s.CleanupIntervalSeconds,
		"headless":                 s.Headless,
		"viewport_width":           s.ViewportWidth,
		"viewport_height":          s.ViewportHeight,
		"max_log_entries":          s.MaxLogEntries,
		"action_timeout_ms":        s.ActionTimeoutMs,
	}
}

// SetData updates the configuration from the provided data.
func (s *BrowserSection) SetData(data map[string]interface{}) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range data {
		switch key {
		case "headless":
			enabled, ok := value.(bool)
			if !ok {
				return fmt.Errorf("invalid value type for headless: expected bool, got %T", value)
			}
			s.Headless = enabled

		case "max_sessions", "session_timeout_seconds", "cleanup_interval_seconds",
			"viewport_width", "viewport_height", "max_log_entries", "action_timeout_ms":
			n, err := toInt(key, value)
			if err != nil {
				return err
			}
			switch key {
			case "max_sessions":
				s.MaxSessions = n
			case "session_timeout_seconds":
				s.SessionTimeoutSeconds = n
			case "cleanup_interval_seconds":
				s.CleanupIntervalSeconds = n
			case "viewport_width":
				s.ViewportWidth = n
			case "viewport_height":
				s.ViewportHeight = n
			case "max_log_entries":
				s.MaxLogEntries = n
			case "action_timeout_ms":
				s.ActionTimeoutMs = n
			}

		default:
			// Ignore unknown keys for forward compatibility
			continue
		}
	}

	return nil
}

// toInt converts a JSON-decoded numeric value to an int.
func toInt(key string, value interface{}) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		// JSON numbers come as float64
		return int(v), nil
	default:
		return 0, fmt.Errorf("invalid value type for %s: expected number, got %T", key, value)
	}
}

// Validate validates the current configuration.
func (s *BrowserSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.MaxSessions < 1 {
		return fmt.Errorf("max_sessions must be at least 1, got %d", s.MaxSessions)
	}
	if s.SessionTimeoutSeconds < 1 {
		return fmt.Errorf("session_timeout_seconds must be at least 1, got %d", s.SessionTimeoutSeconds)
	}
	if s.CleanupIntervalSeconds < 1 {
		return fmt.Errorf("cleanup_interval_seconds must be at least 1, got %d", s.CleanupIntervalSeconds)
	}
	if s.ViewportWidth < 1 || s.ViewportHeight < 1 {
		return fmt.Errorf("viewport dimensions must be positive, got %dx%d", s.ViewportWidth, s.ViewportHeight)
	}
	if s.MaxLogEntries < 0 {
		return fmt.Errorf("max_log_entries must not be negative, got %d", s.MaxLogEntries)
	}
	if s.ActionTimeoutMs < 1 {
		return fmt.Errorf("action_timeout_ms must be at least 1, got %d", s.ActionTimeoutMs)
	}

	return nil
}

// Reset resets the section to default configuration.
func (s *BrowserSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.MaxSessions = defaultMaxSessions
	s.SessionTimeoutSeconds = defaultSessionTimeoutSeconds
	s.CleanupIntervalSeconds = defaultCleanupIntervalSeconds
	s.Headless = defaultHeadless
	s.ViewportWidth = defaultViewportWidth
	s.ViewportHeight = defaultViewportHeight
	s.MaxLogEntries = defaultMaxLogEntries
	s.ActionTimeoutMs = defaultActionTimeoutMs
}

// Limits returns the session limits: max sessions, idle timeout seconds and
// cleanup interval seconds.
func (s *BrowserSection) Limits() (int, int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.MaxSessions, s.SessionTimeoutSeconds, s.CleanupIntervalSeconds
}

// PageDefaults returns the defaults applied to new sessions: headless mode,
// viewport dimensions and the action timeout in milliseconds.
func (s *BrowserSection) PageDefaults() (bool, int, int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Headless, s.ViewportWidth, s.ViewportHeight, s.ActionTimeoutMs
}

// LogLimit returns the maximum number of console and network log entries
// retained per session.
func (s *BrowserSection) LogLimit() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.MaxLogEntries
}
