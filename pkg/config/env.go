package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// EnvOverrides carries environment variable overrides for the browser
// section. Pointer fields distinguish "unset" from a zero value. Variables
// use the VOYAGER_ prefix, e.g. VOYAGER_MAX_SESSIONS=5.
type EnvOverrides struct {
	MaxSessions            *int  `envconfig:"MAX_SESSIONS"`
	SessionTimeoutSeconds  *int  `envconfig:"SESSION_TIMEOUT_SECONDS"`
	CleanupIntervalSeconds *int  `envconfig:"CLEANUP_INTERVAL_SECONDS"`
	Headless               *bool `envconfig:"HEADLESS"`
	ViewportWidth          *int  `envconfig:"VIEWPORT_WIDTH"`
	ViewportHeight         *int  `envconfig:"VIEWPORT_HEIGHT"`
	MaxLogEntries          *int  `envconfig:"MAX_LOG_ENTRIES"`
	ActionTimeoutMs        *int  `envconfig:"ACTION_TIMEOUT_MS"`
}

// LoadEnvOverrides reads overrides from the environment.
func LoadEnvOverrides() (*EnvOverrides, error) {
	var env EnvOverrides
	if err := envconfig.Process("voyager", &env); err != nil {
		return nil, fmt.Errorf("failed to read environment overrides: %w", err)
	}
	return &env, nil
}

// Apply writes the set overrides onto the browser section.
func (e *EnvOverrides) Apply(section *BrowserSection) {
	section.mu.Lock()
	defer section.mu.Unlock()

	if e.MaxSessions != nil {
		section.MaxSessions = *e.MaxSessions
	}
	if e.SessionTimeoutSeconds != nil {
		section.SessionTimeoutSeconds = *e.SessionTimeoutSeconds
	}
	if e.CleanupIntervalSeconds != nil {
		section.CleanupIntervalSeconds = *e.CleanupIntervalSeconds
	}
	if e.Headless != nil {
		section.Headless = *e.Headless
	}
	if e.ViewportWidth != nil {
		section.ViewportWidth = *e.ViewportWidth
	}
	if e.ViewportHeight != nil {
		section.ViewportHeight = *e.ViewportHeight
	}
	if e.MaxLogEntries != nil {
		section.MaxLogEntries = *e.MaxLogEntries
	}
	if e.ActionTimeoutMs != nil {
		section.ActionTimeoutMs = *e.ActionTimeoutMs
	}
}
