package browser

// sessionOrDefault binds an absent session argument to the well-known
// default key so single-client callers need no session bookkeeping.
func sessionOrDefault(key string) string {
	if key == "" {
		return DefaultSessionKey
	}
	return key
}

// failure renders an operation error as the uniform error envelope. An
// engine failure means the session's browser is unusable; the session is
// torn down before the error is reported so the key does not stay bound to
// a dead process.
func failure(manager *SessionManager, key string, err error, context string) string {
	if KindOf(err) == KindEngineFailure {
		_ = manager.Close(key)
	}
	return errorResult(err, context).JSON()
}

// refSchemaProperties is the shared schema fragment for element reference
// arguments: role+name preferred, selector as the escape hatch, index to
// disambiguate multiple matches.
func refSchemaProperties() map[string]interface{} {
	return map[string]interface{}{
		"element": map[string]interface{}{
			"type":        "string",
			"description": "Human-readable element description",
		},
		"role": map[string]interface{}{
			"type":        "string",
			"description": "ARIA role of the element (e.g., 'button', 'link', 'textbox')",
		},
		"name": map[string]interface{}{
			"type":        "string",
			"description": "Accessible name of the element (from snapshot)",
		},
		"selector": map[string]interface{}{
			"type":        "string",
			"description": "CSS selector (fallback if role/name not available)",
		},
		"index": map[string]interface{}{
			"type":        "integer",
			"description": "Zero-based occurrence index when multiple elements match",
		},
	}
}

// sessionSchemaProperty is the shared schema fragment for the optional
// session argument.
func sessionSchemaProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session identifier; omit to use the default session",
	}
}
