package browser

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildActionResultSuccess(t *testing.T) {
	page := newFakePage("Example", "https://example.test/path")
	page.locators["body"] = &fakeLocator{snapshot: "- heading \"Example\""}

	result := buildActionResult(page, "Navigated to https://example.test/path", 1000)

	assert.Equal(t, "success", result.Status)
	assert.Equal(t, "Navigated to https://example.test/path", result.Message)
	assert.Equal(t, "https://example.test/path", result.URL)
	assert.Equal(t, "Example", result.Title)
	assert.Equal(t, "- heading \"Example\"", result.Snapshot)
	assert.Empty(t, result.Error)
}

func TestBuildActionResultNilPage(t *testing.T) {
	result := buildActionResult(nil, "click", 1000)

	assert.Equal(t, "error", result.Status)
	assert.Equal(t, "no browser page available", result.Error)
	assert.Equal(t, "click", result.Context)
}

func TestBuildActionResultLoadFailure(t *testing.T) {
	page := newFakePage("Example", "https://example.test")
	page.loadStateErr = errors.New("Timeout 1000ms exceeded")

	result := buildActionResult(page, "navigate", 1000)

	assert.Equal(t, "error", result.Status)
	assert.Contains(t, result.Error, "Timeout")
}

func TestErrorResultEnvelope(t *testing.T) {
	result := errorResult(newError(KindElementNotFound, "no element matched"), "role=button, name=Go")

	assert.Equal(t, "error", result.Status)
	assert.Equal(t, "no element matched", result.Error)
	assert.Equal(t, "role=button, name=Go", result.Context)
	assert.Empty(t, result.Snapshot)
}

func TestActionResultJSONOmitsEmptyFields(t *testing.T) {
	result := &ActionResult{Status: "error", Error: "boom"}

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(result.JSON()), &decoded))

	assert.Equal(t, "error", decoded["status"])
	assert.Equal(t, "boom", decoded["error"])
	_, hasSnapshot := decoded["snapshot"]
	assert.False(t, hasSnapshot)
	_, hasURL := decoded["url"]
	assert.False(t, hasURL)
}
