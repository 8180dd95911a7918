package browser

import (
	"errors"
	"fmt"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
)

func TestErrorRendering(t *testing.T) {
	plain := newError(KindNotOpen, "no browser for session %q", "default")
	assert.Equal(t, `no browser for session "default"`, plain.Error())

	ctx := withContext(plain, "navigate")
	assert.Equal(t, `no browser for session "default" (navigate)`, ctx.Error())
	assert.Equal(t, KindNotOpen, ctx.Kind)
}

func TestKindOfPassthrough(t *testing.T) {
	err := newError(KindInvalidLocator, "bad ref")
	assert.Equal(t, KindInvalidLocator, KindOf(err))

	wrapped := fmt.Errorf("outer: %w", err)
	assert.Equal(t, KindInvalidLocator, KindOf(wrapped))
}

func TestClassifyPlaywrightTimeout(t *testing.T) {
	pwErr := &playwright.Error{
		Name:    "TimeoutError",
		Message: "Timeout 30000ms exceeded",
	}
	assert.Equal(t, KindTimeout, KindOf(pwErr))
}

func TestClassifyPlaywrightEngineFailure(t *testing.T) {
	pwErr := &playwright.Error{
		Name:    "TargetClosedError",
		Message: "Target page, context or browser has been closed",
	}
	assert.Equal(t, KindEngineFailure, KindOf(pwErr))
}

func TestClassifyTimeoutByMessage(t *testing.T) {
	assert.Equal(t, KindTimeout, KindOf(errors.New("operation timeout after 30s")))
}

func TestClassifyUnknownAsEngineFailure(t *testing.T) {
	assert.Equal(t, KindEngineFailure, KindOf(errors.New("websocket closed unexpectedly")))
}
