package browser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// ErrorKind classifies browser errors so that callers can decide whether to
// retry, pick a different locator, or abandon the call chain.
type ErrorKind string

const (
	// KindInvalidLocator indicates a malformed element reference. The page
	// is never touched for these.
	KindInvalidLocator ErrorKind = "invalid_locator"

	// KindElementNotFound indicates the locator matched zero elements, or
	// the requested occurrence index was out of range.
	KindElementNotFound ErrorKind = "element_not_found"

	// KindInvalidArgument indicates a malformed argument that is not an
	// element reference, such as an unsupported screenshot format. The
	// page is never touched for these.
	KindInvalidArgument ErrorKind = "invalid_argument"

	// KindIndexOutOfRange indicates a tab index that names no open tab.
	KindIndexOutOfRange ErrorKind = "index_out_of_range"

	// KindAlreadyOpen indicates an open was attempted on a session whose
	// browser is already running.
	KindAlreadyOpen ErrorKind = "already_open"

	// KindNotOpen indicates an operation was attempted on a session with
	// no running browser or no pages.
	KindNotOpen ErrorKind = "not_open"

	// KindCapacityExceeded indicates the registry is full and no idle
	// entry could be evicted.
	KindCapacityExceeded ErrorKind = "capacity_exceeded"

	// KindTimeout indicates a bounded wait expired. The call may be
	// retried as-is.
	KindTimeout ErrorKind = "timeout"

	// KindEngineFailure indicates the underlying browser engine failed.
	// The session is torn down when this is detected.
	KindEngineFailure ErrorKind = "engine_failure"
)

// Error is a classified browser error with optional originating context
// (which element or action produced it).
type Error struct {
	Kind    ErrorKind
	Message string
	Context string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.Context)
	}
	return e.Message
}

// newError creates a classified error with a formatted message.
func newError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// withContext returns a copy of the error annotated with originating context.
// Non-classified errors are wrapped as engine failures.
func withContext(err error, context string) *Error {
	be := classify(err)
	return &Error{
		Kind:    be.Kind,
		Message: be.Message,
		Context: context,
	}
}

// KindOf returns the classification of err, or KindEngineFailure for
// unclassified errors from the engine.
func KindOf(err error) ErrorKind {
	return classify(err).Kind
}

// classify maps an arbitrary error onto the taxonomy. Errors already
// classified pass through; Playwright timeout errors become KindTimeout;
// everything else from the engine is an engine failure.
func classify(err error) *Error {
	var be *Error
	if errors.As(err, &be) {
		return be
	}

	var pwErr *playwright.Error
	if errors.As(err, &pwErr) {
		if pwErr.Name == "TimeoutError" || strings.Contains(pwErr.Message, "Timeout") {
			return &Error{Kind: KindTimeout, Message: pwErr.Message}
		}
		return &Error{Kind: KindEngineFailure, Message: pwErr.Message}
	}

	if strings.Contains(strings.ToLower(err.Error()), "timeout") {
		return &Error{Kind: KindTimeout, Message: err.Error()}
	}

	return &Error{Kind: KindEngineFailure, Message: err.Error()}
}
