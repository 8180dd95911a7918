package browser

import (
	"github.com/playwright-community/playwright-go"
)

// buildActionResult assembles the uniform success envelope for an action:
// it waits for the page to settle (bounded by timeout), captures the
// accessibility snapshot of the document, and reads the current URL and
// title. If the page disappears or never settles, the error envelope is
// produced instead of propagating a raw fault. Every mutating operation
// routes its final response through here.
func buildActionResult(page playwright.Page, message string, timeout float64) *ActionResult {
	if page == nil {
		return &ActionResult{
			Status:  "error",
			Error:   "no browser page available",
			Context: message,
		}
	}

	if timeout == 0 {
		timeout = DefaultTimeout
	}
	loadState := playwright.LoadState("load")
	if err := page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   &loadState,
		Timeout: playwright.Float(timeout),
	}); err != nil {
		return errorResult(err, message)
	}

	snapshot, err := page.Locator("body").AriaSnapshot()
	if err != nil {
		return errorResult(err, message)
	}

	title, err := page.Title()
	if err != nil {
		title = ""
	}

	return &ActionResult{
		Status:   "success",
		Message:  message,
		URL:      page.URL(),
		Title:    title,
		Snapshot: snapshot,
	}
}

// errorResult wraps a classified error into the error envelope, preserving
// the originating context so agents can decide how to proceed.
func errorResult(err error, context string) *ActionResult {
	be := classify(err)
	result := &ActionResult{
		Status:  "error",
		Error:   be.Message,
		Context: be.Context,
	}
	if result.Context == "" {
		result.Context = context
	}
	return result
}
