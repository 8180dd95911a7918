package browser

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// ClickOptions configures a click action.
type ClickOptions struct {
	// DoubleClick performs a double click instead of a single click
	DoubleClick bool

	// Button is the mouse button to use: "left" (default), "right", "middle"
	Button string

	// Modifiers are keyboard modifiers held during the click
	// (Alt, Control, Meta, Shift)
	Modifiers []string
}

// TypeOptions configures a type action.
type TypeOptions struct {
	// Submit presses Enter after typing
	Submit bool

	// Slowly types one character at a time instead of filling at once
	Slowly bool
}

// FormField is one entry of a fill-form action. Element is a human-readable
// description used in messages; targeting follows the usual element
// reference rules.
type FormField struct {
	Element  string
	Role     string
	Name     string
	Selector string
	Value    string
}

// ScreenshotOptions configures a screenshot capture.
type ScreenshotOptions struct {
	// Format is "png" (default) or "jpeg"
	Format string

	// Ref optionally limits the capture to one element
	Ref *ElementRef

	// FullPage captures the full scrollable page instead of the viewport
	FullPage bool
}

// WaitForOptions configures a wait action; exactly one field should be set.
type WaitForOptions struct {
	// Seconds waits for a fixed duration
	Seconds *float64

	// Text waits for the text to appear on the page
	Text string

	// TextGone waits for the text to disappear from the page
	TextGone string
}

// requirePageLocked returns the current page or a NotOpen error. Callers
// must hold mu.
func (s *Session) requirePageLocked() (playwright.Page, error) {
	if s.browser == nil {
		return nil, newError(KindNotOpen, "no browser open for session %q", s.Key)
	}
	page := s.currentPageLocked()
	if page == nil {
		return nil, newError(KindNotOpen, "no browser page available for session %q", s.Key)
	}
	return page, nil
}

// Navigate loads a URL in the current page. A session whose browser is not
// open is opened with its defaults first.
func (s *Session) Navigate(url string) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.browser == nil {
		if err := s.openLocked(s.defaults); err != nil {
			return nil, err
		}
	}
	page, err := s.requirePageLocked()
	if err != nil {
		return nil, err
	}

	if _, err := page.Goto(url); err != nil {
		return nil, withContext(err, fmt.Sprintf("navigate to %s", url))
	}
	return buildActionResult(page, fmt.Sprintf("Navigated to %s", url), s.defaults.Timeout), nil
}

// NavigateBack goes back to the previous page in history.
func (s *Session) NavigateBack() (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page, err := s.requirePageLocked()
	if err != nil {
		return nil, err
	}
	if _, err := page.GoBack(); err != nil {
		return nil, withContext(err, "navigate back")
	}
	return buildActionResult(page, "Navigated back", s.defaults.Timeout), nil
}

// Resize changes the viewport of the current page.
func (s *Session) Resize(width, height int) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page, err := s.requirePageLocked()
	if err != nil {
		return nil, err
	}
	if err := page.SetViewportSize(width, height); err != nil {
		return nil, withContext(err, "resize viewport")
	}
	return buildActionResult(page, fmt.Sprintf("Browser resized to %dx%d", width, height), s.defaults.Timeout), nil
}

// Snapshot captures the accessibility snapshot of the current page without
// performing a mutation first.
func (s *Session) Snapshot() (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page, err := s.requirePageLocked()
	if err != nil {
		return nil, err
	}
	return buildActionResult(page, "Captured accessibility snapshot", s.defaults.Timeout), nil
}

// Click clicks the referenced element.
func (s *Session) Click(ref ElementRef, opts ClickOptions) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page, err := s.requirePageLocked()
	if err != nil {
		return nil, err
	}
	locator, err := resolveLocator(page, ref)
	if err != nil {
		return nil, err
	}

	modifiers := make([]playwright.KeyboardModifier, 0, len(opts.Modifiers))
	for _, m := range opts.Modifiers {
		modifiers = append(modifiers, playwright.KeyboardModifier(m))
	}

	action := "Clicked on"
	if opts.DoubleClick {
		clickOpts := playwright.LocatorDblclickOptions{Modifiers: modifiers}
		if opts.Button != "" {
			button := playwright.MouseButton(opts.Button)
			clickOpts.Button = &button
		}
		if err := locator.Dblclick(clickOpts); err != nil {
			return nil, withContext(err, ref.describe())
		}
		action = "Double-clicked on"
	} else {
		clickOpts := playwright.LocatorClickOptions{Modifiers: modifiers}
		if opts.Button != "" {
			button := playwright.MouseButton(opts.Button)
			clickOpts.Button = &button
		}
		if err := locator.Click(clickOpts); err != nil {
			return nil, withContext(err, ref.describe())
		}
	}
	return buildActionResult(page, fmt.Sprintf("%s element (%s)", action, ref.describe()), s.defaults.Timeout), nil
}

// Hover hovers over the referenced element.
func (s *Session) Hover(ref ElementRef) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page, err := s.requirePageLocked()
	if err != nil {
		return nil, err
	}
	locator, err := resolveLocator(page, ref)
	if err != nil {
		return nil, err
	}
	if err := locator.Hover(); err != nil {
		return nil, withContext(err, ref.describe())
	}
	return buildActionResult(page, fmt.Sprintf("Hovered over element (%s)", ref.describe()), s.defaults.Timeout), nil
}

// Type fills or types text into the referenced element.
func (s *Session) Type(ref ElementRef, text string, opts TypeOptions) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page, err := s.requirePageLocked()
	if err != nil {
		return nil, err
	}
	locator, err := resolveLocator(page, ref)
	if err != nil {
		return nil, err
	}

	if opts.Slowly {
		if err := locator.PressSequentially(text); err != nil {
			return nil, withContext(err, ref.describe())
		}
	} else {
		if err := locator.Fill(text); err != nil {
			return nil, withContext(err, ref.describe())
		}
	}

	message := fmt.Sprintf("Typed %q into element (%s)", text, ref.describe())
	if opts.Submit {
		if err := locator.Press("Enter"); err != nil {
			return nil, withContext(err, ref.describe())
		}
		message = fmt.Sprintf("Typed %q into element and submitted (%s)", text, ref.describe())
	}
	return buildActionResult(page, message, s.defaults.Timeout), nil
}

// PressKey presses a single key on the keyboard (e.g. ArrowLeft, Enter).
func (s *Session) PressKey(key string) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page, err := s.requirePageLocked()
	if err != nil {
		return nil, err
	}
	if err := page.Keyboard().Press(key); err != nil {
		return nil, withContext(err, fmt.Sprintf("press key %s", key))
	}
	return buildActionResult(page, fmt.Sprintf("Pressed key: %s", key), s.defaults.Timeout), nil
}

// Drag performs drag and drop from one referenced element to another.
func (s *Session) Drag(start, end ElementRef) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page, err := s.requirePageLocked()
	if err != nil {
		return nil, err
	}
	source, err := resolveLocator(page, start)
	if err != nil {
		return nil, err
	}
	target, err := resolveLocator(page, end)
	if err != nil {
		return nil, err
	}
	if err := source.DragTo(target); err != nil {
		return nil, withContext(err, fmt.Sprintf("drag from (%s) to (%s)", start.describe(), end.describe()))
	}
	return buildActionResult(page, fmt.Sprintf("Dragged from (%s) to (%s)", start.describe(), end.describe()), s.defaults.Timeout), nil
}

// SelectOption selects values in the referenced dropdown.
func (s *Session) SelectOption(ref ElementRef, values []string) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page, err := s.requirePageLocked()
	if err != nil {
		return nil, err
	}
	locator, err := resolveLocator(page, ref)
	if err != nil {
		return nil, err
	}
	if _, err := locator.SelectOption(playwright.SelectOptionValues{Values: &values}); err != nil {
		return nil, withContext(err, ref.describe())
	}
	return buildActionResult(page, fmt.Sprintf("Selected %v in element (%s)", values, ref.describe()), s.defaults.Timeout), nil
}

// FillForm fills multiple form fields in order. Individual field failures
// are collected into the result message instead of aborting the batch.
func (s *Session) FillForm(fields []FormField) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page, err := s.requirePageLocked()
	if err != nil {
		return nil, err
	}

	var filled, failures []string
	for _, field := range fields {
		if field.Value == "" {
			continue
		}
		desc := field.Element
		if desc == "" {
			desc = field.Name + field.Selector
		}

		ref := ElementRef{Role: field.Role, Name: field.Name, Selector: field.Selector}
		locator, err := resolveLocator(page, ref)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", desc, err))
			continue
		}
		if err := locator.Fill(field.Value); err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", desc, err))
			continue
		}
		filled = append(filled, desc)
	}

	message := fmt.Sprintf("Filled %d field(s): %s", len(filled), strings.Join(filled, ", "))
	if len(failures) > 0 {
		message += "\nErrors: " + strings.Join(failures, "; ")
	}
	return buildActionResult(page, message, s.defaults.Timeout), nil
}

// Upload sets the given files on the referenced file input.
func (s *Session) Upload(ref ElementRef, paths []string) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page, err := s.requirePageLocked()
	if err != nil {
		return nil, err
	}
	locator, err := resolveLocator(page, ref)
	if err != nil {
		return nil, err
	}
	if err := locator.SetInputFiles(paths); err != nil {
		return nil, withContext(err, ref.describe())
	}
	return buildActionResult(page, fmt.Sprintf("Uploaded %d file(s) to element (%s)", len(paths), ref.describe()), s.defaults.Timeout), nil
}

// Evaluate runs a JavaScript expression on the page, or on the referenced
// element when a reference is given, and returns the result.
func (s *Session) Evaluate(expression string, ref *ElementRef) (interface{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page, err := s.requirePageLocked()
	if err != nil {
		return nil, err
	}

	if ref != nil {
		locator, err := resolveLocator(page, *ref)
		if err != nil {
			return nil, err
		}
		value, err := locator.Evaluate(expression, nil)
		if err != nil {
			return nil, withContext(err, ref.describe())
		}
		return value, nil
	}

	value, err := page.Evaluate(expression)
	if err != nil {
		return nil, withContext(err, "evaluate")
	}
	return value, nil
}

// WaitFor waits for a fixed duration, for text to appear, or for text to
// disappear, bounded by the session's default timeout.
func (s *Session) WaitFor(opts WaitForOptions) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page, err := s.requirePageLocked()
	if err != nil {
		return "", err
	}

	switch {
	case opts.Seconds != nil:
		page.WaitForTimeout(*opts.Seconds * 1000)
		return fmt.Sprintf("Waited for %g seconds", *opts.Seconds), nil

	case opts.Text != "":
		state := playwright.WaitForSelectorState("visible")
		err := page.Locator(fmt.Sprintf("text=%s", opts.Text)).First().WaitFor(playwright.LocatorWaitForOptions{
			State:   &state,
			Timeout: playwright.Float(s.defaults.Timeout),
		})
		if err != nil {
			return "", withContext(err, fmt.Sprintf("wait for text %q", opts.Text))
		}
		return fmt.Sprintf("Waited for text %q to appear", opts.Text), nil

	case opts.TextGone != "":
		state := playwright.WaitForSelectorState("hidden")
		err := page.Locator(fmt.Sprintf("text=%s", opts.TextGone)).First().WaitFor(playwright.LocatorWaitForOptions{
			State:   &state,
			Timeout: playwright.Float(s.defaults.Timeout),
		})
		if err != nil {
			return "", withContext(err, fmt.Sprintf("wait for text %q to disappear", opts.TextGone))
		}
		return fmt.Sprintf("Waited for text %q to disappear", opts.TextGone), nil
	}

	return "", newError(KindInvalidArgument, "no wait condition specified")
}

// Screenshot captures the current page, or one element of it, as an image.
// It returns the raw bytes and the format tag.
func (s *Session) Screenshot(opts ScreenshotOptions) ([]byte, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page, err := s.requirePageLocked()
	if err != nil {
		return nil, "", err
	}

	format := opts.Format
	if format == "" {
		format = "png"
	}
	if format != "png" && format != "jpeg" {
		return nil, "", newError(KindInvalidArgument, "unsupported screenshot format: %s", format)
	}
	screenshotType := playwright.ScreenshotType(format)

	if opts.Ref != nil {
		locator, err := resolveLocator(page, *opts.Ref)
		if err != nil {
			return nil, "", err
		}
		data, err := locator.Screenshot(playwright.LocatorScreenshotOptions{Type: &screenshotType})
		if err != nil {
			return nil, "", withContext(err, opts.Ref.describe())
		}
		return data, format, nil
	}

	data, err := page.Screenshot(playwright.PageScreenshotOptions{
		Type:     &screenshotType,
		FullPage: playwright.Bool(opts.FullPage),
	})
	if err != nil {
		return nil, "", withContext(err, "screenshot")
	}
	return data, format, nil
}

// HTML returns cleaned HTML for the page body or a selector, capped at
// maxLength characters. Intended for debugging when locators fail.
func (s *Session) HTML(selector string, maxLength int) (*CleanedHTML, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page, err := s.requirePageLocked()
	if err != nil {
		return nil, err
	}

	target := selector
	if target == "" {
		target = "body"
	}
	raw, err := page.InnerHTML(target)
	if err != nil {
		return nil, withContext(err, fmt.Sprintf("selector=%s", target))
	}

	if maxLength <= 0 {
		maxLength = DefaultMaxHTMLLength
	}
	cleaned, err := cleanHTML(raw, maxLength)
	if err != nil {
		return nil, withContext(err, fmt.Sprintf("selector=%s", target))
	}
	return cleaned, nil
}

// ActionSummary builds the standard result envelope for the current page
// with the given message. It is used by operations that finish outside the
// page (waits, tab switches, dialog arming).
func (s *Session) ActionSummary(message string) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page, err := s.requirePageLocked()
	if err != nil {
		return nil, err
	}
	return buildActionResult(page, message, s.defaults.Timeout), nil
}
