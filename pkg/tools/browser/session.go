package browser

import (
	"fmt"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/voyager/pkg/logging"
)

// browserLaunchArgs are applied to every launched browser.
var browserLaunchArgs = []string{
	"--disable-blink-features=AutomationControlled",
	"--disable-info-bars",
}

const (
	contextUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/138.0.0.0 Safari/537.36"
	contextLocale    = "en-US"
	contextTimezone  = "America/New_York"
)

// initScripts run on every new document before page scripts, hiding the
// automation flag and normalizing navigator properties.
var initScripts = []string{
	`Object.defineProperty(navigator, 'webdriver', {get: () => undefined});`,
	`Object.defineProperty(navigator, 'plugins', {get: () => [1, 2, 3]});
Object.defineProperty(navigator, 'languages', {get: () => ['en-US', 'en']});`,
}

// dialogAction is a one-shot decision for the next page dialog.
type dialogAction struct {
	accept     bool
	promptText string
}

// Session owns one browser process, one isolated context and an ordered
// list of pages. All page operations against the same session serialize on
// its mutex; the registry and the reclaimer use TryLock on the same mutex
// so they never tear a session down mid-operation.
type Session struct {
	// Key is the opaque identifier binding calls to this session
	Key string

	// CreatedAt is the timestamp when the session was registered
	CreatedAt time.Time

	pw       *playwright.Playwright
	defaults SessionOptions
	logger   *logging.Logger

	mu      sync.Mutex
	browser playwright.Browser
	context playwright.BrowserContext
	pages   []playwright.Page
	current int

	// logMu guards captured console/network logs; listeners fire from the
	// engine's event goroutine while an operation holds mu.
	logMu         sync.Mutex
	console       []ConsoleMessage
	network       []NetworkRequest
	maxLogEntries int

	// actMu guards the activity timestamp so the registry can read it
	// without contending on the operation mutex.
	actMu        sync.Mutex
	lastActivity time.Time

	dialogMu sync.Mutex
	dialog   *dialogAction
}

// Touch updates the last-activity timestamp to now.
func (s *Session) Touch() {
	s.actMu.Lock()
	defer s.actMu.Unlock()
	s.lastActivity = time.Now()
}

// LastActivityAt returns the last-activity timestamp.
func (s *Session) LastActivityAt() time.Time {
	s.actMu.Lock()
	defer s.actMu.Unlock()
	return s.lastActivity
}

// IsOpen reports whether a browser process is currently owned.
func (s *Session) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.browser != nil
}

// PageCount returns the number of open tabs.
func (s *Session) PageCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pages)
}

// Open launches a browser process, derives one context with the given
// viewport, creates the first page and makes it current. It fails if this
// session already owns a process.
func (s *Session) Open(opts SessionOptions) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.openLocked(opts)
}

func (s *Session) openLocked(opts SessionOptions) error {
	if s.browser != nil {
		return newError(KindAlreadyOpen, "browser is already open for session %q", s.Key)
	}
	if s.pw == nil {
		return newError(KindEngineFailure, "browser engine not initialized")
	}

	if opts.Viewport == nil {
		opts.Viewport = &Viewport{Width: DefaultViewportWidth, Height: DefaultViewportHeight}
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}

	browser, err := s.pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Args:     browserLaunchArgs,
	})
	if err != nil {
		return withContext(err, "launch browser")
	}

	context, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  opts.Viewport.Width,
			Height: opts.Viewport.Height,
		},
		UserAgent:  playwright.String(contextUserAgent),
		Locale:     playwright.String(contextLocale),
		TimezoneId: playwright.String(contextTimezone),
		ExtraHttpHeaders: map[string]string{
			"Accept-Language": "en-US,en;q=0.9",
		},
	})
	if err != nil {
		browser.Close()
		return withContext(err, "create context")
	}

	page, err := context.NewPage()
	if err != nil {
		context.Close()
		browser.Close()
		return withContext(err, "create page")
	}

	page.SetDefaultTimeout(opts.Timeout)
	for _, script := range initScripts {
		if err := page.AddInitScript(playwright.Script{Content: playwright.String(script)}); err != nil {
			context.Close()
			browser.Close()
			return withContext(err, "add init script")
		}
	}

	s.browser = browser
	s.context = context
	s.pages = []playwright.Page{page}
	s.current = 0
	s.clearLogs()
	s.attachListeners(page)
	return nil
}

// Close tears down the context and browser process and releases all
// references. Safe to call on an already-closed session.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeLocked()
}

func (s *Session) closeLocked() error {
	if s.browser == nil {
		return nil
	}

	// Errors are collected but teardown always runs to completion.
	var errs []error
	if s.context != nil {
		if err := s.context.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := s.browser.Close(); err != nil {
		errs = append(errs, err)
	}

	s.browser = nil
	s.context = nil
	s.pages = nil
	s.current = 0
	s.clearLogs()

	if len(errs) > 0 {
		return withContext(fmt.Errorf("errors closing session: %v", errs), "close")
	}
	return nil
}

// currentPageLocked returns the page at the current index, or nil if no
// pages exist. Callers must hold mu.
func (s *Session) currentPageLocked() playwright.Page {
	if len(s.pages) == 0 || s.current < 0 || s.current >= len(s.pages) {
		return nil
	}
	return s.pages[s.current]
}

// attachListeners wires console, network and dialog capture to a page.
// Every page created in this session must receive the same attachment.
func (s *Session) attachListeners(page playwright.Page) {
	page.OnConsole(func(msg playwright.ConsoleMessage) {
		entry := ConsoleMessage{Type: msg.Type(), Text: msg.Text()}
		if loc := msg.Location(); loc != nil {
			entry.Location = fmt.Sprintf("%s:%d:%d", loc.URL, loc.LineNumber, loc.ColumnNumber)
		}
		s.appendConsole(entry)
	})

	page.OnRequest(func(request playwright.Request) {
		s.appendNetwork(NetworkRequest{
			URL:          request.URL(),
			Method:       request.Method(),
			ResourceType: request.ResourceType(),
			Headers:      request.Headers(),
		})
	})

	page.OnDialog(func(dialog playwright.Dialog) {
		s.dialogMu.Lock()
		action := s.dialog
		s.dialog = nil
		s.dialogMu.Unlock()

		if action == nil {
			// No handler armed; dismiss so the page never blocks.
			if err := dialog.Dismiss(); err != nil {
				s.logf("error dismissing unhandled %s dialog in session %q: %v", dialog.Type(), s.Key, err)
			}
			return
		}
		if action.accept {
			var err error
			if action.promptText != "" {
				err = dialog.Accept(action.promptText)
			} else {
				err = dialog.Accept()
			}
			if err != nil {
				s.logf("error accepting %s dialog in session %q: %v", dialog.Type(), s.Key, err)
			}
			return
		}
		if err := dialog.Dismiss(); err != nil {
			s.logf("error dismissing %s dialog in session %q: %v", dialog.Type(), s.Key, err)
		}
	})
}

// logf writes through the session's logger when one is attached. Listener
// callbacks fire on the engine's event goroutine, so this must never assume
// a logger exists.
func (s *Session) logf(format string, v ...interface{}) {
	if s.logger != nil {
		s.logger.Warnf(format, v...)
	}
}

// ArmDialog sets the decision applied to the next dialog raised by any page
// of this session. The decision is consumed by the first dialog.
func (s *Session) ArmDialog(accept bool, promptText string) {
	s.dialogMu.Lock()
	defer s.dialogMu.Unlock()
	s.dialog = &dialogAction{accept: accept, promptText: promptText}
}

func (s *Session) appendConsole(msg ConsoleMessage) {
	s.logMu.Lock()
	defer s.logMu.Unlock()
	s.console = append(s.console, msg)
	if limit := s.logCap(); len(s.console) > limit {
		s.console = s.console[len(s.console)-limit:]
	}
}

func (s *Session) appendNetwork(req NetworkRequest) {
	s.logMu.Lock()
	defer s.logMu.Unlock()
	s.network = append(s.network, req)
	if limit := s.logCap(); len(s.network) > limit {
		s.network = s.network[len(s.network)-limit:]
	}
}

func (s *Session) logCap() int {
	if s.maxLogEntries > 0 {
		return s.maxLogEntries
	}
	return DefaultMaxLogEntries
}

func (s *Session) clearLogs() {
	s.logMu.Lock()
	defer s.logMu.Unlock()
	s.console = nil
	s.network = nil
}

// ConsoleMessages returns the captured console log, optionally filtered to
// errors only.
func (s *Session) ConsoleMessages(onlyErrors bool) []ConsoleMessage {
	s.logMu.Lock()
	defer s.logMu.Unlock()

	out := make([]ConsoleMessage, 0, len(s.console))
	for _, msg := range s.console {
		if onlyErrors && msg.Type != "error" {
			continue
		}
		out = append(out, msg)
	}
	return out
}

// NetworkRequests returns the captured outbound requests.
func (s *Session) NetworkRequests() []NetworkRequest {
	s.logMu.Lock()
	defer s.logMu.Unlock()

	out := make([]NetworkRequest, len(s.network))
	copy(out, s.network)
	return out
}

// CreateTab opens a new page in the same context, attaches listeners,
// makes it current and returns its index.
func (s *Session) CreateTab() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.browser == nil {
		if err := s.openLocked(s.defaults); err != nil {
			return 0, err
		}
		return s.current, nil
	}

	page, err := s.context.NewPage()
	if err != nil {
		return 0, withContext(err, "create tab")
	}
	page.SetDefaultTimeout(s.defaults.Timeout)
	s.attachListeners(page)
	s.pages = append(s.pages, page)
	s.current = len(s.pages) - 1
	return s.current, nil
}

// SelectTab makes the page at index current.
func (s *Session) SelectTab(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.pages) {
		return newError(KindIndexOutOfRange, "invalid tab index: %d", index)
	}
	s.current = index
	return nil
}

// CloseTab closes the page at index, or the current page when index is nil.
// Later tabs shift down by one, so indices are not stable across closes.
// Closing the last page leaves the browser process running with zero pages
// until an explicit close or open reconciles it.
func (s *Session) CloseTab(index *int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.current
	if index != nil {
		target = *index
	}
	if target < 0 || target >= len(s.pages) {
		return 0, newError(KindIndexOutOfRange, "invalid tab index: %d", target)
	}

	if err := s.pages[target].Close(); err != nil {
		return 0, withContext(err, fmt.Sprintf("close tab %d", target))
	}
	s.pages = append(s.pages[:target], s.pages[target+1:]...)

	if s.current >= len(s.pages) {
		s.current = len(s.pages) - 1
		if s.current < 0 {
			s.current = 0
		}
	}
	return target, nil
}

// Tabs returns positional info for every page; the reported index is valid
// until the next close.
func (s *Session) Tabs() ([]TabInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tabs := make([]TabInfo, 0, len(s.pages))
	for i, page := range s.pages {
		title, err := page.Title()
		if err != nil {
			title = ""
		}
		tabs = append(tabs, TabInfo{
			Index:   i,
			Title:   title,
			URL:     page.URL(),
			Current: i == s.current,
		})
	}
	return tabs, nil
}
