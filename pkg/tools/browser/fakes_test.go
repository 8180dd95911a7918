package browser

import (
	"time"

	"github.com/playwright-community/playwright-go"
)

// locatorIface is an alias so the embedded field below is not named
// "Locator", which would shadow the interface's own Locator method and stop
// fakeLocator from satisfying playwright.Locator.
type locatorIface = playwright.Locator

// fakeLocator embeds the Locator interface and overrides only what the
// resolver touches. Calling anything else panics, which is what we want in
// tests.
type fakeLocator struct {
	locatorIface
	count    int
	countErr error

	nthIndex   *int
	tookFirst  bool
	selections []string

	snapshot    string
	snapshotErr error
}

func (l *fakeLocator) Count() (int, error) {
	return l.count, l.countErr
}

func (l *fakeLocator) Nth(index int) playwright.Locator {
	l.nthIndex = &index
	return l
}

func (l *fakeLocator) First() playwright.Locator {
	l.tookFirst = true
	return l
}

func (l *fakeLocator) AriaSnapshot(options ...playwright.LocatorAriaSnapshotOptions) (string, error) {
	return l.snapshot, l.snapshotErr
}

// fakePage provides the page surface used by session and locator code.
type fakePage struct {
	playwright.Page

	title  string
	url    string
	closed bool

	locators map[string]*fakeLocator
	roles    map[string]*fakeLocator

	loadStateErr  error
	dialogHandler func(playwright.Dialog)
}

func newFakePage(title, url string) *fakePage {
	return &fakePage{
		title:    title,
		url:      url,
		locators: make(map[string]*fakeLocator),
		roles:    make(map[string]*fakeLocator),
	}
}

func (p *fakePage) Title() (string, error) { return p.title, nil }

func (p *fakePage) URL() string { return p.url }

func (p *fakePage) Close(options ...playwright.PageCloseOptions) error {
	p.closed = true
	return nil
}

func (p *fakePage) SetDefaultTimeout(timeout float64) {}

func (p *fakePage) WaitForLoadState(options ...playwright.PageWaitForLoadStateOptions) error {
	return p.loadStateErr
}

func (p *fakePage) OnConsole(fn func(playwright.ConsoleMessage)) {}

func (p *fakePage) OnRequest(fn func(playwright.Request)) {}

func (p *fakePage) OnDialog(fn func(playwright.Dialog)) {
	p.dialogHandler = fn
}

func (p *fakePage) Locator(selector string, options ...playwright.PageLocatorOptions) playwright.Locator {
	if l, ok := p.locators[selector]; ok {
		return l
	}
	l := &fakeLocator{}
	p.locators[selector] = l
	return l
}

func (p *fakePage) GetByRole(role playwright.AriaRole, options ...playwright.PageGetByRoleOptions) playwright.Locator {
	key := string(role)
	if len(options) > 0 {
		if name, ok := options[0].Name.(string); ok {
			key += "|" + name
		}
	}
	if l, ok := p.roles[key]; ok {
		return l
	}
	l := &fakeLocator{}
	p.roles[key] = l
	return l
}

// fakeContext provides page creation and close tracking.
type fakeContext struct {
	playwright.BrowserContext

	closed     bool
	newPageErr error
	created    []*fakePage
}

func (c *fakeContext) NewPage() (playwright.Page, error) {
	if c.newPageErr != nil {
		return nil, c.newPageErr
	}
	page := newFakePage("", "about:blank")
	c.created = append(c.created, page)
	return page, nil
}

func (c *fakeContext) Close(options ...playwright.BrowserContextCloseOptions) error {
	c.closed = true
	return nil
}

// fakeBrowser tracks close calls.
type fakeBrowser struct {
	playwright.Browser
	closed bool
}

func (b *fakeBrowser) Close(options ...playwright.BrowserCloseOptions) error {
	b.closed = true
	return nil
}

// fakeDialog records how it was resolved.
type fakeDialog struct {
	playwright.Dialog
	dialogType string
	accepted   bool
	dismissed  bool
	acceptText string
	acceptErr  error
	dismissErr error
}

func (d *fakeDialog) Type() string {
	if d.dialogType == "" {
		return "alert"
	}
	return d.dialogType
}

func (d *fakeDialog) Accept(texts ...string) error {
	if d.acceptErr != nil {
		return d.acceptErr
	}
	d.accepted = true
	if len(texts) > 0 {
		d.acceptText = texts[0]
	}
	return nil
}

func (d *fakeDialog) Dismiss() error {
	if d.dismissErr != nil {
		return d.dismissErr
	}
	d.dismissed = true
	return nil
}

// newOpenSession builds a session that believes a browser is running, backed
// entirely by fakes.
func newOpenSession(key string, pages ...*fakePage) (*Session, *fakeBrowser, *fakeContext) {
	browser := &fakeBrowser{}
	context := &fakeContext{}

	s := &Session{
		Key:       key,
		CreatedAt: time.Now(),
		defaults:  SessionOptions{Headless: true, Timeout: 1000},
	}
	s.browser = browser
	s.context = context
	for _, page := range pages {
		s.attachListeners(page)
		s.pages = append(s.pages, page)
	}
	s.lastActivity = time.Now()
	return s, browser, context
}
