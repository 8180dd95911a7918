package browser

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/voyager/pkg/logging"
)

func TestCloseTabReindexes(t *testing.T) {
	a := newFakePage("A", "https://a.test")
	b := newFakePage("B", "https://b.test")
	c := newFakePage("C", "https://c.test")
	s, _, _ := newOpenSession("tabs", a, b, c)

	zero := 0
	closed, err := s.CloseTab(&zero)
	require.NoError(t, err)
	assert.Equal(t, 0, closed)
	assert.True(t, a.closed)

	tabs, err := s.Tabs()
	require.NoError(t, err)
	require.Len(t, tabs, 2)
	assert.Equal(t, "B", tabs[0].Title)
	assert.Equal(t, 0, tabs[0].Index)
	assert.Equal(t, "C", tabs[1].Title)
	assert.Equal(t, 1, tabs[1].Index)
}

func TestCloseTabDefaultsToCurrent(t *testing.T) {
	a := newFakePage("A", "https://a.test")
	b := newFakePage("B", "https://b.test")
	s, _, _ := newOpenSession("tabs", a, b)
	require.NoError(t, s.SelectTab(1))

	closed, err := s.CloseTab(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, closed)
	assert.True(t, b.closed)
	assert.False(t, a.closed)

	tabs, err := s.Tabs()
	require.NoError(t, err)
	require.Len(t, tabs, 1)
	assert.True(t, tabs[0].Current, "current index must be clamped after closing the last tab")
}

func TestCloseTabInvalidIndex(t *testing.T) {
	s, _, _ := newOpenSession("tabs", newFakePage("A", "https://a.test"))

	five := 5
	_, err := s.CloseTab(&five)
	require.Error(t, err)
	assert.Equal(t, KindIndexOutOfRange, KindOf(err))
}

func TestCloseLastTabLeavesBrowserRunning(t *testing.T) {
	a := newFakePage("A", "https://a.test")
	s, browser, _ := newOpenSession("tabs", a)

	_, err := s.CloseTab(nil)
	require.NoError(t, err)

	assert.Zero(t, s.PageCount())
	assert.True(t, s.IsOpen(), "closing the last tab must not tear down the browser")
	assert.False(t, browser.closed)
}

func TestCreateTabBecomesCurrent(t *testing.T) {
	a := newFakePage("A", "https://a.test")
	s, _, context := newOpenSession("tabs", a)

	index, err := s.CreateTab()
	require.NoError(t, err)
	assert.Equal(t, 1, index)
	require.Len(t, context.created, 1)

	tabs, err := s.Tabs()
	require.NoError(t, err)
	require.Len(t, tabs, 2)
	assert.False(t, tabs[0].Current)
	assert.True(t, tabs[1].Current)
}

func TestSelectTab(t *testing.T) {
	s, _, _ := newOpenSession("tabs",
		newFakePage("A", "https://a.test"),
		newFakePage("B", "https://b.test"),
	)

	require.NoError(t, s.SelectTab(1))
	tabs, err := s.Tabs()
	require.NoError(t, err)
	assert.True(t, tabs[1].Current)

	err = s.SelectTab(7)
	require.Error(t, err)
	assert.Equal(t, KindIndexOutOfRange, KindOf(err))

	err = s.SelectTab(-1)
	require.Error(t, err)
}

func TestScreenshotRejectsUnknownFormat(t *testing.T) {
	s, _, _ := newOpenSession("shots", newFakePage("A", "https://a.test"))

	_, _, err := s.Screenshot(ScreenshotOptions{Format: "webp"})
	require.Error(t, err)
	assert.Equal(t, KindInvalidArgument, KindOf(err))
}

func TestWaitForRequiresACondition(t *testing.T) {
	s, _, _ := newOpenSession("waits", newFakePage("A", "https://a.test"))

	_, err := s.WaitFor(WaitForOptions{})
	require.Error(t, err)
	assert.Equal(t, KindInvalidArgument, KindOf(err))
}

func TestSessionCloseReleasesEverything(t *testing.T) {
	a := newFakePage("A", "https://a.test")
	s, browser, context := newOpenSession("close", a)
	s.appendConsole(ConsoleMessage{Type: "log", Text: "hello"})

	require.NoError(t, s.Close())

	assert.True(t, browser.closed)
	assert.True(t, context.closed)
	assert.False(t, s.IsOpen())
	assert.Zero(t, s.PageCount())
	assert.Empty(t, s.ConsoleMessages(false), "logs must be cleared on close")

	// Closing again is a no-op.
	require.NoError(t, s.Close())
}

func TestOpenWithoutEngine(t *testing.T) {
	s := &Session{Key: "bare"}

	err := s.Open(SessionOptions{})
	require.Error(t, err)
	assert.Equal(t, KindEngineFailure, KindOf(err))
}

func TestOpenAlreadyOpen(t *testing.T) {
	s, _, _ := newOpenSession("open", newFakePage("A", "https://a.test"))

	err := s.Open(SessionOptions{})
	require.Error(t, err)
	assert.Equal(t, KindAlreadyOpen, KindOf(err))
}

func TestConsoleLogBounding(t *testing.T) {
	s, _, _ := newOpenSession("logs", newFakePage("A", "https://a.test"))
	s.maxLogEntries = 3

	for i := 0; i < 5; i++ {
		s.appendConsole(ConsoleMessage{Type: "log", Text: fmt.Sprintf("msg-%d", i)})
	}

	messages := s.ConsoleMessages(false)
	require.Len(t, messages, 3, "oldest entries must be evicted at the cap")
	assert.Equal(t, "msg-2", messages[0].Text)
	assert.Equal(t, "msg-4", messages[2].Text)
}

func TestConsoleMessagesErrorFilter(t *testing.T) {
	s, _, _ := newOpenSession("logs", newFakePage("A", "https://a.test"))
	s.appendConsole(ConsoleMessage{Type: "log", Text: "fine"})
	s.appendConsole(ConsoleMessage{Type: "error", Text: "broken"})
	s.appendConsole(ConsoleMessage{Type: "warning", Text: "meh"})

	errors := s.ConsoleMessages(true)
	require.Len(t, errors, 1)
	assert.Equal(t, "broken", errors[0].Text)

	all := s.ConsoleMessages(false)
	assert.Len(t, all, 3)
}

func TestNetworkLogBounding(t *testing.T) {
	s, _, _ := newOpenSession("logs", newFakePage("A", "https://a.test"))
	s.maxLogEntries = 2

	for i := 0; i < 4; i++ {
		s.appendNetwork(NetworkRequest{URL: fmt.Sprintf("https://x.test/%d", i), Method: "GET"})
	}

	requests := s.NetworkRequests()
	require.Len(t, requests, 2)
	assert.Equal(t, "https://x.test/2", requests[0].URL)
	assert.Equal(t, "https://x.test/3", requests[1].URL)
}

func TestDialogHandlerOneShot(t *testing.T) {
	page := newFakePage("A", "https://a.test")
	s, _, _ := newOpenSession("dialogs", page)
	require.NotNil(t, page.dialogHandler)

	// Unarmed dialogs are dismissed so the page never blocks.
	first := &fakeDialog{}
	page.dialogHandler(first)
	assert.True(t, first.dismissed)
	assert.False(t, first.accepted)

	// Armed decision applies once.
	s.ArmDialog(true, "hello")
	second := &fakeDialog{}
	page.dialogHandler(second)
	assert.True(t, second.accepted)
	assert.Equal(t, "hello", second.acceptText)

	// Decision was consumed; the next dialog is dismissed again.
	third := &fakeDialog{}
	page.dialogHandler(third)
	assert.True(t, third.dismissed)
}

func TestDialogResolutionErrorsAreLogged(t *testing.T) {
	page := newFakePage("A", "https://a.test")
	s, _, _ := newOpenSession("dialogs", page)

	// A failed dismiss must not panic when no logger is attached.
	page.dialogHandler(&fakeDialog{dismissErr: errors.New("target gone")})

	logger, err := logging.NewLogger("browser")
	require.NoError(t, err)
	defer logger.Close()
	s.logger = logger

	s.ArmDialog(true, "")
	page.dialogHandler(&fakeDialog{dialogType: "confirm", acceptErr: errors.New("page crashed")})

	content, err := os.ReadFile(logger.LogPath())
	require.NoError(t, err)
	assert.Contains(t, string(content),
		`error accepting confirm dialog in session "dialogs": page crashed`)
}

func TestArmDialogDismiss(t *testing.T) {
	page := newFakePage("A", "https://a.test")
	s, _, _ := newOpenSession("dialogs", page)

	s.ArmDialog(false, "")
	dialog := &fakeDialog{}
	page.dialogHandler(dialog)
	assert.True(t, dialog.dismissed)
	assert.False(t, dialog.accepted)
}
