package browser

import (
	"io"
	"sort"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/voyager/pkg/logging"
)

// SessionManager is the registry mapping opaque session keys to browser
// sessions. It enforces the maximum population, tracks activity, evicts the
// least-recently-active entry under pressure and serializes all registry
// mutations behind one mutex. Page operations never run under the registry
// lock; they serialize on the per-session mutex instead.
type SessionManager struct {
	mu          sync.Mutex
	sessions    map[string]*Session
	playwright  *playwright.Playwright
	initialized bool

	maxSessions     int
	idleTimeout     time.Duration
	maxLogEntries   int
	defaultHeadless bool
	defaultViewport Viewport
	defaultTimeout  float64

	// now is swappable for tests
	now func() time.Time

	logger *logging.Logger
}

// NewSessionManager creates a session manager with default limits.
func NewSessionManager() *SessionManager {
	logger, _ := logging.NewLogger("browser")
	return &SessionManager{
		sessions:        make(map[string]*Session),
		maxSessions:     DefaultMaxSessions,
		idleTimeout:     DefaultSessionTimeout * time.Second,
		maxLogEntries:   DefaultMaxLogEntries,
		defaultHeadless: true,
		defaultViewport: Viewport{Width: DefaultViewportWidth, Height: DefaultViewportHeight},
		defaultTimeout:  DefaultTimeout,
		now:             time.Now,
		logger:          logger,
	}
}

// Initialize installs and starts the Playwright driver. It must be called
// before any session can open a browser; registering sessions works
// without it.
func (m *SessionManager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	opts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}
	if err := playwright.Install(opts); err != nil {
		return withContext(err, "install playwright")
	}
	pw, err := playwright.Run(opts)
	if err != nil {
		return withContext(err, "start playwright")
	}

	m.playwright = pw
	m.initialized = true
	return nil
}

// Resolve returns the session for key, creating and registering an empty
// one if the key is unseen. When the registry is full, the least-recently-
// active entry not currently executing an operation is evicted first;
// if every entry is busy the call fails with CapacityExceeded. Creation is
// exactly-once per key: concurrent calls for the same unseen key observe
// one session. The entry's activity timestamp is refreshed on every call.
func (m *SessionManager) Resolve(key string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if session, exists := m.sessions[key]; exists {
		session.Touch()
		return session, nil
	}

	if len(m.sessions) >= m.maxSessions {
		if err := m.evictLocked(); err != nil {
			return nil, err
		}
	}

	session := m.newSessionLocked(key)
	m.sessions[key] = session
	return session, nil
}

func (m *SessionManager) newSessionLocked(key string) *Session {
	now := m.now()
	session := &Session{
		Key:       key,
		CreatedAt: now,
		pw:        m.playwright,
		logger:    m.logger,
		defaults: SessionOptions{
			Headless: m.defaultHeadless,
			Viewport: &Viewport{Width: m.defaultViewport.Width, Height: m.defaultViewport.Height},
			Timeout:  m.defaultTimeout,
		},
		maxLogEntries: m.maxLogEntries,
		lastActivity:  now,
	}
	return session
}

// evictLocked removes the least-recently-active idle entry. Ordering is
// deterministic: oldest last-activity first, ties broken by oldest
// created-at. Entries whose operation mutex is held are skipped.
func (m *SessionManager) evictLocked() error {
	candidates := make([]*Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		candidates = append(candidates, session)
	}
	sort.Slice(candidates, func(i, j int) bool {
		ai, aj := candidates[i].LastActivityAt(), candidates[j].LastActivityAt()
		if ai.Equal(aj) {
			return candidates[i].CreatedAt.Before(candidates[j].CreatedAt)
		}
		return ai.Before(aj)
	})

	for _, session := range candidates {
		if !session.mu.TryLock() {
			continue
		}
		if err := session.closeLocked(); err != nil {
			m.logger.Warnf("error closing evicted session %q: %v", session.Key, err)
		}
		session.mu.Unlock()
		delete(m.sessions, session.Key)
		m.logger.Infof("evicted least-recently-active session %q", session.Key)
		return nil
	}
	return newError(KindCapacityExceeded, "session limit (%d) reached and every session is busy", m.maxSessions)
}

// Touch refreshes the activity timestamp for key; absent keys are ignored.
func (m *SessionManager) Touch(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if session, exists := m.sessions[key]; exists {
		session.Touch()
	}
}

// Close tears down the session for key and removes it. Closing an absent
// key is not an error.
func (m *SessionManager) Close(key string) error {
	m.mu.Lock()
	session, exists := m.sessions[key]
	if exists {
		delete(m.sessions, key)
	}
	m.mu.Unlock()

	if !exists {
		return nil
	}
	// The entry is already unreachable by key; teardown happens outside
	// the registry lock so other sessions are not blocked.
	if err := session.Close(); err != nil {
		m.logger.Warnf("error closing session %q: %v", key, err)
		return err
	}
	return nil
}

// List returns metadata for every registered session, ordered by creation
// time for deterministic output. It never mutates the registry.
func (m *SessionManager) List() []SessionInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	infos := make([]SessionInfo, 0, len(m.sessions))
	now := m.now()
	for _, session := range m.sessions {
		last := session.LastActivityAt()
		infos = append(infos, SessionInfo{
			Key:            session.Key,
			BrowserOpen:    session.IsOpen(),
			PageCount:      session.PageCount(),
			CreatedAt:      session.CreatedAt.Format(time.RFC3339),
			LastActivityAt: last.Format(time.RFC3339),
			IdleSeconds:    int(now.Sub(last).Seconds()),
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		if infos[i].CreatedAt == infos[j].CreatedAt {
			return infos[i].Key < infos[j].Key
		}
		return infos[i].CreatedAt < infos[j].CreatedAt
	})
	return infos
}

// HasSessions reports whether any sessions are registered.
func (m *SessionManager) HasSessions() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions) > 0
}

// ReapIdle closes and removes every session idle past the configured
// timeout. Sessions whose operation mutex is held are skipped and
// reconsidered on the next pass. Returns the keys reclaimed.
func (m *SessionManager) ReapIdle() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	var reclaimed []string
	for key, session := range m.sessions {
		if now.Sub(session.LastActivityAt()) <= m.idleTimeout {
			continue
		}
		if !session.mu.TryLock() {
			m.logger.Debugf("session %q idle but busy, skipping this pass", key)
			continue
		}
		if err := session.closeLocked(); err != nil {
			m.logger.Warnf("error reclaiming idle session %q: %v", key, err)
		}
		session.mu.Unlock()
		delete(m.sessions, key)
		reclaimed = append(reclaimed, key)
		m.logger.Infof("reclaimed idle session %q", key)
	}
	return reclaimed
}

// Shutdown closes every session unconditionally, bounded by grace per
// session, then stops the Playwright driver. Failures are logged, never
// propagated in a way that blocks shutdown.
func (m *SessionManager) Shutdown(grace time.Duration) {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for key, session := range m.sessions {
		sessions = append(sessions, session)
		delete(m.sessions, key)
	}
	pw := m.playwright
	m.playwright = nil
	m.initialized = false
	m.mu.Unlock()

	for _, session := range sessions {
		done := make(chan error, 1)
		go func(s *Session) {
			done <- s.Close()
		}(session)

		select {
		case err := <-done:
			if err != nil {
				m.logger.Warnf("error closing session %q on shutdown: %v", session.Key, err)
			}
		case <-time.After(grace):
			m.logger.Warnf("session %q did not close within %s, abandoning", session.Key, grace)
		}
	}

	if pw != nil {
		if err := pw.Stop(); err != nil {
			m.logger.Warnf("error stopping playwright: %v", err)
		}
	}
}

// DefaultOptions returns the session options used when a handle is opened
// implicitly (e.g. navigate against a not-open session).
func (m *SessionManager) DefaultOptions() SessionOptions {
	m.mu.Lock()
	defer m.mu.Unlock()
	return SessionOptions{
		Headless: m.defaultHeadless,
		Viewport: &Viewport{Width: m.defaultViewport.Width, Height: m.defaultViewport.Height},
		Timeout:  m.defaultTimeout,
	}
}

// SetMaxSessions sets the maximum number of concurrent sessions.
func (m *SessionManager) SetMaxSessions(max int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.maxSessions = max
}

// SetIdleTimeout sets the idle timeout after which sessions are reclaimed.
func (m *SessionManager) SetIdleTimeout(timeout time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.idleTimeout = timeout
}

// SetMaxLogEntries caps the per-session console/network logs. Applies to
// sessions created afterwards.
func (m *SessionManager) SetMaxLogEntries(limit int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.maxLogEntries = limit
}

// SetDefaults sets the headless mode and viewport used for implicit opens.
func (m *SessionManager) SetDefaults(headless bool, viewport Viewport) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultHeadless = headless
	if viewport.Width > 0 && viewport.Height > 0 {
		m.defaultViewport = viewport
	}
}

// SetDefaultTimeout sets the default action timeout in milliseconds applied
// to new sessions.
func (m *SessionManager) SetDefaultTimeout(timeoutMs float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if timeoutMs > 0 {
		m.defaultTimeout = timeoutMs
	}
}
