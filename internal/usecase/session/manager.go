// Package session owns the live-search sessions of connected views. Each
// session pairs one query-state controller with the canonical location its
// results are rendered from; idle sessions are evicted by a janitor.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/searchdeck/internal/domain"
	"github.com/kailas-cloud/searchdeck/internal/metrics"
	"github.com/kailas-cloud/searchdeck/internal/querystate"
)

// Manager defaults.
const (
	DefaultTTL           = 30 * time.Minute
	DefaultSweepInterval = time.Minute
)

// Session is one view's live-search state.
type Session struct {
	id   string
	ctrl *querystate.Controller
	nav  *navigator

	mu       sync.Mutex
	lastSeen time.Time
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Controller returns the session's query-state controller.
func (s *Session) Controller() *querystate.Controller { return s.ctrl }

// Location returns the session's canonical location.
func (s *Session) Location() querystate.Location {
	return s.nav.ReadLocation()
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Manager creates, looks up, and expires sessions.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	ttl       time.Duration
	sweep     time.Duration
	window    time.Duration
	pageReset bool
	logger    *zap.Logger

	stop chan struct{}
	done chan struct{}
}

// NewManager creates a session manager. Call Start to run the idle janitor
// and Stop to shut it down.
func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		sessions: make(map[string]*Session),
		ttl:      DefaultTTL,
		sweep:    DefaultSweepInterval,
		window:   querystate.DefaultWindow,
		logger:   logger,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// WithTTL overrides the idle TTL after which sessions are evicted.
func (m *Manager) WithTTL(d time.Duration) *Manager {
	if d > 0 {
		m.ttl = d
	}
	return m
}

// WithSweepInterval overrides how often the janitor runs.
func (m *Manager) WithSweepInterval(d time.Duration) *Manager {
	if d > 0 {
		m.sweep = d
	}
	return m
}

// WithWindow overrides the debounce window used by session controllers.
func (m *Manager) WithWindow(d time.Duration) *Manager {
	if d > 0 {
		m.window = d
	}
	return m
}

// WithPageReset makes committed search terms reset pagination.
func (m *Manager) WithPageReset() *Manager {
	m.pageReset = true
	return m
}

// Open creates a session seeded from an initial path and raw query string.
// Malformed query segments are dropped; opening never fails on bad input.
func (m *Manager) Open(path, rawQuery string) *Session {
	if path == "" {
		path = "/"
	}
	id := uuid.NewString()

	nav := &navigator{current: querystate.Location{
		Path:   path,
		Params: querystate.ParseQuery(rawQuery),
	}}
	nav.onUpdate = func(loc querystate.Location) {
		m.logger.Debug("session location updated",
			zap.String("session_id", id),
			zap.String("location", loc.String()),
		)
	}

	opts := []querystate.Option{querystate.WithWindow(m.window)}
	if m.pageReset {
		opts = append(opts, querystate.WithPageReset())
	}

	s := &Session{
		id:       id,
		ctrl:     querystate.New(nav, opts...),
		nav:      nav,
		lastSeen: time.Now(),
	}

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	metrics.ActiveSessions.Inc()
	m.logger.Info("session opened",
		zap.String("session_id", id),
		zap.String("location", nav.ReadLocation().String()),
	)
	return s
}

// Get returns a session by ID and marks it as recently used.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	m.mu.Unlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	s.touch(time.Now())
	return s, nil
}

// Close unmounts a session: the controller's pending commit, if any, is
// cancelled so no late update mutates a location nobody observes.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()
	if !ok {
		return domain.ErrSessionNotFound
	}

	s.ctrl.Close()
	metrics.ActiveSessions.Dec()
	m.logger.Info("session closed", zap.String("session_id", id))
	return nil
}

// Len returns the number of open sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Start launches the idle janitor.
func (m *Manager) Start() {
	go m.janitor()
}

// Stop terminates the janitor and closes all open sessions.
func (m *Manager) Stop() {
	close(m.stop)
	<-m.done

	m.mu.Lock()
	remaining := make([]*Session, 0, len(m.sessions))
	for id, s := range m.sessions {
		remaining = append(remaining, s)
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	for _, s := range remaining {
		s.ctrl.Close()
		metrics.ActiveSessions.Dec()
	}
}

func (m *Manager) janitor() {
	defer close(m.done)

	ticker := time.NewTicker(m.sweep)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case now := <-ticker.C:
			m.evictIdle(now)
		}
	}
}

func (m *Manager) evictIdle(now time.Time) {
	m.mu.Lock()
	var expired []*Session
	for id, s := range m.sessions {
		if now.Sub(s.idleSince()) > m.ttl {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		s.ctrl.Close()
		metrics.ActiveSessions.Dec()
		metrics.SessionsExpiredTotal.Inc()
		m.logger.Info("session expired", zap.String("session_id", s.id))
	}
}
