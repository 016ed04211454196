package searchdeck

import (
	"time"

	"github.com/kailas-cloud/searchdeck/internal/querystate"
)

// Navigator is the host environment of a query session: where the current
// location is read from and where requested updates go. RequestLocation is
// fire-and-forget; the session never blocks on it and never retries.
type Navigator interface {
	ReadLocation() (path, rawQuery string)
	RequestLocation(path, rawQuery string)
}

// SessionOption configures a QuerySession.
type SessionOption func(*sessionConfig)

type sessionConfig struct {
	window    time.Duration
	pageReset bool
}

// WithDebounce overrides the debounce window (default 300ms).
func WithDebounce(d time.Duration) SessionOption {
	return func(c *sessionConfig) {
		c.window = d
	}
}

// WithPageReset makes a committed search term drop the page parameter, so a
// changed term starts from the first page.
func WithPageReset() SessionOption {
	return func(c *sessionConfig) {
		c.pageReset = true
	}
}

// QuerySession synchronizes a search input with the navigator's location.
// Keystrokes go to SetInput and are committed to the "query" parameter after
// a quiescent debounce window; page selections apply immediately. Parameters
// the session does not own pass through untouched.
type QuerySession struct {
	ctrl *querystate.Controller
}

// NewQuerySession creates a session seeded from the navigator's current
// location. Close it when the hosting view goes away.
func NewQuerySession(nav Navigator, opts ...SessionOption) *QuerySession {
	cfg := &sessionConfig{}
	for _, o := range opts {
		o(cfg)
	}

	var qopts []querystate.Option
	if cfg.window > 0 {
		qopts = append(qopts, querystate.WithWindow(cfg.window))
	}
	if cfg.pageReset {
		qopts = append(qopts, querystate.WithPageReset())
	}
	return &QuerySession{ctrl: querystate.New(navAdapter{inner: nav}, qopts...)}
}

// SetInput records the latest keystroke and restarts the debounce window.
func (s *QuerySession) SetInput(raw string) {
	s.ctrl.SetInput(raw)
}

// SelectPage sets the page parameter immediately, without debouncing.
// Returns ErrInvalidPage for page numbers below 1.
func (s *QuerySession) SelectPage(n int) error {
	return s.ctrl.SelectPage(n)
}

// DisplayValue returns what the input field should show: the uncommitted
// keystroke while a commit is pending, the committed query term otherwise.
func (s *QuerySession) DisplayValue() string {
	return s.ctrl.DisplayValue()
}

// Location returns the session's view of the current location.
func (s *QuerySession) Location() (path, rawQuery string) {
	loc := s.ctrl.Location()
	return loc.Path, loc.Params.Encode()
}

// Refresh re-seeds the session from the navigator after an external
// navigation. Pending input is dropped.
func (s *QuerySession) Refresh() {
	s.ctrl.Refresh()
}

// Close cancels any pending commit. No location update is requested once
// Close returns. Safe to call more than once.
func (s *QuerySession) Close() {
	s.ctrl.Close()
}

// navAdapter bridges the public Navigator to the internal one.
type navAdapter struct {
	inner Navigator
}

func (a navAdapter) ReadLocation() querystate.Location {
	path, rawQuery := a.inner.ReadLocation()
	return querystate.Location{Path: path, Params: querystate.ParseQuery(rawQuery)}
}

func (a navAdapter) RequestLocation(loc querystate.Location) {
	a.inner.RequestLocation(loc.Path, loc.Params.Encode())
}
