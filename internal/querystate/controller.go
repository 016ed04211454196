package querystate

import (
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"
)

// DefaultWindow is the quiescence period that must elapse after the last
// keystroke before the pending input is committed.
const DefaultWindow = 300 * time.Millisecond

// Parameter keys owned by the controller. Everything else found in the
// incoming location passes through serialization untouched.
const (
	KeyQuery = "query"
	KeyPage  = "page"
)

var (
	// ErrInvalidPage signals a page selection below 1.
	ErrInvalidPage = errors.New("page number must be at least 1")
	// ErrClosed signals an operation on a closed controller.
	ErrClosed = errors.New("controller is closed")
)

// Navigator is the hosting collaborator the controller reads the current
// location from and hands location updates to. RequestLocation is
// fire-and-forget: the controller never retries a failed navigation.
// Deliveries are serialized in state order, so RequestLocation must return
// promptly and must not call back into the controller.
type Navigator interface {
	ReadLocation() Location
	RequestLocation(Location)
}

// Controller owns the query state of one active view. It records raw
// keystrokes, commits them to the "query" parameter after a quiescent
// debounce window, and applies page selections immediately. All mutations
// are serialized internally; the controller may be used from multiple
// goroutines.
type Controller struct {
	mu        sync.Mutex
	nav       Navigator
	window    time.Duration
	resetPage bool

	path       string
	state      Params
	pending    string
	hasPending bool
	timer      *time.Timer
	gen        uint64
	closed     bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithWindow overrides the debounce window.
func WithWindow(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.window = d
		}
	}
}

// WithPageReset makes a committed search term also drop the page parameter,
// so a changed term starts from the first page.
func WithPageReset() Option {
	return func(c *Controller) {
		c.resetPage = true
	}
}

// New creates a controller for one active view, seeded from the navigator's
// current location. Parameters the controller does not own are preserved
// verbatim on every update.
func New(nav Navigator, opts ...Option) *Controller {
	c := &Controller{nav: nav, window: DefaultWindow}
	for _, o := range opts {
		o(c)
	}
	loc := nav.ReadLocation()
	c.path = loc.Path
	c.state = loc.Params.Clone()
	return c
}

// SetInput records the latest keystroke and restarts the debounce window.
// Every new keystroke supersedes the previous one; the commit runs only
// after the window elapses with no further input.
func (c *Controller) SetInput(raw string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.pending = raw
	c.hasPending = true
	c.gen++
	gen := c.gen
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.window, func() { c.commit(gen) })
}

// commit applies the pending input to the query parameter and requests a
// location update. The generation check discards a timer that lost the race
// against a newer keystroke, so at most one commit happens per quiescent
// window and it always carries the last keystroke.
func (c *Controller) commit(gen uint64) {
	c.mu.Lock()
	if c.closed || !c.hasPending || gen != c.gen {
		c.mu.Unlock()
		return
	}
	term := strings.TrimSpace(c.pending)
	if term == "" {
		c.state.Delete(KeyQuery)
	} else {
		c.state.Set(KeyQuery, term)
	}
	if c.resetPage {
		c.state.Delete(KeyPage)
	}
	c.hasPending = false
	c.timer = nil
	// Delivered under the mutex: a page selection in flight and a firing
	// timer must reach the navigator in state order, or the older snapshot
	// overwrites the newer one.
	c.nav.RequestLocation(Location{Path: c.path, Params: c.state.Clone()})
	c.mu.Unlock()
}

// SelectPage sets the page parameter and requests a location update
// immediately. Page selection is a discrete, already-intentional event and
// is never debounced. A pending query commit stays scheduled: the page
// change applies to the query state first, and the committed term merges
// into that same state when its window fires.
func (c *Controller) SelectPage(n int) error {
	if n < 1 {
		return ErrInvalidPage
	}
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.state.Set(KeyPage, strconv.Itoa(n))
	c.nav.RequestLocation(Location{Path: c.path, Params: c.state.Clone()})
	c.mu.Unlock()
	return nil
}

// DisplayValue returns what the input field should show: the uncommitted
// keystroke while a commit is pending, the committed query term otherwise.
// Programmatic navigation (a shared link) and live typing never conflict.
func (c *Controller) DisplayValue() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hasPending {
		return c.pending
	}
	return c.state.Get(KeyQuery)
}

// Location returns the controller's view of the canonical location.
func (c *Controller) Location() Location {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Location{Path: c.path, Params: c.state.Clone()}
}

// Refresh re-seeds the controller from the navigator after an external
// navigation. Pending input and any scheduled commit are dropped.
func (c *Controller) Refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.hasPending = false
	loc := c.nav.ReadLocation()
	c.path = loc.Path
	c.state = loc.Params.Clone()
}

// Close cancels any scheduled commit. No location update is requested once
// Close returns; a late timer mutating a location nobody observes anymore
// is exactly what this prevents. Safe to call more than once.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.hasPending = false
}
