package session

import (
	"sync"

	"github.com/kailas-cloud/searchdeck/internal/metrics"
	"github.com/kailas-cloud/searchdeck/internal/querystate"
)

// navigator is the per-session collaborator the controller reads from and
// writes to. It holds the session's canonical location, which is what any
// results consumer reads, and notifies the manager of updates.
type navigator struct {
	mu       sync.Mutex
	current  querystate.Location
	onUpdate func(querystate.Location)
}

var _ querystate.Navigator = (*navigator)(nil)

func (n *navigator) ReadLocation() querystate.Location {
	n.mu.Lock()
	defer n.mu.Unlock()
	return querystate.Location{Path: n.current.Path, Params: n.current.Params.Clone()}
}

// RequestLocation replaces the canonical location. Fire-and-forget: it never
// blocks and never reports failure back to the controller.
func (n *navigator) RequestLocation(loc querystate.Location) {
	n.mu.Lock()
	prev := n.current
	n.current = loc
	n.mu.Unlock()

	// The controller does not say what triggered the update, so infer it:
	// a page change with an untouched query term is a page selection,
	// everything else is a debounced commit.
	trigger := "commit"
	if loc.Params.Get(querystate.KeyPage) != prev.Params.Get(querystate.KeyPage) &&
		loc.Params.Get(querystate.KeyQuery) == prev.Params.Get(querystate.KeyQuery) {
		trigger = "page"
	}
	metrics.LocationUpdatesTotal.WithLabelValues(trigger).Inc()

	if n.onUpdate != nil {
		n.onUpdate(loc)
	}
}
