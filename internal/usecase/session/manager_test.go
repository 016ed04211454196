package session

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/kailas-cloud/searchdeck/internal/domain"
	"github.com/kailas-cloud/searchdeck/internal/querystate"
)

const testWindow = 40 * time.Millisecond

func TestManager_OpenGetClose(t *testing.T) {
	m := NewManager(zap.NewNop())

	s := m.Open("/dashboard/invoices", "")
	if s.ID() == "" {
		t.Fatal("expected non-empty session ID")
	}
	if m.Len() != 1 {
		t.Fatalf("expected 1 open session, got %d", m.Len())
	}

	got, err := m.Get(s.ID())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != s {
		t.Error("Get returned a different session")
	}

	if _, err := m.Get("nope"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}

	if err := m.Close(s.ID()); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if m.Len() != 0 {
		t.Fatalf("expected 0 open sessions, got %d", m.Len())
	}
	if err := m.Close(s.ID()); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound on double close, got %v", err)
	}
}

func TestManager_SeedsInitialLocation(t *testing.T) {
	m := NewManager(zap.NewNop())

	s := m.Open("/dashboard/invoices", "query=acme&sort=asc")
	loc := s.Location()

	if loc.Path != "/dashboard/invoices" {
		t.Errorf("expected path /dashboard/invoices, got %q", loc.Path)
	}
	if got := loc.Params.Encode(); got != "query=acme&sort=asc" {
		t.Errorf("expected seeded params preserved, got %q", got)
	}
	if s.Controller().DisplayValue() != "acme" {
		t.Errorf("expected display value seeded from location, got %q", s.Controller().DisplayValue())
	}
}

func TestManager_OpenDefaultsPath(t *testing.T) {
	m := NewManager(zap.NewNop())

	s := m.Open("", "")
	if got := s.Location().Path; got != "/" {
		t.Errorf("expected default path /, got %q", got)
	}
}

func TestManager_ControllerUpdatesCanonicalLocation(t *testing.T) {
	m := NewManager(zap.NewNop()).WithWindow(testWindow)

	s := m.Open("/dashboard/invoices", "")
	s.Controller().SetInput("lee")
	time.Sleep(3 * testWindow)

	if got := s.Location().Params.Get(querystate.KeyQuery); got != "lee" {
		t.Errorf("expected committed query in canonical location, got %q", got)
	}
}

func TestManager_CloseCancelsPendingCommit(t *testing.T) {
	m := NewManager(zap.NewNop()).WithWindow(testWindow)

	s := m.Open("/dashboard/invoices", "")
	s.Controller().SetInput("orphan")
	if err := m.Close(s.ID()); err != nil {
		t.Fatalf("Close: %v", err)
	}
	time.Sleep(3 * testWindow)

	if s.Location().Params.Has(querystate.KeyQuery) {
		t.Error("expected no location update after session close")
	}
}

func TestManager_EvictIdle(t *testing.T) {
	m := NewManager(zap.NewNop()).WithTTL(10 * time.Millisecond)

	stale := m.Open("/dashboard/invoices", "")
	fresh := m.Open("/dashboard/invoices", "")

	stale.touch(time.Now().Add(-time.Minute))
	m.evictIdle(time.Now())

	if _, err := m.Get(stale.ID()); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected stale session evicted, got %v", err)
	}
	if _, err := m.Get(fresh.ID()); err != nil {
		t.Errorf("expected fresh session kept, got %v", err)
	}
}

func TestManager_GetTouches(t *testing.T) {
	m := NewManager(zap.NewNop()).WithTTL(50 * time.Millisecond)

	s := m.Open("/dashboard/invoices", "")
	s.touch(time.Now().Add(-time.Minute))

	if _, err := m.Get(s.ID()); err != nil {
		t.Fatalf("Get: %v", err)
	}
	m.evictIdle(time.Now())

	if _, err := m.Get(s.ID()); err != nil {
		t.Errorf("expected touched session to survive eviction, got %v", err)
	}
}

func TestManager_StartStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	m := NewManager(zap.NewNop()).
		WithTTL(10 * time.Millisecond).
		WithSweepInterval(5 * time.Millisecond)
	m.Start()

	s := m.Open("/dashboard/invoices", "")
	s.touch(time.Now().Add(-time.Minute))

	deadline := time.Now().Add(time.Second)
	for m.Len() > 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if m.Len() != 0 {
		t.Error("expected janitor to evict idle session")
	}

	m.Stop()
}

func TestManager_StopClosesRemainingSessions(t *testing.T) {
	defer goleak.VerifyNone(t)

	m := NewManager(zap.NewNop()).WithWindow(testWindow)
	m.Start()

	s := m.Open("/dashboard/invoices", "")
	s.Controller().SetInput("pending")
	m.Stop()

	if m.Len() != 0 {
		t.Fatalf("expected all sessions closed, got %d", m.Len())
	}
	time.Sleep(3 * testWindow)
	if s.Location().Params.Has(querystate.KeyQuery) {
		t.Error("expected no commit after Stop")
	}
}
