package invoice

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/searchdeck/internal/domain"
	dominv "github.com/kailas-cloud/searchdeck/internal/domain/invoice"
)

func TestPut_StoresAndIndexes(t *testing.T) {
	ms := newMockStore()
	repo := New(ms)

	inv := mustInvoice(t, "inv-1", "Lee Robinson", "lee@example.com", 3100, dominv.StatusPaid, 10)
	if err := repo.Put(context.Background(), inv); err != nil {
		t.Fatalf("Put: %v", err)
	}

	dto := storedDTO(t, ms, "searchdeck:invoice:inv-1")
	if dto.Customer != "Lee Robinson" || dto.AmountCents != 3100 {
		t.Errorf("unexpected stored dto: %+v", dto)
	}
	if _, ok := ms.zset["inv-1"]; !ok {
		t.Error("invoice was not indexed by date")
	}
}

func TestPut_ExistingIDRejected(t *testing.T) {
	repo := New(newMockStore())
	ctx := context.Background()

	inv := mustInvoice(t, "inv-1", "Lee Robinson", "lee@example.com", 3100, dominv.StatusPaid, 10)
	if err := repo.Put(ctx, inv); err != nil {
		t.Fatalf("Put: %v", err)
	}

	dup := mustInvoice(t, "inv-1", "Someone Else", "", 100, dominv.StatusPending, 11)
	if err := repo.Put(ctx, dup); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	got, err := repo.Get(ctx, "inv-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Customer() != "Lee Robinson" {
		t.Errorf("rejected Put overwrote the stored invoice: %s", got.Customer())
	}
}

func TestGet_NotFound(t *testing.T) {
	repo := New(newMockStore())

	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrInvoiceNotFound) {
		t.Fatalf("expected ErrInvoiceNotFound, got %v", err)
	}
}

func TestGet_RoundTrip(t *testing.T) {
	repo := New(newMockStore())
	ctx := context.Background()

	want := mustInvoice(t, "inv-1", "Lee Robinson", "lee@example.com", 3100, dominv.StatusPaid, 10)
	if err := repo.Put(ctx, want); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := repo.Get(ctx, "inv-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Customer() != want.Customer() || got.AmountCents() != want.AmountCents() ||
		got.Status() != want.Status() || !got.Date().Equal(want.Date()) {
		t.Errorf("round trip mismatch: got %+v", got)
	}
}

func TestDelete(t *testing.T) {
	ms := newMockStore()
	repo := New(ms)
	ctx := context.Background()

	inv := mustInvoice(t, "inv-1", "Lee Robinson", "", 3100, dominv.StatusPaid, 10)
	if err := repo.Put(ctx, inv); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := repo.Delete(ctx, "inv-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Get(ctx, "inv-1"); !errors.Is(err, domain.ErrInvoiceNotFound) {
		t.Errorf("expected invoice gone, got %v", err)
	}
	if _, ok := ms.zset["inv-1"]; ok {
		t.Error("index entry should be removed")
	}

	if err := repo.Delete(ctx, "inv-1"); !errors.Is(err, domain.ErrInvoiceNotFound) {
		t.Errorf("deleting a missing invoice = %v, want ErrInvoiceNotFound", err)
	}
}

func seedInvoices(t *testing.T, repo *Repo) {
	t.Helper()
	ctx := context.Background()
	seed := []struct {
		id       string
		customer string
		cents    int64
		status   dominv.Status
		day      int
	}{
		{"inv-1", "Delba de Oliveira", 889246, dominv.StatusPending, 1},
		{"inv-2", "Lee Robinson", 3100, dominv.StatusPaid, 2},
		{"inv-3", "Amy Burns", 54246, dominv.StatusPaid, 3},
		{"inv-4", "Lee Robinson", 66800, dominv.StatusPending, 4},
		{"inv-5", "Balazs Orban", 3040, dominv.StatusPaid, 5},
	}
	for _, s := range seed {
		inv := mustInvoice(t, s.id, s.customer, "", s.cents, s.status, s.day)
		if err := repo.Put(ctx, inv); err != nil {
			t.Fatalf("Put %s: %v", s.id, err)
		}
	}
}

func TestFind_NewestFirst(t *testing.T) {
	repo := New(newMockStore())
	seedInvoices(t, repo)

	items, total, err := repo.Find(context.Background(), "", 0, 10)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if total != 5 || len(items) != 5 {
		t.Fatalf("total = %d, len = %d", total, len(items))
	}
	if items[0].ID() != "inv-5" || items[4].ID() != "inv-1" {
		t.Errorf("expected newest-first order, got %s .. %s", items[0].ID(), items[4].ID())
	}
}

func TestFind_FiltersByTerm(t *testing.T) {
	repo := New(newMockStore())
	seedInvoices(t, repo)

	items, total, err := repo.Find(context.Background(), "lee", 0, 10)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if total != 2 {
		t.Fatalf("total = %d, want 2", total)
	}
	for _, inv := range items {
		if inv.Customer() != "Lee Robinson" {
			t.Errorf("unexpected match: %s", inv.Customer())
		}
	}
}

func TestFind_Window(t *testing.T) {
	repo := New(newMockStore())
	seedInvoices(t, repo)
	ctx := context.Background()

	items, total, err := repo.Find(ctx, "", 2, 2)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if total != 5 || len(items) != 2 {
		t.Fatalf("total = %d, len = %d", total, len(items))
	}
	if items[0].ID() != "inv-3" || items[1].ID() != "inv-2" {
		t.Errorf("unexpected window: %s, %s", items[0].ID(), items[1].ID())
	}

	// offset past the end
	items, total, err = repo.Find(ctx, "", 10, 2)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if total != 5 || len(items) != 0 {
		t.Errorf("total = %d, len = %d", total, len(items))
	}
}

func TestFind_SkipsCorruptEntries(t *testing.T) {
	ms := newMockStore()
	repo := New(ms)
	seedInvoices(t, repo)
	ms.kv["searchdeck:invoice:inv-3"] = []byte("{not json")

	_, total, err := repo.Find(context.Background(), "", 0, 10)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if total != 4 {
		t.Errorf("total = %d, corrupt entry should be skipped", total)
	}
}

func TestCount(t *testing.T) {
	repo := New(newMockStore())
	seedInvoices(t, repo)

	n, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 5 {
		t.Errorf("n = %d", n)
	}
}
