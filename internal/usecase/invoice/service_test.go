package invoice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/searchdeck/internal/domain"
	dominv "github.com/kailas-cloud/searchdeck/internal/domain/invoice"
)

type mockRepo struct {
	stored []dominv.Invoice
	getInv dominv.Invoice
	getErr error
	putErr error
}

func (m *mockRepo) Put(_ context.Context, inv dominv.Invoice) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.stored = append(m.stored, inv)
	return nil
}

func (m *mockRepo) Get(_ context.Context, _ string) (dominv.Invoice, error) {
	return m.getInv, m.getErr
}

func (m *mockRepo) Delete(_ context.Context, _ string) error { return m.getErr }

func (m *mockRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.stored)), nil
}

func TestCreate_GeneratesID(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo)

	inv, err := svc.Create(context.Background(), CreateParams{
		Customer:    "Lee Robinson",
		AmountCents: 3100,
		Status:      dominv.StatusPaid,
		Date:        time.Date(2026, 5, 14, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if inv.ID() == "" {
		t.Error("expected generated id")
	}
	if len(repo.stored) != 1 {
		t.Errorf("stored %d invoices", len(repo.stored))
	}
}

func TestCreate_ValidationFailureDoesNotStore(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo)

	_, err := svc.Create(context.Background(), CreateParams{
		Customer: "",
		Status:   dominv.StatusPaid,
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(repo.stored) != 0 {
		t.Error("invalid invoice must not be stored")
	}
}

func TestGet_WrapsNotFound(t *testing.T) {
	repo := &mockRepo{getErr: domain.ErrInvoiceNotFound}
	svc := New(repo)

	_, err := svc.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrInvoiceNotFound) {
		t.Fatalf("expected ErrInvoiceNotFound, got %v", err)
	}
}
