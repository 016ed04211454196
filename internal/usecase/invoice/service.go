// Package invoice manages the invoices the dashboard searches over.
package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	dominv "github.com/kailas-cloud/searchdeck/internal/domain/invoice"
)

// Service handles invoice creation and retrieval.
type Service struct {
	repo Repository
}

// New creates an invoice service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateParams are the fields accepted for a new invoice.
type CreateParams struct {
	ID          string // generated when empty
	Customer    string
	Email       string
	AmountCents int64
	Status      dominv.Status
	Date        time.Time
}

// Create validates and stores an invoice.
func (s *Service) Create(ctx context.Context, p CreateParams) (dominv.Invoice, error) {
	id := p.ID
	if id == "" {
		id = uuid.NewString()
	}
	inv, err := dominv.New(id, p.Customer, p.Email, p.AmountCents, p.Status, p.Date)
	if err != nil {
		return dominv.Invoice{}, fmt.Errorf("validate invoice: %w", err)
	}
	if err := s.repo.Put(ctx, inv); err != nil {
		return dominv.Invoice{}, fmt.Errorf("store invoice: %w", err)
	}
	return inv, nil
}

// Get returns an invoice by ID.
func (s *Service) Get(ctx context.Context, id string) (dominv.Invoice, error) {
	inv, err := s.repo.Get(ctx, id)
	if err != nil {
		return dominv.Invoice{}, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// Delete removes an invoice.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

// Count returns the number of stored invoices.
func (s *Service) Count(ctx context.Context) (int64, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count invoices: %w", err)
	}
	return n, nil
}
