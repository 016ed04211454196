package searchdeck

import (
	"context"
	"fmt"
	"time"

	dominv "github.com/kailas-cloud/searchdeck/internal/domain/invoice"
	invoiceuc "github.com/kailas-cloud/searchdeck/internal/usecase/invoice"
)

// InvoiceStatus is the payment status of an invoice.
type InvoiceStatus string

const (
	StatusPending InvoiceStatus = "pending"
	StatusPaid    InvoiceStatus = "paid"
)

// Invoice is a billed amount owed by a customer.
type Invoice struct {
	ID          string
	Customer    string
	Email       string
	AmountCents int64
	Amount      string // formatted, e.g. "$34.42"
	Status      InvoiceStatus
	Date        time.Time
}

func fromDomainInvoice(inv dominv.Invoice) Invoice {
	return Invoice{
		ID:          inv.ID(),
		Customer:    inv.Customer(),
		Email:       inv.Email(),
		AmountCents: inv.AmountCents(),
		Amount:      inv.Amount(),
		Status:      InvoiceStatus(inv.Status()),
		Date:        inv.Date(),
	}
}

// InvoiceService manages invoices.
type InvoiceService struct {
	svc *invoiceuc.Service
}

// Create stores a new invoice. An empty ID is generated; a zero Date
// defaults to now. A caller-supplied ID that already exists fails with
// ErrAlreadyExists.
func (s *InvoiceService) Create(ctx context.Context, inv Invoice) (Invoice, error) {
	created, err := s.svc.Create(ctx, invoiceuc.CreateParams{
		ID:          inv.ID,
		Customer:    inv.Customer,
		Email:       inv.Email,
		AmountCents: inv.AmountCents,
		Status:      dominv.Status(inv.Status),
		Date:        inv.Date,
	})
	if err != nil {
		return Invoice{}, fmt.Errorf("create invoice: %w", err)
	}
	return fromDomainInvoice(created), nil
}

// Get returns an invoice by ID.
func (s *InvoiceService) Get(ctx context.Context, id string) (Invoice, error) {
	inv, err := s.svc.Get(ctx, id)
	if err != nil {
		return Invoice{}, fmt.Errorf("get invoice: %w", err)
	}
	return fromDomainInvoice(inv), nil
}

// Delete removes an invoice by ID.
func (s *InvoiceService) Delete(ctx context.Context, id string) error {
	if err := s.svc.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

// Count returns the number of stored invoices.
func (s *InvoiceService) Count(ctx context.Context) (int64, error) {
	n, err := s.svc.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count invoices: %w", err)
	}
	return n, nil
}
