// Package invoice holds the invoice domain model searched by the dashboard.
package invoice

import (
	"fmt"
	"strings"
	"time"

	"github.com/kailas-cloud/searchdeck/internal/domain"
)

// MaxFieldLength bounds customer and email fields.
const MaxFieldLength = 256

// Invoice is a billed amount owed by a customer.
type Invoice struct {
	id          string
	customer    string
	email       string
	amountCents int64
	status      Status
	date        time.Time
}

// New validates and creates an invoice. A zero date defaults to now (UTC).
func New(id, customer, email string, amountCents int64, status Status, date time.Time) (Invoice, error) {
	if id == "" {
		return Invoice{}, fmt.Errorf("invoice id is required: %w", domain.ErrValidation)
	}
	if customer == "" {
		return Invoice{}, fmt.Errorf("customer is required: %w", domain.ErrValidation)
	}
	if len(customer) > MaxFieldLength {
		return Invoice{}, fmt.Errorf("customer too long (max %d chars): %w", MaxFieldLength, domain.ErrValidation)
	}
	if len(email) > MaxFieldLength {
		return Invoice{}, fmt.Errorf("email too long (max %d chars): %w", MaxFieldLength, domain.ErrValidation)
	}
	if amountCents < 0 {
		return Invoice{}, fmt.Errorf("amount must not be negative, got %d: %w", amountCents, domain.ErrValidation)
	}
	if !status.IsValid() {
		return Invoice{}, fmt.Errorf("invalid status %q: %w", status, domain.ErrValidation)
	}
	if date.IsZero() {
		date = time.Now().UTC()
	}
	return Invoice{
		id:          id,
		customer:    customer,
		email:       email,
		amountCents: amountCents,
		status:      status,
		date:        date.UTC(),
	}, nil
}

// Reconstruct rebuilds an invoice from storage without validation.
func Reconstruct(id, customer, email string, amountCents int64, status Status, date time.Time) Invoice {
	return Invoice{
		id:          id,
		customer:    customer,
		email:       email,
		amountCents: amountCents,
		status:      status,
		date:        date,
	}
}

// ID returns the invoice identifier.
func (i Invoice) ID() string { return i.id }

// Customer returns the customer name.
func (i Invoice) Customer() string { return i.customer }

// Email returns the customer email.
func (i Invoice) Email() string { return i.email }

// AmountCents returns the billed amount in cents.
func (i Invoice) AmountCents() int64 { return i.amountCents }

// Status returns the payment status.
func (i Invoice) Status() Status { return i.status }

// Date returns the billing date.
func (i Invoice) Date() time.Time { return i.date }

// Amount returns the amount formatted for display, e.g. "$34.42".
func (i Invoice) Amount() string {
	return fmt.Sprintf("$%d.%02d", i.amountCents/100, i.amountCents%100)
}

// MatchesTerm reports whether the invoice matches a search term,
// case-insensitively, across customer, email, status, and the formatted
// amount. An empty term matches everything.
func (i Invoice) MatchesTerm(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(i.customer), term) ||
		strings.Contains(strings.ToLower(i.email), term) ||
		strings.Contains(string(i.status), term) ||
		strings.Contains(i.Amount(), term)
}
