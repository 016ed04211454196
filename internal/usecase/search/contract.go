package search

import (
	"context"

	dominv "github.com/kailas-cloud/searchdeck/internal/domain/invoice"
)

// Repository is the storage contract for invoice search.
type Repository interface {
	// Find lists invoices newest-first filtered by term, returning the
	// requested window and the total number of matches.
	Find(ctx context.Context, term string, offset, limit int) ([]dominv.Invoice, int, error)
}
