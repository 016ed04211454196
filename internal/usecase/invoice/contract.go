package invoice

import (
	"context"

	dominv "github.com/kailas-cloud/searchdeck/internal/domain/invoice"
)

// Repository is the storage contract for invoice management.
type Repository interface {
	Put(ctx context.Context, inv dominv.Invoice) error
	Get(ctx context.Context, id string) (dominv.Invoice, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
