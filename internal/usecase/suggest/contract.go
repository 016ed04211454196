package suggest

import (
	"context"

	domsug "github.com/kailas-cloud/searchdeck/internal/domain/suggest"
)

// Repository is the storage contract for recorded search terms.
type Repository interface {
	Put(ctx context.Context, term string, vector []float32) error
	All(ctx context.Context) ([]domsug.Term, error)
}

// Embedder vectorizes terms for similarity ranking.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
