package domain

import "context"

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// HealthChecker is optionally implemented by embedders that can verify
// provider connectivity.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
