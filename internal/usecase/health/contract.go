package health

import "context"

// Pinger checks storage liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// EmbeddingChecker checks the embedding provider, used by query suggestions.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}
