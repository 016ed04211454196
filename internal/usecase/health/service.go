// Package health aggregates liveness of the service's dependencies.
package health

import (
	"context"

	"go.uber.org/zap"
)

// Status reports dependency liveness. Suggest is advisory: the service is
// healthy without it, search just runs with suggestions disabled.
type Status struct {
	Healthy  bool `json:"healthy"`
	Database bool `json:"database"`
	Suggest  bool `json:"suggest"`
}

type Service struct {
	db     Pinger
	embed  EmbeddingChecker
	logger *zap.Logger
}

// NewService creates a health service. embed may be nil when query
// suggestions are disabled.
func NewService(db Pinger, embed EmbeddingChecker, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{db: db, embed: embed, logger: logger}
}

// Check probes every dependency. Healthy reflects the database only.
func (s *Service) Check(ctx context.Context) Status {
	st := Status{Database: true, Suggest: s.embed != nil}

	if err := s.db.Ping(ctx); err != nil {
		s.logger.Warn("database health check failed", zap.Error(err))
		st.Database = false
	}
	if s.embed != nil {
		if err := s.embed.HealthCheck(ctx); err != nil {
			s.logger.Warn("embedding provider health check failed", zap.Error(err))
			st.Suggest = false
		}
	}

	st.Healthy = st.Database
	return st
}
