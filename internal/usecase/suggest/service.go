// Package suggest ranks previously committed search terms by embedding
// similarity to offer related searches.
package suggest

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/searchdeck/internal/domain"
	domsug "github.com/kailas-cloud/searchdeck/internal/domain/suggest"
)

// Limits for suggestion requests.
const (
	DefaultLimit  = 5
	MaxLimit      = 20
	maxTermLength = 128
)

// Service records committed search terms and suggests related ones.
// A nil embedder disables the feature.
type Service struct {
	repo   Repository
	embed  Embedder
	logger *zap.Logger
}

// New creates a suggestion service. Pass a nil embedder to disable it.
func New(repo Repository, embed Embedder, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, embed: embed, logger: logger}
}

// Enabled reports whether an embedding provider is configured.
func (s *Service) Enabled() bool {
	return s.embed != nil
}

// Record stores a committed term for future suggestions. Best-effort: when
// the feature is disabled or the term is unusable it does nothing.
func (s *Service) Record(ctx context.Context, term string) error {
	if !s.Enabled() {
		return nil
	}
	term = strings.TrimSpace(term)
	if term == "" || len(term) > maxTermLength {
		return nil
	}
	vec, err := s.embed.Embed(ctx, term)
	if err != nil {
		return fmt.Errorf("embed term: %w", err)
	}
	if err := s.repo.Put(ctx, term, vec); err != nil {
		return fmt.Errorf("store term: %w", err)
	}
	return nil
}

// Suggest returns up to limit recorded terms ranked by similarity to term.
// The term itself (case-insensitively) is excluded from the results.
func (s *Service) Suggest(ctx context.Context, term string, limit int) ([]domsug.Suggestion, error) {
	if !s.Enabled() {
		return nil, domain.ErrSuggestDisabled
	}
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, fmt.Errorf("term is required")
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	vec, err := s.embed.Embed(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("embed term: %w", err)
	}
	stored, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load terms: %w", err)
	}

	ranked := make([]domsug.Suggestion, 0, len(stored))
	for _, t := range stored {
		if strings.EqualFold(t.Text, term) {
			continue
		}
		ranked = append(ranked, domsug.Suggestion{Term: t.Text, Score: cosine(vec, t.Vector)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}
