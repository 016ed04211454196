package searchdeck

import (
	"context"
	"fmt"

	suggestuc "github.com/kailas-cloud/searchdeck/internal/usecase/suggest"
)

// Suggestion is a previously searched term ranked by similarity.
type Suggestion struct {
	Term  string
	Score float64
}

// SuggestService records search terms and suggests related ones. Requires
// an embedder (WithEmbedder); otherwise every call fails with
// ErrSuggestDisabled.
type SuggestService struct {
	svc *suggestuc.Service
}

// Enabled reports whether an embedder was configured.
func (s *SuggestService) Enabled() bool {
	return s.svc.Enabled()
}

// Record stores a searched term for future suggestions. Best-effort: an
// empty or oversized term is ignored.
func (s *SuggestService) Record(ctx context.Context, term string) error {
	if err := s.svc.Record(ctx, term); err != nil {
		return fmt.Errorf("record term: %w", err)
	}
	return nil
}

// Suggest returns up to limit recorded terms ranked by similarity to term.
func (s *SuggestService) Suggest(ctx context.Context, term string, limit int) ([]Suggestion, error) {
	ranked, err := s.svc.Suggest(ctx, term, limit)
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}

	out := make([]Suggestion, len(ranked))
	for i, sg := range ranked {
		out[i] = Suggestion{Term: sg.Term, Score: sg.Score}
	}
	return out, nil
}
