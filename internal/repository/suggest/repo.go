// Package suggest persists committed search terms and their embedding
// vectors for related-search ranking.
package suggest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	domsug "github.com/kailas-cloud/searchdeck/internal/domain/suggest"
)

const (
	defaultKeyPrefix = "searchdeck:"
	defaultMaxTerms  = 1000
)

// store is the consumer interface for the suggestion repository (ISP).
type store interface {
	Set(ctx context.Context, key string, value []byte) error
	MGet(ctx context.Context, keys []string) ([][]byte, error)
	ZAdd(ctx context.Context, key string, score float64, member string) error
	ZRevRange(ctx context.Context, key string, start, stop int64) ([]string, error)
}

// Repo implements usecase/suggest.Repository.
type Repo struct {
	store    store
	prefix   string
	maxTerms int64
}

// New creates a suggestion repository.
func New(s store) *Repo {
	return &Repo{store: s, prefix: defaultKeyPrefix, maxTerms: defaultMaxTerms}
}

// WithKeyPrefix overrides the storage key prefix.
func (r *Repo) WithKeyPrefix(prefix string) *Repo {
	if prefix != "" {
		r.prefix = prefix
	}
	return r
}

// WithMaxTerms caps how many recent terms All returns.
func (r *Repo) WithMaxTerms(n int) *Repo {
	if n > 0 {
		r.maxTerms = int64(n)
	}
	return r
}

// termDTO is the stored JSON shape.
type termDTO struct {
	Term       string    `json:"term"`
	Vector     []float32 `json:"vector"`
	RecordedAt time.Time `json:"recorded_at"`
}

func (r *Repo) termKey(term string) string {
	// Terms are user input; hash them so any byte sequence is key-safe.
	h := sha256.Sum256([]byte(term))
	return r.prefix + "suggest:term:" + hex.EncodeToString(h[:])
}

func (r *Repo) indexKey() string {
	return r.prefix + "suggest:terms"
}

// Put stores a term with its vector, keeping the recency index current.
func (r *Repo) Put(ctx context.Context, term string, vector []float32) error {
	now := time.Now().UTC()
	data, err := json.Marshal(termDTO{Term: term, Vector: vector, RecordedAt: now})
	if err != nil {
		return fmt.Errorf("marshal term: %w", err)
	}
	key := r.termKey(term)
	if err := r.store.Set(ctx, key, data); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	if err := r.store.ZAdd(ctx, r.indexKey(), float64(now.Unix()), key); err != nil {
		return fmt.Errorf("index term: %w", err)
	}
	return nil
}

// All returns the most recently recorded terms, newest first. Entries that
// fail to decode are skipped.
func (r *Repo) All(ctx context.Context) ([]domsug.Term, error) {
	keys, err := r.store.ZRevRange(ctx, r.indexKey(), 0, r.maxTerms-1)
	if err != nil {
		return nil, fmt.Errorf("list terms: %w", err)
	}
	if len(keys) == 0 {
		return nil, nil
	}
	vals, err := r.store.MGet(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("fetch terms: %w", err)
	}
	out := make([]domsug.Term, 0, len(vals))
	for _, data := range vals {
		if data == nil {
			continue
		}
		var dto termDTO
		if err := json.Unmarshal(data, &dto); err != nil {
			continue
		}
		out = append(out, domsug.Term{Text: dto.Term, Vector: dto.Vector, RecordedAt: dto.RecordedAt})
	}
	return out, nil
}
