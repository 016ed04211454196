// Package invoice persists invoices in a key-value store with a date-scored
// index for newest-first listing.
package invoice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kailas-cloud/searchdeck/internal/db"
	"github.com/kailas-cloud/searchdeck/internal/domain"
	dominv "github.com/kailas-cloud/searchdeck/internal/domain/invoice"
)

const (
	defaultKeyPrefix = "searchdeck:"
	defaultMaxScan   = 10_000
)

// store is the consumer interface for invoices (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
	MGet(ctx context.Context, keys []string) ([][]byte, error)
	ZAdd(ctx context.Context, key string, score float64, member string) error
	ZRem(ctx context.Context, key, member string) error
	ZRevRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	ZCard(ctx context.Context, key string) (int64, error)
}

// Repo implements usecase/search.Repository and usecase/invoice.Repository.
type Repo struct {
	store   store
	prefix  string
	maxScan int64
}

// New creates an invoice repository.
func New(s store) *Repo {
	return &Repo{store: s, prefix: defaultKeyPrefix, maxScan: defaultMaxScan}
}

// WithKeyPrefix overrides the storage key prefix.
func (r *Repo) WithKeyPrefix(prefix string) *Repo {
	if prefix != "" {
		r.prefix = prefix
	}
	return r
}

// WithMaxScan caps how many invoices a filtered listing will consider.
func (r *Repo) WithMaxScan(n int) *Repo {
	if n > 0 {
		r.maxScan = int64(n)
	}
	return r
}

func (r *Repo) key(id string) string {
	return r.prefix + "invoice:" + id
}

func (r *Repo) indexKey() string {
	return r.prefix + "invoices:bydate"
}

// Put stores a new invoice and indexes it by date. An ID that is already
// stored is rejected.
func (r *Repo) Put(ctx context.Context, inv dominv.Invoice) error {
	key := r.key(inv.ID())
	if _, err := r.store.Get(ctx, key); err == nil {
		return fmt.Errorf("invoice %s: %w", inv.ID(), domain.ErrAlreadyExists)
	} else if !errors.Is(err, db.ErrKeyNotFound) {
		return fmt.Errorf("check %s: %w", key, err)
	}
	data, err := json.Marshal(toDTO(inv))
	if err != nil {
		return fmt.Errorf("marshal invoice: %w", err)
	}
	if err := r.store.Set(ctx, key, data); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	if err := r.store.ZAdd(ctx, r.indexKey(), float64(inv.Date().Unix()), inv.ID()); err != nil {
		return fmt.Errorf("index %s: %w", inv.ID(), err)
	}
	return nil
}

// Get returns an invoice by ID.
func (r *Repo) Get(ctx context.Context, id string) (dominv.Invoice, error) {
	data, err := r.store.Get(ctx, r.key(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return dominv.Invoice{}, domain.ErrInvoiceNotFound
		}
		return dominv.Invoice{}, fmt.Errorf("get %s: %w", id, err)
	}
	var dto invoiceDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return dominv.Invoice{}, fmt.Errorf("unmarshal %s: %w", id, err)
	}
	return dto.toDomain(), nil
}

// Delete removes an invoice and its index entry.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}
	if err := r.store.Del(ctx, r.key(id)); err != nil {
		return fmt.Errorf("del %s: %w", id, err)
	}
	if err := r.store.ZRem(ctx, r.indexKey(), id); err != nil {
		return fmt.Errorf("unindex %s: %w", id, err)
	}
	return nil
}

// Count returns the number of stored invoices.
func (r *Repo) Count(ctx context.Context) (int64, error) {
	n, err := r.store.ZCard(ctx, r.indexKey())
	if err != nil {
		return 0, fmt.Errorf("count invoices: %w", err)
	}
	return n, nil
}

// Find lists invoices newest-first, filtered by a search term, and returns
// the requested window plus the total number of matches. Entries that fail
// to decode are skipped rather than failing the listing.
func (r *Repo) Find(ctx context.Context, term string, offset, limit int) ([]dominv.Invoice, int, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		return nil, 0, nil
	}

	ids, err := r.store.ZRevRange(ctx, r.indexKey(), 0, r.maxScan-1)
	if err != nil {
		return nil, 0, fmt.Errorf("list invoice ids: %w", err)
	}
	if len(ids) == 0 {
		return nil, 0, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.key(id)
	}
	vals, err := r.store.MGet(ctx, keys)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch invoices: %w", err)
	}

	matched := make([]dominv.Invoice, 0, len(vals))
	for _, data := range vals {
		if data == nil {
			continue
		}
		var dto invoiceDTO
		if err := json.Unmarshal(data, &dto); err != nil {
			continue
		}
		inv := dto.toDomain()
		if inv.MatchesTerm(term) {
			matched = append(matched, inv)
		}
	}

	total := len(matched)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}
