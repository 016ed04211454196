// Package searchdeck is the SDK for embedding the live-search dashboard
// engine in another Go program: debounced query sessions plus the invoice
// search and suggestion services over Redis.
package searchdeck

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/searchdeck/internal/db"
	dbRedis "github.com/kailas-cloud/searchdeck/internal/db/redis"
	"github.com/kailas-cloud/searchdeck/internal/domain"
	invoicerepo "github.com/kailas-cloud/searchdeck/internal/repository/invoice"
	suggestrepo "github.com/kailas-cloud/searchdeck/internal/repository/suggest"
	invoiceuc "github.com/kailas-cloud/searchdeck/internal/usecase/invoice"
	searchuc "github.com/kailas-cloud/searchdeck/internal/usecase/search"
	suggestuc "github.com/kailas-cloud/searchdeck/internal/usecase/suggest"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the searchdeck SDK entry point.
type Client struct {
	store      db.Store
	searchSvc  *searchuc.Service
	invoiceSvc *invoiceuc.Service
	suggestSvc *suggestuc.Service
}

// New creates a searchdeck Client and connects to the database.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("searchdeck: database address required (use WithRedis)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("searchdeck: create store: %w", err)
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("searchdeck: database not ready: %w", err)
	}

	return wireClient(store, cfg), nil
}

func wireClient(store db.Store, cfg *clientConfig) *Client {
	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	invRepo := invoicerepo.New(store)
	termRepo := suggestrepo.New(store)
	if cfg.keyPrefix != "" {
		invRepo = invRepo.WithKeyPrefix(cfg.keyPrefix)
		termRepo = termRepo.WithKeyPrefix(cfg.keyPrefix)
	}
	if cfg.maxScan > 0 {
		invRepo = invRepo.WithMaxScan(cfg.maxScan)
	}

	searchSvc := searchuc.New(invRepo)
	if cfg.defaultPageSize > 0 || cfg.maxPageSize > 0 {
		searchSvc = searchSvc.WithPagination(cfg.defaultPageSize, cfg.maxPageSize)
	}

	// Pass nil interface (not typed nil pointer!) if no embedder is configured.
	var domEmb domain.Embedder
	if cfg.embedder != nil {
		domEmb = embedderAdapter{inner: cfg.embedder}
	}

	return &Client{
		store:      store,
		searchSvc:  searchSvc,
		invoiceSvc: invoiceuc.New(invRepo),
		suggestSvc: suggestuc.New(termRepo, domEmb, logger),
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Invoices returns the invoice management service.
func (c *Client) Invoices() *InvoiceService {
	return &InvoiceService{svc: c.invoiceSvc}
}

// Search returns the invoice search service.
func (c *Client) Search() *SearchService {
	return &SearchService{svc: c.searchSvc}
}

// Suggest returns the query suggestion service.
func (c *Client) Suggest() *SuggestService {
	return &SuggestService{svc: c.suggestSvc}
}

// embedderAdapter wraps the public Embedder to satisfy internal domain.Embedder.
type embedderAdapter struct {
	inner Embedder
}

func (a embedderAdapter) Embed(ctx context.Context, text string) ([]float32, error) {
	vec, err := a.inner.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed: %w", err)
	}
	return vec, nil
}
