package searchdeck

import (
	"context"

	"go.uber.org/zap"
)

// Embedder vectorizes text for query suggestions.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Option configures the Client.
type Option func(*clientConfig)

type clientConfig struct {
	addrs           []string
	password        string
	keyPrefix       string
	defaultPageSize int
	maxPageSize     int
	maxScan         int
	embedder        Embedder
	logger          *zap.Logger
}

// WithRedis sets the Redis (or Valkey) addresses to connect to.
func WithRedis(addrs ...string) Option {
	return func(c *clientConfig) {
		c.addrs = addrs
	}
}

// WithPassword sets the database password.
func WithPassword(password string) Option {
	return func(c *clientConfig) {
		c.password = password
	}
}

// WithKeyPrefix overrides the storage key prefix (default "searchdeck:").
func WithKeyPrefix(prefix string) Option {
	return func(c *clientConfig) {
		c.keyPrefix = prefix
	}
}

// WithPagination overrides the default and maximum page sizes.
func WithPagination(defaultSize, maxSize int) Option {
	return func(c *clientConfig) {
		c.defaultPageSize = defaultSize
		c.maxPageSize = maxSize
	}
}

// WithMaxScan caps how many invoices a filtered search will consider.
func WithMaxScan(n int) Option {
	return func(c *clientConfig) {
		c.maxScan = n
	}
}

// WithEmbedder enables query suggestions backed by the given embedder.
func WithEmbedder(e Embedder) Option {
	return func(c *clientConfig) {
		c.embedder = e
	}
}

// WithLogger sets the logger (default: no logging).
func WithLogger(l *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}
