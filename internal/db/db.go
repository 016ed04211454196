// Package db defines the storage contract implemented by backends.
package db

import (
	"context"
	"time"
)

// Store is the key-value + sorted-set surface the repositories build on.
// Redis and Valkey are both served by the rueidis implementation.
type Store interface {
	// Ping checks connectivity.
	Ping(ctx context.Context) error
	// Close shuts down the client.
	Close()
	// WaitForReady polls Ping until the store responds or timeout expires.
	WaitForReady(ctx context.Context, timeout time.Duration) error

	// Get retrieves a value by key. Returns ErrKeyNotFound for a missing key.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores a value at the given key.
	Set(ctx context.Context, key string, value []byte) error
	// SetWithTTL stores a value with an expiration.
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Del removes a key. Removing a missing key is not an error.
	Del(ctx context.Context, key string) error
	// MGet retrieves values for keys in order; missing keys yield nil entries.
	MGet(ctx context.Context, keys []string) ([][]byte, error)

	// ZAdd adds a member with a score to a sorted set.
	ZAdd(ctx context.Context, key string, score float64, member string) error
	// ZRem removes a member from a sorted set.
	ZRem(ctx context.Context, key, member string) error
	// ZRevRange returns members by descending score, start..stop inclusive.
	ZRevRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	// ZCard returns the cardinality of a sorted set.
	ZCard(ctx context.Context, key string) (int64, error)
}
