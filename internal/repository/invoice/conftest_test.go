package invoice

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/kailas-cloud/searchdeck/internal/db"
	dominv "github.com/kailas-cloud/searchdeck/internal/domain/invoice"
)

// mockStore is an in-memory store implementing the consumer interface.
type mockStore struct {
	mu   sync.Mutex
	kv   map[string][]byte
	zset map[string]float64 // member -> score, single index

	getErr error
	setErr error
}

func newMockStore() *mockStore {
	return &mockStore{kv: map[string][]byte{}, zset: map[string]float64{}}
}

func (m *mockStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	data, ok := m.kv[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return data, nil
}

func (m *mockStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.kv[key] = value
	return nil
}

func (m *mockStore) Del(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.kv, key)
	return nil
}

func (m *mockStore) MGet(_ context.Context, keys []string) ([][]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]byte, len(keys))
	for i, k := range keys {
		out[i] = m.kv[k]
	}
	return out, nil
}

func (m *mockStore) ZAdd(_ context.Context, _ string, score float64, member string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.zset[member] = score
	return nil
}

func (m *mockStore) ZRem(_ context.Context, _ string, member string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.zset, member)
	return nil
}

func (m *mockStore) ZRevRange(_ context.Context, _ string, start, stop int64) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	type entry struct {
		member string
		score  float64
	}
	entries := make([]entry, 0, len(m.zset))
	for member, score := range m.zset {
		entries = append(entries, entry{member, score})
	}
	// descending score, then reverse-lex for stable order
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			if entries[j].score > entries[i].score ||
				(entries[j].score == entries[i].score && entries[j].member > entries[i].member) {
				entries[i], entries[j] = entries[j], entries[i]
			}
		}
	}
	var out []string
	for i, e := range entries {
		if int64(i) < start {
			continue
		}
		if stop >= 0 && int64(i) > stop {
			break
		}
		out = append(out, e.member)
	}
	return out, nil
}

func (m *mockStore) ZCard(_ context.Context, _ string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.zset)), nil
}

func mustInvoice(t *testing.T, id, customer, email string, cents int64, status dominv.Status, day int) dominv.Invoice {
	t.Helper()
	inv, err := dominv.New(id, customer, email, cents, status,
		time.Date(2026, 5, day, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("invoice.New: %v", err)
	}
	return inv
}

func storedDTO(t *testing.T, m *mockStore, key string) invoiceDTO {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.kv[key]
	if !ok {
		t.Fatalf("key %s not stored", key)
	}
	var dto invoiceDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		t.Fatalf("unmarshal stored dto: %v", err)
	}
	return dto
}
