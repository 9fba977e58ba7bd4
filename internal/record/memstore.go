package record

import (
	"context"
	"maps"
	"sort"
	"sync"
	"time"
)

// Compile-time assertion that MemStore satisfies the Store interface.
var _ Store = (*MemStore)(nil)

// MemStore is a thread-safe, in-memory implementation of [Store].
// It is suitable for single-session use and testing.
// The zero value is ready to use.
type MemStore struct {
	mu      sync.RWMutex
	records map[string]Bridge
}

// NewMemStore returns an initialised [MemStore].
func NewMemStore() *MemStore {
	return &MemStore{records: make(map[string]Bridge)}
}

// Upsert implements [Store.Upsert].
func (s *MemStore) Upsert(ctx context.Context, b Bridge) error {
	if b.Code == "" {
		return ErrMissingCode
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.records == nil {
		s.records = make(map[string]Bridge)
	}

	now := time.Now().UTC()
	if prev, ok := s.records[b.Code]; ok {
		b.CreatedAt = prev.CreatedAt
	} else {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
	b.Fields = maps.Clone(b.Fields)
	s.records[b.Code] = b
	return nil
}

// Get implements [Store.Get].
func (s *MemStore) Get(ctx context.Context, code string) (Bridge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.records[code]
	if !ok {
		return Bridge{}, ErrNotFound
	}
	b.Fields = maps.Clone(b.Fields)
	return b, nil
}

// List implements [Store.List].
func (s *MemStore) List(ctx context.Context) ([]Bridge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Bridge, 0, len(s.records))
	for _, b := range s.records {
		b.Fields = maps.Clone(b.Fields)
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// Delete implements [Store.Delete].
func (s *MemStore) Delete(ctx context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[code]; !ok {
		return ErrNotFound
	}
	delete(s.records, code)
	return nil
}
