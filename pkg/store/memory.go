package store

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore keeps records in a map. Safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	recs map[string]Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{recs: make(map[string]Record)}
}

func (s *MemoryStore) Put(ctx context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs[rec.GraphHash] = rec
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, graphHash string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.recs[graphHash]
	if !ok {
		return Record{}, fmt.Errorf("%s: %w", graphHash, ErrNotFound)
	}
	return rec, nil
}

func (s *MemoryStore) Delete(ctx context.Context, graphHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.recs, graphHash)
	return nil
}

func (s *MemoryStore) Close(ctx context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
