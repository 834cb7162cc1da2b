package state

import (
	"context"
	"sync"
)

// MemoryStore holds the snapshot in process memory. Used by tests and by
// dry runs that must not touch the real baseline.
type MemoryStore struct {
	mu   sync.Mutex
	snap Snapshot
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snap: Snapshot{}}
}

func (s *MemoryStore) Load(_ context.Context) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(Snapshot, len(s.snap))
	for id, entry := range s.snap {
		out[id] = entry
	}
	return out, nil
}

func (s *MemoryStore) Save(_ context.Context, snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := make(Snapshot, len(snap))
	for id, entry := range snap {
		replaced[id] = entry
	}
	s.snap = replaced
	return nil
}
