package store

import (
	"context"
	"sync"

	"github.com/licaudit/licaudit/pkg/audit"
)

// MemoryStore keeps entries in memory. It backs the serve command when no
// external store is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(_ context.Context, report audit.Report) (Entry, error) {
	entry := newEntry(report)
	s.mu.Lock()
	s.entries = append(s.entries, entry)
	s.mu.Unlock()
	return entry, nil
}

func (s *MemoryStore) Latest(_ context.Context) (Entry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.entries) == 0 {
		return Entry{}, false, nil
	}
	return s.entries[len(s.entries)-1], true, nil
}

func (s *MemoryStore) Close() error {
	return nil
}

var _ Store = (*MemoryStore)(nil)
