package eventlog

import (
	"context"
	"sync"

	"github.com/SpaceC00kies/pranara-prototype-sub001/internal/model"
)

// MemoryStore is an in-memory event log for tests and local development.
// Production deployments use the JetStream store.
type MemoryStore struct {
	mu     sync.RWMutex
	events []model.Event
}

// NewMemoryStore creates an empty in-memory event log.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Append records one event.
func (s *MemoryStore) Append(ctx context.Context, ev model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

// Query returns all events inside the window in append order.
func (s *MemoryStore) Query(ctx context.Context, w Window) ([]model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Event
	for _, ev := range s.events {
		if w.Contains(ev.Timestamp) {
			out = append(out, ev)
		}
	}
	return out, nil
}
