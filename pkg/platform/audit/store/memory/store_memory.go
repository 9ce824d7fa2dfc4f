package memory

import (
	"context"
	"sync"

	audit "sulfurwatch/pkg/platform/audit"
)

// InMemoryStore is an audit.Sink that keeps every event in arrival order.
// Used in development mode and tests.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []audit.Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Write(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// ListByVessel returns the events recorded for a vessel, oldest first.
func (s *InMemoryStore) ListByVessel(_ context.Context, vesselID string) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []audit.Event
	for _, e := range s.events {
		if e.VesselID == vesselID {
			out = append(out, e)
		}
	}
	return out, nil
}

// ListAll returns every event, oldest first.
func (s *InMemoryStore) ListAll(_ context.Context) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Event{}, s.events...), nil
}
