package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/spidyshivam/webhook-repo/internal/domain"
)

// MemoryStore keeps events in process. It backs local development runs
// (STORE_DRIVER=memory) and handler tests.
type MemoryStore struct {
	mu     sync.RWMutex
	events []domain.StoredEvent
}

// NewMemory returns an empty MemoryStore.
func NewMemory() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) InsertEvent(_ context.Context, ev domain.CanonicalEvent) (string, error) {
	if err := validateEvent(ev); err != nil {
		return "", fmt.Errorf("inserting event: %w", err)
	}

	stored := domain.StoredEvent{ID: uuid.NewString(), CanonicalEvent: ev}
	if ev.FromBranch != nil {
		from := *ev.FromBranch
		stored.FromBranch = &from
	}

	s.mu.Lock()
	s.events = append(s.events, stored)
	s.mu.Unlock()

	return stored.ID, nil
}

// RecentEvents orders by the timestamp string like the Postgres store does.
// Events with equal timestamps come back most recently inserted first.
func (s *MemoryStore) RecentEvents(_ context.Context, limit int) ([]domain.StoredEvent, error) {
	s.mu.RLock()
	events := make([]domain.StoredEvent, 0, len(s.events))
	for i := len(s.events) - 1; i >= 0; i-- {
		events = append(events, s.events[i])
	}
	s.mu.RUnlock()

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp > events[j].Timestamp
	})

	if limit >= 0 && len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

func (s *MemoryStore) EventStats(_ context.Context) (*EventStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats EventStats
	for _, ev := range s.events {
		stats.add(ev.Action, 1)
	}
	return &stats, nil
}
