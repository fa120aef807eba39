package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/NayandG07/misinformation-heatmap-sub001/internal/domain"
)

// MemoryStore keeps events in process memory. It backs tests and the
// DB_PATH=:memory: development mode; semantics mirror SQLiteStore.
type MemoryStore struct {
	mu     sync.RWMutex
	events map[string]domain.ProcessedEvent
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{events: make(map[string]domain.ProcessedEvent)}
}

func (m *MemoryStore) Initialize(context.Context) error { return nil }

func (m *MemoryStore) InsertEvent(_ context.Context, ev domain.ProcessedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.events[ev.ID]; exists {
		return nil
	}
	m.events[ev.ID] = ev
	return nil
}

func (m *MemoryStore) EventsByTimeRange(_ context.Context, start, end time.Time) ([]domain.ProcessedEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.ProcessedEvent
	for _, ev := range m.events {
		if !ev.Timestamp.Before(start) && ev.Timestamp.Before(end) {
			out = append(out, ev)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (m *MemoryStore) EventsByRegion(_ context.Context, region string, limit int) ([]domain.ProcessedEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.ProcessedEvent
	for _, ev := range m.events {
		if ev.Region == region {
			out = append(out, ev)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryStore) Stats(context.Context) (Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st := Stats{
		TotalEvents:    len(m.events),
		EventsByRegion: make(map[string]int),
		EventsBySource: make(map[string]int),
	}
	for _, ev := range m.events {
		st.EventsByRegion[ev.Region]++
		st.EventsBySource[string(ev.Source)]++
		if st.OldestEvent.IsZero() || ev.Timestamp.Before(st.OldestEvent) {
			st.OldestEvent = ev.Timestamp
		}
		if ev.Timestamp.After(st.NewestEvent) {
			st.NewestEvent = ev.Timestamp
		}
	}
	return st, nil
}

func (m *MemoryStore) Close() error { return nil }
