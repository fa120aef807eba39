package pipeline

import (
	"sync"

	"github.com/NayandG07/misinformation-heatmap-sub001/internal/domain"
)

// Ring holds the most recent processed events in a fixed-capacity FIFO
// buffer. It backs the /events/recent endpoint without touching storage.
type Ring struct {
	mu   sync.RWMutex
	buf  []domain.ProcessedEvent
	head int
	size int
}

func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = 1
	}
	return &Ring{buf: make([]domain.ProcessedEvent, capacity)}
}

// Push appends an event, evicting the oldest when full.
func (r *Ring) Push(ev domain.ProcessedEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buf[(r.head+r.size)%len(r.buf)] = ev
	if r.size < len(r.buf) {
		r.size++
	} else {
		r.head = (r.head + 1) % len(r.buf)
	}
}

// Snapshot returns the buffered events, newest first.
func (r *Ring) Snapshot() []domain.ProcessedEvent {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.ProcessedEvent, r.size)
	for i := 0; i < r.size; i++ {
		out[r.size-1-i] = r.buf[(r.head+i)%len(r.buf)]
	}
	return out
}

// Len reports how many events are currently buffered.
func (r *Ring) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.size
}
