// Package cache provides a keyed TTL cache used by satellite validation and
// heatmap aggregation. Entries expire by timestamp comparison against a
// shared clock; expired entries are regenerated by callers, never reused.
package cache

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// TTL is an in-memory key→value cache with per-cache time-to-live.
// Read-mostly: lookups take a read lock so concurrent readers of unrelated
// keys never block each other.
type TTL[V any] struct {
	ttl   time.Duration
	clock clockwork.Clock

	mu      sync.RWMutex
	entries map[string]entry[V]
}

type entry[V any] struct {
	value    V
	cachedAt time.Time
}

// NewTTL creates a cache whose entries expire ttl after insertion.
func NewTTL[V any](ttl time.Duration, clock clockwork.Clock) *TTL[V] {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &TTL[V]{
		ttl:     ttl,
		clock:   clock,
		entries: make(map[string]entry[V]),
	}
}

// Get returns the cached value for key if it is younger than the TTL.
// An expired entry is a miss; it stays in place until overwritten or purged.
func (c *TTL[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.clock.Since(e.cachedAt) >= c.ttl {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Put stores value under key, resetting its age.
func (c *TTL[V]) Put(key string, value V) {
	c.mu.Lock()
	c.entries[key] = entry[V]{value: value, cachedAt: c.clock.Now()}
	c.mu.Unlock()
}

// Invalidate removes a single key.
func (c *TTL[V]) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Purge drops every entry.
func (c *TTL[V]) Purge() {
	c.mu.Lock()
	c.entries = make(map[string]entry[V])
	c.mu.Unlock()
}

// Len reports the number of stored entries, expired ones included.
func (c *TTL[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
