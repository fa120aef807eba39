package cache

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTL_BasicGetPut(t *testing.T) {
	c := NewTTL[string](time.Minute, clockwork.NewFakeClock())

	c.Put("a", "alpha")
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "alpha", v)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestTTL_ExpiryIsAMiss(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := NewTTL[int](5*time.Minute, clock)

	c.Put("k", 42)

	clock.Advance(5*time.Minute - time.Second)
	v, ok := c.Get("k")
	require.True(t, ok, "entry younger than TTL is a hit")
	assert.Equal(t, 42, v)

	clock.Advance(2 * time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok, "entry at or past TTL must be treated as a miss")
}

func TestTTL_PutResetsAge(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := NewTTL[int](time.Minute, clock)

	c.Put("k", 1)
	clock.Advance(50 * time.Second)
	c.Put("k", 2)
	clock.Advance(30 * time.Second)

	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestTTL_InvalidateAndPurge(t *testing.T) {
	c := NewTTL[int](time.Minute, clockwork.NewFakeClock())

	c.Put("a", 1)
	c.Put("b", 2)
	require.Equal(t, 2, c.Len())

	c.Invalidate("a")
	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("b")
	assert.True(t, ok)

	c.Purge()
	assert.Zero(t, c.Len())
}
