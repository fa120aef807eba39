package satellite

import (
	"context"
	"time"

	"github.com/NayandG07/misinformation-heatmap-sub001/internal/cache"
	"github.com/NayandG07/misinformation-heatmap-sub001/internal/domain"
	"github.com/NayandG07/misinformation-heatmap-sub001/internal/observability"
)

// CachedValidator wraps a Validator with a freshness-bounded cache. Entries
// older than the TTL are regenerated, not reused.
type CachedValidator struct {
	inner   domain.Validator
	cache   *cache.TTL[domain.PlausibilityResult]
	metrics *observability.Metrics
}

// NewCachedValidator creates a cache decorator around a validator.
func NewCachedValidator(inner domain.Validator, ttl time.Duration, metrics *observability.Metrics) *CachedValidator {
	return &CachedValidator{
		inner:   inner,
		cache:   cache.NewTTL[domain.PlausibilityResult](ttl, domain.Clock()),
		metrics: metrics,
	}
}

func (c *CachedValidator) Evaluate(ctx context.Context, lat, lon float64, date time.Time, claimText string) domain.PlausibilityResult {
	key := CacheKey(lat, lon, date, claimText)
	if result, ok := c.cache.Get(key); ok {
		c.metrics.CacheLookups.WithLabelValues("plausibility", "hit").Inc()
		return result
	}
	c.metrics.CacheLookups.WithLabelValues("plausibility", "miss").Inc()

	result := c.inner.Evaluate(ctx, lat, lon, date, claimText)
	// Degraded results are never cached; the next call retries.
	if result.Err == "" {
		c.cache.Put(key, result)
	}
	return result
}
