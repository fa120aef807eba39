package satellite

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NayandG07/misinformation-heatmap-sub001/internal/domain"
	"github.com/NayandG07/misinformation-heatmap-sub001/internal/observability"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSimulator(t *testing.T) *Simulator {
	t.Helper()
	fakeClock := clockwork.NewFakeClockAt(time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC))
	domain.SetClock(fakeClock)
	t.Cleanup(func() { domain.SetClock(nil) })
	return NewSimulator(domain.DefaultAnomalyThreshold, discardLogger())
}

func TestSimulator_Deterministic(t *testing.T) {
	s := testSimulator(t)
	date := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	first := s.Evaluate(context.Background(), 19.0760, 72.8777, date, "major flooding in Mumbai")
	for i := 0; i < 5; i++ {
		again := s.Evaluate(context.Background(), 19.0760, 72.8777, date, "major flooding in Mumbai")
		assert.Equal(t, first, again, "identical inputs must yield bit-identical results")
	}

	other := s.Evaluate(context.Background(), 19.0760, 72.8778, date, "major flooding in Mumbai")
	assert.NotEqual(t, first.Similarity, other.Similarity, "different coordinates should reseed")
}

func TestSimulator_FloodScenarioRanges(t *testing.T) {
	s := testSimulator(t)
	date := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	r := s.Evaluate(context.Background(), 19.0760, 72.8777, date, "major flooding in Mumbai")

	assert.GreaterOrEqual(t, r.Similarity, 0.1)
	assert.LessOrEqual(t, r.Similarity, 0.3)
	assert.GreaterOrEqual(t, r.Reality, 0.6)
	assert.LessOrEqual(t, r.Reality, 0.8)
	assert.True(t, r.Anomaly, "flood similarity is always below the anomaly threshold")
	assert.Equal(t, "disaster", r.Metadata["scenario"])
	assert.Empty(t, r.Err)
}

func TestSimulator_FakeScenario(t *testing.T) {
	s := testSimulator(t)
	date := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)

	r := s.Evaluate(context.Background(), 28.61, 77.21, date, "viral hoax claims microchips in vaccines")

	assert.Equal(t, "fake", r.Metadata["scenario"])
	assert.GreaterOrEqual(t, r.Similarity, 0.75)
	assert.LessOrEqual(t, r.Reality, 0.25)
	assert.False(t, r.Anomaly, "fake claims show no surface change")
}

func TestSimulator_ScenarioPriority(t *testing.T) {
	s := testSimulator(t)
	date := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)

	// Fake indicators outrank disaster keywords.
	r := s.Evaluate(context.Background(), 22.99, 87.85, date, "fake flood video circulating")
	assert.Equal(t, "fake", r.Metadata["scenario"])

	r = s.Evaluate(context.Background(), 22.99, 87.85, date, "new metro bridge inaugurated")
	assert.Equal(t, "development", r.Metadata["scenario"])

	r = s.Evaluate(context.Background(), 22.99, 87.85, date, "pleasant weather across the state")
	assert.Equal(t, "normal", r.Metadata["scenario"])
}

func TestSimulator_BoundsAcrossInputs(t *testing.T) {
	s := testSimulator(t)
	date := time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC)

	claims := []string{
		"major flooding in Mumbai",
		"hoax about aliens",
		"new highway built",
		"quiet afternoon",
		"earthquake near the border",
	}
	coords := [][2]float64{{6, 68}, {37, 97}, {19.076, 72.8777}, {0, 0}, {28.61, 77.21}}

	for _, claim := range claims {
		for _, c := range coords {
			r := s.Evaluate(context.Background(), c[0], c[1], date, claim)
			assert.InDelta(t, 0.5, r.Similarity, 0.5, "similarity in [0,1]")
			assert.InDelta(t, 0.5, r.Reality, 0.5, "reality in [0,1]")
			assert.InDelta(t, 0.5, r.Confidence, 0.5, "confidence in [0,1]")
		}
	}
}

func TestSimulator_BaselineWindow(t *testing.T) {
	s := testSimulator(t)
	now := domain.Clock().Now()
	date := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)

	r := s.Evaluate(context.Background(), 15.32, 75.71, date, "storm damage in the district")
	age := now.Sub(r.BaselineDate)

	assert.GreaterOrEqual(t, age, 365*24*time.Hour)
	assert.LessOrEqual(t, age, 1096*24*time.Hour)
}

func TestCacheKey_TruncatesClaim(t *testing.T) {
	date := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	long := "a very long claim text that definitely exceeds the fifty character prefix used for keying"

	a := CacheKey(19.0760, 72.8777, date, long)
	b := CacheKey(19.0760, 72.8777, date, long+" with an unrelated suffix change")
	assert.Equal(t, a, b, "only the first 50 characters participate in the key")

	c := CacheKey(19.07601, 72.8777, date, long)
	assert.Equal(t, a, c, "coordinates round to 4 decimals")
}

// --- cached decorator ---

type countingValidator struct {
	calls  int
	result domain.PlausibilityResult
}

func (v *countingValidator) Evaluate(_ context.Context, _, _ float64, _ time.Time, _ string) domain.PlausibilityResult {
	v.calls++
	return v.result
}

func TestCachedValidator_HitSkipsInner(t *testing.T) {
	fakeClock := clockwork.NewFakeClock()
	domain.SetClock(fakeClock)
	t.Cleanup(func() { domain.SetClock(nil) })

	inner := &countingValidator{result: domain.NeutralPlausibility()}
	cached := NewCachedValidator(inner, time.Hour, observability.NewMetricsForTesting())
	date := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	cached.Evaluate(context.Background(), 19.0760, 72.8777, date, "claim")
	cached.Evaluate(context.Background(), 19.0760, 72.8777, date, "claim")
	require.Equal(t, 1, inner.calls, "second call should be served from cache")

	cached.Evaluate(context.Background(), 28.61, 77.21, date, "claim")
	assert.Equal(t, 2, inner.calls, "different key misses")
}

func TestCachedValidator_TTLExpiryRecomputes(t *testing.T) {
	fakeClock := clockwork.NewFakeClock()
	domain.SetClock(fakeClock)
	t.Cleanup(func() { domain.SetClock(nil) })

	inner := &countingValidator{result: domain.NeutralPlausibility()}
	cached := NewCachedValidator(inner, time.Hour, observability.NewMetricsForTesting())
	date := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	cached.Evaluate(context.Background(), 19.0760, 72.8777, date, "claim")
	fakeClock.Advance(time.Hour - time.Second)
	cached.Evaluate(context.Background(), 19.0760, 72.8777, date, "claim")
	require.Equal(t, 1, inner.calls, "entry younger than TTL is reused")

	fakeClock.Advance(2 * time.Second)
	cached.Evaluate(context.Background(), 19.0760, 72.8777, date, "claim")
	assert.Equal(t, 2, inner.calls, "entry past TTL must be regenerated")
}

func TestCachedValidator_DegradedResultNotCached(t *testing.T) {
	fakeClock := clockwork.NewFakeClock()
	domain.SetClock(fakeClock)
	t.Cleanup(func() { domain.SetClock(nil) })

	degraded := domain.NeutralPlausibility()
	degraded.Err = "sensor offline"
	inner := &countingValidator{result: degraded}
	cached := NewCachedValidator(inner, time.Hour, observability.NewMetricsForTesting())
	date := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	cached.Evaluate(context.Background(), 19.0760, 72.8777, date, "claim")
	cached.Evaluate(context.Background(), 19.0760, 72.8777, date, "claim")
	assert.Equal(t, 2, inner.calls, "degraded results are retried, not cached")
}
