// Package heatmap rolls processed events up into per-state risk aggregates
// and daily trend series.
package heatmap

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/NayandG07/misinformation-heatmap-sub001/internal/cache"
	"github.com/NayandG07/misinformation-heatmap-sub001/internal/domain"
	"github.com/NayandG07/misinformation-heatmap-sub001/internal/observability"
	"github.com/NayandG07/misinformation-heatmap-sub001/internal/scoring"
	"github.com/NayandG07/misinformation-heatmap-sub001/internal/storage"
)

const (
	maxTopClaims      = 4
	minClaimChars     = 20
	claimTruncateAt   = 120
	defaultWindowHour = 24

	// validatedConfidenceMin is the plausibility confidence an event needs
	// before it counts as satellite-validated.
	validatedConfidenceMin = 0.5
)

// fillerWords are stripped before claim texts are compared for duplicates,
// so "BREAKING: huge flood in Patna" and "flood in Patna" collapse into one.
var fillerWords = map[string]bool{
	"breaking": true, "shocking": true, "urgent": true, "exclusive": true,
	"huge": true, "massive": true, "viral": true, "alert": true,
	"really": true, "very": true, "just": true,
}

// Options tunes the aggregation formulas.
type Options struct {
	WeightVolume     float64 // share of intensity from event volume
	WeightVirality   float64 // share from average virality
	WeightReality    float64 // share from average implausibility
	MaxFullIntensity int     // event count at which the volume term saturates
	CacheTTL         time.Duration
}

// Aggregator computes heatmap snapshots from the event store. Snapshots are
// cached per window; Trend always reads through.
type Aggregator struct {
	store   storage.Store
	scorer  *scoring.Scorer
	cache   *cache.TTL[[]domain.StateAggregate]
	logger  *slog.Logger
	metrics *observability.Metrics
	opts    Options
}

func NewAggregator(store storage.Store, logger *slog.Logger, metrics *observability.Metrics, opts Options) *Aggregator {
	if opts.MaxFullIntensity <= 0 {
		opts.MaxFullIntensity = 20
	}
	return &Aggregator{
		store:   store,
		scorer:  scoring.NewScorer(),
		cache:   cache.NewTTL[[]domain.StateAggregate](opts.CacheTTL, domain.Clock()),
		logger:  logger,
		metrics: metrics,
		opts:    opts,
	}
}

// Generate returns one aggregate per region with events in the window, plus
// every always-shown region at its resting state so the rendered map has no
// holes. useCache=false forces a rebuild, refreshing the cached snapshot.
func (a *Aggregator) Generate(ctx context.Context, windowHours int, useCache bool) ([]domain.StateAggregate, error) {
	if windowHours <= 0 {
		windowHours = defaultWindowHour
	}
	key := fmt.Sprintf("window-%dh", windowHours)

	if useCache {
		if cached, ok := a.cache.Get(key); ok {
			a.metrics.CacheLookups.WithLabelValues("heatmap", "hit").Inc()
			return cached, nil
		}
		a.metrics.CacheLookups.WithLabelValues("heatmap", "miss").Inc()
	}

	start := time.Now()
	now := domain.Clock().Now().UTC()
	events, err := a.store.EventsByTimeRange(ctx, now.Add(-time.Duration(windowHours)*time.Hour), now)
	if err != nil {
		return nil, fmt.Errorf("load window events: %w", err)
	}

	byRegion := make(map[string][]domain.ProcessedEvent)
	for _, ev := range events {
		byRegion[ev.Region] = append(byRegion[ev.Region], ev)
	}

	aggregates := make([]domain.StateAggregate, 0, len(domain.Gazetteer))
	for _, region := range domain.Gazetteer {
		evs := byRegion[region.Name]
		delete(byRegion, region.Name)
		if len(evs) == 0 && !region.AlwaysShown {
			continue
		}
		aggregates = append(aggregates, a.aggregate(region.Name, evs, now))
	}
	// Whatever is left did not match the gazetteer, the unresolved bucket
	// included. Kept visible rather than silently dropped.
	leftovers := make([]string, 0, len(byRegion))
	for name := range byRegion {
		leftovers = append(leftovers, name)
	}
	sort.Strings(leftovers)
	for _, name := range leftovers {
		aggregates = append(aggregates, a.aggregate(name, byRegion[name], now))
	}

	a.metrics.AggregationDuration.Observe(time.Since(start).Seconds())
	a.logger.Debug("heatmap generated",
		"window_hours", windowHours,
		"events", len(events),
		"regions", len(aggregates),
	)

	a.cache.Put(key, aggregates)
	return aggregates, nil
}

// Trend returns a per-day series for one region covering the last daysBack
// calendar days, oldest first. Days without events are present with zero
// counts so charts do not skip gaps.
func (a *Aggregator) Trend(ctx context.Context, region string, daysBack int) ([]domain.TrendPoint, error) {
	if daysBack <= 0 {
		daysBack = 7
	}
	now := domain.Clock().Now().UTC()
	today := now.Truncate(24 * time.Hour)
	start := today.AddDate(0, 0, -(daysBack - 1))

	events, err := a.store.EventsByTimeRange(ctx, start, now)
	if err != nil {
		return nil, fmt.Errorf("load trend events: %w", err)
	}

	byDay := make(map[time.Time][]domain.ProcessedEvent)
	for _, ev := range events {
		if ev.Region != region {
			continue
		}
		day := ev.Timestamp.UTC().Truncate(24 * time.Hour)
		byDay[day] = append(byDay[day], ev)
	}

	points := make([]domain.TrendPoint, 0, daysBack)
	for day := start; !day.After(today); day = day.AddDate(0, 0, 1) {
		evs := byDay[day]
		point := domain.TrendPoint{Day: day, EventCount: len(evs)}
		if len(evs) > 0 {
			avgV, avgR := a.averages(evs)
			point.AvgVirality = avgV
			point.AvgReality = avgR
			point.Risk = avgV * (1 - avgR)
		}
		points = append(points, point)
	}
	return points, nil
}

// aggregate rolls one region's window of events into a StateAggregate. With
// no events the region rests at neutral reality and zero intensity.
func (a *Aggregator) aggregate(region string, evs []domain.ProcessedEvent, now time.Time) domain.StateAggregate {
	agg := domain.StateAggregate{
		Region:     region,
		EventCount: len(evs),
		AvgReality: 0.5,
		ComputedAt: now,
	}
	if len(evs) == 0 {
		return agg
	}

	avgV, avgR := a.averages(evs)
	volume := math.Min(1, float64(len(evs))/float64(a.opts.MaxFullIntensity))

	agg.AvgVirality = avgV
	agg.AvgReality = avgR
	agg.Intensity = a.opts.WeightVolume*volume +
		a.opts.WeightVirality*avgV +
		a.opts.WeightReality*(1-avgR)
	agg.Risk = avgV * (1 - avgR)
	agg.DominantCategory = dominantCategory(evs)
	agg.TopClaims = topClaims(evs)
	for _, ev := range evs {
		p := ev.Plausibility
		if !p.BaselineDate.IsZero() && p.Err == "" && p.Confidence >= validatedConfidenceMin {
			agg.ValidatedCount++
		}
	}
	return agg
}

func (a *Aggregator) averages(evs []domain.ProcessedEvent) (avgVirality, avgReality float64) {
	for _, ev := range evs {
		avgVirality += ev.Virality
		avgReality += a.scorer.Reality(&ev.Plausibility, ev.Claims)
	}
	n := float64(len(evs))
	return avgVirality / n, avgReality / n
}

// dominantCategory is the most frequent claim category in the window. Ties
// go to the category seen first in event order, which is chronological.
func dominantCategory(evs []domain.ProcessedEvent) domain.ClaimCategory {
	counts := make(map[domain.ClaimCategory]int)
	var order []domain.ClaimCategory
	for _, ev := range evs {
		for _, claim := range ev.Claims {
			if counts[claim.Category] == 0 {
				order = append(order, claim.Category)
			}
			counts[claim.Category]++
		}
	}
	if len(order) == 0 {
		return domain.CategoryOther
	}

	best := order[0]
	for _, cat := range order[1:] {
		if counts[cat] > counts[best] {
			best = cat
		}
	}
	return best
}

// topClaims picks the most believable recent claims for display: sorted by
// confidence then recency, deduplicated on normalized text, capped and
// truncated for the payload.
func topClaims(evs []domain.ProcessedEvent) []string {
	type candidate struct {
		text       string
		confidence float64
		seen       time.Time
	}
	var candidates []candidate
	for _, ev := range evs {
		for _, claim := range ev.Claims {
			if len(claim.Text) < minClaimChars {
				continue
			}
			candidates = append(candidates, candidate{claim.Text, claim.Confidence, ev.Timestamp})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].confidence != candidates[j].confidence {
			return candidates[i].confidence > candidates[j].confidence
		}
		return candidates[i].seen.After(candidates[j].seen)
	})

	seen := make(map[string]bool)
	var out []string
	for _, c := range candidates {
		norm := normalizeClaim(c.text)
		if norm == "" || seen[norm] {
			continue
		}
		seen[norm] = true
		out = append(out, truncateClaim(c.text))
		if len(out) == maxTopClaims {
			break
		}
	}
	return out
}

func normalizeClaim(text string) string {
	words := strings.Fields(strings.ToLower(text))
	kept := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.Trim(w, ".,!?:;\"'")
		if w == "" || fillerWords[w] {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

func truncateClaim(text string) string {
	runes := []rune(text)
	if len(runes) <= claimTruncateAt {
		return text
	}
	return string(runes[:claimTruncateAt]) + "…"
}
