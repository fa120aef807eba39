// Package pipeline turns raw source items into scored, region-resolved
// events and persists them.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/NayandG07/misinformation-heatmap-sub001/internal/domain"
	"github.com/NayandG07/misinformation-heatmap-sub001/internal/observability"
	"github.com/NayandG07/misinformation-heatmap-sub001/internal/scoring"
	"github.com/NayandG07/misinformation-heatmap-sub001/internal/storage"
)

// Publisher forwards processed events to a downstream system. Publish
// failures are logged and counted but never block processing.
type Publisher interface {
	Publish(ctx context.Context, ev domain.ProcessedEvent) error
}

// Processor runs the per-event pipeline: analyze, classify, extract claims,
// resolve region, validate plausibility, score, persist.
type Processor struct {
	store      storage.Store
	analyzer   domain.Analyzer
	classifier domain.Classifier
	validator  domain.Validator
	scorer     *scoring.Scorer
	publisher  Publisher // optional
	ring       *Ring
	logger     *slog.Logger
	metrics    *observability.Metrics
	workers    int
	ready      atomic.Bool
}

type ProcessorOptions struct {
	Publisher Publisher
	Workers   int
	RingSize  int
}

func NewProcessor(store storage.Store, analyzer domain.Analyzer, classifier domain.Classifier, validator domain.Validator, logger *slog.Logger, metrics *observability.Metrics, opts ProcessorOptions) *Processor {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.RingSize <= 0 {
		opts.RingSize = 100
	}
	return &Processor{
		store:      store,
		analyzer:   analyzer,
		classifier: classifier,
		validator:  validator,
		scorer:     scoring.NewScorer(),
		publisher:  opts.Publisher,
		ring:       NewRing(opts.RingSize),
		logger:     logger,
		metrics:    metrics,
		workers:    opts.Workers,
	}
}

// Ring exposes the recent-events buffer for the HTTP layer.
func (p *Processor) Ring() *Ring { return p.ring }

// CheckReadiness returns nil once at least one event has been persisted.
func (p *Processor) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no events processed yet")
	}
	return nil
}

// Consume satisfies the scheduler's sink contract.
func (p *Processor) Consume(ctx context.Context, events []domain.RawEvent) error {
	p.ProcessBatch(ctx, events)
	return ctx.Err()
}

// ProcessBatch processes events on a bounded worker pool and returns how
// many were persisted. Individual failures are dropped and counted; a batch
// never fails as a whole.
func (p *Processor) ProcessBatch(ctx context.Context, events []domain.RawEvent) int {
	jobs := make(chan domain.RawEvent)
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		count int
	)

	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for raw := range jobs {
				if _, err := p.Process(ctx, raw); err == nil {
					mu.Lock()
					count++
					mu.Unlock()
				}
			}
		}()
	}

	for _, raw := range events {
		select {
		case jobs <- raw:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return count
		}
	}
	close(jobs)
	wg.Wait()
	return count
}

// Process runs one event through the full pipeline. The NLP and validation
// oracles degrade to neutral values on failure; only an empty text, a model
// invariant violation, or a storage error drops the event.
func (p *Processor) Process(ctx context.Context, raw domain.RawEvent) (domain.ProcessedEvent, error) {
	start := time.Now()
	defer func() {
		p.metrics.ProcessingDuration.Observe(time.Since(start).Seconds())
	}()

	text := strings.TrimSpace(raw.Text)
	if text == "" {
		p.metrics.EventsDropped.WithLabelValues("empty").Inc()
		return domain.ProcessedEvent{}, domain.ErrValidation
	}
	id := domain.EventID(raw.Source, raw.Title, text, raw.URL)

	signals, err := p.analyzer.Analyze(ctx, raw.Title+" "+text)
	if err != nil {
		p.logger.Warn("text analysis failed, continuing with neutral signals",
			"event_id", id, "error", err)
		signals = domain.TextSignals{Language: domain.NormalizeLanguage("")}
	}

	classification, err := p.classifier.Classify(ctx, raw.Title, text, raw.Source, raw.URL)
	if err != nil {
		p.logger.Warn("classification failed, continuing as uncertain",
			"event_id", id, "error", err)
		classification = domain.Classification{Verdict: domain.VerdictUncertain, Score: 0.5, Confidence: 0.3}
	}

	claims := extractClaims(id, raw.Title, text, classification, signals.Entities)
	region, regionHint, resolved := resolveRegion(raw, signals)

	// Resolvable coordinates always get a satellite check, with the original
	// text as the claim context so the validation cache keys on it.
	var plausibility *domain.PlausibilityResult
	if resolved {
		result := p.validator.Evaluate(ctx, region.Lat, region.Lon, domain.Clock().Now(), text)
		plausibility = &result
	}

	params := domain.EventParams{
		ID:           id,
		Source:       raw.Source,
		Title:        raw.Title,
		Text:         text,
		URL:          raw.URL,
		Timestamp:    raw.FetchedAt,
		Language:     signals.Language,
		RegionHint:   regionHint,
		Entities:     signals.Entities,
		Virality:     p.scorer.Virality(raw, signals, claims),
		Plausibility: plausibility,
		Claims:       claims,
		Metadata: map[string]string{
			"source_name": raw.SourceName,
			"verdict":     string(classification.Verdict),
		},
	}
	if resolved {
		params.Region = region.Name
		params.Lat = region.Lat
		params.Lon = region.Lon
	}

	ev, err := domain.NewProcessedEvent(params)
	if err != nil {
		p.metrics.EventsDropped.WithLabelValues("validation").Inc()
		p.logger.Warn("event rejected", "event_id", id, "error", err)
		return domain.ProcessedEvent{}, err
	}

	if err := p.store.InsertEvent(ctx, ev); err != nil {
		p.metrics.EventsDropped.WithLabelValues("persistence").Inc()
		p.metrics.PersistenceErrors.Inc()
		p.logger.Error("persist failed", "event_id", id, "error", err)
		return domain.ProcessedEvent{}, err
	}

	p.ring.Push(ev)
	p.metrics.RingSize.Set(float64(p.ring.Len()))
	p.metrics.EventsProcessed.Inc()
	p.ready.Store(true)

	if p.publisher != nil {
		if err := p.publisher.Publish(ctx, ev); err != nil {
			p.logger.Warn("publish failed", "event_id", id, "error", err)
		}
	}

	p.logger.Debug("event processed",
		"event_id", id,
		"region", ev.Region,
		"virality", ev.Virality,
		"claims", len(ev.Claims),
	)
	return ev, nil
}

// resolveRegion maps an event to an Indian state and reports the hint that
// drove the match. Geographic entities from the analyzer take priority over
// a scan of the raw text, since the analyzer already folded city names into
// state names.
func resolveRegion(raw domain.RawEvent, signals domain.TextSignals) (domain.Region, string, bool) {
	for _, entity := range signals.GeographicEntities {
		if region, ok := domain.RegionByName(entity); ok {
			return region, entity, true
		}
		if region, ok := domain.ResolveRegion(entity); ok {
			return region, entity, true
		}
	}
	if region, ok := domain.ResolveRegion(raw.Title + " " + raw.Text); ok {
		return region, region.Name, true
	}
	return domain.Region{}, "", false
}
