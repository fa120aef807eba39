package ingest

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/NayandG07/misinformation-heatmap-sub001/internal/domain"
	"github.com/NayandG07/misinformation-heatmap-sub001/internal/observability"
)

// Sink consumes one cycle's worth of raw events.
type Sink interface {
	Consume(ctx context.Context, events []domain.RawEvent) error
}

// ErrCycleInProgress is returned when a cycle is requested while another is
// still running. Cycles never overlap.
var ErrCycleInProgress = errors.New("ingestion cycle already in progress")

// ErrAllSourcesFailed is returned when not a single source produced events.
// Partial failure is normal operation and does not surface as an error.
var ErrAllSourcesFailed = errors.New("all sources failed")

// SchedulerOptions tunes the fetch loop.
type SchedulerOptions struct {
	Interval     time.Duration // pause between successful cycles
	Backoff      time.Duration // pause after a fully failed cycle
	FetchTimeout time.Duration // per-source budget
	Workers      int           // concurrent fetches
	FetchRate    rate.Limit    // fetches per second across all workers
}

// Scheduler runs ingestion cycles: fan sources out to a bounded worker pool,
// gather whatever succeeded, and hand the batch to the sink.
type Scheduler struct {
	sources []Source
	sink    Sink
	logger  *slog.Logger
	metrics *observability.Metrics
	opts    SchedulerOptions
	limiter *rate.Limiter
	busy    atomic.Bool
}

func NewScheduler(sources []Source, sink Sink, logger *slog.Logger, metrics *observability.Metrics, opts SchedulerOptions) *Scheduler {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	return &Scheduler{
		sources: sources,
		sink:    sink,
		logger:  logger,
		metrics: metrics,
		opts:    opts,
		limiter: rate.NewLimiter(opts.FetchRate, opts.Workers),
	}
}

// Run executes cycles until the context is cancelled. A cycle where every
// source fails switches the pause to the backoff duration; anything else
// uses the regular interval.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("scheduler started",
		"sources", len(s.sources),
		"interval", s.opts.Interval,
		"workers", s.opts.Workers,
	)
	s.metrics.SchedulerRunning.Set(1)
	defer s.metrics.SchedulerRunning.Set(0)

	for {
		pause := s.opts.Interval
		if _, err := s.RunCycle(ctx); err != nil {
			if ctx.Err() != nil {
				s.logger.Info("scheduler stopping", "reason", ctx.Err())
				return nil
			}
			s.logger.Error("ingestion cycle failed", "error", err)
			pause = s.opts.Backoff
		}

		if !sleepWithContext(ctx, pause) {
			s.logger.Info("scheduler stopping", "reason", ctx.Err())
			return nil
		}
	}
}

// RunCycle fetches every source once and delivers the combined batch to the
// sink. It returns the number of events delivered. Safe to call from the
// HTTP refresh handler while Run is looping; an overlapping call gets
// ErrCycleInProgress instead of a second concurrent cycle.
func (s *Scheduler) RunCycle(ctx context.Context) (int, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return 0, ErrCycleInProgress
	}
	defer s.busy.Store(false)

	// Correlation id shared by every log line of this cycle.
	logger := s.logger.With("cycle_id", uuid.NewString())

	events, failed := s.fetchAll(ctx, logger)
	if ctx.Err() != nil {
		return 0, ctx.Err()
	}
	if failed == len(s.sources) && len(s.sources) > 0 {
		return 0, ErrAllSourcesFailed
	}

	if len(events) > 0 {
		if err := s.sink.Consume(ctx, events); err != nil {
			return 0, err
		}
	}

	s.metrics.CyclesTotal.Inc()
	logger.Info("ingestion cycle finished",
		"events", len(events),
		"sources_failed", failed,
		"sources_total", len(s.sources),
	)
	return len(events), nil
}

// fetchAll fans the sources out over the worker pool and returns everything
// that was fetched, plus the number of sources that failed.
func (s *Scheduler) fetchAll(ctx context.Context, logger *slog.Logger) ([]domain.RawEvent, int) {
	jobs := make(chan Source)
	var (
		mu     sync.Mutex
		events []domain.RawEvent
		failed int
	)

	var wg sync.WaitGroup
	for i := 0; i < s.opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for src := range jobs {
				batch, err := s.fetchOne(ctx, logger, src)
				mu.Lock()
				if err != nil {
					failed++
				} else {
					events = append(events, batch...)
				}
				mu.Unlock()
			}
		}()
	}

	for _, src := range s.sources {
		select {
		case jobs <- src:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return events, failed
		}
	}
	close(jobs)
	wg.Wait()
	return events, failed
}

func (s *Scheduler) fetchOne(ctx context.Context, logger *slog.Logger, src Source) ([]domain.RawEvent, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	fetchCtx := ctx
	if s.opts.FetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, s.opts.FetchTimeout)
		defer cancel()
	}

	start := time.Now()
	batch, err := src.Fetch(fetchCtx)
	s.metrics.FetchDuration.WithLabelValues(src.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.FetchErrors.WithLabelValues(src.Name()).Inc()
		logger.Warn("source fetch failed", "source", src.Name(), "error", err)
		return nil, err
	}
	s.metrics.EventsFetched.WithLabelValues(src.Name()).Add(float64(len(batch)))
	return batch, nil
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
