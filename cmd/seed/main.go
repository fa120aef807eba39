// Command seed fills a heatmap database with synthetic events by running
// mock sources through the real processing pipeline. It exists so local
// development and demos start from a populated map instead of an empty one,
// and uses the actual pipeline packages so seeded rows match production
// behavior exactly.
//
// Usage:
//
//	go run ./cmd/seed -db heatmap.db -cycles 5 -per-source 20
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/NayandG07/misinformation-heatmap-sub001/internal/config"
	"github.com/NayandG07/misinformation-heatmap-sub001/internal/domain"
	"github.com/NayandG07/misinformation-heatmap-sub001/internal/ingest"
	"github.com/NayandG07/misinformation-heatmap-sub001/internal/nlp"
	"github.com/NayandG07/misinformation-heatmap-sub001/internal/observability"
	"github.com/NayandG07/misinformation-heatmap-sub001/internal/pipeline"
	"github.com/NayandG07/misinformation-heatmap-sub001/internal/satellite"
	"github.com/NayandG07/misinformation-heatmap-sub001/internal/storage"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	dbPath := flag.String("db", "heatmap.db", "path to the SQLite database to seed")
	cycles := flag.Int("cycles", 5, "number of ingestion cycles to simulate")
	perSource := flag.Int("per-source", 20, "events per mock source per cycle")
	spread := flag.Duration("spread", 6*time.Hour, "time between simulated cycles, walking backwards from now")
	flag.Parse()

	if *cycles <= 0 || *perSource <= 0 {
		return fmt.Errorf("cycles and per-source must be positive")
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := storage.NewSQLiteStore(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.Initialize(ctx); err != nil {
		return err
	}

	processor := pipeline.NewProcessor(
		store,
		nlp.NewAnalyzer(logger),
		nlp.NewClassifier(),
		satellite.NewSimulator(domain.DefaultAnomalyThreshold, logger),
		logger,
		observability.NewMetricsForTesting(),
		pipeline.ProcessorOptions{Workers: 4},
	)

	sources := []ingest.Source{
		ingest.NewMockSource(config.SourceConfig{Name: "seed-wire", Type: config.SourceTypeMock, Reliability: 0.85, MaxItems: *perSource}),
		ingest.NewMockSource(config.SourceConfig{Name: "seed-social", Type: config.SourceTypeMock, Reliability: 0.35, MaxItems: *perSource}),
	}

	// Walk the clock backwards so seeded events spread over a time window
	// and the trend series has more than one day to show.
	now := time.Now().UTC()
	total := 0
	for cycle := 0; cycle < *cycles; cycle++ {
		at := now.Add(-time.Duration(*cycles-1-cycle) * *spread)
		domain.SetClock(clockwork.NewFakeClockAt(at))

		for _, src := range sources {
			events, err := src.Fetch(ctx)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", src.Name(), err)
			}
			total += processor.ProcessBatch(ctx, events)
		}
	}
	domain.SetClock(nil)

	stats, err := store.Stats(ctx)
	if err != nil {
		return err
	}
	log.Printf("seeded %d events (%d rows in store) into %s", total, stats.TotalEvents, *dbPath)
	for region, n := range stats.EventsByRegion {
		log.Printf("  %-20s %d", region, n)
	}
	return nil
}
