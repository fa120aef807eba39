package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/NayandG07/misinformation-heatmap-sub001/internal/adapter/httpapi"
	kafkaadapter "github.com/NayandG07/misinformation-heatmap-sub001/internal/adapter/kafka"
	"github.com/NayandG07/misinformation-heatmap-sub001/internal/config"
	"github.com/NayandG07/misinformation-heatmap-sub001/internal/heatmap"
	"github.com/NayandG07/misinformation-heatmap-sub001/internal/ingest"
	"github.com/NayandG07/misinformation-heatmap-sub001/internal/nlp"
	"github.com/NayandG07/misinformation-heatmap-sub001/internal/observability"
	"github.com/NayandG07/misinformation-heatmap-sub001/internal/pipeline"
	"github.com/NayandG07/misinformation-heatmap-sub001/internal/satellite"
	"github.com/NayandG07/misinformation-heatmap-sub001/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	sourceCfgs, err := config.LoadSources(cfg.SourcesPath)
	if err != nil {
		logger.Error("failed to load sources", "path", cfg.SourcesPath, "error", err)
		os.Exit(1)
	}
	sources, err := ingest.NewFromConfig(sourceCfgs)
	if err != nil {
		logger.Error("failed to build sources", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStore(cfg, logger)
	if err != nil {
		logger.Error("failed to open store", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	if err := store.Initialize(ctx); err != nil {
		logger.Error("failed to initialize store", "error", err)
		os.Exit(1)
	}

	validator := satellite.NewCachedValidator(
		satellite.NewSimulator(cfg.AnomalyThreshold, logger),
		cfg.ValidationCacheTTL,
		metrics,
	)

	var publisher pipeline.Publisher
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("kafka sink enabled", "topic", cfg.KafkaSinkTopic)
	}

	processor := pipeline.NewProcessor(
		store,
		nlp.NewAnalyzer(logger),
		nlp.NewClassifier(),
		validator,
		logger,
		metrics,
		pipeline.ProcessorOptions{
			Publisher: publisher,
			Workers:   cfg.PipelineWorkers,
			RingSize:  cfg.RingCapacity,
		},
	)

	scheduler := ingest.NewScheduler(sources, processor, logger, metrics, ingest.SchedulerOptions{
		Interval:     cfg.CycleInterval,
		Backoff:      cfg.CycleBackoff,
		FetchTimeout: cfg.FetchTimeout,
		Workers:      cfg.FetchWorkers,
		FetchRate:    rate.Limit(cfg.FetchRate),
	})

	aggregator := heatmap.NewAggregator(store, logger, metrics, heatmap.Options{
		WeightVolume:     cfg.WeightVolume,
		WeightVirality:   cfg.WeightVirality,
		WeightReality:    cfg.WeightReality,
		MaxFullIntensity: cfg.MaxFullIntensity,
		CacheTTL:         cfg.HeatmapCacheTTL,
	})

	srv := httpapi.NewServer(cfg.HTTPAddr, processor, store, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		if err := scheduler.Run(ctx); err != nil {
			logger.Error("scheduler error", "error", err)
		}
	}()

	go keepSnapshotWarm(ctx, aggregator, logger, cfg)

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

// openStore picks the storage engine: ":memory:" for throwaway runs,
// a SQLite file otherwise.
func openStore(cfg *config.Config, logger *slog.Logger) (storage.Store, error) {
	if cfg.DBPath == ":memory:" {
		logger.Info("using in-memory store")
		return storage.NewMemoryStore(), nil
	}
	logger.Info("using sqlite store", "path", cfg.DBPath)
	return storage.NewSQLiteStore(cfg.DBPath)
}

// keepSnapshotWarm rebuilds the default heatmap window on the cache TTL so
// the first consumer after a quiet period never pays the aggregation cost.
// Top-risk regions land in the log as a cheap operational signal.
func keepSnapshotWarm(ctx context.Context, aggregator *heatmap.Aggregator, logger *slog.Logger, cfg *config.Config) {
	ticker := time.NewTicker(cfg.HeatmapCacheTTL)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		aggs, err := aggregator.Generate(ctx, 24, false)
		if err != nil {
			logger.Warn("snapshot refresh failed", "error", err)
			continue
		}
		var top string
		var topRisk float64
		for _, a := range aggs {
			if a.Risk > topRisk {
				top, topRisk = a.Region, a.Risk
			}
		}
		if top != "" {
			logger.Info("heatmap snapshot refreshed", "regions", len(aggs), "top_region", top, "top_risk", topRisk)
		}
	}
}
