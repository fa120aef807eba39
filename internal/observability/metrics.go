package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// ingestion and aggregation pipeline.
type Metrics struct {
	EventsFetched *prometheus.CounterVec // labels: source
	FetchErrors   *prometheus.CounterVec // labels: source
	FetchDuration *prometheus.HistogramVec
	CyclesTotal   prometheus.Counter

	EventsProcessed    prometheus.Counter
	EventsDropped      *prometheus.CounterVec // labels: reason={validation,persistence,empty}
	ProcessingDuration prometheus.Histogram
	PersistenceErrors  prometheus.Counter
	RingSize           prometheus.Gauge

	CacheLookups        *prometheus.CounterVec // labels: cache={plausibility,heatmap}, result={hit,miss}
	AggregationDuration prometheus.Histogram
	SchedulerRunning    prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.EventsFetched,
		m.FetchErrors,
		m.FetchDuration,
		m.CyclesTotal,
		m.EventsProcessed,
		m.EventsDropped,
		m.ProcessingDuration,
		m.PersistenceErrors,
		m.RingSize,
		m.CacheLookups,
		m.AggregationDuration,
		m.SchedulerRunning,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		EventsFetched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "misinfo_heatmap",
			Name:      "events_fetched_total",
			Help:      "Raw events fetched per ingestion source.",
		}, []string{"source"}),
		FetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "misinfo_heatmap",
			Name:      "fetch_errors_total",
			Help:      "Failed source fetches.",
		}, []string{"source"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "misinfo_heatmap",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of a single source fetch.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"source"}),
		CyclesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "misinfo_heatmap",
			Name:      "ingestion_cycles_total",
			Help:      "Completed ingestion cycles.",
		}),
		EventsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "misinfo_heatmap",
			Name:      "events_processed_total",
			Help:      "Events fully processed and persisted.",
		}),
		EventsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "misinfo_heatmap",
			Name:      "events_dropped_total",
			Help:      "Events dropped before persistence, by reason.",
		}, []string{"reason"}),
		ProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "misinfo_heatmap",
			Name:      "event_processing_duration_seconds",
			Help:      "Duration of the per-event pipeline.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}),
		PersistenceErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "misinfo_heatmap",
			Name:      "persistence_errors_total",
			Help:      "Storage write failures.",
		}),
		RingSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "misinfo_heatmap",
			Name:      "recent_events_ring_size",
			Help:      "Events currently held in the recent-events ring.",
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "misinfo_heatmap",
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by cache name and result.",
		}, []string{"cache", "result"}),
		AggregationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "misinfo_heatmap",
			Name:      "aggregation_duration_seconds",
			Help:      "Duration of a full heatmap aggregation pass.",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		SchedulerRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "misinfo_heatmap",
			Name:      "scheduler_running",
			Help:      "1 while the ingestion scheduler is active.",
		}),
	}
}
