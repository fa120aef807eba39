package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
// Ingestion source definitions live in a separate YAML file (see sources.go)
// referenced by SourcesPath.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	DBPath      string
	SourcesPath string

	// Ingestion cycle tuning.
	CycleInterval time.Duration // normal sleep between fetch cycles
	CycleBackoff  time.Duration // shorter retry sleep after a failed cycle
	FetchTimeout  time.Duration // per-source fetch deadline
	FetchWorkers  int           // concurrent source fetches per cycle
	FetchRate     float64       // global fetches per second across sources

	// Pipeline tuning.
	PipelineWorkers int
	RingCapacity    int

	// Plausibility validation.
	AnomalyThreshold   float64
	ValidationCacheTTL time.Duration

	// Heatmap aggregation.
	HeatmapCacheTTL  time.Duration
	MaxFullIntensity int     // event count that saturates the volume term
	WeightVolume     float64 // intensity weights, must sum to 1
	WeightVirality   float64
	WeightReality    float64

	// Optional Kafka sink for processed events.
	KafkaBrokers   []string
	KafkaSinkTopic string
	KafkaEnabled   bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	cycleInterval, err := parseDuration("CYCLE_INTERVAL", "150s")
	if err != nil {
		return nil, err
	}
	cycleBackoff, err := parseDuration("CYCLE_BACKOFF", "60s")
	if err != nil {
		return nil, err
	}
	fetchTimeout, err := parseDuration("FETCH_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}
	validationTTL, err := parseDuration("VALIDATION_CACHE_TTL", "1h")
	if err != nil {
		return nil, err
	}
	heatmapTTL, err := parseDuration("HEATMAP_CACHE_TTL", "5m")
	if err != nil {
		return nil, err
	}
	fetchWorkers, err := parseBoundedInt("FETCH_WORKERS", 8, 1, 64)
	if err != nil {
		return nil, err
	}
	pipelineWorkers, err := parseBoundedInt("PIPELINE_WORKERS", 4, 1, 64)
	if err != nil {
		return nil, err
	}
	ringCapacity, err := parseBoundedInt("RING_CAPACITY", 200, 1, 10000)
	if err != nil {
		return nil, err
	}
	maxFull, err := parseBoundedInt("MAX_FULL_INTENSITY_EVENTS", 20, 1, 100000)
	if err != nil {
		return nil, err
	}
	anomalyThreshold, err := parseUnitFloat("ANOMALY_THRESHOLD", 0.3)
	if err != nil {
		return nil, err
	}
	fetchRate, err := parseFloat("FETCH_RATE", 4)
	if err != nil {
		return nil, err
	}
	wVolume, err := parseUnitFloat("WEIGHT_VOLUME", 0.3)
	if err != nil {
		return nil, err
	}
	wVirality, err := parseUnitFloat("WEIGHT_VIRALITY", 0.4)
	if err != nil {
		return nil, err
	}
	wReality, err := parseUnitFloat("WEIGHT_REALITY", 0.3)
	if err != nil {
		return nil, err
	}

	kafkaBrokers := parseBrokers(os.Getenv("KAFKA_BROKERS"))
	kafkaEnabled := len(kafkaBrokers) > 0
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		DBPath:      envOrDefault("DB_PATH", "heatmap.db"),
		SourcesPath: envOrDefault("SOURCES_PATH", "sources.yml"),

		CycleInterval: cycleInterval,
		CycleBackoff:  cycleBackoff,
		FetchTimeout:  fetchTimeout,
		FetchWorkers:  fetchWorkers,
		FetchRate:     fetchRate,

		PipelineWorkers: pipelineWorkers,
		RingCapacity:    ringCapacity,

		AnomalyThreshold:   anomalyThreshold,
		ValidationCacheTTL: validationTTL,

		HeatmapCacheTTL:  heatmapTTL,
		MaxFullIntensity: maxFull,
		WeightVolume:     wVolume,
		WeightVirality:   wVirality,
		WeightReality:    wReality,

		KafkaBrokers:   kafkaBrokers,
		KafkaSinkTopic: envOrDefault("KAFKA_SINK_TOPIC", "processed-events"),
		KafkaEnabled:   kafkaEnabled,
	}

	if sum := cfg.WeightVolume + cfg.WeightVirality + cfg.WeightReality; sum < 0.999 || sum > 1.001 {
		return nil, fmt.Errorf("intensity weights must sum to 1, got %v", sum)
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.KafkaEnabled && cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required when the Kafka sink is enabled")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	v := envOrDefault(key, fallback)
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return d, nil
}

func parseBoundedInt(key string, fallback, minVal, maxVal int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < minVal || n > maxVal {
		return 0, fmt.Errorf("invalid %s: %q (want %d-%d)", key, s, minVal, maxVal)
	}
	return n, nil
}

func parseFloat(key string, fallback float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return f, nil
}

func parseUnitFloat(key string, fallback float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || f > 1 {
		return 0, fmt.Errorf("invalid %s: %q (want 0-1)", key, s)
	}
	return f, nil
}

func parseBrokers(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}
