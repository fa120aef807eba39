// Package storage persists processed events behind a narrow interface so the
// pipeline and aggregator stay independent of the engine underneath.
package storage

import (
	"context"
	"time"

	"github.com/NayandG07/misinformation-heatmap-sub001/internal/domain"
)

// Stats summarizes the durable event set.
type Stats struct {
	TotalEvents    int
	EventsByRegion map[string]int
	EventsBySource map[string]int
	OldestEvent    time.Time
	NewestEvent    time.Time
}

// Store is the durable event repository. InsertEvent has upsert semantics
// keyed on the event id: reprocessing the same item is a no-op, which makes
// at-least-once ingestion safe.
type Store interface {
	Initialize(ctx context.Context) error
	InsertEvent(ctx context.Context, ev domain.ProcessedEvent) error
	EventsByTimeRange(ctx context.Context, start, end time.Time) ([]domain.ProcessedEvent, error)
	EventsByRegion(ctx context.Context, region string, limit int) ([]domain.ProcessedEvent, error)
	Stats(ctx context.Context) (Stats, error)
	Close() error
}
