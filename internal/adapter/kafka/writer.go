// Package kafka publishes processed events to a downstream topic for
// consumers outside this service.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/NayandG07/misinformation-heatmap-sub001/internal/config"
	"github.com/NayandG07/misinformation-heatmap-sub001/internal/domain"
)

// Writer produces processed events to the sink topic.
// It implements pipeline.Publisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish serializes one event and writes it keyed by event id, so a
// compacted topic keeps exactly one copy per event.
func (w *Writer) Publish(ctx context.Context, ev domain.ProcessedEvent) error {
	msg, err := serializeToMessage(ev)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a ProcessedEvent into a Kafka message.
func serializeToMessage(ev domain.ProcessedEvent) (kafkago.Message, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize event %s: %w", ev.ID, err)
	}
	category := domain.CategoryOther
	if len(ev.Claims) > 0 {
		category = ev.Claims[0].Category
	}
	return kafkago.Message{
		Key:   []byte(ev.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "region", Value: []byte(ev.Region)},
			{Key: "category", Value: []byte(category)},
			{Key: "processed_at", Value: []byte(ev.CreatedAt.Format(time.RFC3339))},
		},
	}, nil
}
