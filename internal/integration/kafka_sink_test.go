//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	kafkaadapter "github.com/NayandG07/misinformation-heatmap-sub001/internal/adapter/kafka"
	"github.com/NayandG07/misinformation-heatmap-sub001/internal/config"
	"github.com/NayandG07/misinformation-heatmap-sub001/internal/domain"
	"github.com/NayandG07/misinformation-heatmap-sub001/internal/nlp"
	"github.com/NayandG07/misinformation-heatmap-sub001/internal/observability"
	"github.com/NayandG07/misinformation-heatmap-sub001/internal/pipeline"
	"github.com/NayandG07/misinformation-heatmap-sub001/internal/satellite"
	"github.com/NayandG07/misinformation-heatmap-sub001/internal/storage"
)

const testSinkTopic = "test-processed-events"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka boots a single-node Kafka container and returns its broker
// address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()
	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("heatmap-test-cluster"))
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// TestPipelinePublishesToSink runs a raw event through the real pipeline
// with the Kafka writer attached and verifies the processed event lands on
// the sink topic with the expected key, headers, and payload.
func TestPipelinePublishesToSink(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSinkTopic)

	cfg := &config.Config{
		KafkaBrokers:   []string{broker},
		KafkaSinkTopic: testSinkTopic,
		KafkaEnabled:   true,
	}
	writer := kafkaadapter.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	logger := discardLogger()
	processor := pipeline.NewProcessor(
		storage.NewMemoryStore(),
		nlp.NewAnalyzer(logger),
		nlp.NewClassifier(),
		satellite.NewSimulator(domain.DefaultAnomalyThreshold, logger),
		logger,
		observability.NewMetricsForTesting(),
		pipeline.ProcessorOptions{Publisher: writer},
	)

	processed, err := processor.Process(ctx, domain.RawEvent{
		SourceName:  "integration-feed",
		Source:      domain.SourceNews,
		Title:       "Flood warning issued for Kerala",
		Text:        "Officials issued a flood warning for low lying parts of Kerala after heavy overnight rain.",
		URL:         "https://example.com/kerala-flood",
		FetchedAt:   time.Now().UTC(),
		Reliability: 0.8,
	})
	require.NoError(t, err)

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testSinkTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
	defer readCancel()
	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from sink topic")

	assert.Equal(t, processed.ID, string(msg.Key))

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "Kerala", headers["region"])
	assert.Equal(t, "disaster", headers["category"])
	_, err = time.Parse(time.RFC3339, headers["processed_at"])
	assert.NoError(t, err, "processed_at should be valid RFC3339")

	var got domain.ProcessedEvent
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, processed.ID, got.ID)
	assert.Equal(t, "Kerala", got.Region)
	assert.Equal(t, processed.Virality, got.Virality)
	require.NotEmpty(t, got.Claims)
	assert.Equal(t, domain.CategoryDisaster, got.Claims[0].Category)
}
