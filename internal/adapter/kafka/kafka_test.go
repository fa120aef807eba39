package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NayandG07/misinformation-heatmap-sub001/internal/domain"
)

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	claim, err := domain.NewClaim("news-abc-c0", "vaccine causes illness across the district", domain.CategoryHealth, 0.8, nil)
	require.NoError(t, err)
	event := domain.ProcessedEvent{
		ID:        "news-abc",
		Source:    domain.SourceNews,
		Text:      "vaccine causes illness across the district",
		Region:    "Kerala",
		Claims:    []domain.Claim{claim},
		CreatedAt: now,
	}

	msg, err := serializeToMessage(event)
	require.NoError(t, err)

	assert.Equal(t, []byte("news-abc"), msg.Key)
	assert.Contains(t, string(msg.Value), `"region":"Kerala"`)
	assert.Len(t, msg.Headers, 3)
	assert.Equal(t, "region", msg.Headers[0].Key)
	assert.Equal(t, []byte("Kerala"), msg.Headers[0].Value)
	assert.Equal(t, "category", msg.Headers[1].Key)
	assert.Equal(t, []byte("health"), msg.Headers[1].Value)
	assert.Equal(t, "processed_at", msg.Headers[2].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[2].Value)
}

func TestSerializeToMessageNoClaims(t *testing.T) {
	event := domain.ProcessedEvent{
		ID:     "news-empty",
		Source: domain.SourceNews,
		Text:   "short note",
		Region: domain.RegionUnresolved,
	}

	msg, err := serializeToMessage(event)
	require.NoError(t, err)
	assert.Equal(t, []byte("other"), msg.Headers[1].Value, "claimless events default the category header")
}
