package domain_test

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NayandG07/misinformation-heatmap-sub001/internal/domain"
)

func TestNewClaim_Bounds(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		confidence float64
		wantErr    bool
	}{
		{"valid", "floods reported in Chennai", 0.8, false},
		{"zero confidence", "claim", 0, false},
		{"full confidence", "claim", 1, false},
		{"negative confidence", "claim", -0.1, true},
		{"confidence above one", "claim", 1.01, true},
		{"empty text", "", 0.5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewClaim("c1", tt.text, domain.CategoryDisaster, tt.confidence, nil)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestNewPlausibilityResult_Bounds(t *testing.T) {
	baseline := time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)

	r, err := domain.NewPlausibilityResult(0.2, 0.7, 0.8, domain.DefaultAnomalyThreshold, baseline)
	require.NoError(t, err)
	assert.True(t, r.Anomaly, "similarity below threshold should flag anomaly")
	assert.Equal(t, baseline, r.BaselineDate)

	r, err = domain.NewPlausibilityResult(0.9, 0.7, 0.8, domain.DefaultAnomalyThreshold, baseline)
	require.NoError(t, err)
	assert.False(t, r.Anomaly)

	for _, bad := range [][3]float64{
		{-0.01, 0.5, 0.5},
		{0.5, 1.5, 0.5},
		{0.5, 0.5, -1},
	} {
		_, err := domain.NewPlausibilityResult(bad[0], bad[1], bad[2], domain.DefaultAnomalyThreshold, baseline)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
}

func TestNewProcessedEvent_CoordinateBounds(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		wantErr  bool
	}{
		{"zero sentinel", 0, 0, false},
		{"mumbai", 19.076, 72.8777, false},
		{"box corner", 6, 68, false},
		{"north of box", 45, 77, true},
		{"west of box", 20, 50, true},
		{"nonzero lat only", 20, 0, true},
		{"southern hemisphere", -20, 77, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewProcessedEvent(domain.EventParams{
				Source:   domain.SourceNews,
				Text:     "some report",
				Lat:      tt.lat,
				Lon:      tt.lon,
				Virality: 0.5,
			})
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestNewProcessedEvent_Validation(t *testing.T) {
	_, err := domain.NewProcessedEvent(domain.EventParams{Source: domain.SourceNews, Text: ""})
	assert.ErrorIs(t, err, domain.ErrValidation, "empty text is a hard precondition")

	_, err = domain.NewProcessedEvent(domain.EventParams{Source: domain.SourceNews, Text: "x", Virality: 1.2})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = domain.NewProcessedEvent(domain.EventParams{
		Source: domain.SourceNews, Text: "x",
		Claims: []domain.Claim{{ID: "bad", Text: "claim", Confidence: 2}},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestNewProcessedEvent_Defaults(t *testing.T) {
	fakeClock := clockwork.NewFakeClockAt(time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC))
	domain.SetClock(fakeClock)
	t.Cleanup(func() { domain.SetClock(nil) })

	ev, err := domain.NewProcessedEvent(domain.EventParams{
		Source:   domain.SourceRSS,
		Title:    "headline",
		Text:     "body text",
		Language: "zz",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.NeutralPlausibility(), ev.Plausibility, "nil plausibility substitutes the neutral default")
	assert.Equal(t, domain.RegionUnresolved, ev.Region)
	assert.Equal(t, "en", ev.Language, "unknown language code normalizes to en")
	assert.Equal(t, fakeClock.Now(), ev.Timestamp)
	assert.Equal(t, fakeClock.Now(), ev.CreatedAt)
	assert.NotEmpty(t, ev.ID)
}

func TestEventID_Deterministic(t *testing.T) {
	a := domain.EventID(domain.SourceRSS, "title", "text", "http://example.com")
	b := domain.EventID(domain.SourceRSS, "title", "text", "http://example.com")
	c := domain.EventID(domain.SourceRSS, "title", "other text", "http://example.com")

	assert.Equal(t, a, b, "identical inputs must produce identical ids")
	assert.NotEqual(t, a, c)
	assert.Contains(t, a, "rss-")
}

func TestNormalizeSourceType(t *testing.T) {
	assert.Equal(t, domain.SourceNews, domain.NormalizeSourceType("news"))
	assert.Equal(t, domain.SourceRSS, domain.NormalizeSourceType("somethingelse"))
	assert.True(t, domain.SourceTwitter.IsSocial())
	assert.False(t, domain.SourceNews.IsSocial())
}

func TestEngagementTotal(t *testing.T) {
	e := domain.Engagement{Likes: 10, Shares: 5, Comments: 2}
	assert.Equal(t, 17, e.Total())
}
