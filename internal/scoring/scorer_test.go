package scoring

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"

	"github.com/NayandG07/misinformation-heatmap-sub001/internal/domain"
)

func freezeClock(t *testing.T) clockwork.Clock {
	t.Helper()
	fakeClock := clockwork.NewFakeClockAt(time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC))
	domain.SetClock(fakeClock)
	t.Cleanup(func() { domain.SetClock(nil) })
	return fakeClock
}

func TestVirality_SensationalHealthClaim(t *testing.T) {
	clock := freezeClock(t)
	s := NewScorer()

	raw := domain.RawEvent{
		SourceName:  "city-news",
		Source:      domain.SourceNews,
		Title:       "BREAKING: vaccine causes autism in Mumbai",
		FetchedAt:   clock.Now(),
		Reliability: 0.7,
	}

	v := s.Virality(raw, domain.TextSignals{Sentiment: -0.6}, nil)
	assert.Greater(t, v, 0.5, "sensational, emotional, fresh content scores high")
	assert.LessOrEqual(t, v, 1.0)
}

func TestVirality_Bounded(t *testing.T) {
	clock := freezeClock(t)
	s := NewScorer()

	// Everything maxed out.
	raw := domain.RawEvent{
		Source:      domain.SourceNews,
		Title:       "BREAKING!!! SHOCKING URGENT ALERT EXPOSED!!!",
		FetchedAt:   clock.Now(),
		Reliability: 1,
		Engagement:  &domain.Engagement{Likes: 5_000_000, Shares: 5_000_000},
	}
	v := s.Virality(raw, domain.TextSignals{Sentiment: -1}, nil)
	assert.LessOrEqual(t, v, 1.0)

	// Everything minimal and stale.
	raw = domain.RawEvent{
		Source:      domain.SourceTwitter,
		Text:        "nothing here",
		FetchedAt:   clock.Now().Add(-30 * 24 * time.Hour),
		Reliability: 0,
		Engagement:  &domain.Engagement{},
	}
	v = s.Virality(raw, domain.TextSignals{}, nil)
	assert.GreaterOrEqual(t, v, 0.0)
	assert.Less(t, v, 0.2)
}

func TestVirality_SocialSourceDamped(t *testing.T) {
	clock := freezeClock(t)
	s := NewScorer()

	news := domain.RawEvent{Source: domain.SourceNews, Text: "plain report", FetchedAt: clock.Now(), Reliability: 0.8}
	social := domain.RawEvent{Source: domain.SourceTwitter, Text: "plain report", FetchedAt: clock.Now(), Reliability: 0.8}

	assert.Greater(t, s.Virality(news, domain.TextSignals{}, nil), s.Virality(social, domain.TextSignals{}, nil))
}

func TestVirality_RecencyDecay(t *testing.T) {
	clock := freezeClock(t)
	s := NewScorer()

	fresh := domain.RawEvent{Source: domain.SourceNews, Text: "report", FetchedAt: clock.Now(), Reliability: 0.5}
	stale := fresh
	stale.FetchedAt = clock.Now().Add(-48 * time.Hour)

	assert.Greater(t, s.Virality(fresh, domain.TextSignals{}, nil), s.Virality(stale, domain.TextSignals{}, nil))
}

func TestVirality_MissingEngagementIsNeutral(t *testing.T) {
	clock := freezeClock(t)
	s := NewScorer()

	absent := domain.RawEvent{Source: domain.SourceNews, Text: "report", FetchedAt: clock.Now(), Reliability: 0.5}
	zero := absent
	zero.Engagement = &domain.Engagement{}

	assert.Greater(t, s.Virality(absent, domain.TextSignals{}, nil), s.Virality(zero, domain.TextSignals{}, nil),
		"absent metrics score the neutral 0.5, present-but-zero scores 0")
}

func TestReality_FallbackChain(t *testing.T) {
	s := NewScorer()

	// Plausibility with non-zero reality wins.
	p := domain.NeutralPlausibility()
	p.Reality = 0.72
	assert.Equal(t, 0.72, s.Reality(&p, []domain.Claim{{Text: "c", Confidence: 0.9}}))

	// Zero-reality plausibility falls through to the best claim.
	p.Reality = 0
	claims := []domain.Claim{
		{Text: "weak", Confidence: 0.3},
		{Text: "strong", Confidence: 0.8},
	}
	assert.InDelta(t, 0.2, s.Reality(&p, claims), 1e-9, "1 - highest claim confidence")

	// Floor at 0.1 for near-certain claims.
	claims = []domain.Claim{{Text: "certain", Confidence: 0.99}}
	assert.Equal(t, 0.1, s.Reality(nil, claims))

	// No plausibility, no claims: neutral.
	assert.Equal(t, 0.5, s.Reality(nil, nil))
}
