package ingest

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"sync/atomic"

	"github.com/NayandG07/misinformation-heatmap-sub001/internal/config"
	"github.com/NayandG07/misinformation-heatmap-sub001/internal/domain"
)

// mockTemplates mixes credible reporting with fabricated claims across the
// taxonomy so a seeded database exercises every scoring path.
var mockTemplates = []struct {
	title  string
	text   string
	source domain.SourceType
}{
	{
		"Heavy rain warning for %s",
		"The meteorological department issued an official statement warning of heavy rainfall and possible flooding in %s over the next 48 hours.",
		domain.SourceNews,
	},
	{
		"SHOCKING miracle cure found in %s",
		"Doctors hate this! A miracle cure for all diseases discovered in %s. Forwarded as received, share before they delete it!",
		domain.SourceTwitter,
	},
	{
		"New metro line opens in %s",
		"According to the transport ministry, the new metro corridor in %s opened to the public today after final safety inspections.",
		domain.SourceNews,
	},
	{
		"Secret vaccine side effects hidden from %s residents",
		"They don't want you to know the truth about vaccine side effects. 100% proof leaked from a hospital in %s.",
		domain.SourceFacebook,
	},
	{
		"Election results announced in %s",
		"A press release confirmed by the election commission announced the final vote tallies for %s this evening.",
		domain.SourceNews,
	},
	{
		"Earthquake flattens half of %s, media silent",
		"Viral video claims a massive earthquake destroyed large parts of %s. No mainstream outlet is covering this hoax... or is it?",
		domain.SourceTwitter,
	},
}

var mockPlaces = []string{
	"Mumbai", "Delhi", "Chennai", "Kolkata", "Bengaluru",
	"Hyderabad", "Jaipur", "Lucknow", "Patna", "Guwahati",
	"Bhopal", "Ahmedabad",
}

// MockSource synthesizes events without any network dependency. Output is
// deterministic per (source name, cycle number), so repeated runs produce
// the same ids and dedup cleanly in storage.
type MockSource struct {
	cfg   config.SourceConfig
	cycle atomic.Uint64
}

func NewMockSource(cfg config.SourceConfig) *MockSource {
	return &MockSource{cfg: cfg}
}

func (s *MockSource) Name() string            { return s.cfg.Name }
func (s *MockSource) Type() domain.SourceType { return domain.SourceManual }
func (s *MockSource) Reliability() float64    { return s.cfg.Reliability }

func (s *MockSource) Fetch(ctx context.Context) ([]domain.RawEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cycle := s.cycle.Add(1)

	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%d", s.cfg.Name, cycle)
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	now := domain.Clock().Now().UTC()
	events := make([]domain.RawEvent, 0, s.cfg.MaxItems)
	for i := 0; i < s.cfg.MaxItems; i++ {
		tmpl := mockTemplates[rng.Intn(len(mockTemplates))]
		place := mockPlaces[rng.Intn(len(mockPlaces))]
		events = append(events, domain.RawEvent{
			SourceName:  s.cfg.Name,
			Source:      tmpl.source,
			Title:       fmt.Sprintf(tmpl.title, place),
			Text:        fmt.Sprintf(tmpl.text, place),
			URL:         fmt.Sprintf("https://mock.local/%s/%d/%d", s.cfg.Name, cycle, i),
			FetchedAt:   now,
			Reliability: s.cfg.Reliability,
			Engagement: &domain.Engagement{
				Likes:  rng.Intn(5000),
				Shares: rng.Intn(2000),
			},
		})
	}
	return events, nil
}
