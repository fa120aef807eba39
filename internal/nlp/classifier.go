package nlp

import (
	"context"
	"math"
	"strings"

	"github.com/NayandG07/misinformation-heatmap-sub001/internal/domain"
)

// fakeMarkers are phrasings characteristic of fabricated forwards.
var fakeMarkers = []string{
	"forwarded as received", "share before deleted", "doctors hate",
	"miracle cure", "hoax", "conspiracy", "secret cure", "they don't want",
	"100% guaranteed", "wake up", "mainstream media hiding",
}

// credibleMarkers are phrasings characteristic of sourced reporting.
var credibleMarkers = []string{
	"according to", "official statement", "press release", "study published",
	"spokesperson said", "reuters", "press trust of india", "confirmed by",
}

// Classifier implements domain.Classifier with marker-phrase scoring. It
// mirrors the trained model's contract: a fake/real/uncertain verdict with
// bounded confidence and score.
type Classifier struct{}

// NewClassifier creates the default heuristic classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify scores the text: base 0.5 pushed up by fake markers and down by
// credible markers. Score above 0.65 reads fake, below 0.35 reads real,
// anything between is uncertain.
func (c *Classifier) Classify(_ context.Context, title, content string, _ domain.SourceType, _ string) (domain.Classification, error) {
	text := strings.ToLower(title + " " + content)

	fakeHits, credibleHits := 0, 0
	for _, m := range fakeMarkers {
		if strings.Contains(text, m) {
			fakeHits++
		}
	}
	for _, m := range credibleMarkers {
		if strings.Contains(text, m) {
			credibleHits++
		}
	}

	score := clamp01(0.5 + 0.15*float64(fakeHits) - 0.10*float64(credibleHits))

	verdict := domain.VerdictUncertain
	switch {
	case score >= 0.65:
		verdict = domain.VerdictFake
	case score <= 0.35:
		verdict = domain.VerdictReal
	}

	confidence := clamp01(math.Abs(score-0.5) * 2)
	if verdict == domain.VerdictUncertain {
		confidence = 0.3
	}

	return domain.Classification{
		Verdict:    verdict,
		Confidence: confidence,
		Score:      score,
		Components: map[string]float64{
			"fake_markers":     float64(fakeHits),
			"credible_markers": float64(credibleHits),
		},
	}, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
