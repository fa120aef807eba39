// Package scoring combines source reliability, linguistic signals, and
// engagement metadata into bounded virality and reality scores.
package scoring

import (
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/NayandG07/misinformation-heatmap-sub001/internal/domain"
)

// Sub-score weights for the virality sum. They total 1 so the clamped
// result stays a probability.
const (
	weightSource      = 0.25
	weightSensational = 0.25
	weightSentiment   = 0.20
	weightEngagement  = 0.15
	weightRecency     = 0.15
)

// recencyHorizon is the age at which the recency sub-score decays to zero.
const recencyHorizon = 72 // hours

// socialDamping reduces the credibility weight of social sources relative
// to established news outlets with the same declared reliability.
const socialDamping = 0.6

// sensationalWords are cues of attention-grabbing language. Counted once
// per word.
var sensationalWords = []string{
	"breaking", "shocking", "urgent", "exclusive", "exposed", "viral",
	"unbelievable", "secret", "banned", "alert", "warning", "must",
}

// Scorer computes virality and reality scores for raw events.
type Scorer struct{}

// NewScorer creates a Scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

// Virality estimates how likely the content is to spread, in [0,1]. It is a
// fixed weighted sum of source credibility, sensational language, sentiment
// extremity, engagement volume, and recency.
func (s *Scorer) Virality(raw domain.RawEvent, signals domain.TextSignals, _ []domain.Claim) float64 {
	text := raw.Title
	if text == "" {
		text = raw.Text
	} else if raw.Text != "" {
		text = raw.Title + " " + raw.Text
	}

	score := weightSource*sourceWeight(raw) +
		weightSensational*sensationalScore(text) +
		weightSentiment*math.Abs(signals.Sentiment) +
		weightEngagement*engagementScore(raw.Engagement) +
		weightRecency*recencyScore(raw.FetchedAt)

	return clamp01(score)
}

// Reality estimates factual plausibility in [0,1]. The fallback chain is
// fixed: a plausibility result with non-zero reality wins; otherwise the
// highest-confidence claim inverts into max(0.1, 1-confidence); with no
// claims either, neutral 0.5. This chain governs cold-start behavior when
// satellite validation is skipped or fails.
func (s *Scorer) Reality(plausibility *domain.PlausibilityResult, claims []domain.Claim) float64 {
	if plausibility != nil && plausibility.Reality > 0 {
		return plausibility.Reality
	}

	var best *domain.Claim
	for i := range claims {
		if best == nil || claims[i].Confidence > best.Confidence {
			best = &claims[i]
		}
	}
	if best != nil {
		return math.Max(0.1, 1-best.Confidence)
	}

	return 0.5
}

// sourceWeight is the declared reliability, damped for social sources.
func sourceWeight(raw domain.RawEvent) float64 {
	w := clamp01(raw.Reliability)
	if raw.Source.IsSocial() {
		w *= socialDamping
	}
	return w
}

// sensationalScore counts attention cues: keyword hits, all-caps words, and
// exclamation marks.
func sensationalScore(text string) float64 {
	lower := strings.ToLower(text)

	score := 0.0
	for _, w := range sensationalWords {
		if strings.Contains(lower, w) {
			score += 0.3
		}
	}
	for _, word := range strings.Fields(text) {
		if len(word) >= 4 && word == strings.ToUpper(word) && hasLetter(word) {
			score += 0.2
			break // one caps word is enough of a signal
		}
	}
	score += 0.15 * float64(strings.Count(text, "!"))

	return clamp01(score)
}

// engagementScore normalizes the total interaction count on a log scale.
// Absent metrics score a neutral 0.5 rather than zero.
func engagementScore(e *domain.Engagement) float64 {
	if e == nil {
		return 0.5
	}
	total := e.Total()
	if total <= 0 {
		return 0
	}
	// log10(1e6) = 6 saturates the scale at a million interactions.
	return clamp01(math.Log10(1+float64(total)) / 6)
}

// recencyScore decays linearly from 1 (just fetched) to 0 at the horizon.
func recencyScore(fetchedAt time.Time) float64 {
	if fetchedAt.IsZero() {
		return 1
	}
	age := domain.Clock().Since(fetchedAt).Hours()
	if age <= 0 {
		return 1
	}
	return clamp01(1 - age/recencyHorizon)
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
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
