// Package nlp provides default implementations of the text-analysis and
// classification oracles. They are heuristic stand-ins with the same
// contracts as the trained services, so the pipeline runs standalone and
// swaps in the real oracles without code changes.
package nlp

import (
	"context"
	"log/slog"
	"strings"
	"unicode"

	"github.com/jdkato/prose/v2"

	"github.com/NayandG07/misinformation-heatmap-sub001/internal/domain"
)

// scriptLanguages maps a Unicode script to the dominant ISO 639-1 code of
// the supported set. Devanagari maps to Hindi; Marathi text will also land
// there, which is acceptable for display bucketing.
var scriptLanguages = []struct {
	name string
	code string
}{
	{"Devanagari", "hi"},
	{"Bengali", "bn"},
	{"Tamil", "ta"},
	{"Telugu", "te"},
	{"Gujarati", "gu"},
	{"Kannada", "kn"},
	{"Malayalam", "ml"},
	{"Gurmukhi", "pa"},
	{"Oriya", "or"},
	{"Arabic", "ur"},
}

var positiveWords = map[string]bool{
	"good": true, "great": true, "excellent": true, "success": true,
	"improved": true, "safe": true, "celebrated": true, "peaceful": true,
	"welcomed": true, "progress": true, "happy": true, "relief": true,
}

var negativeWords = map[string]bool{
	"bad": true, "dangerous": true, "deadly": true, "killed": true,
	"death": true, "crisis": true, "panic": true, "outbreak": true,
	"disaster": true, "threat": true, "causes": true, "toxic": true,
	"scam": true, "fraud": true, "autism": true, "collapse": true,
}

var stopWords = map[string]bool{
	"the": true, "and": true, "that": true, "this": true, "with": true,
	"from": true, "have": true, "been": true, "were": true, "their": true,
	"about": true, "after": true, "before": true, "into": true, "over": true,
}

// Analyzer implements domain.Analyzer with script-based language detection,
// prose named-entity extraction for English text, and lexicon sentiment.
type Analyzer struct {
	logger *slog.Logger
}

// NewAnalyzer creates the default analyzer.
func NewAnalyzer(logger *slog.Logger) *Analyzer {
	return &Analyzer{logger: logger}
}

// Analyze extracts language, entities, sentiment, and keywords. It degrades
// rather than fails: entity extraction errors leave the entity lists empty.
func (a *Analyzer) Analyze(_ context.Context, text string) (domain.TextSignals, error) {
	signals := domain.TextSignals{
		Language:  detectLanguage(text),
		Sentiment: lexiconSentiment(text),
		Keywords:  extractKeywords(text),
	}

	// The prose model is English-trained; other scripts only get the
	// gazetteer scan below.
	if signals.Language == "en" {
		doc, err := prose.NewDocument(text)
		if err != nil {
			a.logger.Warn("entity extraction failed", "error", err)
		} else {
			for _, ent := range doc.Entities() {
				signals.Entities = append(signals.Entities, ent.Text)
				if ent.Label == "GPE" {
					signals.GeographicEntities = append(signals.GeographicEntities, ent.Text)
				}
			}
		}
	}

	// Gazetteer scan catches Indian place names the model misses.
	if region, ok := domain.ResolveRegion(text); ok && !contains(signals.GeographicEntities, region.Name) {
		signals.GeographicEntities = append(signals.GeographicEntities, region.Name)
	}

	return signals, nil
}

// detectLanguage counts letters per script and returns the dominant one's
// language, defaulting to English.
func detectLanguage(text string) string {
	best, bestCount := "en", 0
	for _, sl := range scriptLanguages {
		rt := unicode.Scripts[sl.name]
		count := 0
		for _, r := range text {
			if unicode.Is(rt, r) {
				count++
			}
		}
		if count > bestCount {
			best, bestCount = sl.code, count
		}
	}
	// Mostly-Latin text stays English even with a few foreign characters.
	latin := 0
	for _, r := range text {
		if unicode.Is(unicode.Latin, r) {
			latin++
		}
	}
	if latin >= bestCount {
		return "en"
	}
	return best
}

// lexiconSentiment scores text in [-1, 1] from positive/negative word counts.
func lexiconSentiment(text string) float64 {
	pos, neg := 0, 0
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.Trim(w, ".,:;!?\"'()")
		if positiveWords[w] {
			pos++
		}
		if negativeWords[w] {
			neg++
		}
	}
	if pos+neg == 0 {
		return 0
	}
	return float64(pos-neg) / float64(pos+neg)
}

// extractKeywords returns up to ten distinctive lowercase tokens.
func extractKeywords(text string) []string {
	seen := make(map[string]bool)
	var keywords []string
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.Trim(w, ".,:;!?\"'()")
		if len(w) < 5 || stopWords[w] || seen[w] {
			continue
		}
		seen[w] = true
		keywords = append(keywords, w)
		if len(keywords) == 10 {
			break
		}
	}
	return keywords
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
