package pipeline

import (
	"fmt"
	"strings"

	"github.com/NayandG07/misinformation-heatmap-sub001/internal/domain"
)

const (
	maxClaimsPerEvent = 3
	minClaimLength    = 20
)

// extractClaims pulls checkable statements out of an event. A sentence
// qualifies when it is long enough and hits at least one taxonomy keyword;
// the classifier's confidence becomes the claim confidence, since a claim we
// extract is exactly what the classifier judged.
func extractClaims(eventID, title, text string, classification domain.Classification, entities []string) []domain.Claim {
	candidates := splitSentences(title + ". " + text)

	confidence := classification.Confidence
	if confidence <= 0 {
		confidence = 0.3
	}

	var claims []domain.Claim
	for _, sentence := range candidates {
		if len(claims) == maxClaimsPerEvent {
			break
		}
		if len(sentence) < minClaimLength {
			continue
		}
		category, hits := domain.CategorizeText(sentence)
		if hits == 0 {
			continue
		}
		claim, err := domain.NewClaim(
			fmt.Sprintf("%s-c%d", eventID, len(claims)),
			sentence,
			category,
			confidence,
			entities,
		)
		if err != nil {
			continue
		}
		claims = append(claims, claim)
	}
	return claims
}

// splitSentences is a rough splitter on terminal punctuation. It does not
// try to handle abbreviations; claims are heuristics, not citations.
func splitSentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?' || r == '।' // devanagari danda
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
