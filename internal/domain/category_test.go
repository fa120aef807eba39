package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NayandG07/misinformation-heatmap-sub001/internal/domain"
)

func TestCategorizeText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		want     domain.ClaimCategory
		minHits  int
		zeroHits bool
	}{
		{"health keywords", "BREAKING: vaccine causes autism in Mumbai", domain.CategoryHealth, 2, false},
		{"disaster keywords", "major flooding after cyclone hits coast", domain.CategoryDisaster, 2, false},
		{"politics", "election campaign rally by the opposition party", domain.CategoryPolitics, 3, false},
		{"economic", "rupee falls as inflation hits the market", domain.CategoryEconomic, 3, false},
		{"no hits", "lorem ipsum dolor sit amet", domain.CategoryOther, 0, true},
		{"word boundary", "terrain and brainstorm", domain.CategoryOther, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, hits := domain.CategorizeText(tt.text)
			assert.Equal(t, tt.want, cat)
			if tt.zeroHits {
				assert.Zero(t, hits)
			} else {
				assert.GreaterOrEqual(t, hits, tt.minHits)
			}
		})
	}
}

func TestCategorizeText_TieBreaksByDeclarationOrder(t *testing.T) {
	// One health keyword and one politics keyword: health is declared first.
	cat, hits := domain.CategorizeText("hospital near the parliament")
	assert.Equal(t, domain.CategoryHealth, cat)
	assert.Equal(t, 1, hits)
}
