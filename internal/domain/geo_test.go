package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NayandG07/misinformation-heatmap-sub001/internal/domain"
)

func TestResolveRegion(t *testing.T) {
	tests := []struct {
		name string
		hint string
		want string
		ok   bool
	}{
		{"exact lowercase", "maharashtra", "Maharashtra", true},
		{"exact mixed case", "Tamil Nadu", "Tamil Nadu", true},
		{"substring in sentence", "heavy flooding across kerala today", "Kerala", true},
		{"word overlap", "reports from kashmir valley", "Jammu and Kashmir", true},
		{"city fallback", "Mumbai", "Maharashtra", true},
		{"city in sentence", "protest near bengaluru tech park", "Karnataka", true},
		{"two-word city beats one-word", "incident in new delhi area", "Delhi", true},
		{"no match", "somewhere over the rainbow", "", false},
		{"empty", "", "", false},
		{"whitespace", "   ", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			region, ok := domain.ResolveRegion(tt.hint)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, region.Name)
			}
		})
	}
}

func TestGazetteer_Shape(t *testing.T) {
	assert.Len(t, domain.Gazetteer, 36, "28 states + 8 union territories")

	seen := make(map[string]bool)
	for _, r := range domain.Gazetteer {
		assert.False(t, seen[r.Name], "duplicate region %q", r.Name)
		seen[r.Name] = true
		assert.True(t, domain.ValidCoordinates(r.Lat, r.Lon),
			"centroid of %q must lie inside the India box", r.Name)
		assert.NotZero(t, r.Lat)
	}
}

func TestRegionByName(t *testing.T) {
	r, ok := domain.RegionByName("delhi")
	require.True(t, ok)
	assert.Equal(t, "Delhi", r.Name)
	assert.True(t, r.AlwaysShown)

	_, ok = domain.RegionByName("atlantis")
	assert.False(t, ok)
}
