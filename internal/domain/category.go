package domain

import "strings"

// categoryKeywords pairs a category with its keyword set. The table is
// iterated in declaration order so ties break deterministically toward the
// earlier entry.
type categoryKeywords struct {
	category ClaimCategory
	keywords []string
}

var categoryTable = []categoryKeywords{
	{CategoryHealth, []string{
		"vaccine", "vaccination", "virus", "disease", "hospital", "doctor",
		"medicine", "cancer", "autism", "outbreak", "epidemic", "cure",
		"infection", "covid", "health",
	}},
	{CategoryPolitics, []string{
		"election", "minister", "government", "parliament", "vote", "party",
		"policy", "leader", "campaign", "bill", "opposition",
	}},
	{CategoryDisaster, []string{
		"flood", "flooding", "earthquake", "cyclone", "landslide", "drought",
		"tsunami", "fire", "collapse", "storm", "rainfall", "evacuation",
	}},
	{CategoryEnvironment, []string{
		"pollution", "climate", "forest", "river", "wildlife",
		"deforestation", "emission", "smog", "environment",
	}},
	{CategoryTechnology, []string{
		"internet", "mobile", "software", "cyber", "hacking", "smartphone",
		"technology", "5g", "startup",
	}},
	{CategorySocial, []string{
		"community", "protest", "caste", "rumor", "rumour", "whatsapp",
		"school", "women", "student",
	}},
	{CategoryEconomic, []string{
		"economy", "market", "bank", "inflation", "price", "jobs", "rupee",
		"tax", "gdp", "salary",
	}},
	{CategoryReligious, []string{
		"temple", "mosque", "church", "religious", "pilgrimage", "worship",
		"communal", "festival",
	}},
}

// CategorizeText scores the text against the ordered keyword taxonomy and
// returns the category with the highest hit count plus the count itself.
// Zero hits maps to CategoryOther. Single-word keywords match on whole
// words; multi-word keywords match by containment.
func CategorizeText(text string) (ClaimCategory, int) {
	norm := normalizeWords(text)
	words := make(map[string]bool)
	for _, w := range strings.Fields(norm) {
		words[w] = true
	}

	best := CategoryOther
	bestHits := 0
	for _, entry := range categoryTable {
		hits := 0
		for _, kw := range entry.keywords {
			if strings.ContainsRune(kw, ' ') {
				if strings.Contains(norm, kw) {
					hits++
				}
			} else if words[kw] {
				hits++
			}
		}
		if hits > bestHits {
			best = entry.category
			bestHits = hits
		}
	}
	return best, bestHits
}

// normalizeWords lowercases text and replaces punctuation with spaces so
// word-boundary matching works on headlines like "BREAKING: floods!".
func normalizeWords(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == ' ' {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return b.String()
}
