package domain

import "strings"

// Region is one canonical entry in the fixed gazetteer of Indian states and
// union territories. Centroid coordinates feed satellite validation;
// AlwaysShown regions appear in every heatmap even with zero events so the
// visualization stays stable.
type Region struct {
	Name        string
	Lat         float64
	Lon         float64
	AlwaysShown bool
}

// Gazetteer is the closed set of canonical regions: 28 states followed by
// 8 union territories. Order is fixed and doubles as the iteration order for
// deterministic output.
var Gazetteer = []Region{
	{Name: "Andhra Pradesh", Lat: 15.91, Lon: 79.74, AlwaysShown: true},
	{Name: "Arunachal Pradesh", Lat: 28.21, Lon: 94.72},
	{Name: "Assam", Lat: 26.20, Lon: 92.94, AlwaysShown: true},
	{Name: "Bihar", Lat: 25.10, Lon: 85.31, AlwaysShown: true},
	{Name: "Chhattisgarh", Lat: 21.28, Lon: 81.87},
	{Name: "Goa", Lat: 15.30, Lon: 74.12},
	{Name: "Gujarat", Lat: 22.26, Lon: 71.19, AlwaysShown: true},
	{Name: "Haryana", Lat: 29.06, Lon: 76.09},
	{Name: "Himachal Pradesh", Lat: 31.90, Lon: 77.17},
	{Name: "Jharkhand", Lat: 23.61, Lon: 85.28},
	{Name: "Karnataka", Lat: 15.32, Lon: 75.71, AlwaysShown: true},
	{Name: "Kerala", Lat: 10.85, Lon: 76.27, AlwaysShown: true},
	{Name: "Madhya Pradesh", Lat: 23.47, Lon: 78.50, AlwaysShown: true},
	{Name: "Maharashtra", Lat: 19.60, Lon: 75.55, AlwaysShown: true},
	{Name: "Manipur", Lat: 24.66, Lon: 93.91},
	{Name: "Meghalaya", Lat: 25.47, Lon: 91.37},
	{Name: "Mizoram", Lat: 23.16, Lon: 92.94},
	{Name: "Nagaland", Lat: 26.16, Lon: 94.56},
	{Name: "Odisha", Lat: 20.51, Lon: 84.42},
	{Name: "Punjab", Lat: 31.02, Lon: 75.40, AlwaysShown: true},
	{Name: "Rajasthan", Lat: 26.58, Lon: 73.85, AlwaysShown: true},
	{Name: "Sikkim", Lat: 27.53, Lon: 88.51},
	{Name: "Tamil Nadu", Lat: 11.13, Lon: 78.66, AlwaysShown: true},
	{Name: "Telangana", Lat: 17.87, Lon: 79.59, AlwaysShown: true},
	{Name: "Tripura", Lat: 23.75, Lon: 91.75},
	{Name: "Uttar Pradesh", Lat: 26.85, Lon: 80.91, AlwaysShown: true},
	{Name: "Uttarakhand", Lat: 30.07, Lon: 79.19},
	{Name: "West Bengal", Lat: 22.99, Lon: 87.85, AlwaysShown: true},
	{Name: "Andaman and Nicobar Islands", Lat: 11.74, Lon: 92.66},
	{Name: "Chandigarh", Lat: 30.73, Lon: 76.78},
	{Name: "Dadra and Nagar Haveli and Daman and Diu", Lat: 20.18, Lon: 73.02},
	{Name: "Delhi", Lat: 28.61, Lon: 77.21, AlwaysShown: true},
	{Name: "Jammu and Kashmir", Lat: 33.45, Lon: 75.00},
	{Name: "Ladakh", Lat: 34.21, Lon: 77.58},
	{Name: "Lakshadweep", Lat: 10.57, Lon: 72.64},
	{Name: "Puducherry", Lat: 11.93, Lon: 79.78},
}

// cityStates is the curated city→state fallback table, checked after
// canonical-name matching fails.
var cityStates = map[string]string{
	"mumbai": "Maharashtra", "pune": "Maharashtra", "nagpur": "Maharashtra", "nashik": "Maharashtra",
	"delhi": "Delhi", "new delhi": "Delhi",
	"bengaluru": "Karnataka", "bangalore": "Karnataka", "mysuru": "Karnataka", "mangaluru": "Karnataka",
	"chennai": "Tamil Nadu", "coimbatore": "Tamil Nadu", "madurai": "Tamil Nadu",
	"kolkata": "West Bengal", "howrah": "West Bengal", "siliguri": "West Bengal", "darjeeling": "West Bengal",
	"hyderabad": "Telangana", "warangal": "Telangana",
	"ahmedabad": "Gujarat", "surat": "Gujarat", "vadodara": "Gujarat",
	"jaipur": "Rajasthan", "jodhpur": "Rajasthan", "udaipur": "Rajasthan",
	"lucknow": "Uttar Pradesh", "kanpur": "Uttar Pradesh", "varanasi": "Uttar Pradesh",
	"agra": "Uttar Pradesh", "noida": "Uttar Pradesh",
	"patna": "Bihar", "gaya": "Bihar",
	"bhopal": "Madhya Pradesh", "indore": "Madhya Pradesh",
	"kochi": "Kerala", "thiruvananthapuram": "Kerala", "kozhikode": "Kerala",
	"amritsar": "Punjab", "ludhiana": "Punjab",
	"guwahati": "Assam",
	"bhubaneswar": "Odisha", "cuttack": "Odisha",
	"ranchi": "Jharkhand", "jamshedpur": "Jharkhand",
	"raipur": "Chhattisgarh",
	"visakhapatnam": "Andhra Pradesh", "vijayawada": "Andhra Pradesh",
	"srinagar": "Jammu and Kashmir", "jammu": "Jammu and Kashmir",
	"dehradun": "Uttarakhand",
	"shimla": "Himachal Pradesh",
	"panaji": "Goa",
	"gurgaon": "Haryana", "gurugram": "Haryana", "faridabad": "Haryana",
	"leh": "Ladakh",
	"imphal": "Manipur",
	"shillong": "Meghalaya",
	"aizawl": "Mizoram",
	"kohima": "Nagaland",
	"gangtok": "Sikkim",
	"agartala": "Tripura",
	"itanagar": "Arunachal Pradesh",
	"port blair": "Andaman and Nicobar Islands",
	"kavaratti": "Lakshadweep",
	"puducherry": "Puducherry", "pondicherry": "Puducherry",
}

// genericNameWords are too common across region names to carry a match on
// their own during word-overlap matching.
var genericNameWords = map[string]bool{
	"pradesh": true, "and": true, "islands": true, "nagar": true,
	"haveli": true, "daman": true, "diu": true,
}

// regionIndex maps lowercase canonical names to gazetteer entries.
var regionIndex = func() map[string]Region {
	idx := make(map[string]Region, len(Gazetteer))
	for _, r := range Gazetteer {
		idx[strings.ToLower(r.Name)] = r
	}
	return idx
}()

// RegionByName looks up a gazetteer entry by its canonical name.
func RegionByName(name string) (Region, bool) {
	r, ok := regionIndex[strings.ToLower(name)]
	return r, ok
}

// ResolveRegion maps a free-text location hint to a canonical gazetteer
// region. Exact lowercase lookup first, then substring and word-overlap
// matching against canonical names, then the city table. Returns ok=false
// on a miss; callers must not fabricate a region from a failed resolution.
// Deterministic, no I/O.
func ResolveRegion(text string) (Region, bool) {
	hint := strings.ToLower(strings.TrimSpace(text))
	if hint == "" {
		return Region{}, false
	}

	if r, ok := regionIndex[hint]; ok {
		return r, true
	}

	// Substring match in either direction: "floods in kerala" contains the
	// canonical name; "Tamil N" is contained by it.
	for _, r := range Gazetteer {
		name := strings.ToLower(r.Name)
		if strings.Contains(hint, name) || (len(hint) >= 4 && strings.Contains(name, hint)) {
			return r, true
		}
	}

	// Word overlap against distinctive name words ("kashmir" → Jammu and Kashmir).
	hintWords := strings.Fields(hint)
	for _, r := range Gazetteer {
		for _, nameWord := range strings.Fields(strings.ToLower(r.Name)) {
			if genericNameWords[nameWord] {
				continue
			}
			for _, w := range hintWords {
				if w == nameWord {
					return r, true
				}
			}
		}
	}

	// City fallback: longest-key containment so "new delhi" wins over "delhi".
	var bestCity, bestState string
	for city, state := range cityStates {
		if strings.Contains(hint, city) && len(city) > len(bestCity) {
			bestCity, bestState = city, state
		}
	}
	if bestState != "" {
		return regionIndex[strings.ToLower(bestState)], true
	}

	return Region{}, false
}
