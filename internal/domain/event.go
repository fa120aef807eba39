package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

// ErrValidation marks malformed or out-of-range input. It is always fatal to
// the single construction that raised it and is never silently coerced.
var ErrValidation = errors.New("validation failed")

// SourceType identifies the origin class of an event.
type SourceType string

const (
	SourceNews     SourceType = "news"
	SourceTwitter  SourceType = "social_twitter"
	SourceFacebook SourceType = "social_facebook"
	SourceManual   SourceType = "manual"
	SourceRSS      SourceType = "rss"
)

// IsSocial reports whether the source is a social network, which carries a
// lower credibility weight during scoring.
func (s SourceType) IsSocial() bool {
	return s == SourceTwitter || s == SourceFacebook
}

// NormalizeSourceType maps free-form source labels onto the fixed enum,
// defaulting to rss for unknown values.
func NormalizeSourceType(v string) SourceType {
	switch SourceType(v) {
	case SourceNews, SourceTwitter, SourceFacebook, SourceManual, SourceRSS:
		return SourceType(v)
	default:
		return SourceRSS
	}
}

// India bounding box. (0,0) is the "no location" sentinel; any other pair
// outside these ranges is a construction error.
const (
	MinLat = 6.0
	MaxLat = 37.0
	MinLon = 68.0
	MaxLon = 97.0
)

// ValidCoordinates reports whether (lat, lon) is the zero sentinel or a
// point inside the India bounding box.
func ValidCoordinates(lat, lon float64) bool {
	if lat == 0 && lon == 0 {
		return true
	}
	return lat >= MinLat && lat <= MaxLat && lon >= MinLon && lon <= MaxLon
}

// languages is the fixed set of supported ISO 639-1 codes: English plus
// major Indian languages.
var languages = map[string]bool{
	"en": true, "hi": true, "bn": true, "ta": true, "te": true, "mr": true,
	"gu": true, "kn": true, "ml": true, "pa": true, "or": true, "ur": true,
}

// NormalizeLanguage returns the code if supported, otherwise "en".
func NormalizeLanguage(code string) string {
	if languages[code] {
		return code
	}
	return "en"
}

// Engagement holds optional interaction counts attached to a raw event.
type Engagement struct {
	Likes    int `json:"likes"`
	Shares   int `json:"shares"`
	Comments int `json:"comments"`
}

// Total returns the summed interaction count.
func (e Engagement) Total() int {
	return e.Likes + e.Shares + e.Comments
}

// RawEvent is an unprocessed item fetched from an ingestion source.
// Transient; never persisted directly.
type RawEvent struct {
	SourceName  string
	Source      SourceType
	Title       string
	Text        string
	URL         string
	FetchedAt   time.Time
	Reliability float64 // 0–1 static source weight
	Engagement  *Engagement
}

// ClaimCategory is the fixed topic taxonomy for extracted claims.
type ClaimCategory string

const (
	CategoryHealth      ClaimCategory = "health"
	CategoryPolitics    ClaimCategory = "politics"
	CategoryDisaster    ClaimCategory = "disaster"
	CategoryEnvironment ClaimCategory = "environment"
	CategoryTechnology  ClaimCategory = "technology"
	CategorySocial      ClaimCategory = "social"
	CategoryEconomic    ClaimCategory = "economic"
	CategoryReligious   ClaimCategory = "religious"
	CategoryOther       ClaimCategory = "other"
)

// Claim is an extracted assertion owned by the ProcessedEvent that produced
// it. Immutable after creation.
type Claim struct {
	ID         string        `json:"id"`
	Text       string        `json:"text"`
	Category   ClaimCategory `json:"category"`
	Confidence float64       `json:"confidence"`
	Entities   []string      `json:"entities,omitempty"`
}

// NewClaim validates and builds a Claim.
func NewClaim(id, text string, category ClaimCategory, confidence float64, entities []string) (Claim, error) {
	if text == "" {
		return Claim{}, fmt.Errorf("%w: claim text must not be empty", ErrValidation)
	}
	if !validScore(confidence) {
		return Claim{}, fmt.Errorf("%w: claim confidence %v outside [0,1]", ErrValidation, confidence)
	}
	return Claim{
		ID:         id,
		Text:       text,
		Category:   category,
		Confidence: confidence,
		Entities:   entities,
	}, nil
}

// PlausibilityResult is the outcome of satellite cross-validation of a claim
// against a location and date. Similarity, Reality, and Confidence are all
// bounded [0,1] at construction.
type PlausibilityResult struct {
	Similarity   float64           `json:"similarity"`
	Anomaly      bool              `json:"anomaly"`
	Reality      float64           `json:"reality"`
	Confidence   float64           `json:"confidence"`
	BaselineDate time.Time         `json:"baseline_date"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	Latency      time.Duration     `json:"latency_ns"`
	Err          string            `json:"error,omitempty"`
}

// DefaultAnomalyThreshold is the similarity level below which a scene is
// flagged anomalous relative to its baseline.
const DefaultAnomalyThreshold = 0.3

// NewPlausibilityResult validates bounds and derives the anomaly flag from
// the given similarity threshold.
func NewPlausibilityResult(similarity, reality, confidence, anomalyThreshold float64, baseline time.Time) (PlausibilityResult, error) {
	if !validScore(similarity) {
		return PlausibilityResult{}, fmt.Errorf("%w: similarity %v outside [0,1]", ErrValidation, similarity)
	}
	if !validScore(reality) {
		return PlausibilityResult{}, fmt.Errorf("%w: reality %v outside [0,1]", ErrValidation, reality)
	}
	if !validScore(confidence) {
		return PlausibilityResult{}, fmt.Errorf("%w: confidence %v outside [0,1]", ErrValidation, confidence)
	}
	return PlausibilityResult{
		Similarity:   similarity,
		Anomaly:      similarity < anomalyThreshold,
		Reality:      reality,
		Confidence:   confidence,
		BaselineDate: baseline,
	}, nil
}

// NeutralPlausibility is the non-fatal fallback substituted when satellite
// validation is skipped or fails: everything 0.5, no anomaly.
func NeutralPlausibility() PlausibilityResult {
	return PlausibilityResult{
		Similarity: 0.5,
		Reality:    0.5,
		Confidence: 0.5,
	}
}

// RegionUnresolved buckets events whose location hint matched nothing in the
// gazetteer. The aggregator keeps them separate instead of fabricating
// geography.
const RegionUnresolved = "unresolved"

// ProcessedEvent is the persisted unit. Constructed once by the pipeline
// immediately before persistence and never mutated afterwards; the storage
// layer owns the durable copy and the recent-events ring retains a copy for
// live access.
type ProcessedEvent struct {
	ID           string             `json:"id"`
	Source       SourceType         `json:"source"`
	Title        string             `json:"title,omitempty"`
	Text         string             `json:"text"`
	URL          string             `json:"url,omitempty"`
	Timestamp    time.Time          `json:"timestamp"`
	Language     string             `json:"language"`
	RegionHint   string             `json:"region_hint,omitempty"`
	Region       string             `json:"region"`
	Lat          float64            `json:"lat"`
	Lon          float64            `json:"lon"`
	Entities     []string           `json:"entities,omitempty"`
	Virality     float64            `json:"virality"`
	Plausibility PlausibilityResult `json:"plausibility"`
	Claims       []Claim            `json:"claims,omitempty"`
	Metadata     map[string]string  `json:"metadata,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
}

// EventParams carries the inputs to NewProcessedEvent.
type EventParams struct {
	ID           string // derived from source|title|text|url when empty
	Source       SourceType
	Title        string
	Text         string
	URL          string
	Timestamp    time.Time
	Language     string
	RegionHint   string
	Region       string
	Lat, Lon     float64
	Entities     []string
	Virality     float64
	Plausibility *PlausibilityResult // nil substitutes the neutral default
	Claims       []Claim
	Metadata     map[string]string
}

// NewProcessedEvent validates all model invariants and assembles the event.
// It fails fast on any violation so a partial event is never persisted.
func NewProcessedEvent(p EventParams) (ProcessedEvent, error) {
	if p.Text == "" {
		return ProcessedEvent{}, fmt.Errorf("%w: event text must not be empty", ErrValidation)
	}
	if !validScore(p.Virality) {
		return ProcessedEvent{}, fmt.Errorf("%w: virality %v outside [0,1]", ErrValidation, p.Virality)
	}
	if !ValidCoordinates(p.Lat, p.Lon) {
		return ProcessedEvent{}, fmt.Errorf("%w: coordinates (%v, %v) outside India bounds", ErrValidation, p.Lat, p.Lon)
	}
	for _, c := range p.Claims {
		if c.Text == "" || !validScore(c.Confidence) {
			return ProcessedEvent{}, fmt.Errorf("%w: invalid claim %q", ErrValidation, c.ID)
		}
	}

	plausibility := NeutralPlausibility()
	if p.Plausibility != nil {
		plausibility = *p.Plausibility
	}

	region := p.Region
	if region == "" {
		region = RegionUnresolved
	}

	timestamp := p.Timestamp
	if timestamp.IsZero() {
		timestamp = clock.Now()
	}

	id := p.ID
	if id == "" {
		id = EventID(p.Source, p.Title, p.Text, p.URL)
	}

	return ProcessedEvent{
		ID:           id,
		Source:       p.Source,
		Title:        p.Title,
		Text:         p.Text,
		URL:          p.URL,
		Timestamp:    timestamp,
		Language:     NormalizeLanguage(p.Language),
		RegionHint:   p.RegionHint,
		Region:       region,
		Lat:          p.Lat,
		Lon:          p.Lon,
		Entities:     p.Entities,
		Virality:     p.Virality,
		Plausibility: plausibility,
		Claims:       p.Claims,
		Metadata:     p.Metadata,
		CreatedAt:    clock.Now(),
	}, nil
}

// EventID produces a deterministic ID from the event's identity fields.
// Deterministic IDs make persistence idempotent: re-fetching the same item
// and reprocessing it upserts the same row.
func EventID(source SourceType, title, text, url string) string {
	input := fmt.Sprintf("%s|%s|%s|%s", source, title, text, url)
	hash := sha256.Sum256([]byte(input))
	short := hex.EncodeToString(hash[:8])
	if source == "" {
		return short
	}
	return string(source) + "-" + short
}

// StateAggregate is the per-region rollup served in the heatmap payload.
// Regenerated on every aggregation cycle; never mutated incrementally.
type StateAggregate struct {
	Region           string        `json:"region"`
	EventCount       int           `json:"event_count"`
	Intensity        float64       `json:"intensity"`
	AvgVirality      float64       `json:"avg_virality"`
	AvgReality       float64       `json:"avg_reality"`
	Risk             float64       `json:"misinformation_risk"`
	DominantCategory ClaimCategory `json:"dominant_category"`
	TopClaims        []string      `json:"top_claims,omitempty"`
	ValidatedCount   int           `json:"validated_count"`
	ComputedAt       time.Time     `json:"computed_at"`
}

// TrendPoint is one calendar day of a region's time series.
type TrendPoint struct {
	Day         time.Time `json:"day"`
	EventCount  int       `json:"event_count"`
	AvgVirality float64   `json:"avg_virality"`
	AvgReality  float64   `json:"avg_reality"`
	Risk        float64   `json:"misinformation_risk"`
}

func validScore(v float64) bool {
	return v >= 0 && v <= 1
}
