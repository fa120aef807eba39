package domain

import (
	"context"
	"time"
)

// Verdict is the opaque classifier's judgement on a piece of text.
type Verdict string

const (
	VerdictFake      Verdict = "fake"
	VerdictReal      Verdict = "real"
	VerdictUncertain Verdict = "uncertain"
)

// Classification is the result of the external text-classification oracle.
type Classification struct {
	Verdict    Verdict
	Confidence float64 // 0–1
	Score      float64 // 0–1, higher = more likely fake
	Components map[string]float64
}

// Classifier is the trained-model oracle consumed as an opaque scorer.
type Classifier interface {
	Classify(ctx context.Context, title, content string, source SourceType, url string) (Classification, error)
}

// TextSignals is the output of the NLP oracle for a piece of text.
type TextSignals struct {
	Language           string
	Entities           []string
	GeographicEntities []string
	Sentiment          float64 // -1 (negative) to 1 (positive)
	Keywords           []string
}

// Analyzer is the entity/language/sentiment extraction oracle.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (TextSignals, error)
}

// Validator cross-checks a claim against a location and date. Failures are
// non-fatal: implementations return a neutral result with Err set instead of
// an error.
type Validator interface {
	Evaluate(ctx context.Context, lat, lon float64, date time.Time, claimText string) PlausibilityResult
}
