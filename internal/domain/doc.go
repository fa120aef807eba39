// Package domain models news-like text events scored for virality and
// factual plausibility across Indian states.
//
// # Event flow
//
// Raw items arrive from configured ingestion sources (RSS feeds, social
// exports, manual submissions) as [RawEvent] values. The pipeline resolves a
// region, scores the text, attaches a satellite plausibility result, and
// assembles an immutable [ProcessedEvent] that is upserted into storage and
// aggregated into per-state rollups.
//
// # Coordinates
//
// Events carry WGS-84 coordinates that are either the (0, 0) "no location"
// sentinel or a point inside the India bounding box:
//
//	lat ∈ [6, 37], lon ∈ [68, 97]
//
// Any other non-zero pair is a construction error. Region centroids in the
// gazetteer all fall inside the box.
//
// # Languages
//
// Language codes are ISO 639-1 from a fixed set covering English and major
// Indian languages: en, hi, bn, ta, te, mr, gu, kn, ml, pa, or, ur. Unknown
// codes normalize to "en".
//
// # ID generation
//
// Event IDs are deterministic SHA-256 hashes of source|title|text|url. This
// makes persistence idempotent (upsert by id) so re-fetching the same RSS
// item and reprocessing it is harmless. See [EventID].
//
// # Score bounds
//
// Every probability-like field (virality, reality, similarity, confidence)
// lies in [0, 1]. Constructors reject out-of-range values with
// [ErrValidation] rather than coercing them.
package domain
