package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/NayandG07/misinformation-heatmap-sub001/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS events (
	id           TEXT PRIMARY KEY,
	source       TEXT NOT NULL,
	title        TEXT NOT NULL DEFAULT '',
	text         TEXT NOT NULL,
	url          TEXT NOT NULL DEFAULT '',
	timestamp    INTEGER NOT NULL,
	language     TEXT NOT NULL,
	region_hint  TEXT NOT NULL DEFAULT '',
	region       TEXT NOT NULL,
	lat          REAL NOT NULL,
	lon          REAL NOT NULL,
	virality     REAL NOT NULL,
	entities     TEXT NOT NULL DEFAULT '[]',
	plausibility TEXT NOT NULL DEFAULT '{}',
	claims       TEXT NOT NULL DEFAULT '[]',
	metadata     TEXT NOT NULL DEFAULT '{}',
	created_at   INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_events_timestamp ON events(timestamp);
CREATE INDEX IF NOT EXISTS idx_events_region ON events(region, timestamp);
`

// SQLiteStore persists events in a single SQLite file. The modernc driver is
// pure Go, so the binary stays cgo-free.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path. Call Initialize
// before first use.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// SQLite serializes writers; a single connection avoids SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)
	return &SQLiteStore{db: db}, nil
}

// Initialize creates the schema if it does not exist yet.
func (s *SQLiteStore) Initialize(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// InsertEvent upserts by event id. Re-ingesting an item that was already
// processed leaves the stored row untouched.
func (s *SQLiteStore) InsertEvent(ctx context.Context, ev domain.ProcessedEvent) error {
	entities, err := json.Marshal(ev.Entities)
	if err != nil {
		return fmt.Errorf("marshal entities: %w", err)
	}
	plausibility, err := json.Marshal(ev.Plausibility)
	if err != nil {
		return fmt.Errorf("marshal plausibility: %w", err)
	}
	claims, err := json.Marshal(ev.Claims)
	if err != nil {
		return fmt.Errorf("marshal claims: %w", err)
	}
	metadata, err := json.Marshal(ev.Metadata)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO events (
			id, source, title, text, url, timestamp, language, region_hint,
			region, lat, lon, virality, entities, plausibility, claims,
			metadata, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING`,
		ev.ID, string(ev.Source), ev.Title, ev.Text, ev.URL,
		ev.Timestamp.UTC().UnixMilli(), ev.Language, ev.RegionHint,
		ev.Region, ev.Lat, ev.Lon, ev.Virality,
		string(entities), string(plausibility), string(claims),
		string(metadata), ev.CreatedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert event %s: %w", ev.ID, err)
	}
	return nil
}

// EventsByTimeRange returns events with start <= timestamp < end, oldest
// first.
func (s *SQLiteStore) EventsByTimeRange(ctx context.Context, start, end time.Time) ([]domain.ProcessedEvent, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+`
		FROM events
		WHERE timestamp >= ? AND timestamp < ?
		ORDER BY timestamp ASC`,
		start.UTC().UnixMilli(), end.UTC().UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("query time range: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

// EventsByRegion returns the most recent events for a region, newest first.
// limit <= 0 means no limit.
func (s *SQLiteStore) EventsByRegion(ctx context.Context, region string, limit int) ([]domain.ProcessedEvent, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, selectColumns+`
		FROM events
		WHERE region = ?
		ORDER BY timestamp DESC
		LIMIT ?`,
		region, limit)
	if err != nil {
		return nil, fmt.Errorf("query region %s: %w", region, err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

// Stats aggregates counts and the covered time span.
func (s *SQLiteStore) Stats(ctx context.Context) (Stats, error) {
	st := Stats{
		EventsByRegion: make(map[string]int),
		EventsBySource: make(map[string]int),
	}

	var oldest, newest sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), MIN(timestamp), MAX(timestamp) FROM events`,
	).Scan(&st.TotalEvents, &oldest, &newest)
	if err != nil {
		return Stats{}, fmt.Errorf("query totals: %w", err)
	}
	if oldest.Valid {
		st.OldestEvent = time.UnixMilli(oldest.Int64).UTC()
	}
	if newest.Valid {
		st.NewestEvent = time.UnixMilli(newest.Int64).UTC()
	}

	if err := s.countsInto(ctx, "region", st.EventsByRegion); err != nil {
		return Stats{}, err
	}
	if err := s.countsInto(ctx, "source", st.EventsBySource); err != nil {
		return Stats{}, err
	}
	return st, nil
}

func (s *SQLiteStore) countsInto(ctx context.Context, column string, dst map[string]int) error {
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT %s, COUNT(*) FROM events GROUP BY %s`, column, column))
	if err != nil {
		return fmt.Errorf("query %s counts: %w", column, err)
	}
	defer rows.Close()
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return fmt.Errorf("scan %s count: %w", column, err)
		}
		dst[key] = n
	}
	return rows.Err()
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const selectColumns = `
	SELECT id, source, title, text, url, timestamp, language, region_hint,
	       region, lat, lon, virality, entities, plausibility, claims,
	       metadata, created_at`

func scanEvents(rows *sql.Rows) ([]domain.ProcessedEvent, error) {
	var events []domain.ProcessedEvent
	for rows.Next() {
		var (
			ev           domain.ProcessedEvent
			source       string
			ts, created  int64
			entities     string
			plausibility string
			claims       string
			metadata     string
		)
		err := rows.Scan(&ev.ID, &source, &ev.Title, &ev.Text, &ev.URL,
			&ts, &ev.Language, &ev.RegionHint, &ev.Region, &ev.Lat, &ev.Lon,
			&ev.Virality, &entities, &plausibility, &claims, &metadata, &created)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.Source = domain.SourceType(source)
		ev.Timestamp = time.UnixMilli(ts).UTC()
		ev.CreatedAt = time.UnixMilli(created).UTC()
		if err := json.Unmarshal([]byte(entities), &ev.Entities); err != nil {
			return nil, fmt.Errorf("decode entities for %s: %w", ev.ID, err)
		}
		if err := json.Unmarshal([]byte(plausibility), &ev.Plausibility); err != nil {
			return nil, fmt.Errorf("decode plausibility for %s: %w", ev.ID, err)
		}
		if err := json.Unmarshal([]byte(claims), &ev.Claims); err != nil {
			return nil, fmt.Errorf("decode claims for %s: %w", ev.ID, err)
		}
		if err := json.Unmarshal([]byte(metadata), &ev.Metadata); err != nil {
			return nil, fmt.Errorf("decode metadata for %s: %w", ev.ID, err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
