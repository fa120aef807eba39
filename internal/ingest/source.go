// Package ingest pulls raw events from configured sources on a fixed cycle
// and hands them to the processing pipeline.
package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/NayandG07/misinformation-heatmap-sub001/internal/config"
	"github.com/NayandG07/misinformation-heatmap-sub001/internal/domain"
)

// Source produces raw events from one upstream feed.
type Source interface {
	Name() string
	Type() domain.SourceType
	Reliability() float64
	Fetch(ctx context.Context) ([]domain.RawEvent, error)
}

// NewFromConfig builds one Source per entry. Unknown types were already
// rejected by config validation, so hitting one here is a programming error.
func NewFromConfig(cfgs []config.SourceConfig) ([]Source, error) {
	sources := make([]Source, 0, len(cfgs))
	for _, sc := range cfgs {
		switch sc.Type {
		case config.SourceTypeRSS:
			sources = append(sources, NewRSSSource(sc))
		case config.SourceTypeMock:
			sources = append(sources, NewMockSource(sc))
		default:
			return nil, fmt.Errorf("source %s: unsupported type %q", sc.Name, sc.Type)
		}
	}
	return sources, nil
}

// RSSSource fetches an RSS or Atom feed.
type RSSSource struct {
	cfg    config.SourceConfig
	parser *gofeed.Parser
}

func NewRSSSource(cfg config.SourceConfig) *RSSSource {
	return &RSSSource{cfg: cfg, parser: gofeed.NewParser()}
}

func (s *RSSSource) Name() string            { return s.cfg.Name }
func (s *RSSSource) Type() domain.SourceType { return domain.SourceRSS }
func (s *RSSSource) Reliability() float64    { return s.cfg.Reliability }

func (s *RSSSource) Fetch(ctx context.Context) ([]domain.RawEvent, error) {
	feed, err := s.parser.ParseURLWithContext(s.cfg.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", s.cfg.Name, err)
	}

	now := domain.Clock().Now().UTC()
	items := feed.Items
	if len(items) > s.cfg.MaxItems {
		items = items[:s.cfg.MaxItems]
	}

	events := make([]domain.RawEvent, 0, len(items))
	for _, item := range items {
		text := itemText(item)
		if strings.TrimSpace(text) == "" {
			continue
		}
		fetched := now
		if item.PublishedParsed != nil {
			fetched = item.PublishedParsed.UTC()
		}
		events = append(events, domain.RawEvent{
			SourceName:  s.cfg.Name,
			Source:      domain.SourceRSS,
			Title:       strings.TrimSpace(item.Title),
			Text:        text,
			URL:         item.Link,
			FetchedAt:   fetched,
			Reliability: s.cfg.Reliability,
		})
	}
	return events, nil
}

// itemText prefers the full content block over the summary description.
func itemText(item *gofeed.Item) string {
	if t := strings.TrimSpace(item.Content); t != "" {
		return t
	}
	if t := strings.TrimSpace(item.Description); t != "" {
		return t
	}
	return strings.TrimSpace(item.Title)
}
