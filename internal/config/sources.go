package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Source types accepted in the definition file.
const (
	SourceTypeRSS  = "rss"
	SourceTypeMock = "mock"
)

// SourceConfig declares one ingestion source. Known fields are strongly
// typed; Extra carries genuinely unanticipated keys forward without losing
// type safety for the rest.
type SourceConfig struct {
	Name        string            `yaml:"name"`
	Type        string            `yaml:"type"` // "rss" or "mock"
	URL         string            `yaml:"url,omitempty"`
	Reliability float64           `yaml:"reliability"`
	MaxItems    int               `yaml:"max_items,omitempty"`
	Extra       map[string]string `yaml:"extra,omitempty"`
}

// SourcesFile is the top-level shape of the YAML source-definition file.
type SourcesFile struct {
	Sources []SourceConfig `yaml:"sources"`
}

// LoadSources reads and validates the source-definition file.
func LoadSources(path string) ([]SourceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sources file: %w", err)
	}
	return ParseSources(data)
}

// ParseSources decodes source definitions from YAML bytes.
func ParseSources(data []byte) ([]SourceConfig, error) {
	var f SourcesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse sources file: %w", err)
	}
	if len(f.Sources) == 0 {
		return nil, fmt.Errorf("sources file declares no sources")
	}

	seen := make(map[string]bool, len(f.Sources))
	for i := range f.Sources {
		s := &f.Sources[i]
		if s.Name == "" {
			return nil, fmt.Errorf("source %d: name is required", i)
		}
		if seen[s.Name] {
			return nil, fmt.Errorf("duplicate source name %q", s.Name)
		}
		seen[s.Name] = true
		if s.Type != SourceTypeRSS && s.Type != SourceTypeMock {
			return nil, fmt.Errorf("source %q: unknown type %q", s.Name, s.Type)
		}
		if s.Type == SourceTypeRSS && s.URL == "" {
			return nil, fmt.Errorf("source %q: rss sources need a url", s.Name)
		}
		if s.Reliability < 0 || s.Reliability > 1 {
			return nil, fmt.Errorf("source %q: reliability %v outside [0,1]", s.Name, s.Reliability)
		}
		if s.MaxItems <= 0 {
			s.MaxItems = 20
		}
	}
	return f.Sources, nil
}
