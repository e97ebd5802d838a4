package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigParseError reports a series options document with the wrong shape.
type ConfigParseError struct {
	Path string
	Err  error
}

func (e *ConfigParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parse series options: %v", e.Err)
	}
	return fmt.Sprintf("parse series options %s: %v", e.Path, e.Err)
}

func (e *ConfigParseError) Unwrap() error {
	return e.Err
}

// seriesDocument mirrors the YAML keys. preordered_asin is singular for
// compatibility with existing option files.
type seriesDocument struct {
	SeriesToSkip    []string          `yaml:"series_to_skip"`
	PreorderedASINs []string          `yaml:"preordered_asin"`
	ExternalLibrary map[string]string `yaml:"external_library"`
	DisallowedASINs []string          `yaml:"disallowed_asins"`
}

// Series holds the per-user rules applied while resolving and classifying
// series. The zero value is not usable; obtain one from EmptySeries,
// LoadSeries, or ParseSeries.
type Series struct {
	seriesToSkip    map[string]struct{}
	preordered      map[string]struct{}
	externalLibrary map[string]string
	disallowed      map[string]struct{}
}

// EmptySeries returns options that skip nothing and override nothing.
func EmptySeries() *Series {
	return &Series{
		seriesToSkip:    map[string]struct{}{},
		preordered:      map[string]struct{}{},
		externalLibrary: map[string]string{},
		disallowed:      map[string]struct{}{},
	}
}

// NewSeries builds options from explicit values.
func NewSeries(skip, preordered []string, external map[string]string, disallowed []string) *Series {
	s := EmptySeries()
	addAll(s.seriesToSkip, skip)
	addAll(s.preordered, preordered)
	addAll(s.disallowed, disallowed)
	for title, asin := range external {
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		s.externalLibrary[title] = strings.TrimSpace(asin)
	}
	return s
}

// LoadSeries reads series options from path. An empty path yields empty
// options; a missing file is reported with fs.ErrNotExist.
func LoadSeries(path string) (*Series, error) {
	if strings.TrimSpace(path) == "" {
		return EmptySeries(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read series options: %w", err)
	}
	s, err := ParseSeries(data)
	if err != nil {
		var parseErr *ConfigParseError
		if errors.As(err, &parseErr) {
			parseErr.Path = path
		}
		return nil, err
	}
	return s, nil
}

// LoadSeriesIfExists behaves like LoadSeries but treats a missing file as
// empty options.
func LoadSeriesIfExists(path string) (*Series, error) {
	s, err := LoadSeries(path)
	if errors.Is(err, fs.ErrNotExist) {
		return EmptySeries(), nil
	}
	return s, err
}

// ParseSeries decodes a YAML series options document. An empty document
// yields empty options.
func ParseSeries(data []byte) (*Series, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ConfigParseError{Err: err}
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return EmptySeries(), nil
		}
		root = root.Content[0]
	}
	switch {
	case root.Kind == 0:
		return EmptySeries(), nil
	case root.Kind == yaml.ScalarNode && root.Tag == "!!null":
		return EmptySeries(), nil
	case root.Kind != yaml.MappingNode:
		return nil, &ConfigParseError{Err: fmt.Errorf("top level must be a mapping, found %s", nodeKind(root))}
	}

	var raw seriesDocument
	if err := root.Decode(&raw); err != nil {
		return nil, &ConfigParseError{Err: err}
	}
	return NewSeries(raw.SeriesToSkip, raw.PreorderedASINs, raw.ExternalLibrary, raw.DisallowedASINs), nil
}

// Skips reports whether the series should be excluded entirely.
func (s *Series) Skips(seriesTitle string) bool {
	_, ok := s.seriesToSkip[seriesTitle]
	return ok
}

// IsPreordered reports whether asin is already preordered.
func (s *Series) IsPreordered(asin string) bool {
	_, ok := s.preordered[asin]
	return ok
}

// IsDisallowed reports whether asin must never count as a next book.
func (s *Series) IsDisallowed(asin string) bool {
	_, ok := s.disallowed[asin]
	return ok
}

// Override returns the manually configured latest ASIN for a series. Blank
// overrides are reported as absent.
func (s *Series) Override(seriesTitle string) (string, bool) {
	asin, ok := s.externalLibrary[seriesTitle]
	if !ok || asin == "" {
		return "", false
	}
	return asin, true
}

// Overrides returns a copy of the series title to ASIN overrides, including
// blank entries.
func (s *Series) Overrides() map[string]string {
	out := make(map[string]string, len(s.externalLibrary))
	for title, asin := range s.externalLibrary {
		out[title] = asin
	}
	return out
}

// OverrideTitles returns the overridden series titles in sorted order.
func (s *Series) OverrideTitles() []string {
	titles := make([]string, 0, len(s.externalLibrary))
	for title := range s.externalLibrary {
		titles = append(titles, title)
	}
	sort.Strings(titles)
	return titles
}

// Counts summarizes the option sizes for logging.
func (s *Series) Counts() (skipped, preordered, overrides, disallowed int) {
	return len(s.seriesToSkip), len(s.preordered), len(s.externalLibrary), len(s.disallowed)
}

func addAll(set map[string]struct{}, values []string) {
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		set[value] = struct{}{}
	}
}

func nodeKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		return "a list"
	case yaml.ScalarNode:
		return "a scalar"
	case yaml.AliasNode:
		return "an alias"
	default:
		return "an unsupported node"
	}
}
