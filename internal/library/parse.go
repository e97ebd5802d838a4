package library

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Export column names.
const (
	ColumnASIN           = "asin"
	ColumnTitle          = "title"
	ColumnSeriesTitle    = "series_title"
	ColumnSeriesSequence = "series_sequence"
	ColumnReleaseDate    = "release_date"
)

var requiredColumns = []string{ColumnASIN, ColumnTitle, ColumnSeriesTitle, ColumnReleaseDate}

// Row is one exported record keyed by header name. Missing columns read as
// empty strings.
type Row map[string]string

// Get returns the value for column or "" when absent.
func (r Row) Get(column string) string {
	return r[column]
}

// Groups maps a series title to its books in export order.
type Groups map[string][]Book

// Add appends book to its series group, creating the group on first use.
func (g Groups) Add(book Book) {
	g[book.SeriesTitle] = append(g[book.SeriesTitle], book)
}

// Len returns the number of series.
func (g Groups) Len() int {
	return len(g)
}

// Titles returns the series titles in lexicographic order.
func (g Groups) Titles() []string {
	titles := make([]string, 0, len(g))
	for title := range g {
		titles = append(titles, title)
	}
	sort.Strings(titles)
	return titles
}

// SkipFunc reports whether a series should be excluded. A nil SkipFunc keeps
// every series.
type SkipFunc func(seriesTitle string) bool

// ParseFile reads a library export from path.
func ParseFile(path string, skip SkipFunc) (Groups, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open library export: %w", err)
	}
	defer file.Close()

	groups, err := Parse(file, skip)
	if err != nil {
		return nil, fmt.Errorf("parse library export %s: %w", path, err)
	}
	return groups, nil
}

// Parse reads a tab separated library export and groups its books by series.
// Rows without a series title, or whose series is skipped, are dropped.
func Parse(r io.Reader, skip SkipFunc) (Groups, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return Groups{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	header = normalizeHeader(header)
	if err := checkColumns(header); err != nil {
		return nil, err
	}

	groups := Groups{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line, _ := reader.FieldPos(0)
		row := makeRow(header, record)

		seriesTitle := strings.TrimSpace(row.Get(ColumnSeriesTitle))
		if seriesTitle == "" || (skip != nil && skip(seriesTitle)) {
			continue
		}

		book, err := FromRow(row)
		if err != nil {
			malformed := &MalformedRecordError{
				Line: line,
				ASIN: strings.TrimSpace(row.Get(ColumnASIN)),
				Err:  err,
			}
			var fe *fieldError
			if errors.As(err, &fe) {
				malformed.Field = fe.field
				malformed.Value = fe.value
				malformed.Err = fe.err
			}
			return nil, malformed
		}
		groups.Add(book)
	}
	return groups, nil
}

func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		out[i] = strings.TrimSpace(name)
	}
	return out
}

func checkColumns(header []string) error {
	present := make(map[string]struct{}, len(header))
	for _, name := range header {
		present[name] = struct{}{}
	}
	for _, name := range requiredColumns {
		if _, ok := present[name]; !ok {
			return fmt.Errorf("%w %q", ErrMissingColumn, name)
		}
	}
	return nil
}

func makeRow(header, record []string) Row {
	row := make(Row, len(header))
	for i, name := range header {
		if i < len(record) {
			row[name] = record[i]
		}
	}
	return row
}
