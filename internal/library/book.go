package library

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar date format used by exports and the catalog.
const DateLayout = "2006-01-02"

// UnknownTitle is the title given to books known only by ASIN.
const UnknownTitle = "Unknown"

// Today returns the current calendar date. Tests may replace it.
var Today = func() time.Time {
	return truncateDate(time.Now())
}

// Book is a single audiobook owned, preordered, or offered by the catalog.
type Book struct {
	ASIN        string    `json:"asin"`
	Title       string    `json:"title"`
	SeriesTitle string    `json:"series_title"`
	Sequence    float64   `json:"sequence"`
	ReleaseDate time.Time `json:"release_date"`
}

// FromRow builds a Book from an exported library row.
func FromRow(row Row) (Book, error) {
	asin := strings.TrimSpace(row.Get(ColumnASIN))
	if asin == "" {
		return Book{}, &fieldError{field: ColumnASIN, value: row.Get(ColumnASIN), err: errors.New("asin is required")}
	}
	released, err := ParseDate(row.Get(ColumnReleaseDate))
	if err != nil {
		return Book{}, &fieldError{field: ColumnReleaseDate, value: row.Get(ColumnReleaseDate), err: err}
	}
	return Book{
		ASIN:        asin,
		Title:       strings.TrimSpace(row.Get(ColumnTitle)),
		SeriesTitle: strings.TrimSpace(row.Get(ColumnSeriesTitle)),
		Sequence:    ParseSequence(row.Get(ColumnSeriesSequence)),
		ReleaseDate: released,
	}, nil
}

// FromCatalogEntry builds a Book from a catalog lookup result. The catalog does
// not report a usable position, so Sequence is always zero.
func FromCatalogEntry(asin, title, releaseDate, seriesTitle string) (Book, error) {
	released, err := ParseDate(releaseDate)
	if err != nil {
		return Book{}, fmt.Errorf("catalog entry %s: %w", strings.TrimSpace(asin), err)
	}
	return Book{
		ASIN:        strings.TrimSpace(asin),
		Title:       strings.TrimSpace(title),
		SeriesTitle: strings.TrimSpace(seriesTitle),
		ReleaseDate: released,
	}, nil
}

// FromOverride builds the stand-in Book for a manually configured latest ASIN.
func FromOverride(asin, seriesTitle string) Book {
	return Book{
		ASIN:        strings.TrimSpace(asin),
		Title:       UnknownTitle,
		SeriesTitle: strings.TrimSpace(seriesTitle),
		ReleaseDate: Today(),
	}
}

// ParseSequence converts an export's series_sequence value to a position.
// Compilation ranges such as "1-3" resolve to their upper bound. Anything
// that does not yield a finite, non-negative decimal number resolves to
// zero, including hexadecimal forms such as "0x1p3".
func ParseSequence(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if _, upper, ok := strings.Cut(raw, "-"); ok {
		raw = strings.TrimSpace(upper)
	}
	if strings.ContainsAny(raw, "xX") {
		return 0
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return 0
	}
	return value
}

// ParseDate parses a YYYY-MM-DD date, ignoring surrounding whitespace.
func ParseDate(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, errors.New("release date is empty")
	}
	parsed, err := time.Parse(DateLayout, trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse release date %q: %w", trimmed, err)
	}
	return parsed, nil
}

// ReleasesIn returns the number of whole days between today and the release
// date. Released books report zero or less.
func (b Book) ReleasesIn(today time.Time) int {
	diff := b.ReleaseDate.Sub(truncateDate(today))
	return int(diff.Hours() / 24)
}

// IsUnreleased reports whether the book releases after today.
func (b Book) IsUnreleased(today time.Time) bool {
	return b.ReleaseDate.After(truncateDate(today))
}

// SequenceLabel formats the series position for display.
func (b Book) SequenceLabel() string {
	if b.Sequence == 0 {
		return "-"
	}
	return strconv.FormatFloat(b.Sequence, 'f', -1, 64)
}

func truncateDate(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
