package report

import (
	"time"

	"audibleseries/internal/librarian"
	"audibleseries/internal/library"
	"audibleseries/internal/series"
)

// Document is the JSON form of a series check.
type Document struct {
	RunID        string           `json:"run_id,omitempty"`
	CheckedOn    string           `json:"checked_on"`
	New          []DocumentBook   `json:"new"`
	Preordered   []DocumentBook   `json:"preordered"`
	NoNewRelease []string         `json:"no_new_release"`
	Warnings     []series.Warning `json:"warnings"`

	Unmatched []series.Unmatched `json:"unmatched,omitempty"`
}

// DocumentBook is a book entry in a Document.
type DocumentBook struct {
	Series      string `json:"series"`
	ASIN        string `json:"asin"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
	DaysUntil   int    `json:"days_until_release"`
}

// NewDocument builds a sorted Document. Slices are never nil so they encode
// as empty arrays.
func NewDocument(res librarian.Result, warnings []series.Warning, today time.Time) Document {
	if today.IsZero() {
		today = library.Today()
	}
	sorted := res.Sorted()
	doc := Document{
		CheckedOn:    today.Format(library.DateLayout),
		New:          documentBooks(sorted.NewlyAvailable, today),
		Preordered:   documentBooks(sorted.Preordered, today),
		NoNewRelease: append([]string{}, sorted.NoNewRelease...),
		Warnings:     append([]series.Warning{}, warnings...),
	}
	return doc
}

func documentBooks(books []library.Book, today time.Time) []DocumentBook {
	out := make([]DocumentBook, 0, len(books))
	for _, book := range books {
		days := book.ReleasesIn(today)
		if days < 0 {
			days = 0
		}
		out = append(out, DocumentBook{
			Series:      book.SeriesTitle,
			ASIN:        book.ASIN,
			Title:       book.Title,
			ReleaseDate: book.ReleaseDate.Format(library.DateLayout),
			DaysUntil:   days,
		})
	}
	return out
}

// LatestRows returns table rows (series, position, title, ASIN, release date)
// for the latest book of each series, ordered by series title.
func LatestRows(latest series.Latest) [][]string {
	rows := make([][]string, 0, len(latest))
	for _, title := range latest.Titles() {
		book := latest[title]
		rows = append(rows, []string{
			title,
			book.SequenceLabel(),
			book.Title,
			book.ASIN,
			book.ReleaseDate.Format(library.DateLayout),
		})
	}
	return rows
}

// LatestDocument is the JSON form of the latest book per series.
type LatestDocument struct {
	Latest   []library.Book   `json:"latest"`
	Warnings []series.Warning `json:"warnings"`
}

// NewLatestDocument orders latest by series title. Slices are never nil.
func NewLatestDocument(latest series.Latest, warnings []series.Warning) LatestDocument {
	books := make([]library.Book, 0, len(latest))
	for _, title := range latest.Titles() {
		books = append(books, latest[title])
	}
	return LatestDocument{
		Latest:   books,
		Warnings: append([]series.Warning{}, warnings...),
	}
}
