// Package librarian sorts series into newly available, preordered, and no new
// release buckets based on the next book the catalog offers for each.
package librarian

import (
	"sort"

	"audibleseries/internal/library"
)

// Rules decides how a candidate next book is treated.
type Rules interface {
	IsDisallowed(asin string) bool
	IsPreordered(asin string) bool
}

// Result holds the classification buckets.
type Result struct {
	NewlyAvailable []library.Book `json:"new"`
	Preordered     []library.Book `json:"preordered"`
	NoNewRelease   []string       `json:"no_new_release"`
}

// Librarian accumulates classifications. It is not safe for concurrent use.
type Librarian struct {
	result Result
}

// New returns an empty Librarian.
func New() *Librarian {
	return &Librarian{}
}

// Classify files one series. A nil candidate, or one whose ASIN is
// disallowed, means no new release. Disallowed takes precedence over
// preordered. Repeated calls for the same series are recorded again.
func (l *Librarian) Classify(seriesTitle string, candidate *library.Book, rules Rules) {
	switch {
	case candidate == nil:
		l.result.NoNewRelease = append(l.result.NoNewRelease, seriesTitle)
	case rules != nil && rules.IsDisallowed(candidate.ASIN):
		l.result.NoNewRelease = append(l.result.NoNewRelease, seriesTitle)
	case rules != nil && rules.IsPreordered(candidate.ASIN):
		l.result.Preordered = append(l.result.Preordered, *candidate)
	default:
		l.result.NewlyAvailable = append(l.result.NewlyAvailable, *candidate)
	}
}

// Results returns a copy of the buckets in classification order.
func (l *Librarian) Results() Result {
	return Result{
		NewlyAvailable: append([]library.Book(nil), l.result.NewlyAvailable...),
		Preordered:     append([]library.Book(nil), l.result.Preordered...),
		NoNewRelease:   append([]string(nil), l.result.NoNewRelease...),
	}
}

// Sorted returns a copy with books ordered by series title and the no new
// release titles in lexicographic order.
func (r Result) Sorted() Result {
	out := Result{
		NewlyAvailable: append([]library.Book(nil), r.NewlyAvailable...),
		Preordered:     append([]library.Book(nil), r.Preordered...),
		NoNewRelease:   append([]string(nil), r.NoNewRelease...),
	}
	sortBySeries(out.NewlyAvailable)
	sortBySeries(out.Preordered)
	sort.Strings(out.NoNewRelease)
	return out
}

// Total returns the number of classified series.
func (r Result) Total() int {
	return len(r.NewlyAvailable) + len(r.Preordered) + len(r.NoNewRelease)
}

// Empty reports whether nothing was classified.
func (r Result) Empty() bool {
	return r.Total() == 0
}

func sortBySeries(books []library.Book) {
	sort.SliceStable(books, func(i, j int) bool {
		return books[i].SeriesTitle < books[j].SeriesTitle
	})
}
