package series

import (
	"sort"

	"golang.org/x/text/cases"

	"audibleseries/internal/library"
	"audibleseries/internal/textutil"
)

// Latest maps a series title to the latest owned book in that series.
type Latest map[string]library.Book

// Titles returns the series titles in lexicographic order.
func (l Latest) Titles() []string {
	titles := make([]string, 0, len(l))
	for title := range l {
		titles = append(titles, title)
	}
	sort.Strings(titles)
	return titles
}

// Overrides resolves a manually configured latest ASIN for a series.
type Overrides interface {
	Override(seriesTitle string) (asin string, ok bool)
}

// ResolveLatest picks one book per series. A configured override always wins;
// otherwise the book with the highest sequence is chosen, and among equal
// sequences the one appearing last in the export. A group with no books and
// no override has nothing to resolve and produces no entry; Parse never
// creates such a group.
func ResolveLatest(groups library.Groups, overrides Overrides) Latest {
	latest := make(Latest, len(groups))
	for title, books := range groups {
		if overrides != nil {
			if asin, ok := overrides.Override(title); ok {
				latest[title] = library.FromOverride(asin, title)
				continue
			}
		}
		if len(books) == 0 {
			continue
		}
		best := books[0]
		for _, book := range books[1:] {
			if book.Sequence >= best.Sequence {
				best = book
			}
		}
		latest[title] = best
	}
	return latest
}

// Filter restricts latest to the named series, matching titles without regard
// to case. An empty only list returns latest unchanged.
func Filter(latest Latest, only []string) Latest {
	if len(only) == 0 {
		return latest
	}
	fold := cases.Fold()
	wanted := make(map[string]struct{}, len(only))
	for _, title := range only {
		wanted[fold.String(title)] = struct{}{}
	}
	filtered := make(Latest, len(only))
	for title, book := range latest {
		if _, ok := wanted[fold.String(title)]; ok {
			filtered[title] = book
		}
	}
	return filtered
}

// suggestionThreshold is the minimum similarity for a suggested title.
const suggestionThreshold = 0.5

// Unmatched is a requested series name that matched nothing in the library.
// Suggestion holds the most similar series title, if any.
type Unmatched struct {
	Name       string `json:"name"`
	Suggestion string `json:"suggestion,omitempty"`
}

// UnmatchedNames lists the only entries that Filter would not match, in the
// order given.
func UnmatchedNames(latest Latest, only []string) []Unmatched {
	if len(only) == 0 {
		return nil
	}
	fold := cases.Fold()
	known := make(map[string]struct{}, len(latest))
	for title := range latest {
		known[fold.String(title)] = struct{}{}
	}
	titles := latest.Titles()
	var unmatched []Unmatched
	for _, name := range only {
		if _, ok := known[fold.String(name)]; ok {
			continue
		}
		entry := Unmatched{Name: name}
		if closest, _, ok := textutil.Closest(name, titles, suggestionThreshold); ok {
			entry.Suggestion = closest
		}
		unmatched = append(unmatched, entry)
	}
	return unmatched
}
