package series

import (
	"fmt"
	"sort"
)

// WarningKind identifies why a warning was raised.
type WarningKind string

const (
	// WarningOverrideUnused flags an override for a series absent from the library.
	WarningOverrideUnused WarningKind = "override_unused"
	// WarningStalePreorder flags a preorder that is now the latest owned book.
	WarningStalePreorder WarningKind = "stale_preorder"
)

// Warning is a configuration problem worth surfacing before classification.
type Warning struct {
	Kind   WarningKind `json:"kind"`
	Series string      `json:"series"`
	ASIN   string      `json:"asin,omitempty"`
	Title  string      `json:"title,omitempty"`
}

// Message renders the warning for people.
func (w Warning) Message() string {
	switch w.Kind {
	case WarningOverrideUnused:
		return fmt.Sprintf("Override not applied for %s, not in library", w.Series)
	case WarningStalePreorder:
		return fmt.Sprintf("Preorder %s in %s (%s) is in library already", w.Title, w.Series, w.ASIN)
	default:
		return fmt.Sprintf("%s: %s", w.Kind, w.Series)
	}
}

// Options is the subset of series options needed to compute warnings.
type Options interface {
	OverrideTitles() []string
	IsPreordered(asin string) bool
}

// Warnings lists overrides that matched no series, followed by latest books
// that are still listed as preorders.
func Warnings(latest Latest, opts Options) []Warning {
	if opts == nil {
		return nil
	}
	var warnings []Warning
	for _, title := range opts.OverrideTitles() {
		if _, ok := latest[title]; !ok {
			warnings = append(warnings, Warning{Kind: WarningOverrideUnused, Series: title})
		}
	}

	var stale []Warning
	for title, book := range latest {
		if opts.IsPreordered(book.ASIN) {
			stale = append(stale, Warning{Kind: WarningStalePreorder, Series: title, ASIN: book.ASIN, Title: book.Title})
		}
	}
	sort.Slice(stale, func(i, j int) bool { return stale[i].Series < stale[j].Series })
	return append(warnings, stale...)
}
