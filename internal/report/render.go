package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"audibleseries/internal/librarian"
	"audibleseries/internal/library"
	"audibleseries/internal/series"
)

const (
	ansiReset   = "\x1b[0m"
	ansiBold    = "\x1b[1m"
	ansiRed     = "\x1b[31m"
	ansiBlue    = "\x1b[34m"
	ansiBrRed   = "\x1b[91m"
	headerNew   = "New books for the following series:"
	headerPre   = "These books already preordered:"
	headerNone  = "No new books for the following series:"
	noneMessage = "No series to check."
)

// RenderOptions controls text output.
type RenderOptions struct {
	Colorize bool
	Today    time.Time
}

// Render writes the classification result as text sections.
func Render(w io.Writer, res librarian.Result, opts RenderOptions) error {
	today := opts.Today
	if today.IsZero() {
		today = library.Today()
	}
	sorted := res.Sorted()

	var b strings.Builder
	if sorted.Empty() {
		b.WriteString(noneMessage)
		b.WriteByte('\n')
	}
	writeBooks(&b, headerNew, sorted.NewlyAvailable, today, opts.Colorize)
	writeBooks(&b, headerPre, sorted.Preordered, today, opts.Colorize)
	if len(sorted.NoNewRelease) > 0 {
		b.WriteString(headerNone)
		b.WriteByte('\n')
		for _, title := range sorted.NoNewRelease {
			b.WriteByte('\t')
			b.WriteString(title)
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderWarnings writes one line per warning.
func RenderWarnings(w io.Writer, warnings []series.Warning, colorize bool) error {
	for _, warning := range warnings {
		line := "Warning: " + warning.Message()
		if colorize {
			color := ansiRed
			if warning.Kind == series.WarningStalePreorder {
				color = ansiBrRed
			}
			line = color + line + ansiReset
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderUnmatched writes one line per requested series that is not in the
// library, with the closest known title when there is one.
func RenderUnmatched(w io.Writer, unmatched []series.Unmatched, colorize bool) error {
	for _, u := range unmatched {
		line := fmt.Sprintf("Warning: No series named %q in library", u.Name)
		if u.Suggestion != "" {
			line += fmt.Sprintf(" (did you mean %q?)", u.Suggestion)
		}
		if colorize {
			line = ansiRed + line + ansiReset
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// BookLine formats a single book, adding a countdown line for books that
// have not been released yet.
func BookLine(book library.Book, today time.Time, colorize bool) string {
	title := book.Title
	if colorize {
		title = ansiBold + title + ansiReset
	}
	line := fmt.Sprintf("\t%s: %s (%s)", book.SeriesTitle, title, book.ASIN)
	if !book.IsUnreleased(today) {
		return line
	}
	days := fmt.Sprintf("%d days", book.ReleasesIn(today))
	if colorize {
		line = ansiBlue + line + ansiReset
		days = ansiBold + days + ansiReset
	}
	return line + "\n" + fmt.Sprintf("\t\tReleases in %s on %s", days, book.ReleaseDate.Format(library.DateLayout))
}

func writeBooks(b *strings.Builder, header string, books []library.Book, today time.Time, colorize bool) {
	if len(books) == 0 {
		return
	}
	b.WriteString(header)
	b.WriteByte('\n')
	for _, book := range books {
		b.WriteString(BookLine(book, today, colorize))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
}
