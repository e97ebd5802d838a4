package workflow

import (
	"context"
	"errors"
	"log/slog"

	"audibleseries/internal/catalog"
	"audibleseries/internal/config"
	"audibleseries/internal/librarian"
	"audibleseries/internal/library"
	"audibleseries/internal/logging"
	"audibleseries/internal/series"
)

// Request describes one series check. OnlySeries restricts lookups to the
// named titles after warnings are computed.
type Request struct {
	LibraryPath string
	Options     *config.Series
	OnlySeries  []string
}

// Plan is a prepared series check awaiting catalog lookups.
type Plan struct {
	Latest    series.Latest
	Warnings  []series.Warning
	Targets   []string
	Unmatched []series.Unmatched

	options *config.Series
	logger  *slog.Logger
}

// Progress is notified after each lookup completes.
type Progress func(done, total int, seriesTitle string)

// Prepare parses the library export and resolves the latest book per series.
func Prepare(req Request, logger *slog.Logger) (*Plan, error) {
	logger = logging.NewComponentLogger(logger, "workflow")
	opts := req.Options
	if opts == nil {
		opts = config.EmptySeries()
	}
	if req.LibraryPath == "" {
		return nil, errors.New("library export path is required")
	}

	groups, err := library.ParseFile(req.LibraryPath, opts.Skips)
	if err != nil {
		return nil, err
	}
	latest := series.ResolveLatest(groups, opts)
	warnings := series.Warnings(latest, opts)
	for _, w := range warnings {
		logging.WarnWithContext(logger, w.Message(), string(w.Kind),
			logging.String(logging.FieldSeries, w.Series))
	}

	targets := series.Filter(latest, req.OnlySeries).Titles()
	unmatched := series.UnmatchedNames(latest, req.OnlySeries)
	for _, u := range unmatched {
		logger.Info("requested series not in library",
			logging.String(logging.FieldSeries, u.Name),
			logging.String("suggestion", u.Suggestion))
	}
	logger.Info("library parsed",
		logging.String("path", req.LibraryPath),
		logging.Int("series", groups.Len()),
		logging.Int("targets", len(targets)),
		logging.Int("warnings", len(warnings)))

	return &Plan{
		Latest:    latest,
		Warnings:  warnings,
		Targets:   targets,
		Unmatched: unmatched,
		options:   opts,
		logger:    logger,
	}, nil
}

// Classify looks up the next book for every target series, one after
// another, and classifies the answers.
func (p *Plan) Classify(ctx context.Context, lookup catalog.Lookup, progress Progress) (librarian.Result, error) {
	if lookup == nil {
		return librarian.Result{}, errors.New("catalog lookup is required")
	}
	logger := p.logger
	if logger == nil {
		logger = logging.NewNop()
	}

	lib := librarian.New()
	total := len(p.Targets)
	for i, title := range p.Targets {
		if err := ctx.Err(); err != nil {
			return librarian.Result{}, err
		}
		latest := p.Latest[title]
		next, err := lookup.NextInSeries(ctx, latest)
		if err != nil {
			return librarian.Result{}, &LookupError{Series: title, ASIN: latest.ASIN, Err: err}
		}
		if next != nil {
			logger.Debug("next book found",
				logging.String(logging.FieldSeries, title),
				logging.String(logging.FieldASIN, next.ASIN),
				logging.String("title", next.Title))
		} else {
			logger.Debug("no next book", logging.String(logging.FieldSeries, title))
		}
		lib.Classify(title, next, p.options)
		if progress != nil {
			progress(i+1, total, title)
		}
	}

	result := lib.Results()
	logger.Info("series classified",
		logging.Int("new", len(result.NewlyAvailable)),
		logging.Int("preordered", len(result.Preordered)),
		logging.Int("no_new_release", len(result.NoNewRelease)))
	return result, nil
}
