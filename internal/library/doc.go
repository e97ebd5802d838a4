// Package library models audiobook records and parses library exports.
//
// A Book can originate from three places: a row of the tab separated export
// produced by `audible library export`, an entry returned by the catalog's
// next-in-series lookup, or a manual override from the series options file.
// Each source has its own constructor so normalization rules (trimming,
// sequence parsing, strict release dates) stay in one place.
//
// Parse groups exported rows by series title. Malformed sequence numbers never
// fail a parse; malformed release dates always do.
package library
