// Package series reduces grouped library books to the latest owned book per
// series and computes the warnings shown before any catalog lookup.
package series
