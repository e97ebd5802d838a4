// Package workflow runs a series check from library export to classified
// result.
//
// Prepare parses the export, applies the skip list, resolves the latest book
// per series, and computes warnings. The returned Plan then performs one
// catalog lookup per series, strictly in order, feeding each answer to a
// Librarian. The first lookup failure aborts the run; no partial result is
// returned.
package workflow
