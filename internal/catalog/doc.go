// Package catalog provides the minimal Audible catalog client used to find
// the next book in a series.
//
// It issues the "similar products" request with the NextInSameSeries
// similarity type and converts the first entry into a library.Book. Requests
// run one at a time, are never retried, and are never cached. Options allow
// tests to supply custom HTTP clients without modifying production code.
package catalog
