// Package report renders classification results for the terminal and for
// machine consumption.
//
// Books are grouped by bucket and ordered by series title; series without a
// new release are listed alphabetically. Each section is written only when it
// has entries.
package report
