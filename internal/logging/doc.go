// Package logging assembles structured slog loggers used across audibleseries.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes component loggers and attribute helpers so packages
// tag log lines consistently. Logs default to stderr because stdout carries
// the report. A no-op logger is provided for tests and wiring code that
// cannot fail.
package logging
