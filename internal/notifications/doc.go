// Package notifications publishes series check results to ntfy.
//
// NewService returns a no-op Service when no topic is configured, so callers
// can notify unconditionally.
package notifications
