// Package config loads, normalizes, and validates audibleseries configuration.
//
// Two files are involved. The application config (TOML) selects the catalog
// marketplace, an optional access token, logging, and where the series options
// live; it honours the AUDIBLE_ACCESS_TOKEN environment fallback. The series
// options file (YAML) lists series to skip, preordered and disallowed ASINs,
// and manual latest-book overrides.
//
// Always obtain settings through this package so downstream code receives
// expanded paths, canonical log formats, and clear validation errors.
package config
