// Package main hosts the audibleseries CLI entrypoint and command graph.
//
// The Cobra command tree reads an exported library TSV, resolves the latest
// owned book of every series, and asks the Audible catalog which book comes
// next. Configuration resolution, series options loading, and logging setup
// live here so the internal packages stay free of terminal concerns.
package main
