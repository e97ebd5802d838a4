package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"audibleseries/internal/library"
	"audibleseries/internal/report"
	"audibleseries/internal/series"
)

func TestLatestCommandRendersTable(t *testing.T) {
	env := setupCLITestEnv(t)

	out, errOut, err := runCLI(t, []string{"latest", "--library", env.libraryPath}, env.configPath)
	if err != nil {
		t.Fatalf("latest: %v (stderr=%s)", err, errOut)
	}
	for _, want := range []string{"SERIES", "RELEASED", "Alpha", "Second", "A2", "2020-01-01", "Beta", "Gamma"} {
		requireContains(t, out, want)
	}
	requireNotContains(t, out, "First")
	requireContains(t, out, "╭")
	if len(env.catalog.requested()) != 0 {
		t.Fatalf("latest must not query the catalog, got %v", env.catalog.requested())
	}
}

func TestLogFileFlagCopiesLogs(t *testing.T) {
	env := setupCLITestEnv(t)
	logPath := filepath.Join(env.homeDir, "logs", "run.log")

	_, errOut, err := runCLI(t, []string{"--log-level", "info", "--log-file", logPath, "latest", "-l", env.libraryPath}, env.configPath)
	if err != nil {
		t.Fatalf("latest: %v (stderr=%s)", err, errOut)
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	requireContains(t, string(data), "library parsed")
	requireContains(t, string(data), "run_id=")
	requireContains(t, errOut, "library parsed")
}

func TestLatestCommandJSONAppliesOverrides(t *testing.T) {
	env := setupCLITestEnv(t)
	writeFile(t, env.optionsPath, "external_library:\n  Gamma: K9\n")

	out, errOut, err := runCLI(t, []string{"latest", "-l", env.libraryPath, "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("latest --json: %v (stderr=%s)", err, errOut)
	}
	var doc report.LatestDocument
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(doc.Latest) != 3 {
		t.Fatalf("expected 3 series, got %d", len(doc.Latest))
	}
	gamma := doc.Latest[2]
	if gamma.SeriesTitle != "Gamma" || gamma.ASIN != "K9" || gamma.Title != library.UnknownTitle {
		t.Fatalf("expected override for Gamma, got %+v", gamma)
	}
	if len(doc.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %+v", doc.Warnings)
	}
}

func TestLatestCommandJSONIncludesWarnings(t *testing.T) {
	env := setupCLITestEnv(t)

	out, errOut, err := runCLI(t, []string{"latest", "-l", env.libraryPath, "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("latest --json: %v (stderr=%s)", err, errOut)
	}
	var doc report.LatestDocument
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(doc.Warnings) != 1 || doc.Warnings[0].Kind != series.WarningOverrideUnused || doc.Warnings[0].Series != "Gone" {
		t.Fatalf("unexpected warnings: %+v", doc.Warnings)
	}
	requireNotContains(t, errOut, "Warning: Override")
}
