package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"audibleseries/internal/config"
)

func TestLoadDefaultConfigUsesEnvTokenAndExpandsPaths(t *testing.T) {
	t.Setenv("AUDIBLE_ACCESS_TOKEN", " token-from-env ")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if cfg.Catalog.AccessToken != "token-from-env" {
		t.Fatalf("expected token from env, got %q", cfg.Catalog.AccessToken)
	}
	if cfg.CatalogBaseURL() != "https://api.audible.com" {
		t.Fatalf("unexpected base url: %q", cfg.CatalogBaseURL())
	}
	wantSeries := filepath.Join(tempHome, ".config", "audibleseries", "series.yaml")
	if cfg.Series.OptionsPath != wantSeries {
		t.Fatalf("unexpected options path: got %q want %q", cfg.Series.OptionsPath, wantSeries)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "warn" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.Catalog.TimeoutSeconds != config.Default().Catalog.TimeoutSeconds {
		t.Fatalf("unexpected timeout: %d", cfg.Catalog.TimeoutSeconds)
	}
}

func TestLoadExplicitFile(t *testing.T) {
	t.Setenv("AUDIBLE_ACCESS_TOKEN", "")
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[catalog]
marketplace = "UK"
timeout_seconds = 5

[series]
options_path = ""

[logging]
format = "JSON"
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected explicit path to be used, got %q exists=%v", resolved, exists)
	}
	if cfg.CatalogBaseURL() != "https://api.audible.co.uk" {
		t.Fatalf("unexpected base url: %q", cfg.CatalogBaseURL())
	}
	if cfg.Catalog.TimeoutSeconds != 5 {
		t.Fatalf("unexpected timeout: %d", cfg.Catalog.TimeoutSeconds)
	}
	if cfg.Series.OptionsPath != "" {
		t.Fatalf("expected options path to remain empty, got %q", cfg.Series.OptionsPath)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected normalized logging, got %+v", cfg.Logging)
	}
}

func TestLoadBaseURLOverridesMarketplace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[catalog]\nmarketplace = \"nowhere\"\nbase_url = \"http://127.0.0.1:9999/\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.CatalogBaseURL() != "http://127.0.0.1:9999" {
		t.Fatalf("unexpected base url: %q", cfg.CatalogBaseURL())
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"marketplace", "[catalog]\nmarketplace = \"mars\"\n", "catalog.marketplace"},
		{"base url", "[catalog]\nbase_url = \"not a url\"\n", "catalog.base_url"},
		{"timeout", "[catalog]\ntimeout_seconds = -1\n", "catalog.timeout_seconds"},
		{"ntfy topic", "[notifications]\nntfy_topic = \"ntfy.sh/books\"\n", "notifications.ntfy_topic"},
		{"ntfy timeout", "[notifications]\nrequest_timeout = -5\n", "notifications.request_timeout"},
		{"format", "[logging]\nformat = \"xml\"\n", "logging.format"},
		{"level", "[logging]\nlevel = \"loud\"\n", "logging.level"},
		{"unknown", "[catalog]\nregion = \"us\"\n", "parse config"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}

	seriesPath := filepath.Join(dir, "series.yaml")
	if err := config.CreateSampleSeries(seriesPath); err != nil {
		t.Fatalf("CreateSampleSeries returned error: %v", err)
	}
	if _, err := config.LoadSeries(seriesPath); err != nil {
		t.Fatalf("sample series options do not load: %v", err)
	}
}

func TestExpandPathTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	got, err := config.ExpandPath("~/library.tsv")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	if got != filepath.Join(home, "library.tsv") {
		t.Fatalf("unexpected expansion: %q", got)
	}
}

func TestLoadExpandsLogFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[logging]\nfile = \" ~/state/audibleseries.log \"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if want := filepath.Join(home, "state", "audibleseries.log"); cfg.Logging.File != want {
		t.Fatalf("unexpected log file %q, want %q", cfg.Logging.File, want)
	}
}
