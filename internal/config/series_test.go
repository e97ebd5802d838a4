package config_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"audibleseries/internal/config"
)

func TestParseSeriesReadsAllKeys(t *testing.T) {
	doc := `
series_to_skip:
  - Skipped Saga
preordered_asin:
  - P1
  - " P2 "
external_library:
  Kindle Saga: Z9
  Blank Saga: ""
disallowed_asins:
  - D1
`
	s, err := config.ParseSeries([]byte(doc))
	if err != nil {
		t.Fatalf("ParseSeries returned error: %v", err)
	}
	if !s.Skips("Skipped Saga") || s.Skips("Other") {
		t.Fatal("unexpected skip behaviour")
	}
	if !s.IsPreordered("P1") || !s.IsPreordered("P2") || s.IsPreordered("D1") {
		t.Fatal("unexpected preorder behaviour")
	}
	if !s.IsDisallowed("D1") || s.IsDisallowed("P1") {
		t.Fatal("unexpected disallow behaviour")
	}
	if asin, ok := s.Override("Kindle Saga"); !ok || asin != "Z9" {
		t.Fatalf("unexpected override: %q %v", asin, ok)
	}
	if _, ok := s.Override("Blank Saga"); ok {
		t.Fatal("blank override must not apply")
	}
	if diff := cmp.Diff([]string{"Blank Saga", "Kindle Saga"}, s.OverrideTitles()); diff != "" {
		t.Fatalf("unexpected override titles (-want +got):\n%s", diff)
	}
}

func TestParseSeriesIgnoresPluralPreorderKey(t *testing.T) {
	s, err := config.ParseSeries([]byte("preordered_asins:\n  - P1\n"))
	if err != nil {
		t.Fatalf("ParseSeries returned error: %v", err)
	}
	if s.IsPreordered("P1") {
		t.Fatal("only the preordered_asin key is read")
	}
}

func TestParseSeriesEmptyDocuments(t *testing.T) {
	for _, doc := range []string{"", "# only a comment\n", "~\n", "null\n", "series_to_skip:\n"} {
		s, err := config.ParseSeries([]byte(doc))
		if err != nil {
			t.Fatalf("ParseSeries(%q) returned error: %v", doc, err)
		}
		skipped, preordered, overrides, disallowed := s.Counts()
		if skipped+preordered+overrides+disallowed != 0 {
			t.Fatalf("expected empty options for %q", doc)
		}
	}
}

func TestParseSeriesRejectsWrongShape(t *testing.T) {
	for _, doc := range []string{"- a\n- b\n", "just a string\n", "series_to_skip: {a: b}\n", "external_library: [a]\n", "key: [unclosed\n"} {
		_, err := config.ParseSeries([]byte(doc))
		var parseErr *config.ConfigParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("ParseSeries(%q): expected ConfigParseError, got %v", doc, err)
		}
	}
}

func TestLoadSeriesFiles(t *testing.T) {
	dir := t.TempDir()

	s, err := config.LoadSeries("")
	if err != nil || s == nil {
		t.Fatalf("LoadSeries(\"\") = %v, %v", s, err)
	}

	missing := filepath.Join(dir, "missing.yaml")
	if _, err := config.LoadSeries(missing); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if _, err := config.LoadSeriesIfExists(missing); err != nil {
		t.Fatalf("LoadSeriesIfExists returned error: %v", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("- nope\n"), 0o644); err != nil {
		t.Fatalf("write options: %v", err)
	}
	_, err = config.LoadSeriesIfExists(bad)
	var parseErr *config.ConfigParseError
	if !errors.As(err, &parseErr) || parseErr.Path != bad {
		t.Fatalf("expected ConfigParseError naming %s, got %v", bad, err)
	}
}
