package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

type catalogProduct struct {
	ASIN        string `json:"asin"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
}

type fakeCatalog struct {
	server *httptest.Server

	mu       sync.Mutex
	products map[string][]catalogProduct
	failures map[string]int
	requests []string
}

func newFakeCatalog(t *testing.T) *fakeCatalog {
	t.Helper()
	fc := &fakeCatalog{
		products: make(map[string][]catalogProduct),
		failures: make(map[string]int),
	}
	fc.server = httptest.NewServer(http.HandlerFunc(fc.serve))
	t.Cleanup(fc.server.Close)
	return fc
}

func (fc *fakeCatalog) serve(w http.ResponseWriter, r *http.Request) {
	asin := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/1.0/catalog/products/"), "/sims")
	fc.mu.Lock()
	fc.requests = append(fc.requests, asin)
	status := fc.failures[asin]
	products := fc.products[asin]
	fc.mu.Unlock()

	if status != 0 {
		http.Error(w, "catalog unavailable", status)
		return
	}
	if products == nil {
		products = []catalogProduct{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"similar_products": products})
}

func (fc *fakeCatalog) requested() []string {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return append([]string(nil), fc.requests...)
}

type cliTestEnv struct {
	catalog     *fakeCatalog
	configPath  string
	libraryPath string
	optionsPath string
	homeDir     string
}

const testExport = "asin\ttitle\tsubtitle\tauthors\tseries_title\tseries_sequence\trelease_date\n" +
	"A1\tFirst\t\tAuthor\tAlpha\t1\t2019-01-01\n" +
	"A2\tSecond\t\tAuthor\tAlpha\t2\t2020-01-01\n" +
	"B1\tBeta One\t\tAuthor\tBeta\t1\t2018-01-01\n" +
	"C1\tGamma One\t\tAuthor\tGamma\t1\t2017-01-01\n"

const testOptions = `preordered_asin:
  - P1
external_library:
  Gone: G1
disallowed_asins:
  - D1
`

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("AUDIBLE_ACCESS_TOKEN", "")

	fc := newFakeCatalog(t)
	fc.products["A2"] = []catalogProduct{{ASIN: "N1", Title: "Next One", ReleaseDate: "2020-06-01"}}
	fc.products["B1"] = []catalogProduct{{ASIN: "P1", Title: "Pre One", ReleaseDate: "2020-07-01"}}
	fc.products["C1"] = []catalogProduct{{ASIN: "D1", Title: "Side Story", ReleaseDate: "2020-08-01"}}

	env := &cliTestEnv{
		catalog:     fc,
		configPath:  filepath.Join(base, "config.toml"),
		libraryPath: filepath.Join(base, "library.tsv"),
		optionsPath: filepath.Join(base, "series.yaml"),
		homeDir:     homeDir,
	}
	writeFile(t, env.libraryPath, testExport)
	writeFile(t, env.optionsPath, testOptions)
	writeFile(t, env.configPath, fmt.Sprintf(
		"[catalog]\nbase_url = %q\ntimeout_seconds = 5\n\n[series]\noptions_path = %q\n\n[logging]\nlevel = \"warn\"\n",
		fc.server.URL,
		env.optionsPath,
	))
	return env
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireNotContains(t *testing.T, output, substr string) {
	t.Helper()
	if strings.Contains(output, substr) {
		t.Fatalf("expected %q not to contain %q", output, substr)
	}
}
