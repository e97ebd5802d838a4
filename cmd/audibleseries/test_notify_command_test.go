package main

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
)

type ntfyRecorder struct {
	server *httptest.Server

	mu     sync.Mutex
	titles []string
	bodies []string
}

func newNtfyRecorder(t *testing.T) *ntfyRecorder {
	t.Helper()
	rec := &ntfyRecorder{}
	rec.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		rec.mu.Lock()
		rec.titles = append(rec.titles, r.Header.Get("Title"))
		rec.bodies = append(rec.bodies, string(body))
		rec.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(rec.server.Close)
	return rec
}

func (r *ntfyRecorder) received() ([]string, []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.titles...), append([]string(nil), r.bodies...)
}

func enableNotifications(t *testing.T, env *cliTestEnv, topic string) {
	t.Helper()
	data, err := os.ReadFile(env.configPath)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	content := string(data) + fmt.Sprintf("\n[notifications]\nntfy_topic = %q\n", topic)
	writeFile(t, env.configPath, content)
}

func TestSeriesCommandSendsNotification(t *testing.T) {
	env := setupCLITestEnv(t)
	rec := newNtfyRecorder(t)
	enableNotifications(t, env, rec.server.URL)

	if _, errOut, err := runCLI(t, []string{"series", "-l", env.libraryPath}, env.configPath); err != nil {
		t.Fatalf("series: %v (stderr=%s)", err, errOut)
	}
	titles, bodies := rec.received()
	if len(titles) != 1 || titles[0] != "audibleseries - New Books" {
		t.Fatalf("unexpected notifications: %v", titles)
	}
	requireContains(t, bodies[0], "- Alpha: Next One (2020-06-01)")
	requireContains(t, bodies[0], "- Beta: Pre One (2020-07-01)")

	if _, _, err := runCLI(t, []string{"series", "-l", env.libraryPath, "--no-notify"}, env.configPath); err != nil {
		t.Fatalf("series --no-notify: %v", err)
	}
	if titles, _ := rec.received(); len(titles) != 1 {
		t.Fatalf("expected --no-notify to suppress notifications, got %v", titles)
	}
}

func TestTestNotifyCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"test-notify"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "notifications are disabled") {
		t.Fatalf("expected disabled error, got %v", err)
	}

	rec := newNtfyRecorder(t)
	enableNotifications(t, env, rec.server.URL)
	out, _, err := runCLI(t, []string{"test-notify"}, env.configPath)
	if err != nil {
		t.Fatalf("test-notify: %v", err)
	}
	requireContains(t, out, "Test notification sent")
	if titles, _ := rec.received(); len(titles) != 1 || titles[0] != "audibleseries - Test" {
		t.Fatalf("unexpected notifications: %v", titles)
	}
}
