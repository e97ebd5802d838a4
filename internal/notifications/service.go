package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"audibleseries/internal/config"
	"audibleseries/internal/librarian"
	"audibleseries/internal/library"
)

const (
	userAgent      = "audibleseries"
	defaultTimeout = 10 * time.Second
	maxListedBooks = 10
)

// Service defines the notification surface used by the CLI.
type Service interface {
	// NotifyResult announces newly available and preordered books. Results
	// with neither send nothing.
	NotifyResult(ctx context.Context, res librarian.Result) error
	NotifyError(ctx context.Context, err error, context string) error
	TestNotification(ctx context.Context) error
	Enabled() bool
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	if cfg == nil {
		return noopService{}
	}
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) Enabled() bool { return true }

func (n *ntfyService) NotifyResult(ctx context.Context, res librarian.Result) error {
	sorted := res.Sorted()
	if len(sorted.NewlyAvailable) == 0 && len(sorted.Preordered) == 0 {
		return nil
	}

	var builder strings.Builder
	if len(sorted.NewlyAvailable) > 0 {
		fmt.Fprintf(&builder, "New books in %d series:\n", len(sorted.NewlyAvailable))
		writeBookList(&builder, sorted.NewlyAvailable)
	}
	if len(sorted.Preordered) > 0 {
		if builder.Len() > 0 {
			builder.WriteByte('\n')
		}
		fmt.Fprintf(&builder, "Already preordered in %d series:\n", len(sorted.Preordered))
		writeBookList(&builder, sorted.Preordered)
	}

	data := payload{
		title:   "audibleseries - New Books",
		message: strings.TrimRight(builder.String(), "\n"),
		tags:    []string{"audibleseries", "books", "new"},
	}
	if len(sorted.NewlyAvailable) == 0 {
		data.title = "audibleseries - Preorders"
		data.tags = []string{"audibleseries", "books", "preordered"}
		data.priority = "low"
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	var builder strings.Builder
	builder.WriteString("Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "audibleseries - Error",
		message:  builder.String(),
		tags:     []string{"audibleseries", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "audibleseries - Test",
		message:  "Notification system test",
		tags:     []string{"audibleseries", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func writeBookList(b *strings.Builder, books []library.Book) {
	for i, book := range books {
		if i == maxListedBooks {
			fmt.Fprintf(b, "...and %d more\n", len(books)-maxListedBooks)
			return
		}
		fmt.Fprintf(b, "- %s: %s (%s)\n", book.SeriesTitle, book.Title, book.ReleaseDate.Format(library.DateLayout))
	}
}

type noopService struct{}

func (noopService) Enabled() bool                                        { return false }
func (noopService) NotifyResult(context.Context, librarian.Result) error { return nil }
func (noopService) NotifyError(context.Context, error, string) error     { return nil }
func (noopService) TestNotification(context.Context) error               { return nil }
