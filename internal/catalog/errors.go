package catalog

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// StatusError reports a non-200 catalog response.
type StatusError struct {
	ASIN       string
	StatusCode int
	Body       string
	Latency    time.Duration
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("catalog sims for %s returned %d (latency=%v)", e.ASIN, e.StatusCode, e.Latency)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

func readSnippet(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
