package metrics

import (
	"strconv"
	"strings"
	"time"
)

// RecordHTTPRequest records one finished request under its route pattern
func (m *Metrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	m.safeExecute("RecordHTTPRequest", func() {
		m.HTTPRequestsTotal.WithLabelValues(method, endpoint, statusClass(statusCode)).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
	})
}

// statusClass maps 2xx..5xx codes to their class label; anything else is "unknown".
func statusClass(code int) string {
	if code < 200 || code > 599 {
		return "unknown"
	}
	return strconv.Itoa(code/100) + "xx"
}

// probeSuffixes are served both at the root and under the base path.
var probeSuffixes = []string{"/metrics", "/health", "/ready"}

// ShouldSkipEndpoint reports whether path is excluded from request metrics:
// probes, API docs, and the submission feed upgrade, whose duration is the
// whole websocket lifetime.
func ShouldSkipEndpoint(path string) bool {
	for _, suffix := range probeSuffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	if strings.Contains(path, "/swagger/") {
		return true
	}
	return strings.HasSuffix(path, "/feed")
}
