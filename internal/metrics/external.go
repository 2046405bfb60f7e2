package metrics

import (
	"context"
	"errors"
	"strings"
	"time"
)

// RecordStorageCall records an object storage call (presign, delete, ...).
func (m *Metrics) RecordStorageCall(operation string, duration time.Duration, err error) {
	m.safeExecute("RecordStorageCall", func() {
		result := "success"
		if err != nil {
			result = "error"
			m.StorageErrors.WithLabelValues(operation, storageErrorType(err)).Inc()
		}
		m.StorageRequestsTotal.WithLabelValues(operation, result).Inc()
		m.StorageRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
	})
}

// storageErrorType categorizes storage errors for the error_type label
func storageErrorType(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "connection_refused"
	case strings.Contains(msg, "no such host"):
		return "dns_error"
	case strings.Contains(msg, "timeout"):
		return "timeout"
	case strings.Contains(msg, "AccessDenied"), strings.Contains(msg, "Forbidden"):
		return "forbidden"
	case strings.Contains(msg, "NoSuchKey"), strings.Contains(msg, "NotFound"):
		return "not_found"
	case strings.Contains(msg, "EOF"), strings.Contains(msg, "connection reset"):
		return "connection_reset"
	}
	return "unknown"
}
