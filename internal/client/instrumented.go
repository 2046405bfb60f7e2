package client

import (
	"context"
	"time"

	"candidature-api/internal/domain"
	"candidature-api/internal/metrics"
)

// instrumentedStorage records the duration and outcome of every remote call.
type instrumentedStorage struct {
	next    StorageClient
	metrics *metrics.Metrics
}

// WithMetrics wraps a StorageClient with storage metrics. A nil m returns next.
func WithMetrics(next StorageClient, m *metrics.Metrics) StorageClient {
	if m == nil {
		return next
	}
	return &instrumentedStorage{next: next, metrics: m}
}

func (s *instrumentedStorage) GenerateFileKey(entityType domain.EntityType, fileExt string) (string, error) {
	return s.next.GenerateFileKey(entityType, fileExt)
}

func (s *instrumentedStorage) PresignUpload(ctx context.Context, entityType domain.EntityType, fileName, contentType string) (string, string, error) {
	start := time.Now()
	url, key, err := s.next.PresignUpload(ctx, entityType, fileName, contentType)
	s.metrics.RecordStorageCall("presign_upload", time.Since(start), err)
	return url, key, err
}

func (s *instrumentedStorage) PresignDownload(ctx context.Context, key string) (string, error) {
	start := time.Now()
	url, err := s.next.PresignDownload(ctx, key)
	s.metrics.RecordStorageCall("presign_download", time.Since(start), err)
	return url, err
}

func (s *instrumentedStorage) DeleteFile(ctx context.Context, key string) error {
	start := time.Now()
	err := s.next.DeleteFile(ctx, key)
	s.metrics.RecordStorageCall("delete", time.Since(start), err)
	return err
}

func (s *instrumentedStorage) GetFileURL(key string) string {
	return s.next.GetFileURL(key)
}
