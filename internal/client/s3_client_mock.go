package client

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"candidature-api/internal/domain"
)

// MockS3Client implements StorageClient for testing without AWS credentials
type MockS3Client struct {
	Bucket   string
	Region   string
	Endpoint string

	// Optional function overrides for custom test behavior
	GenerateFileKeyFunc func(entityType domain.EntityType, fileExt string) (string, error)
	PresignUploadFunc   func(ctx context.Context, entityType domain.EntityType, fileName, contentType string) (string, string, error)
	PresignDownloadFunc func(ctx context.Context, key string) (string, error)
	DeleteFileFunc      func(ctx context.Context, key string) error
	GetFileURLFunc      func(key string) string

	Deleted []string
}

// NewMockS3Client creates a new mock S3 client for testing
func NewMockS3Client() *MockS3Client {
	return &MockS3Client{
		Bucket: "test-bucket",
		Region: "eu-west-3",
	}
}

func (m *MockS3Client) GenerateFileKey(entityType domain.EntityType, fileExt string) (string, error) {
	if m.GenerateFileKeyFunc != nil {
		return m.GenerateFileKeyFunc(entityType, fileExt)
	}
	return buildFileKey(entityType, fileExt, time.Now())
}

func (m *MockS3Client) PresignUpload(ctx context.Context, entityType domain.EntityType, fileName, contentType string) (string, string, error) {
	if m.PresignUploadFunc != nil {
		return m.PresignUploadFunc(ctx, entityType, fileName, contentType)
	}
	fileKey, err := m.GenerateFileKey(entityType, filepath.Ext(fileName))
	if err != nil {
		return "", "", fmt.Errorf("failed to generate file key: %w", err)
	}
	return m.signed(fileKey), fileKey, nil
}

func (m *MockS3Client) PresignDownload(ctx context.Context, key string) (string, error) {
	if m.PresignDownloadFunc != nil {
		return m.PresignDownloadFunc(ctx, key)
	}
	return m.signed(key), nil
}

func (m *MockS3Client) signed(key string) string {
	return fmt.Sprintf("%s?X-Amz-Algorithm=AWS4-HMAC-SHA256&X-Amz-Date=%s&X-Amz-Expires=300&X-Amz-Signature=mocksignature123",
		m.GetFileURL(key), time.Now().UTC().Format("20060102T150405Z"))
}

func (m *MockS3Client) DeleteFile(ctx context.Context, key string) error {
	if m.DeleteFileFunc != nil {
		return m.DeleteFileFunc(ctx, key)
	}
	m.Deleted = append(m.Deleted, key)
	return nil
}

func (m *MockS3Client) GetFileURL(key string) string {
	if m.GetFileURLFunc != nil {
		return m.GetFileURLFunc(key)
	}
	if m.Endpoint != "" && !strings.Contains(m.Endpoint, "amazonaws.com") {
		return fmt.Sprintf("%s/%s/%s", m.Endpoint, m.Bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", m.Bucket, m.Region, key)
}

// Ensure MockS3Client implements StorageClient
var _ StorageClient = (*MockS3Client)(nil)
