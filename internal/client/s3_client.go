package client

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	appConfig "candidature-api/internal/config"
	"candidature-api/internal/domain"
)

const (
	keyRoot              = "candidature"
	defaultPresignExpiry = 5 * time.Minute
	// internalMinIOHost is the MinIO host seen from inside the compose network.
	internalMinIOHost = "minio:9000"
)

// StorageClient defines the object storage operations used by attachments
type StorageClient interface {
	GenerateFileKey(entityType domain.EntityType, fileExt string) (string, error)
	PresignUpload(ctx context.Context, entityType domain.EntityType, fileName, contentType string) (string, string, error)
	PresignDownload(ctx context.Context, key string) (string, error)
	DeleteFile(ctx context.Context, key string) error
	GetFileURL(key string) string
}

// S3Client wraps the AWS S3 client and implements StorageClient
type S3Client struct {
	client        *s3.Client
	presignClient *s3.PresignClient
	bucket        string
	region        string
	endpoint      string // set for MinIO
	expiry        time.Duration
	now           func() time.Time
}

// NewS3Client creates a new S3 client. Static credentials are used whenever
// both keys are configured; an endpoint (MinIO) requires them and switches to
// path-style addressing.
func NewS3Client(cfg *appConfig.S3Config) (*S3Client, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket is required")
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("S3 region is required")
	}

	if cfg.Endpoint != "" && (cfg.AccessKey == "" || cfg.SecretKey == "") {
		return nil, fmt.Errorf("access key and secret key are required for MinIO endpoint")
	}

	// Configured keys win over the default chain (env, shared files, IAM role).
	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(context.TODO(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	expiry := cfg.PresignExpiry
	if expiry <= 0 {
		expiry = defaultPresignExpiry
	}

	return &S3Client{
		client:        s3Client,
		presignClient: s3.NewPresignClient(s3Client),
		bucket:        cfg.Bucket,
		region:        cfg.Region,
		endpoint:      cfg.Endpoint,
		expiry:        expiry,
		now:           time.Now,
	}, nil
}

func entityFolder(entityType domain.EntityType) (string, error) {
	switch entityType {
	case domain.EntityTypeCandidature:
		return "candidatures", nil
	case domain.EntityTypeSubmission:
		return "submissions", nil
	}
	return "", fmt.Errorf("invalid entity type: %s (must be 'CANDIDATURE' or 'SUBMISSION')", entityType)
}

// buildFileKey formats candidature/{folder}/{year}/{month}/{uuid}_{timestamp}{ext}
func buildFileKey(entityType domain.EntityType, fileExt string, now time.Time) (string, error) {
	folder, err := entityFolder(entityType)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s/%s/%s/%s_%d%s",
		keyRoot, folder, now.Format("2006"), now.Format("01"), uuid.NewString(), now.Unix(), strings.ToLower(fileExt)), nil
}

// GenerateFileKey generates a unique object key for the entity type
func (c *S3Client) GenerateFileKey(entityType domain.EntityType, fileExt string) (string, error) {
	return buildFileKey(entityType, fileExt, c.now())
}

// PresignUpload returns a presigned PUT url and the key it writes to
func (c *S3Client) PresignUpload(ctx context.Context, entityType domain.EntityType, fileName, contentType string) (string, string, error) {
	fileKey, err := c.GenerateFileKey(entityType, filepath.Ext(fileName))
	if err != nil {
		return "", "", fmt.Errorf("failed to generate file key: %w", err)
	}

	req, err := c.presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(fileKey),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(c.expiry))
	if err != nil {
		return "", "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return c.externalURL(req.URL), fileKey, nil
}

// PresignDownload returns a presigned GET url for key
func (c *S3Client) PresignDownload(ctx context.Context, key string) (string, error) {
	req, err := c.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(c.expiry))
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return c.externalURL(req.URL), nil
}

// externalURL swaps the in-network MinIO host for the configured endpoint host.
func (c *S3Client) externalURL(u string) string {
	if c.endpoint == "" {
		return u
	}
	externalHost := strings.TrimPrefix(strings.TrimPrefix(c.endpoint, "http://"), "https://")
	return strings.Replace(u, internalMinIOHost, externalHost, 1)
}

// DeleteFile deletes an object
func (c *S3Client) DeleteFile(ctx context.Context, key string) error {
	_, err := c.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}
	return nil
}

// GetFileURL returns the public URL of an object
func (c *S3Client) GetFileURL(key string) string {
	if c.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(c.endpoint, "/"), c.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, c.region, key)
}

var _ StorageClient = (*S3Client)(nil)
