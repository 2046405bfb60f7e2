package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"candidature-api/internal/client"
	"candidature-api/internal/domain"
	"candidature-api/internal/dto"
	"candidature-api/internal/repository"
	"candidature-api/internal/response"
)

const (
	ErrCodeFileTooLarge    = "FILE_TOO_LARGE"
	ErrCodeInvalidFileType = "INVALID_FILE_TYPE"
)

var (
	allowedImageTypes = map[string][]string{
		"image/jpeg": {".jpg", ".jpeg"},
		"image/png":  {".png"},
		"image/gif":  {".gif"},
		"image/webp": {".webp"},
	}

	allowedDocTypes = map[string][]string{
		"application/pdf":          {".pdf"},
		"application/msword":       {".doc"},
		"application/vnd.ms-excel": {".xls"},
		"application/zip":          {".zip"},

		"application/vnd.openxmlformats-officedocument.wordprocessingml.document":   {".docx"},
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         {".xlsx"},
		"application/vnd.openxmlformats-officedocument.presentationml.presentation": {".pptx"},
	}
)

// AttachmentService issues presigned uploads backed by TEMP attachment records
type AttachmentService interface {
	CreatePresignedUpload(ctx context.Context, uploadedBy uuid.UUID, req *dto.PresignedURLRequest) (*dto.PresignedURLResponse, error)
	GetAttachment(ctx context.Context, id uuid.UUID) (*dto.AttachmentResponse, error)
}

type attachmentServiceImpl struct {
	attachmentRepo repository.AttachmentRepository
	storage        client.StorageClient
	maxFileSize    int64
	tempTTL        time.Duration
	presignExpiry  time.Duration
	logger         *zap.Logger
}

// AttachmentLimits bounds uploads
type AttachmentLimits struct {
	MaxFileSize   int64
	TempTTL       time.Duration
	PresignExpiry time.Duration
}

// NewAttachmentService creates a new instance of AttachmentService
func NewAttachmentService(attachmentRepo repository.AttachmentRepository, storage client.StorageClient, limits AttachmentLimits, logger *zap.Logger) AttachmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &attachmentServiceImpl{
		attachmentRepo: attachmentRepo,
		storage:        storage,
		maxFileSize:    limits.MaxFileSize,
		tempTTL:        limits.TempTTL,
		presignExpiry:  limits.PresignExpiry,
		logger:         logger,
	}
}

// CreatePresignedUpload validates the file, presigns an upload and records a
// TEMP attachment that expires unless a candidature or submission claims it.
func (s *attachmentServiceImpl) CreatePresignedUpload(ctx context.Context, uploadedBy uuid.UUID, req *dto.PresignedURLRequest) (*dto.PresignedURLResponse, error) {
	entityType := domain.EntityType(strings.ToUpper(strings.TrimSpace(req.EntityType)))
	if !entityType.IsValid() {
		return nil, response.NewValidationError("entityType must be CANDIDATURE or SUBMISSION", "")
	}
	if req.FileSize <= 0 {
		return nil, response.NewValidationError("File size must be greater than 0", "")
	}
	if s.maxFileSize > 0 && req.FileSize > s.maxFileSize {
		return nil, response.NewAppError(ErrCodeFileTooLarge, fmt.Sprintf("File size exceeds %d bytes", s.maxFileSize), "")
	}
	if err := validateFileType(entityType, req.FileName, req.ContentType); err != nil {
		return nil, response.NewAppError(ErrCodeInvalidFileType, err.Error(), "")
	}

	uploadURL, fileKey, err := s.storage.PresignUpload(ctx, entityType, req.FileName, req.ContentType)
	if err != nil {
		return nil, internalError("Failed to generate presigned URL", err)
	}

	expiresAt := time.Now().Add(s.tempTTL)
	attachment := &domain.Attachment{
		EntityType:  entityType,
		Status:      domain.AttachmentStatusTemp,
		FileName:    filepath.Base(req.FileName),
		FileKey:     fileKey,
		FileSize:    req.FileSize,
		ContentType: req.ContentType,
		UploadedBy:  &uploadedBy,
		ExpiresAt:   &expiresAt,
	}
	if err := s.attachmentRepo.Create(ctx, attachment); err != nil {
		return nil, internalError("Failed to create attachment record", err)
	}

	s.logger.Debug("Presigned upload issued",
		zap.String("attachment_id", attachment.ID.String()),
		zap.String("entity_type", string(entityType)),
		zap.String("file_key", fileKey))

	return &dto.PresignedURLResponse{
		AttachmentID: attachment.ID,
		UploadURL:    uploadURL,
		FileKey:      fileKey,
		ExpiresIn:    int(s.presignExpiry.Seconds()),
	}, nil
}

func (s *attachmentServiceImpl) GetAttachment(ctx context.Context, id uuid.UUID) (*dto.AttachmentResponse, error) {
	attachment, err := s.attachmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Attachment not found", "Failed to fetch attachment")
	}
	url, err := s.storage.PresignDownload(ctx, attachment.FileKey)
	if err != nil {
		return nil, internalError("Failed to generate download URL", err)
	}
	return &dto.AttachmentResponse{
		ID:          attachment.ID,
		FileName:    attachment.FileName,
		FileURL:     url,
		FileSize:    attachment.FileSize,
		ContentType: attachment.ContentType,
		Status:      string(attachment.Status),
		UploadedAt:  attachment.CreatedAt,
	}, nil
}

// validateFileType checks the content type against the extension. Cover
// images of candidatures must be images.
func validateFileType(entityType domain.EntityType, fileName, contentType string) error {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" {
		return fmt.Errorf("file name %q has no extension", fileName)
	}

	exts, ok := allowedImageTypes[contentType]
	if !ok && entityType == domain.EntityTypeSubmission {
		exts, ok = allowedDocTypes[contentType]
	}
	if !ok {
		return fmt.Errorf("content type %q is not allowed", contentType)
	}
	for _, e := range exts {
		if e == ext {
			return nil
		}
	}
	return fmt.Errorf("extension %q does not match content type %q", ext, contentType)
}
