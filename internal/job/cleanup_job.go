package job

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"candidature-api/internal/client"
	"candidature-api/internal/repository"
)

// CleanupJob removes temporary attachments that were never confirmed
type CleanupJob struct {
	attachmentRepo repository.AttachmentRepository
	storage        client.StorageClient
	logger         *zap.Logger
	now            func() time.Time
}

// NewCleanupJob creates a new CleanupJob instance
func NewCleanupJob(
	attachmentRepo repository.AttachmentRepository,
	storage client.StorageClient,
	logger *zap.Logger,
) *CleanupJob {
	return &CleanupJob{
		attachmentRepo: attachmentRepo,
		storage:        storage,
		logger:         logger,
		now:            time.Now,
	}
}

// Result summarizes one cleanup pass
type Result struct {
	Expired int
	Deleted int
	Failed  int
}

// Run executes one cleanup pass in the background context
func (j *CleanupJob) Run() {
	j.RunContext(context.Background())
}

// RunContext deletes the stored object of every expired TEMP attachment, then
// removes the rows whose object is gone. A row whose object could not be
// deleted is kept for the next pass.
func (j *CleanupJob) RunContext(ctx context.Context) Result {
	j.logger.Info("Starting cleanup job for expired temporary attachments")

	expired, err := j.attachmentRepo.FindExpiredTemp(ctx, j.now())
	if err != nil {
		j.logger.Error("Failed to find expired temporary attachments", zap.Error(err))
		return Result{}
	}

	result := Result{Expired: len(expired)}
	if len(expired) == 0 {
		j.logger.Info("No expired temporary attachments found")
		return result
	}

	var deletedIDs []uuid.UUID
	for _, attachment := range expired {
		if attachment.FileKey == "" {
			j.logger.Warn("Attachment without file key",
				zap.String("attachment_id", attachment.ID.String()))
			deletedIDs = append(deletedIDs, attachment.ID)
			continue
		}

		if err := j.storage.DeleteFile(ctx, attachment.FileKey); err != nil {
			j.logger.Error("Failed to delete file from storage",
				zap.String("attachment_id", attachment.ID.String()),
				zap.String("file_key", attachment.FileKey),
				zap.Error(err),
			)
			result.Failed++
			continue
		}

		deletedIDs = append(deletedIDs, attachment.ID)
		j.logger.Debug("Deleted file from storage",
			zap.String("attachment_id", attachment.ID.String()),
			zap.String("file_key", attachment.FileKey),
		)
	}

	if len(deletedIDs) > 0 {
		if err := j.attachmentRepo.DeleteBatch(ctx, deletedIDs); err != nil {
			j.logger.Error("Failed to delete attachments from database",
				zap.Int("count", len(deletedIDs)),
				zap.Error(err),
			)
			result.Failed += len(deletedIDs)
		} else {
			result.Deleted = len(deletedIDs)
		}
	}

	j.logger.Info("Cleanup job completed",
		zap.Int("total_expired", result.Expired),
		zap.Int("deleted", result.Deleted),
		zap.Int("failed", result.Failed),
	)
	return result
}
