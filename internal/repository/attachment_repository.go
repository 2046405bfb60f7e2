package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"candidature-api/internal/domain"
)

// AttachmentRepository defines the interface for attachment data access
type AttachmentRepository interface {
	Create(ctx context.Context, attachment *domain.Attachment) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Attachment, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Attachment, error)
	FindExpiredTemp(ctx context.Context, now time.Time) ([]*domain.Attachment, error)
	Confirm(ctx context.Context, ids []uuid.UUID, entityType domain.EntityType, entityID uuid.UUID) error
	DeleteBatch(ctx context.Context, ids []uuid.UUID) error
}

type attachmentRepositoryImpl struct {
	db *gorm.DB
}

// NewAttachmentRepository creates a new instance of AttachmentRepository
func NewAttachmentRepository(db *gorm.DB) AttachmentRepository {
	return &attachmentRepositoryImpl{db: db}
}

func (r *attachmentRepositoryImpl) Create(ctx context.Context, attachment *domain.Attachment) error {
	return r.db.WithContext(ctx).Create(attachment).Error
}

func (r *attachmentRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Attachment, error) {
	var attachment domain.Attachment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&attachment).Error; err != nil {
		return nil, err
	}
	return &attachment, nil
}

func (r *attachmentRepositoryImpl) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Attachment, error) {
	if len(ids) == 0 {
		return []*domain.Attachment{}, nil
	}
	var attachments []*domain.Attachment
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&attachments).Error; err != nil {
		return nil, err
	}
	return attachments, nil
}

// FindExpiredTemp finds temporary attachments whose expiry is before now
func (r *attachmentRepositoryImpl) FindExpiredTemp(ctx context.Context, now time.Time) ([]*domain.Attachment, error) {
	var attachments []*domain.Attachment
	if err := r.db.WithContext(ctx).
		Where("status = ? AND expires_at < ?", domain.AttachmentStatusTemp, now).
		Find(&attachments).Error; err != nil {
		return nil, err
	}
	return attachments, nil
}

// Confirm links TEMP attachments of the given entity type to entityID. Every
// id must still be TEMP, otherwise nothing is confirmed.
func (r *attachmentRepositoryImpl) Confirm(ctx context.Context, ids []uuid.UUID, entityType domain.EntityType, entityID uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&domain.Attachment{}).
			Where("id IN ? AND status = ? AND entity_type = ?", ids, domain.AttachmentStatusTemp, entityType).
			Updates(map[string]interface{}{
				"status":     domain.AttachmentStatusConfirmed,
				"entity_id":  entityID,
				"expires_at": nil,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != int64(len(ids)) {
			return fmt.Errorf("expected to confirm %d attachment(s) but confirmed %d", len(ids), result.RowsAffected)
		}
		return nil
	})
}

func (r *attachmentRepositoryImpl) DeleteBatch(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&domain.Attachment{}).Error
}
