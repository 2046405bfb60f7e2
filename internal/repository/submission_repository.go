package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"candidature-api/internal/domain"
)

const exportBatchSize = 200

// SubmissionRepository defines the interface for submission data access
type SubmissionRepository interface {
	Create(ctx context.Context, submission *domain.Submission) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error)
	FindByCandidature(ctx context.Context, candidatureID uuid.UUID, offset, limit int) ([]*domain.Submission, int64, error)
	EachByCandidature(ctx context.Context, candidatureID uuid.UUID, fn func(*domain.Submission) error) error
}

type submissionRepositoryImpl struct {
	db *gorm.DB
}

// NewSubmissionRepository creates a new instance of SubmissionRepository
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepositoryImpl{db: db}
}

func (r *submissionRepositoryImpl) Create(ctx context.Context, submission *domain.Submission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *submissionRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	var submission domain.Submission
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&submission).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *submissionRepositoryImpl) FindByCandidature(ctx context.Context, candidatureID uuid.UUID, offset, limit int) ([]*domain.Submission, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Submission{}).Where("candidature_id = ?", candidatureID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var submissions []*domain.Submission
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&submissions).Error; err != nil {
		return nil, 0, err
	}
	return submissions, total, nil
}

// EachByCandidature visits every submission of a candidature, oldest first,
// loading them in batches.
func (r *submissionRepositoryImpl) EachByCandidature(ctx context.Context, candidatureID uuid.UUID, fn func(*domain.Submission) error) error {
	var batch []*domain.Submission
	result := r.db.WithContext(ctx).
		Where("candidature_id = ?", candidatureID).
		Order("created_at ASC").
		FindInBatches(&batch, exportBatchSize, func(tx *gorm.DB, _ int) error {
			for _, s := range batch {
				if err := fn(s); err != nil {
					return err
				}
			}
			return nil
		})
	return result.Error
}
