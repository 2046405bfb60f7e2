package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"candidature-api/internal/domain"
)

// CandidatureFilter narrows candidature listings. Zero values do not filter.
type CandidatureFilter struct {
	Region    string
	Published *bool
	Validated *bool
}

// CandidatureRepository defines the interface for candidature data access
type CandidatureRepository interface {
	Create(ctx context.Context, candidature *domain.Candidature) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Candidature, error)
	FindAll(ctx context.Context, filter CandidatureFilter, offset, limit int) ([]*domain.Candidature, int64, error)
	Update(ctx context.Context, candidature *domain.Candidature) error
	UpdateFlags(ctx context.Context, id uuid.UUID, flags map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type candidatureRepositoryImpl struct {
	db *gorm.DB
}

// NewCandidatureRepository creates a new instance of CandidatureRepository
func NewCandidatureRepository(db *gorm.DB) CandidatureRepository {
	return &candidatureRepositoryImpl{db: db}
}

func (r *candidatureRepositoryImpl) Create(ctx context.Context, candidature *domain.Candidature) error {
	return r.db.WithContext(ctx).Create(candidature).Error
}

func (r *candidatureRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Candidature, error) {
	var candidature domain.Candidature
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&candidature).Error; err != nil {
		return nil, err
	}
	return &candidature, nil
}

func (r *candidatureRepositoryImpl) FindAll(ctx context.Context, filter CandidatureFilter, offset, limit int) ([]*domain.Candidature, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Candidature{})
	if filter.Region != "" {
		query = query.Where("region_fr = ? OR region_ar = ?", filter.Region, filter.Region)
	}
	if filter.Published != nil {
		query = query.Where("published = ?", *filter.Published)
	}
	if filter.Validated != nil {
		query = query.Where("validated = ?", *filter.Validated)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var candidatures []*domain.Candidature
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&candidatures).Error; err != nil {
		return nil, 0, err
	}
	return candidatures, total, nil
}

// Update writes every column of the candidature, zero values included.
func (r *candidatureRepositoryImpl) Update(ctx context.Context, candidature *domain.Candidature) error {
	return r.db.WithContext(ctx).Save(candidature).Error
}

// UpdateFlags updates review columns only. A missing row is gorm.ErrRecordNotFound.
func (r *candidatureRepositoryImpl) UpdateFlags(ctx context.Context, id uuid.UUID, flags map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&domain.Candidature{}).Where("id = ?", id).Updates(flags)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete soft deletes a candidature
func (r *candidatureRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Candidature{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
