package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"candidature-api/internal/domain"
)

// TemplateRepository defines the interface for template data access
type TemplateRepository interface {
	FindAllTemplates(ctx context.Context) ([]*domain.CandidatureTemplate, error)
	FindTemplateByID(ctx context.Context, id uuid.UUID) (*domain.CandidatureTemplate, error)
	CreateTemplate(ctx context.Context, template *domain.CandidatureTemplate) error
	FindStandaloneFields(ctx context.Context) ([]*domain.TemplateField, error)
	FindFieldByID(ctx context.Context, id uuid.UUID) (*domain.TemplateField, error)
	FindFieldsByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.TemplateField, error)
	CreateField(ctx context.Context, field *domain.TemplateField) error
}

type templateRepositoryImpl struct {
	db *gorm.DB
}

// NewTemplateRepository creates a new instance of TemplateRepository
func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepositoryImpl{db: db}
}

func orderedFields(db *gorm.DB) *gorm.DB {
	return db.Order("display_order ASC")
}

func (r *templateRepositoryImpl) FindAllTemplates(ctx context.Context) ([]*domain.CandidatureTemplate, error) {
	var templates []*domain.CandidatureTemplate
	if err := r.db.WithContext(ctx).
		Preload("Fields", orderedFields).
		Order("created_at ASC").
		Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *templateRepositoryImpl) FindTemplateByID(ctx context.Context, id uuid.UUID) (*domain.CandidatureTemplate, error) {
	var template domain.CandidatureTemplate
	if err := r.db.WithContext(ctx).
		Preload("Fields", orderedFields).
		Where("id = ?", id).
		First(&template).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

// CreateTemplate inserts the template and its fields in one transaction.
func (r *templateRepositoryImpl) CreateTemplate(ctx context.Context, template *domain.CandidatureTemplate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(template).Error
	})
}

// FindStandaloneFields returns the palette fields that belong to no template.
func (r *templateRepositoryImpl) FindStandaloneFields(ctx context.Context) ([]*domain.TemplateField, error) {
	var fields []*domain.TemplateField
	if err := r.db.WithContext(ctx).
		Where("template_id IS NULL").
		Order("display_order ASC, created_at ASC").
		Find(&fields).Error; err != nil {
		return nil, err
	}
	return fields, nil
}

func (r *templateRepositoryImpl) FindFieldByID(ctx context.Context, id uuid.UUID) (*domain.TemplateField, error) {
	var field domain.TemplateField
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&field).Error; err != nil {
		return nil, err
	}
	return &field, nil
}

func (r *templateRepositoryImpl) FindFieldsByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.TemplateField, error) {
	if len(ids) == 0 {
		return []*domain.TemplateField{}, nil
	}
	var fields []*domain.TemplateField
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&fields).Error; err != nil {
		return nil, err
	}
	return fields, nil
}

func (r *templateRepositoryImpl) CreateField(ctx context.Context, field *domain.TemplateField) error {
	return r.db.WithContext(ctx).Create(field).Error
}
