package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"candidature-api/internal/domain"
	"candidature-api/internal/repository"
)

// MockCandidatureRepository is a mock implementation of CandidatureRepository
type MockCandidatureRepository struct {
	CreateFunc      func(ctx context.Context, candidature *domain.Candidature) error
	FindByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.Candidature, error)
	FindAllFunc     func(ctx context.Context, filter repository.CandidatureFilter, offset, limit int) ([]*domain.Candidature, int64, error)
	UpdateFunc      func(ctx context.Context, candidature *domain.Candidature) error
	UpdateFlagsFunc func(ctx context.Context, id uuid.UUID, flags map[string]interface{}) error
	DeleteFunc      func(ctx context.Context, id uuid.UUID) error
}

func (m *MockCandidatureRepository) Create(ctx context.Context, candidature *domain.Candidature) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, candidature)
	}
	if candidature.ID == uuid.Nil {
		candidature.ID = uuid.New()
	}
	return nil
}

func (m *MockCandidatureRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Candidature, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockCandidatureRepository) FindAll(ctx context.Context, filter repository.CandidatureFilter, offset, limit int) ([]*domain.Candidature, int64, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx, filter, offset, limit)
	}
	return []*domain.Candidature{}, 0, nil
}

func (m *MockCandidatureRepository) Update(ctx context.Context, candidature *domain.Candidature) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, candidature)
	}
	return nil
}

func (m *MockCandidatureRepository) UpdateFlags(ctx context.Context, id uuid.UUID, flags map[string]interface{}) error {
	if m.UpdateFlagsFunc != nil {
		return m.UpdateFlagsFunc(ctx, id, flags)
	}
	return nil
}

func (m *MockCandidatureRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockTemplateRepository is a mock implementation of TemplateRepository
type MockTemplateRepository struct {
	FindAllTemplatesFunc     func(ctx context.Context) ([]*domain.CandidatureTemplate, error)
	FindTemplateByIDFunc     func(ctx context.Context, id uuid.UUID) (*domain.CandidatureTemplate, error)
	CreateTemplateFunc       func(ctx context.Context, template *domain.CandidatureTemplate) error
	FindStandaloneFieldsFunc func(ctx context.Context) ([]*domain.TemplateField, error)
	FindFieldByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.TemplateField, error)
	FindFieldsByIDsFunc      func(ctx context.Context, ids []uuid.UUID) ([]*domain.TemplateField, error)
	CreateFieldFunc          func(ctx context.Context, field *domain.TemplateField) error
}

func (m *MockTemplateRepository) FindAllTemplates(ctx context.Context) ([]*domain.CandidatureTemplate, error) {
	if m.FindAllTemplatesFunc != nil {
		return m.FindAllTemplatesFunc(ctx)
	}
	return []*domain.CandidatureTemplate{}, nil
}

func (m *MockTemplateRepository) FindTemplateByID(ctx context.Context, id uuid.UUID) (*domain.CandidatureTemplate, error) {
	if m.FindTemplateByIDFunc != nil {
		return m.FindTemplateByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockTemplateRepository) CreateTemplate(ctx context.Context, template *domain.CandidatureTemplate) error {
	if m.CreateTemplateFunc != nil {
		return m.CreateTemplateFunc(ctx, template)
	}
	return nil
}

func (m *MockTemplateRepository) FindStandaloneFields(ctx context.Context) ([]*domain.TemplateField, error) {
	if m.FindStandaloneFieldsFunc != nil {
		return m.FindStandaloneFieldsFunc(ctx)
	}
	return []*domain.TemplateField{}, nil
}

func (m *MockTemplateRepository) FindFieldByID(ctx context.Context, id uuid.UUID) (*domain.TemplateField, error) {
	if m.FindFieldByIDFunc != nil {
		return m.FindFieldByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockTemplateRepository) FindFieldsByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.TemplateField, error) {
	if m.FindFieldsByIDsFunc != nil {
		return m.FindFieldsByIDsFunc(ctx, ids)
	}
	return []*domain.TemplateField{}, nil
}

func (m *MockTemplateRepository) CreateField(ctx context.Context, field *domain.TemplateField) error {
	if m.CreateFieldFunc != nil {
		return m.CreateFieldFunc(ctx, field)
	}
	return nil
}

// MockSubmissionRepository is a mock implementation of SubmissionRepository
type MockSubmissionRepository struct {
	CreateFunc            func(ctx context.Context, submission *domain.Submission) error
	FindByIDFunc          func(ctx context.Context, id uuid.UUID) (*domain.Submission, error)
	FindByCandidatureFunc func(ctx context.Context, candidatureID uuid.UUID, offset, limit int) ([]*domain.Submission, int64, error)
	EachByCandidatureFunc func(ctx context.Context, candidatureID uuid.UUID, fn func(*domain.Submission) error) error
}

func (m *MockSubmissionRepository) Create(ctx context.Context, submission *domain.Submission) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, submission)
	}
	if submission.ID == uuid.Nil {
		submission.ID = uuid.New()
	}
	return nil
}

func (m *MockSubmissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockSubmissionRepository) FindByCandidature(ctx context.Context, candidatureID uuid.UUID, offset, limit int) ([]*domain.Submission, int64, error) {
	if m.FindByCandidatureFunc != nil {
		return m.FindByCandidatureFunc(ctx, candidatureID, offset, limit)
	}
	return []*domain.Submission{}, 0, nil
}

func (m *MockSubmissionRepository) EachByCandidature(ctx context.Context, candidatureID uuid.UUID, fn func(*domain.Submission) error) error {
	if m.EachByCandidatureFunc != nil {
		return m.EachByCandidatureFunc(ctx, candidatureID, fn)
	}
	return nil
}

// MockAttachmentRepository is a mock implementation of AttachmentRepository
type MockAttachmentRepository struct {
	CreateFunc          func(ctx context.Context, attachment *domain.Attachment) error
	FindByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.Attachment, error)
	FindByIDsFunc       func(ctx context.Context, ids []uuid.UUID) ([]*domain.Attachment, error)
	FindExpiredTempFunc func(ctx context.Context, now time.Time) ([]*domain.Attachment, error)
	ConfirmFunc         func(ctx context.Context, ids []uuid.UUID, entityType domain.EntityType, entityID uuid.UUID) error
	DeleteBatchFunc     func(ctx context.Context, ids []uuid.UUID) error
}

func (m *MockAttachmentRepository) Create(ctx context.Context, attachment *domain.Attachment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, attachment)
	}
	if attachment.ID == uuid.Nil {
		attachment.ID = uuid.New()
	}
	return nil
}

func (m *MockAttachmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Attachment, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockAttachmentRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Attachment, error) {
	if m.FindByIDsFunc != nil {
		return m.FindByIDsFunc(ctx, ids)
	}
	return []*domain.Attachment{}, nil
}

func (m *MockAttachmentRepository) FindExpiredTemp(ctx context.Context, now time.Time) ([]*domain.Attachment, error) {
	if m.FindExpiredTempFunc != nil {
		return m.FindExpiredTempFunc(ctx, now)
	}
	return []*domain.Attachment{}, nil
}

func (m *MockAttachmentRepository) Confirm(ctx context.Context, ids []uuid.UUID, entityType domain.EntityType, entityID uuid.UUID) error {
	if m.ConfirmFunc != nil {
		return m.ConfirmFunc(ctx, ids, entityType, entityID)
	}
	return nil
}

func (m *MockAttachmentRepository) DeleteBatch(ctx context.Context, ids []uuid.UUID) error {
	if m.DeleteBatchFunc != nil {
		return m.DeleteBatchFunc(ctx, ids)
	}
	return nil
}

var (
	_ repository.CandidatureRepository = (*MockCandidatureRepository)(nil)
	_ repository.TemplateRepository    = (*MockTemplateRepository)(nil)
	_ repository.SubmissionRepository  = (*MockSubmissionRepository)(nil)
	_ repository.AttachmentRepository  = (*MockAttachmentRepository)(nil)
)
