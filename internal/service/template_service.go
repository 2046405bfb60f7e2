package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"candidature-api/internal/domain"
	"candidature-api/internal/dto"
	"candidature-api/internal/repository"
	"candidature-api/internal/response"
)

// TemplateService defines the interface for template business logic
type TemplateService interface {
	ListTemplates(ctx context.Context) ([]*domain.CandidatureTemplate, error)
	GetTemplate(ctx context.Context, id uuid.UUID) (*domain.CandidatureTemplate, error)
	CreateTemplate(ctx context.Context, req *dto.CreateTemplateRequest) (*domain.CandidatureTemplate, error)
	ListTemplateFields(ctx context.Context) ([]*domain.TemplateField, error)
	CreateTemplateField(ctx context.Context, req *dto.TemplateFieldRequest) (*domain.TemplateField, error)
}

type templateServiceImpl struct {
	templateRepo repository.TemplateRepository
	logger       *zap.Logger
}

// NewTemplateService creates a new instance of TemplateService
func NewTemplateService(templateRepo repository.TemplateRepository, logger *zap.Logger) TemplateService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &templateServiceImpl{templateRepo: templateRepo, logger: logger}
}

func (s *templateServiceImpl) ListTemplates(ctx context.Context) ([]*domain.CandidatureTemplate, error) {
	templates, err := s.templateRepo.FindAllTemplates(ctx)
	if err != nil {
		return nil, internalError("Failed to fetch templates", err)
	}
	return templates, nil
}

func (s *templateServiceImpl) GetTemplate(ctx context.Context, id uuid.UUID) (*domain.CandidatureTemplate, error) {
	template, err := s.templateRepo.FindTemplateByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Template not found", "Failed to fetch template")
	}
	return template, nil
}

// CreateTemplate stores a template; fields keep the request order.
func (s *templateServiceImpl) CreateTemplate(ctx context.Context, req *dto.CreateTemplateRequest) (*domain.CandidatureTemplate, error) {
	var msgs []string
	if req.Title.IsEmpty() {
		msgs = append(msgs, "title is required")
	}

	template := &domain.CandidatureTemplate{
		Title:       req.Title,
		Description: req.Description,
		Fields:      make([]domain.TemplateField, 0, len(req.Fields)),
	}
	names := make(map[string]bool, len(req.Fields))
	for i, fr := range req.Fields {
		field := buildTemplateField(fr, i)
		if names[field.Name] {
			msgs = append(msgs, fmt.Sprintf("duplicate field name %q", field.Name))
		}
		names[field.Name] = true
		msgs = append(msgs, field.Validate()...)
		template.Fields = append(template.Fields, *field)
	}
	if len(msgs) > 0 {
		return nil, response.NewValidationErrors(msgs)
	}

	if err := s.templateRepo.CreateTemplate(ctx, template); err != nil {
		return nil, internalError("Failed to create template", err)
	}
	s.logger.Info("Template created",
		zap.String("template_id", template.ID.String()),
		zap.Int("fields", len(template.Fields)))
	return template, nil
}

func (s *templateServiceImpl) ListTemplateFields(ctx context.Context) ([]*domain.TemplateField, error) {
	fields, err := s.templateRepo.FindStandaloneFields(ctx)
	if err != nil {
		return nil, internalError("Failed to fetch template fields", err)
	}
	return fields, nil
}

// CreateTemplateField stores a standalone palette field.
func (s *templateServiceImpl) CreateTemplateField(ctx context.Context, req *dto.TemplateFieldRequest) (*domain.TemplateField, error) {
	field := buildTemplateField(*req, 0)
	if msgs := field.Validate(); len(msgs) > 0 {
		return nil, response.NewValidationErrors(msgs)
	}
	if err := s.templateRepo.CreateField(ctx, field); err != nil {
		return nil, internalError("Failed to create template field", err)
	}
	return field, nil
}

// buildTemplateField assigns persisted option ids. Option-less types drop any options sent.
func buildTemplateField(req dto.TemplateFieldRequest, order int) *domain.TemplateField {
	field := req.ToDomain(order)
	if !field.Type.HasOptions() {
		field.Options = nil
		return field
	}
	for i := range field.Options {
		field.Options[i].ID = uuid.NewString()
	}
	return field
}
