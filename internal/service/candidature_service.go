package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"candidature-api/internal/builder"
	"candidature-api/internal/client"
	"candidature-api/internal/domain"
	"candidature-api/internal/dto"
	"candidature-api/internal/metrics"
	"candidature-api/internal/render"
	"candidature-api/internal/repository"
	"candidature-api/internal/response"
	"candidature-api/internal/session"
)

// CandidatureService defines the interface for candidature business logic
type CandidatureService interface {
	CreateCandidature(ctx context.Context, createdBy uuid.UUID, candidature *domain.Candidature) (*domain.Candidature, error)
	GetCandidature(ctx context.Context, sess *session.Session, id uuid.UUID) (*domain.Candidature, error)
	ListCandidatures(ctx context.Context, sess *session.Session, query dto.CandidatureListQuery) (*dto.PaginatedResponse, error)
	UpdateCandidature(ctx context.Context, id uuid.UUID, candidature *domain.Candidature) (*domain.Candidature, error)
	DeleteCandidature(ctx context.Context, id uuid.UUID) error
	SetValidated(ctx context.Context, id uuid.UUID, validated bool) (*domain.Candidature, error)
	SetPublished(ctx context.Context, id uuid.UUID, published bool) (*domain.Candidature, error)
	RenderCandidature(ctx context.Context, sess *session.Session, id uuid.UUID, lang domain.Lang) (*render.Form, error)
}

type candidatureServiceImpl struct {
	candidatureRepo repository.CandidatureRepository
	templateRepo    repository.TemplateRepository
	attachmentRepo  repository.AttachmentRepository
	storage         client.StorageClient
	metrics         *metrics.Metrics
	logger          *zap.Logger
}

// NewCandidatureService creates a new instance of CandidatureService
func NewCandidatureService(
	candidatureRepo repository.CandidatureRepository,
	templateRepo repository.TemplateRepository,
	attachmentRepo repository.AttachmentRepository,
	storage client.StorageClient,
	m *metrics.Metrics,
	logger *zap.Logger,
) CandidatureService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &candidatureServiceImpl{
		candidatureRepo: candidatureRepo,
		templateRepo:    templateRepo,
		attachmentRepo:  attachmentRepo,
		storage:         storage,
		metrics:         m,
		logger:          logger,
	}
}

// CreateCandidature validates and stores a new, unvalidated and unpublished candidature
func (s *candidatureServiceImpl) CreateCandidature(ctx context.Context, createdBy uuid.UUID, candidature *domain.Candidature) (*domain.Candidature, error) {
	candidature.ID = uuid.Nil
	candidature.CreatedBy = createdBy
	candidature.Validated = false
	candidature.Published = false

	if err := s.prepare(ctx, candidature, nil); err != nil {
		return nil, err
	}

	if err := s.candidatureRepo.Create(ctx, candidature); err != nil {
		return nil, internalError("Failed to create candidature", err)
	}
	s.confirmImage(ctx, candidature, nil)

	if s.metrics != nil {
		s.metrics.IncrementCandidatureCreated()
	}
	s.logger.Info("Candidature created",
		zap.String("candidature_id", candidature.ID.String()),
		zap.String("created_by", createdBy.String()),
		zap.Int("fields", len(candidature.Fields)))
	return candidature, nil
}

// GetCandidature loads one candidature. Regional coordinators get FORBIDDEN
// for candidatures of another region.
func (s *candidatureServiceImpl) GetCandidature(ctx context.Context, sess *session.Session, id uuid.UUID) (*domain.Candidature, error) {
	candidature, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := regionError(sess, candidature); err != nil {
		return nil, err
	}
	return candidature, nil
}

func (s *candidatureServiceImpl) find(ctx context.Context, id uuid.UUID) (*domain.Candidature, error) {
	candidature, err := s.candidatureRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Candidature not found", "Failed to fetch candidature")
	}
	return candidature, nil
}

// ListCandidatures returns one page of candidatures. Regional coordinators only
// see their own region.
func (s *candidatureServiceImpl) ListCandidatures(ctx context.Context, sess *session.Session, query dto.CandidatureListQuery) (*dto.PaginatedResponse, error) {
	page := query.PageQuery.Normalize()
	filter := repository.CandidatureFilter{
		Region:    query.Region,
		Published: query.Published,
		Validated: query.Validated,
	}
	if sess.RegionRestricted() {
		scope := sess.RegionScope()
		if scope == "" {
			return nil, response.NewForbiddenError("No region assigned", "")
		}
		filter.Region = scope
	}

	items, total, err := s.candidatureRepo.FindAll(ctx, filter, page.Offset(), page.Limit)
	if err != nil {
		return nil, internalError("Failed to fetch candidatures", err)
	}

	summaries := make([]dto.CandidatureSummary, 0, len(items))
	for _, c := range items {
		summaries = append(summaries, dto.NewCandidatureSummary(c))
	}
	return &dto.PaginatedResponse{Items: summaries, Total: total, Page: page.Page, Limit: page.Limit}, nil
}

// UpdateCandidature replaces metadata and the whole fields array. Review flags
// and authorship are kept.
func (s *candidatureServiceImpl) UpdateCandidature(ctx context.Context, id uuid.UUID, candidature *domain.Candidature) (*domain.Candidature, error) {
	existing, err := s.candidatureRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Candidature not found", "Failed to fetch candidature")
	}

	candidature.BaseModel = existing.BaseModel
	candidature.CreatedBy = existing.CreatedBy
	candidature.Validated = existing.Validated
	candidature.Published = existing.Published

	if err := s.prepare(ctx, candidature, existing); err != nil {
		return nil, err
	}

	if err := s.candidatureRepo.Update(ctx, candidature); err != nil {
		return nil, internalError("Failed to update candidature", err)
	}
	s.confirmImage(ctx, candidature, existing)
	return candidature, nil
}

func (s *candidatureServiceImpl) DeleteCandidature(ctx context.Context, id uuid.UUID) error {
	if err := s.candidatureRepo.Delete(ctx, id); err != nil {
		return lookupError(err, "Candidature not found", "Failed to delete candidature")
	}
	s.logger.Info("Candidature deleted", zap.String("candidature_id", id.String()))
	return nil
}

// SetValidated validates or invalidates a candidature. Invalidating also
// withdraws it, since only validated candidatures stay published.
func (s *candidatureServiceImpl) SetValidated(ctx context.Context, id uuid.UUID, validated bool) (*domain.Candidature, error) {
	flags := map[string]interface{}{"validated": validated}
	if !validated {
		flags["published"] = false
	}
	return s.setFlags(ctx, id, flags)
}

// SetPublished publishes or withdraws a candidature. Only validated
// candidatures can be published.
func (s *candidatureServiceImpl) SetPublished(ctx context.Context, id uuid.UUID, published bool) (*domain.Candidature, error) {
	if published {
		existing, err := s.candidatureRepo.FindByID(ctx, id)
		if err != nil {
			return nil, lookupError(err, "Candidature not found", "Failed to fetch candidature")
		}
		if !existing.Validated {
			return nil, response.NewConflictError("Candidature must be validated before publication", "")
		}
	}
	return s.setFlags(ctx, id, map[string]interface{}{"published": published})
}

func (s *candidatureServiceImpl) setFlags(ctx context.Context, id uuid.UUID, flags map[string]interface{}) (*domain.Candidature, error) {
	if err := s.candidatureRepo.UpdateFlags(ctx, id, flags); err != nil {
		return nil, lookupError(err, "Candidature not found", "Failed to update candidature")
	}
	return s.find(ctx, id)
}

// RenderCandidature resolves the form for one language. Unpublished
// candidatures are only visible to admins.
func (s *candidatureServiceImpl) RenderCandidature(ctx context.Context, sess *session.Session, id uuid.UUID, lang domain.Lang) (*render.Form, error) {
	candidature, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !candidature.Published && !sess.HasRole(session.RoleAdmin) {
		return nil, response.NewNotFoundError("Candidature not found", "")
	}
	form := render.Candidature(candidature, lang)
	return &form, nil
}

// prepare restores template-derived fields, validates the aggregate and
// resolves the cover image. Nothing is written.
func (s *candidatureServiceImpl) prepare(ctx context.Context, candidature *domain.Candidature, existing *domain.Candidature) error {
	if err := s.enforceTemplates(ctx, candidature); err != nil {
		return err
	}

	if msgs := candidature.Validate(); len(msgs) > 0 {
		return response.NewValidationErrors(msgs)
	}

	return s.resolveImage(ctx, candidature, existing)
}

// enforceTemplates resets every template-derived field whose template still
// exists to the template definition.
func (s *candidatureServiceImpl) enforceTemplates(ctx context.Context, candidature *domain.Candidature) error {
	var ids []uuid.UUID
	for _, f := range candidature.Fields {
		if !f.IsTemplate {
			continue
		}
		if id, err := uuid.Parse(f.TemplateID); err == nil {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	templates, err := s.templateRepo.FindFieldsByIDs(ctx, removeDuplicateUUIDs(ids))
	if err != nil {
		return internalError("Failed to fetch template fields", err)
	}
	sources := make(map[string]builder.TemplateSource, len(templates))
	for _, tf := range templates {
		sources[tf.ID.String()] = builder.SourceFromTemplateField(*tf)
	}

	for i, f := range candidature.Fields {
		if src, ok := sources[f.TemplateID]; ok {
			candidature.Fields[i] = builder.EnforceTemplateIdentity(f, src)
		}
	}
	return nil
}

func (s *candidatureServiceImpl) resolveImage(ctx context.Context, candidature *domain.Candidature, existing *domain.Candidature) error {
	if candidature.ImageAttachmentID == nil {
		candidature.ImageURL = ""
		return nil
	}
	if existing != nil && existing.ImageAttachmentID != nil && *existing.ImageAttachmentID == *candidature.ImageAttachmentID {
		candidature.ImageURL = existing.ImageURL
		return nil
	}

	attachment, err := s.attachmentRepo.FindByID(ctx, *candidature.ImageAttachmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewValidationError("image attachment not found", "")
		}
		return internalError("Failed to fetch image attachment", err)
	}
	if attachment.EntityType != domain.EntityTypeCandidature || attachment.Status != domain.AttachmentStatusTemp {
		return response.NewValidationError("image attachment is not an unused candidature upload", "")
	}
	if attachment.ExpiresAt != nil && attachment.ExpiresAt.Before(time.Now()) {
		return response.NewValidationError("image attachment has expired", "")
	}
	candidature.ImageURL = s.storage.GetFileURL(attachment.FileKey)
	return nil
}

// confirmImage links a newly referenced cover image. The candidature is
// already stored, so a failure is logged and left to the cleanup job.
func (s *candidatureServiceImpl) confirmImage(ctx context.Context, candidature *domain.Candidature, existing *domain.Candidature) {
	if candidature.ImageAttachmentID == nil {
		return
	}
	if existing != nil && existing.ImageAttachmentID != nil && *existing.ImageAttachmentID == *candidature.ImageAttachmentID {
		return
	}
	ids := []uuid.UUID{*candidature.ImageAttachmentID}
	if err := s.attachmentRepo.Confirm(ctx, ids, domain.EntityTypeCandidature, candidature.ID); err != nil {
		s.logger.Warn("Failed to confirm candidature image",
			zap.String("candidature_id", candidature.ID.String()),
			zap.Error(fmt.Errorf("confirm attachment: %w", err)))
	}
}
