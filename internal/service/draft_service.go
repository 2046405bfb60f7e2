package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"candidature-api/internal/builder"
	"candidature-api/internal/domain"
	"candidature-api/internal/dto"
	"candidature-api/internal/metrics"
	"candidature-api/internal/repository"
	"candidature-api/internal/response"
	"candidature-api/internal/session"
)

// DraftService drives the form builder: every call loads the caller's draft,
// applies one builder operation and stores the result.
type DraftService interface {
	Palette(ctx context.Context) (*dto.PaletteResponse, error)
	CreateDraft(ctx context.Context, sess *session.Session, req *dto.CreateDraftRequest) (*builder.Draft, error)
	GetDraft(ctx context.Context, sess *session.Session, draftID string) (*builder.Draft, error)
	DeleteDraft(ctx context.Context, sess *session.Session, draftID string) error
	UpdateMetadata(ctx context.Context, sess *session.Session, draftID string, req *dto.MetadataRequest) (*builder.Draft, error)
	AddField(ctx context.Context, sess *session.Session, draftID string, req *dto.AddFieldRequest) (*builder.Draft, error)
	UpdateField(ctx context.Context, sess *session.Session, draftID, fieldID string, patch builder.FieldPatch) (*builder.Draft, error)
	RemoveField(ctx context.Context, sess *session.Session, draftID, fieldID string) (*builder.Draft, error)
	ReorderFields(ctx context.Context, sess *session.Session, draftID string, order []string) (*builder.Draft, error)
	AddOption(ctx context.Context, sess *session.Session, draftID, fieldID string) (*builder.Draft, error)
	UpdateOption(ctx context.Context, sess *session.Session, draftID, fieldID, optionID string, patch builder.OptionPatch) (*builder.Draft, error)
	RemoveOption(ctx context.Context, sess *session.Session, draftID, fieldID, optionID string) (*builder.Draft, error)
	Select(ctx context.Context, sess *session.Session, draftID, fieldID string) (*builder.Draft, error)
	Drop(ctx context.Context, sess *session.Session, draftID string, req *dto.DropRequest) (*dto.DropResponse, error)
	LoadSource(ctx context.Context, sess *session.Session, draftID string, candidatureID uuid.UUID) (*builder.Draft, error)
	Save(ctx context.Context, sess *session.Session, draftID string) (*domain.Candidature, error)
}

type draftServiceImpl struct {
	store           repository.DraftStore
	candidatureRepo repository.CandidatureRepository
	templateRepo    repository.TemplateRepository
	candidatures    CandidatureService
	metrics         *metrics.Metrics
	logger          *zap.Logger
	newID           builder.IDGenerator
	now             func() time.Time
}

// NewDraftService creates a new instance of DraftService
func NewDraftService(
	store repository.DraftStore,
	candidatureRepo repository.CandidatureRepository,
	templateRepo repository.TemplateRepository,
	candidatures CandidatureService,
	m *metrics.Metrics,
	logger *zap.Logger,
) DraftService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &draftServiceImpl{
		store:           store,
		candidatureRepo: candidatureRepo,
		templateRepo:    templateRepo,
		candidatures:    candidatures,
		metrics:         m,
		logger:          logger,
		newID:           builder.NewUUID,
		now:             time.Now,
	}
}

func fieldNotFound(fieldID string) error {
	return response.NewAppError(response.ErrCodeFieldNotFound, "Field not found", fieldID)
}

func (s *draftServiceImpl) record(op string) {
	if s.metrics != nil {
		s.metrics.RecordDraftOperation(op)
	}
}

// Palette returns the builder components and the reusable template fields.
func (s *draftServiceImpl) Palette(ctx context.Context) (*dto.PaletteResponse, error) {
	fields, err := s.templateRepo.FindStandaloneFields(ctx)
	if err != nil {
		return nil, internalError("Failed to fetch template fields", err)
	}
	return &dto.PaletteResponse{Components: builder.DefaultPalette(), TemplateFields: fields}, nil
}

func (s *draftServiceImpl) CreateDraft(ctx context.Context, sess *session.Session, req *dto.CreateDraftRequest) (*builder.Draft, error) {
	if req.TemplateID != nil && req.CandidatureID != nil {
		return nil, response.NewValidationError("templateId and candidatureId are mutually exclusive", "")
	}

	draft := builder.NewDraft(s.newID(), sess.UserID.String())
	draft.SetIDGenerator(s.newID)

	switch {
	case req.TemplateID != nil:
		template, err := s.templateRepo.FindTemplateByID(ctx, *req.TemplateID)
		if err != nil {
			return nil, lookupError(err, "Template not found", "Failed to fetch template")
		}
		draft.ApplyTemplate(*template)
	case req.CandidatureID != nil:
		candidature, err := s.candidatureRepo.FindByID(ctx, *req.CandidatureID)
		if err != nil {
			return nil, lookupError(err, "Candidature not found", "Failed to fetch candidature")
		}
		draft.ApplyLoad(draft.BeginLoad(candidature.ID.String()), candidature)
	}

	if err := s.put(ctx, draft); err != nil {
		return nil, err
	}
	s.record("create")
	return draft, nil
}

func (s *draftServiceImpl) GetDraft(ctx context.Context, sess *session.Session, draftID string) (*builder.Draft, error) {
	return s.load(ctx, sess, draftID)
}

func (s *draftServiceImpl) DeleteDraft(ctx context.Context, sess *session.Session, draftID string) error {
	if _, err := s.load(ctx, sess, draftID); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, draftID); err != nil && !errors.Is(err, repository.ErrDraftNotFound) {
		return internalError("Failed to delete draft", err)
	}
	s.record("delete")
	return nil
}

func (s *draftServiceImpl) UpdateMetadata(ctx context.Context, sess *session.Session, draftID string, req *dto.MetadataRequest) (*builder.Draft, error) {
	if msgs := req.Conflicts(); len(msgs) > 0 {
		return nil, response.NewValidationErrors(msgs)
	}
	return s.mutate(ctx, sess, draftID, "metadata", func(d *builder.Draft) error {
		req.Apply(&d.Meta)
		return nil
	})
}

// AddField inserts a palette component or a stored template field, at Index
// when given and at the end otherwise.
func (s *draftServiceImpl) AddField(ctx context.Context, sess *session.Session, draftID string, req *dto.AddFieldRequest) (*builder.Draft, error) {
	if (req.Component == nil) == (req.TemplateFieldID == nil) {
		return nil, response.NewValidationError("exactly one of component and templateFieldId is required", "")
	}

	var source *builder.TemplateSource
	if req.TemplateFieldID != nil {
		tf, err := s.templateRepo.FindFieldByID(ctx, *req.TemplateFieldID)
		if err != nil {
			return nil, lookupError(err, "Template field not found", "Failed to fetch template field")
		}
		src := builder.SourceFromTemplateField(*tf)
		source = &src
	} else if !req.Component.Type.IsValid() {
		return nil, response.NewValidationError("unknown field type", string(req.Component.Type))
	}

	return s.mutate(ctx, sess, draftID, "add", func(d *builder.Draft) error {
		factory := builder.NewFactory(s.newID)
		var f domain.Field
		if source != nil {
			f = factory.FromTemplate(*source)
		} else {
			f = factory.NewField(*req.Component)
		}
		if req.Index != nil {
			d.Insert(*req.Index, f)
		} else {
			d.Add(f)
		}
		return nil
	})
}

func (s *draftServiceImpl) UpdateField(ctx context.Context, sess *session.Session, draftID, fieldID string, patch builder.FieldPatch) (*builder.Draft, error) {
	if patch.Type != nil && !patch.Type.IsValid() {
		return nil, response.NewValidationError("unknown field type", string(*patch.Type))
	}
	return s.mutate(ctx, sess, draftID, "update", func(d *builder.Draft) error {
		if _, ok := d.Update(fieldID, patch); !ok {
			return fieldNotFound(fieldID)
		}
		return nil
	})
}

func (s *draftServiceImpl) RemoveField(ctx context.Context, sess *session.Session, draftID, fieldID string) (*builder.Draft, error) {
	return s.mutate(ctx, sess, draftID, "remove", func(d *builder.Draft) error {
		if !d.Remove(fieldID) {
			return fieldNotFound(fieldID)
		}
		return nil
	})
}

func (s *draftServiceImpl) ReorderFields(ctx context.Context, sess *session.Session, draftID string, order []string) (*builder.Draft, error) {
	return s.mutate(ctx, sess, draftID, "reorder", func(d *builder.Draft) error {
		if err := d.Reorder(order); err != nil {
			return response.NewValidationError(err.Error(), "")
		}
		return nil
	})
}

func (s *draftServiceImpl) AddOption(ctx context.Context, sess *session.Session, draftID, fieldID string) (*builder.Draft, error) {
	return s.mutate(ctx, sess, draftID, "add_option", func(d *builder.Draft) error {
		if _, ok := d.AddOption(fieldID); !ok {
			return optionTargetError(d, fieldID, "")
		}
		return nil
	})
}

func (s *draftServiceImpl) UpdateOption(ctx context.Context, sess *session.Session, draftID, fieldID, optionID string, patch builder.OptionPatch) (*builder.Draft, error) {
	return s.mutate(ctx, sess, draftID, "update_option", func(d *builder.Draft) error {
		if _, ok := d.UpdateOption(fieldID, optionID, patch); !ok {
			return optionTargetError(d, fieldID, optionID)
		}
		return nil
	})
}

func (s *draftServiceImpl) RemoveOption(ctx context.Context, sess *session.Session, draftID, fieldID, optionID string) (*builder.Draft, error) {
	return s.mutate(ctx, sess, draftID, "remove_option", func(d *builder.Draft) error {
		if !d.RemoveOption(fieldID, optionID) {
			return optionTargetError(d, fieldID, optionID)
		}
		return nil
	})
}

// optionTargetError explains why an option operation did nothing.
func optionTargetError(d *builder.Draft, fieldID, optionID string) error {
	f, ok := d.Field(fieldID)
	switch {
	case !ok:
		return fieldNotFound(fieldID)
	case f.IsTemplate:
		return response.NewForbiddenError("Options of a template field cannot be edited", fieldID)
	case !f.Type.HasOptions():
		return response.NewValidationError("field type has no options", string(f.Type))
	case len(f.Options) == 1 && f.Options[0].ID == optionID:
		return response.NewValidationError("a choice field keeps at least one option", fieldID)
	}
	return response.NewNotFoundError("Option not found", "")
}

// Select selects fieldID; an empty id clears the selection.
func (s *draftServiceImpl) Select(ctx context.Context, sess *session.Session, draftID, fieldID string) (*builder.Draft, error) {
	return s.mutate(ctx, sess, draftID, "select", func(d *builder.Draft) error {
		if fieldID == "" {
			d.ClearSelection()
			return nil
		}
		if !d.Select(fieldID) {
			return fieldNotFound(fieldID)
		}
		return nil
	})
}

// Drop replays a completed drag gesture on the draft.
func (s *draftServiceImpl) Drop(ctx context.Context, sess *session.Session, draftID string, req *dto.DropRequest) (*dto.DropResponse, error) {
	var result builder.DropResult
	draft, err := s.mutate(ctx, sess, draftID, "drop", func(d *builder.Draft) error {
		tracker := builder.NewDragTracker()
		tracker.Start(builder.DecodeDropPayload(req.Data, req.SourceIndex))
		tracker.Enter(req.Row)
		result = tracker.Drop(d, req.Row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.DropResponse{Draft: draft, Result: result}, nil
}

// LoadSource replaces the draft content with an existing candidature. The
// candidature and the palette fields are fetched concurrently; the result is
// dropped if another load was requested for the draft in the meantime.
func (s *draftServiceImpl) LoadSource(ctx context.Context, sess *session.Session, draftID string, candidatureID uuid.UUID) (*builder.Draft, error) {
	draft, err := s.load(ctx, sess, draftID)
	if err != nil {
		return nil, err
	}
	ticket := draft.BeginLoad(candidatureID.String())
	if err := s.put(ctx, draft); err != nil {
		return nil, err
	}

	var (
		wg          sync.WaitGroup
		candidature *domain.Candidature
		palette     []*domain.TemplateField
		candErr     error
		paletteErr  error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		candidature, candErr = s.candidatureRepo.FindByID(ctx, candidatureID)
	}()
	go func() {
		defer wg.Done()
		palette, paletteErr = s.templateRepo.FindStandaloneFields(ctx)
	}()
	wg.Wait()

	if candErr != nil {
		return nil, lookupError(candErr, "Candidature not found", "Failed to fetch candidature")
	}
	if paletteErr != nil {
		return nil, internalError("Failed to fetch template fields", paletteErr)
	}
	refreshTemplateFields(candidature, palette)

	current, err := s.load(ctx, sess, draftID)
	if err != nil {
		return nil, err
	}
	if !current.ApplyLoad(ticket, candidature) {
		s.logger.Debug("Discarded stale draft load",
			zap.String("draft_id", draftID),
			zap.String("candidature_id", candidatureID.String()))
		return current, nil
	}
	if err := s.put(ctx, current); err != nil {
		return nil, err
	}
	s.record("load")
	return current, nil
}

// refreshTemplateFields brings template-derived fields back in line with the
// current palette definitions.
func refreshTemplateFields(c *domain.Candidature, palette []*domain.TemplateField) {
	sources := make(map[string]builder.TemplateSource, len(palette))
	for _, tf := range palette {
		sources[tf.ID.String()] = builder.SourceFromTemplateField(*tf)
	}
	for i, f := range c.Fields {
		if src, ok := sources[f.TemplateID]; ok {
			c.Fields[i] = builder.EnforceTemplateIdentity(f, src)
		}
	}
}

// Save persists the draft as a candidature: an update when the draft was
// loaded from one, a creation otherwise. The draft is kept in both outcomes.
func (s *draftServiceImpl) Save(ctx context.Context, sess *session.Session, draftID string) (*domain.Candidature, error) {
	draft, err := s.load(ctx, sess, draftID)
	if err != nil {
		return nil, err
	}

	candidature := draft.ToCandidature()
	var saved *domain.Candidature
	if sourceID, parseErr := uuid.Parse(draft.SourceID); parseErr == nil {
		saved, err = s.candidatures.UpdateCandidature(ctx, sourceID, candidature)
	} else {
		saved, err = s.candidatures.CreateCandidature(ctx, sess.UserID, candidature)
	}
	if err != nil {
		return nil, err
	}

	draft.SourceID = saved.ID.String()
	if err := s.put(ctx, draft); err != nil {
		s.logger.Warn("Saved candidature but failed to update draft",
			zap.String("draft_id", draftID),
			zap.String("candidature_id", saved.ID.String()),
			zap.Error(err))
	}
	s.record("save")
	return saved, nil
}

// mutate applies fn to the caller's draft and stores it. When fn fails the
// stored draft is left untouched.
func (s *draftServiceImpl) mutate(ctx context.Context, sess *session.Session, draftID, op string, fn func(*builder.Draft) error) (*builder.Draft, error) {
	draft, err := s.load(ctx, sess, draftID)
	if err != nil {
		return nil, err
	}
	if err := fn(draft); err != nil {
		return nil, err
	}
	if err := s.put(ctx, draft); err != nil {
		return nil, err
	}
	s.record(op)
	return draft, nil
}

func (s *draftServiceImpl) load(ctx context.Context, sess *session.Session, draftID string) (*builder.Draft, error) {
	draft, err := s.store.Get(ctx, draftID)
	if err != nil {
		if errors.Is(err, repository.ErrDraftNotFound) {
			return nil, response.NewNotFoundError("Draft not found", "")
		}
		return nil, internalError("Failed to load draft", err)
	}
	if draft.OwnerID != sess.UserID.String() {
		return nil, response.NewNotFoundError("Draft not found", "")
	}
	draft.SetIDGenerator(s.newID)
	return draft, nil
}

func (s *draftServiceImpl) put(ctx context.Context, draft *builder.Draft) error {
	draft.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, draft); err != nil {
		return internalError("Failed to store draft", err)
	}
	return nil
}
