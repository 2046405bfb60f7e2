package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"candidature-api/internal/domain"
	"candidature-api/internal/dto"
	"candidature-api/internal/metrics"
	"candidature-api/internal/realtime"
	"candidature-api/internal/repository"
	"candidature-api/internal/response"
	"candidature-api/internal/session"
)

// SubmissionService defines the interface for submission business logic
type SubmissionService interface {
	Submit(ctx context.Context, candidatureID uuid.UUID, submittedBy *uuid.UUID, req *dto.SubmitRequest) (*domain.Submission, error)
	GetSubmission(ctx context.Context, sess *session.Session, id uuid.UUID) (*domain.Submission, error)
	ListSubmissions(ctx context.Context, sess *session.Session, candidatureID uuid.UUID, page dto.PageQuery) (*dto.PaginatedResponse, error)
	ExportCSV(ctx context.Context, sess *session.Session, candidatureID uuid.UUID, lang domain.Lang, w io.Writer) error
}

type submissionServiceImpl struct {
	submissionRepo  repository.SubmissionRepository
	candidatureRepo repository.CandidatureRepository
	attachmentRepo  repository.AttachmentRepository
	hub             realtime.Hub
	metrics         *metrics.Metrics
	logger          *zap.Logger
	now             func() time.Time
}

// NewSubmissionService creates a new instance of SubmissionService
func NewSubmissionService(
	submissionRepo repository.SubmissionRepository,
	candidatureRepo repository.CandidatureRepository,
	attachmentRepo repository.AttachmentRepository,
	hub realtime.Hub,
	m *metrics.Metrics,
	logger *zap.Logger,
) SubmissionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &submissionServiceImpl{
		submissionRepo:  submissionRepo,
		candidatureRepo: candidatureRepo,
		attachmentRepo:  attachmentRepo,
		hub:             hub,
		metrics:         m,
		logger:          logger,
		now:             time.Now,
	}
}

// Submit validates and stores an applicant's answers, then announces the
// submission on the candidature's live feed.
func (s *submissionServiceImpl) Submit(ctx context.Context, candidatureID uuid.UUID, submittedBy *uuid.UUID, req *dto.SubmitRequest) (*domain.Submission, error) {
	candidature, err := s.candidatureRepo.FindByID(ctx, candidatureID)
	if err != nil {
		return nil, lookupError(err, "Candidature not found", "Failed to fetch candidature")
	}
	if !candidature.Published {
		return nil, response.NewNotFoundError("Candidature not found", "")
	}
	if !candidature.IsOpen(s.now()) {
		s.rejected()
		return nil, response.NewAppError(response.ErrCodeClosed, "Candidature is closed", "")
	}

	checked := checkAnswers(candidature, req.Answers)
	if len(checked.messages) == 0 {
		checked.messages = s.checkAttachments(ctx, checked.attachmentIDs)
	}
	if len(checked.messages) > 0 {
		s.rejected()
		return nil, response.NewValidationErrors(checked.messages)
	}

	submission := &domain.Submission{
		CandidatureID: candidatureID,
		SubmittedBy:   submittedBy,
		Lang:          domain.ParseLang(req.Lang),
		Answers:       checked.answers,
	}
	if submission.Answers == nil {
		submission.Answers = []domain.Answer{}
	}
	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		return nil, internalError("Failed to store submission", err)
	}

	if len(checked.attachmentIDs) > 0 {
		if err := s.attachmentRepo.Confirm(ctx, checked.attachmentIDs, domain.EntityTypeSubmission, submission.ID); err != nil {
			s.logger.Warn("Failed to confirm submission attachments",
				zap.String("submission_id", submission.ID.String()),
				zap.Error(err))
		}
	}

	if s.metrics != nil {
		s.metrics.IncrementSubmissionCreated()
	}
	s.publish(ctx, submission)
	return submission, nil
}

func (s *submissionServiceImpl) rejected() {
	if s.metrics != nil {
		s.metrics.IncrementSubmissionRejected()
	}
}

// checkAttachments requires every file answer to be an unused submission upload.
func (s *submissionServiceImpl) checkAttachments(ctx context.Context, ids []uuid.UUID) []string {
	if len(ids) == 0 {
		return nil
	}
	attachments, err := s.attachmentRepo.FindByIDs(ctx, removeDuplicateUUIDs(ids))
	if err != nil {
		return []string{"uploaded files could not be verified"}
	}
	found := make(map[uuid.UUID]*domain.Attachment, len(attachments))
	for _, a := range attachments {
		found[a.ID] = a
	}

	var msgs []string
	for _, id := range ids {
		a, ok := found[id]
		if !ok || a.EntityType != domain.EntityTypeSubmission || a.Status != domain.AttachmentStatusTemp {
			msgs = append(msgs, fmt.Sprintf("file %s is not an available upload", id))
		}
	}
	return msgs
}

func (s *submissionServiceImpl) publish(ctx context.Context, submission *domain.Submission) {
	if s.hub == nil {
		return
	}
	payload, err := json.Marshal(dto.SubmissionEvent{
		Type:          dto.SubmissionCreatedEvent,
		CandidatureID: submission.CandidatureID.String(),
		Submission:    submission,
	})
	if err != nil {
		s.logger.Error("Failed to encode submission event", zap.Error(err))
		return
	}
	if err := s.hub.Publish(ctx, submission.CandidatureID.String(), payload); err != nil {
		s.logger.Warn("Failed to publish submission event",
			zap.String("candidature_id", submission.CandidatureID.String()),
			zap.Error(err))
	}
}

func (s *submissionServiceImpl) GetSubmission(ctx context.Context, sess *session.Session, id uuid.UUID) (*domain.Submission, error) {
	submission, err := s.submissionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Submission not found", "Failed to fetch submission")
	}
	if _, err := s.scopedCandidature(ctx, sess, submission.CandidatureID); err != nil {
		return nil, err
	}
	return submission, nil
}

func (s *submissionServiceImpl) ListSubmissions(ctx context.Context, sess *session.Session, candidatureID uuid.UUID, page dto.PageQuery) (*dto.PaginatedResponse, error) {
	if _, err := s.scopedCandidature(ctx, sess, candidatureID); err != nil {
		return nil, err
	}
	page = page.Normalize()
	items, total, err := s.submissionRepo.FindByCandidature(ctx, candidatureID, page.Offset(), page.Limit)
	if err != nil {
		return nil, internalError("Failed to fetch submissions", err)
	}
	return &dto.PaginatedResponse{Items: items, Total: total, Page: page.Page, Limit: page.Limit}, nil
}

// scopedCandidature loads the candidature and applies the regional
// coordinator's region restriction.
func (s *submissionServiceImpl) scopedCandidature(ctx context.Context, sess *session.Session, candidatureID uuid.UUID) (*domain.Candidature, error) {
	candidature, err := s.candidatureRepo.FindByID(ctx, candidatureID)
	if err != nil {
		return nil, lookupError(err, "Candidature not found", "Failed to fetch candidature")
	}
	if err := regionError(sess, candidature); err != nil {
		return nil, err
	}
	return candidature, nil
}

// ExportCSV writes one row per submission. Columns are the interactive
// fields of the candidature, labelled in lang; a UTF-8 BOM keeps Arabic
// readable in spreadsheet tools.
func (s *submissionServiceImpl) ExportCSV(ctx context.Context, sess *session.Session, candidatureID uuid.UUID, lang domain.Lang, w io.Writer) error {
	candidature, err := s.scopedCandidature(ctx, sess, candidatureID)
	if err != nil {
		return err
	}

	var columns []domain.Field
	header := []string{"submittedAt"}
	for _, f := range candidature.Fields {
		if f.Type.IsInteractive() {
			columns = append(columns, f)
			header = append(header, f.Label.Render(lang))
		}
	}

	if _, err := io.WriteString(w, "\ufeff"); err != nil {
		return internalError("Failed to write export", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return internalError("Failed to write export", err)
	}

	err = s.submissionRepo.EachByCandidature(ctx, candidatureID, func(sub *domain.Submission) error {
		row := make([]string, 0, len(header))
		row = append(row, sub.CreatedAt.UTC().Format(time.RFC3339))
		for _, f := range columns {
			v, _ := sub.AnswerFor(f.ID)
			row = append(row, formatAnswer(v))
		}
		return cw.Write(row)
	})
	if err != nil {
		return internalError("Failed to export submissions", err)
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return internalError("Failed to write export", err)
	}
	return nil
}
