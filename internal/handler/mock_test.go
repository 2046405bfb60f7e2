package handler

import (
	"context"
	"io"

	"github.com/google/uuid"

	"candidature-api/internal/domain"
	"candidature-api/internal/dto"
	"candidature-api/internal/render"
	"candidature-api/internal/response"
	"candidature-api/internal/service"
	"candidature-api/internal/session"
)

func notFound() error {
	return response.NewNotFoundError("Candidature not found", "")
}

// MockCandidatureService is a mock implementation of CandidatureService
type MockCandidatureService struct {
	CreateCandidatureFunc func(ctx context.Context, createdBy uuid.UUID, candidature *domain.Candidature) (*domain.Candidature, error)
	GetCandidatureFunc    func(ctx context.Context, sess *session.Session, id uuid.UUID) (*domain.Candidature, error)
	ListCandidaturesFunc  func(ctx context.Context, sess *session.Session, query dto.CandidatureListQuery) (*dto.PaginatedResponse, error)
	UpdateCandidatureFunc func(ctx context.Context, id uuid.UUID, candidature *domain.Candidature) (*domain.Candidature, error)
	DeleteCandidatureFunc func(ctx context.Context, id uuid.UUID) error
	SetValidatedFunc      func(ctx context.Context, id uuid.UUID, validated bool) (*domain.Candidature, error)
	SetPublishedFunc      func(ctx context.Context, id uuid.UUID, published bool) (*domain.Candidature, error)
	RenderCandidatureFunc func(ctx context.Context, sess *session.Session, id uuid.UUID, lang domain.Lang) (*render.Form, error)
}

func (m *MockCandidatureService) CreateCandidature(ctx context.Context, createdBy uuid.UUID, candidature *domain.Candidature) (*domain.Candidature, error) {
	if m.CreateCandidatureFunc != nil {
		return m.CreateCandidatureFunc(ctx, createdBy, candidature)
	}
	candidature.ID = uuid.New()
	candidature.CreatedBy = createdBy
	return candidature, nil
}

func (m *MockCandidatureService) GetCandidature(ctx context.Context, sess *session.Session, id uuid.UUID) (*domain.Candidature, error) {
	if m.GetCandidatureFunc != nil {
		return m.GetCandidatureFunc(ctx, sess, id)
	}
	return nil, notFound()
}

func (m *MockCandidatureService) ListCandidatures(ctx context.Context, sess *session.Session, query dto.CandidatureListQuery) (*dto.PaginatedResponse, error) {
	if m.ListCandidaturesFunc != nil {
		return m.ListCandidaturesFunc(ctx, sess, query)
	}
	return &dto.PaginatedResponse{Items: []*domain.Candidature{}, Page: 1, Limit: dto.DefaultPageLimit}, nil
}

func (m *MockCandidatureService) UpdateCandidature(ctx context.Context, id uuid.UUID, candidature *domain.Candidature) (*domain.Candidature, error) {
	if m.UpdateCandidatureFunc != nil {
		return m.UpdateCandidatureFunc(ctx, id, candidature)
	}
	candidature.ID = id
	return candidature, nil
}

func (m *MockCandidatureService) DeleteCandidature(ctx context.Context, id uuid.UUID) error {
	if m.DeleteCandidatureFunc != nil {
		return m.DeleteCandidatureFunc(ctx, id)
	}
	return nil
}

func (m *MockCandidatureService) SetValidated(ctx context.Context, id uuid.UUID, validated bool) (*domain.Candidature, error) {
	if m.SetValidatedFunc != nil {
		return m.SetValidatedFunc(ctx, id, validated)
	}
	return &domain.Candidature{BaseModel: domain.BaseModel{ID: id}, Validated: validated}, nil
}

func (m *MockCandidatureService) SetPublished(ctx context.Context, id uuid.UUID, published bool) (*domain.Candidature, error) {
	if m.SetPublishedFunc != nil {
		return m.SetPublishedFunc(ctx, id, published)
	}
	return &domain.Candidature{BaseModel: domain.BaseModel{ID: id}, Published: published}, nil
}

func (m *MockCandidatureService) RenderCandidature(ctx context.Context, sess *session.Session, id uuid.UUID, lang domain.Lang) (*render.Form, error) {
	if m.RenderCandidatureFunc != nil {
		return m.RenderCandidatureFunc(ctx, sess, id, lang)
	}
	return nil, notFound()
}

// MockSubmissionService is a mock implementation of SubmissionService
type MockSubmissionService struct {
	SubmitFunc          func(ctx context.Context, candidatureID uuid.UUID, submittedBy *uuid.UUID, req *dto.SubmitRequest) (*domain.Submission, error)
	GetSubmissionFunc   func(ctx context.Context, sess *session.Session, id uuid.UUID) (*domain.Submission, error)
	ListSubmissionsFunc func(ctx context.Context, sess *session.Session, candidatureID uuid.UUID, page dto.PageQuery) (*dto.PaginatedResponse, error)
	ExportCSVFunc       func(ctx context.Context, sess *session.Session, candidatureID uuid.UUID, lang domain.Lang, w io.Writer) error
}

func (m *MockSubmissionService) Submit(ctx context.Context, candidatureID uuid.UUID, submittedBy *uuid.UUID, req *dto.SubmitRequest) (*domain.Submission, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, candidatureID, submittedBy, req)
	}
	return &domain.Submission{BaseModel: domain.BaseModel{ID: uuid.New()}, CandidatureID: candidatureID, SubmittedBy: submittedBy}, nil
}

func (m *MockSubmissionService) GetSubmission(ctx context.Context, sess *session.Session, id uuid.UUID) (*domain.Submission, error) {
	if m.GetSubmissionFunc != nil {
		return m.GetSubmissionFunc(ctx, sess, id)
	}
	return nil, response.NewNotFoundError("Submission not found", "")
}

func (m *MockSubmissionService) ListSubmissions(ctx context.Context, sess *session.Session, candidatureID uuid.UUID, page dto.PageQuery) (*dto.PaginatedResponse, error) {
	if m.ListSubmissionsFunc != nil {
		return m.ListSubmissionsFunc(ctx, sess, candidatureID, page)
	}
	return &dto.PaginatedResponse{Items: []*domain.Submission{}, Page: 1, Limit: dto.DefaultPageLimit}, nil
}

func (m *MockSubmissionService) ExportCSV(ctx context.Context, sess *session.Session, candidatureID uuid.UUID, lang domain.Lang, w io.Writer) error {
	if m.ExportCSVFunc != nil {
		return m.ExportCSVFunc(ctx, sess, candidatureID, lang, w)
	}
	_, err := io.WriteString(w, "submittedAt\n")
	return err
}

var (
	_ service.CandidatureService = (*MockCandidatureService)(nil)
	_ service.SubmissionService  = (*MockSubmissionService)(nil)
)
