package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"candidature-api/internal/dto"
	"candidature-api/internal/response"
	"candidature-api/internal/service"
)

type SubmissionHandler struct {
	submissionService service.SubmissionService
	logger            *zap.Logger
}

func NewSubmissionHandler(submissionService service.SubmissionService, logger *zap.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: submissionService,
		logger:            logger,
	}
}

// Submit godoc
// @Summary      Submit answers to a candidature
// @Description  Public endpoint. Authenticated applicants are recorded as the submitter.
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Param        formId path string true "Candidature ID (UUID)"
// @Param        request body dto.SubmitRequest true "Answers"
// @Success      201 {object} response.SuccessResponse{data=domain.Submission}
// @Failure      400 {object} response.ErrorResponse "Invalid answers; messages lists every problem"
// @Failure      403 {object} response.ErrorResponse "Candidature closed"
// @Failure      404 {object} response.ErrorResponse
// @Router       /submissions/submit/{formId} [post]
func (h *SubmissionHandler) Submit(c *gin.Context) {
	candidatureID, ok := parseUUIDParam(c, "formId", "candidature ID")
	if !ok {
		return
	}

	var req dto.SubmitRequest
	if !bindJSON(c, &req) {
		return
	}

	var submittedBy *uuid.UUID
	if sess := optionalSession(c); sess != nil {
		id := sess.UserID
		submittedBy = &id
	}

	submission, err := h.submissionService.Submit(c.Request.Context(), candidatureID, submittedBy, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, submission)
}

// ListSubmissions godoc
// @Summary      List the submissions of a candidature
// @Tags         submissions
// @Produce      json
// @Param        formId path string true "Candidature ID (UUID)"
// @Param        page query int false "Page (1-based)"
// @Param        limit query int false "Page size (max 100)"
// @Success      200 {object} response.SuccessResponse{data=dto.PaginatedResponse}
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /submissions/candidature/{formId} [get]
func (h *SubmissionHandler) ListSubmissions(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	candidatureID, ok := parseUUIDParam(c, "formId", "candidature ID")
	if !ok {
		return
	}

	var page dto.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid query parameters")
		return
	}

	result, err := h.submissionService.ListSubmissions(c.Request.Context(), sess, candidatureID, page)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// GetSubmission godoc
// @Summary      Get a submission
// @Tags         submissions
// @Produce      json
// @Param        id path string true "Submission ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=domain.Submission}
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /submissions/{id} [get]
func (h *SubmissionHandler) GetSubmission(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id", "submission ID")
	if !ok {
		return
	}

	submission, err := h.submissionService.GetSubmission(c.Request.Context(), sess, id)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, submission)
}

// ExportSubmissions godoc
// @Summary      Export submissions as CSV
// @Description  One column per interactive field, labelled in lang. Checkbox values are joined with ';'.
// @Tags         submissions
// @Produce      text/csv
// @Param        formId path string true "Candidature ID (UUID)"
// @Param        lang query string false "Language of the column labels" Enums(fr, ar)
// @Success      200 {file} file
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /submissions/candidature/{formId}/export [get]
func (h *SubmissionHandler) ExportSubmissions(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	candidatureID, ok := parseUUIDParam(c, "formId", "candidature ID")
	if !ok {
		return
	}

	w := &csvResponseWriter{c: c, fileName: fmt.Sprintf("submissions-%s.csv", candidatureID)}
	err := h.submissionService.ExportCSV(c.Request.Context(), sess, candidatureID, queryLang(c), w)
	if err == nil {
		return
	}
	if !w.started {
		handleServiceError(c, h.logger, err)
		return
	}
	h.logger.Error("CSV export interrupted",
		zap.String("candidature_id", candidatureID.String()),
		zap.Error(err))
	c.Abort()
}

// csvResponseWriter sets the download headers on the first write so that
// errors raised before any output can still be sent as JSON.
type csvResponseWriter struct {
	c        *gin.Context
	fileName string
	started  bool
}

func (w *csvResponseWriter) Write(p []byte) (int, error) {
	if !w.started {
		w.started = true
		w.c.Header("Content-Type", "text/csv; charset=utf-8")
		w.c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, w.fileName))
		w.c.Status(http.StatusOK)
	}
	return w.c.Writer.Write(p)
}
