package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"candidature-api/internal/dto"
	"candidature-api/internal/response"
	"candidature-api/internal/service"
)

type CandidatureHandler struct {
	candidatureService service.CandidatureService
	logger             *zap.Logger
}

func NewCandidatureHandler(candidatureService service.CandidatureService, logger *zap.Logger) *CandidatureHandler {
	return &CandidatureHandler{
		candidatureService: candidatureService,
		logger:             logger,
	}
}

// ListCandidatures godoc
// @Summary      List candidatures
// @Description  Paginated list. Regional coordinators only see their region.
// @Tags         candidatures
// @Produce      json
// @Param        page query int false "Page (1-based)"
// @Param        limit query int false "Page size (max 100)"
// @Param        region query string false "Region (French or Arabic)"
// @Param        published query bool false "Published filter"
// @Param        validated query bool false "Validated filter"
// @Success      200 {object} response.SuccessResponse{data=dto.PaginatedResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Failure      403 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /candidatures [get]
func (h *CandidatureHandler) ListCandidatures(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	var query dto.CandidatureListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid query parameters")
		return
	}

	page, err := h.candidatureService.ListCandidatures(c.Request.Context(), sess, query)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, page)
}

// GetCandidature godoc
// @Summary      Get a candidature
// @Description  Regional coordinators only reach candidatures of their region.
// @Tags         candidatures
// @Produce      json
// @Param        id path string true "Candidature ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=domain.Candidature}
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /candidatures/{id} [get]
func (h *CandidatureHandler) GetCandidature(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id", "candidature ID")
	if !ok {
		return
	}

	candidature, err := h.candidatureService.GetCandidature(c.Request.Context(), sess, id)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, candidature)
}

// CreateCandidature godoc
// @Summary      Create a candidature
// @Description  Stores the metadata and the whole fields array. The candidature starts unvalidated and unpublished.
// @Tags         candidatures
// @Accept       json
// @Produce      json
// @Param        request body dto.CandidatureRequest true "Candidature"
// @Success      201 {object} response.SuccessResponse{data=domain.Candidature}
// @Failure      400 {object} response.ErrorResponse "Validation failed; messages lists every problem"
// @Failure      401 {object} response.ErrorResponse
// @Failure      403 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /candidatures/add [post]
func (h *CandidatureHandler) CreateCandidature(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	var req dto.CandidatureRequest
	if !bindJSON(c, &req) {
		return
	}

	candidature, err := h.candidatureService.CreateCandidature(c.Request.Context(), sess.UserID, req.ToDomain())
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, candidature)
}

// UpdateCandidature godoc
// @Summary      Replace a candidature
// @Description  Replaces metadata and fields. Template-derived fields are restored from their templates.
// @Tags         candidatures
// @Accept       json
// @Produce      json
// @Param        id path string true "Candidature ID (UUID)"
// @Param        request body dto.CandidatureRequest true "Candidature"
// @Success      200 {object} response.SuccessResponse{data=domain.Candidature}
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /candidatures/{id} [put]
func (h *CandidatureHandler) UpdateCandidature(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "candidature ID")
	if !ok {
		return
	}

	var req dto.CandidatureRequest
	if !bindJSON(c, &req) {
		return
	}

	candidature, err := h.candidatureService.UpdateCandidature(c.Request.Context(), id, req.ToDomain())
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, candidature)
}

// DeleteCandidature godoc
// @Summary      Delete a candidature
// @Tags         candidatures
// @Produce      json
// @Param        id path string true "Candidature ID (UUID)"
// @Success      200 {object} response.SuccessResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /candidatures/{id} [delete]
func (h *CandidatureHandler) DeleteCandidature(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "candidature ID")
	if !ok {
		return
	}

	if err := h.candidatureService.DeleteCandidature(c.Request.Context(), id); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, map[string]string{"message": "Candidature deleted successfully"})
}

// SetValidation godoc
// @Summary      Validate or invalidate a candidature
// @Description  Invalidating also withdraws the publication.
// @Tags         candidatures
// @Accept       json
// @Produce      json
// @Param        id path string true "Candidature ID (UUID)"
// @Param        request body dto.ValidationRequest true "Validation flag"
// @Success      200 {object} response.SuccessResponse{data=domain.Candidature}
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /candidatures/{id}/validation [patch]
func (h *CandidatureHandler) SetValidation(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "candidature ID")
	if !ok {
		return
	}

	var req dto.ValidationRequest
	if !bindJSON(c, &req) {
		return
	}

	candidature, err := h.candidatureService.SetValidated(c.Request.Context(), id, *req.Validated)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, candidature)
}

// SetPublication godoc
// @Summary      Publish or withdraw a candidature
// @Description  Only validated candidatures can be published.
// @Tags         candidatures
// @Accept       json
// @Produce      json
// @Param        id path string true "Candidature ID (UUID)"
// @Param        request body dto.PublicationRequest true "Publication flag"
// @Success      200 {object} response.SuccessResponse{data=domain.Candidature}
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Failure      409 {object} response.ErrorResponse "Not validated"
// @Security     BearerAuth
// @Router       /candidatures/{id}/publication [patch]
func (h *CandidatureHandler) SetPublication(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "candidature ID")
	if !ok {
		return
	}

	var req dto.PublicationRequest
	if !bindJSON(c, &req) {
		return
	}

	candidature, err := h.candidatureService.SetPublished(c.Request.Context(), id, *req.Published)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, candidature)
}

// RenderCandidature godoc
// @Summary      Render the public form
// @Description  Resolves every bilingual text into lang. Unpublished candidatures are only rendered for admins.
// @Tags         candidatures
// @Produce      json
// @Param        id path string true "Candidature ID (UUID)"
// @Param        lang query string false "Language" Enums(fr, ar)
// @Success      200 {object} response.SuccessResponse{data=render.Form}
// @Failure      404 {object} response.ErrorResponse
// @Router       /candidatures/{id}/render [get]
func (h *CandidatureHandler) RenderCandidature(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "candidature ID")
	if !ok {
		return
	}

	form, err := h.candidatureService.RenderCandidature(c.Request.Context(), optionalSession(c), id, queryLang(c))
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, form)
}
