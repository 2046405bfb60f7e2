package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"candidature-api/internal/dto"
	"candidature-api/internal/response"
	"candidature-api/internal/service"
)

type TemplateHandler struct {
	templateService service.TemplateService
	logger          *zap.Logger
}

func NewTemplateHandler(templateService service.TemplateService, logger *zap.Logger) *TemplateHandler {
	return &TemplateHandler{
		templateService: templateService,
		logger:          logger,
	}
}

// ListTemplates godoc
// @Summary      List candidature templates
// @Tags         templates
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=[]domain.CandidatureTemplate}
// @Security     BearerAuth
// @Router       /candidatures/templates [get]
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	templates, err := h.templateService.ListTemplates(c.Request.Context())
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, templates)
}

// CreateTemplate godoc
// @Summary      Create a candidature template
// @Tags         templates
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateTemplateRequest true "Template"
// @Success      201 {object} response.SuccessResponse{data=domain.CandidatureTemplate}
// @Failure      400 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /candidatures/templates [post]
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	var req dto.CreateTemplateRequest
	if !bindJSON(c, &req) {
		return
	}

	template, err := h.templateService.CreateTemplate(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, template)
}

// ListTemplateFields godoc
// @Summary      List reusable template fields
// @Tags         templates
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=[]domain.TemplateField}
// @Security     BearerAuth
// @Router       /candidatures/template-fields [get]
func (h *TemplateHandler) ListTemplateFields(c *gin.Context) {
	fields, err := h.templateService.ListTemplateFields(c.Request.Context())
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, fields)
}

// CreateTemplateField godoc
// @Summary      Create a reusable template field
// @Tags         templates
// @Accept       json
// @Produce      json
// @Param        request body dto.TemplateFieldRequest true "Template field"
// @Success      201 {object} response.SuccessResponse{data=domain.TemplateField}
// @Failure      400 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /candidatures/template-fields [post]
func (h *TemplateHandler) CreateTemplateField(c *gin.Context) {
	var req dto.TemplateFieldRequest
	if !bindJSON(c, &req) {
		return
	}

	field, err := h.templateService.CreateTemplateField(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, field)
}
