package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"candidature-api/internal/builder"
	"candidature-api/internal/dto"
	"candidature-api/internal/response"
	"candidature-api/internal/service"
)

// DraftHandler exposes the form builder. Every mutation answers with the
// whole draft so the client can re-render from it.
type DraftHandler struct {
	draftService service.DraftService
	logger       *zap.Logger
}

func NewDraftHandler(draftService service.DraftService, logger *zap.Logger) *DraftHandler {
	return &DraftHandler{
		draftService: draftService,
		logger:       logger,
	}
}

func (h *DraftHandler) respond(c *gin.Context, status int, draft *builder.Draft, err error) {
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, status, draft)
}

// Palette godoc
// @Summary      Builder palette
// @Description  One component per field type plus the reusable template fields.
// @Tags         drafts
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=dto.PaletteResponse}
// @Security     BearerAuth
// @Router       /drafts/palette [get]
func (h *DraftHandler) Palette(c *gin.Context) {
	palette, err := h.draftService.Palette(c.Request.Context())
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, palette)
}

// CreateDraft godoc
// @Summary      Start a draft
// @Description  Empty, or seeded from a template or an existing candidature.
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateDraftRequest false "Seed"
// @Success      201 {object} response.SuccessResponse{data=builder.Draft}
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /drafts [post]
func (h *DraftHandler) CreateDraft(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	var req dto.CreateDraftRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	draft, err := h.draftService.CreateDraft(c.Request.Context(), sess, &req)
	h.respond(c, http.StatusCreated, draft, err)
}

// GetDraft godoc
// @Summary      Get a draft
// @Tags         drafts
// @Produce      json
// @Param        draftId path string true "Draft ID"
// @Success      200 {object} response.SuccessResponse{data=builder.Draft}
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /drafts/{draftId} [get]
func (h *DraftHandler) GetDraft(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	draft, err := h.draftService.GetDraft(c.Request.Context(), sess, c.Param("draftId"))
	h.respond(c, http.StatusOK, draft, err)
}

// DeleteDraft godoc
// @Summary      Discard a draft
// @Tags         drafts
// @Produce      json
// @Param        draftId path string true "Draft ID"
// @Success      200 {object} response.SuccessResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /drafts/{draftId} [delete]
func (h *DraftHandler) DeleteDraft(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	if err := h.draftService.DeleteDraft(c.Request.Context(), sess, c.Param("draftId")); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, map[string]string{"message": "Draft deleted successfully"})
}

// UpdateMetadata godoc
// @Summary      Edit the draft metadata
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Param        draftId path string true "Draft ID"
// @Param        request body dto.MetadataRequest true "Metadata patch"
// @Success      200 {object} response.SuccessResponse{data=builder.Draft}
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /drafts/{draftId}/metadata [put]
func (h *DraftHandler) UpdateMetadata(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	var req dto.MetadataRequest
	if !bindJSON(c, &req) {
		return
	}
	draft, err := h.draftService.UpdateMetadata(c.Request.Context(), sess, c.Param("draftId"), &req)
	h.respond(c, http.StatusOK, draft, err)
}

// AddField godoc
// @Summary      Add a field
// @Description  From a palette component or a stored template field; appended unless index is given.
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Param        draftId path string true "Draft ID"
// @Param        request body dto.AddFieldRequest true "Field source"
// @Success      201 {object} response.SuccessResponse{data=builder.Draft}
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /drafts/{draftId}/fields [post]
func (h *DraftHandler) AddField(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	var req dto.AddFieldRequest
	if !bindJSON(c, &req) {
		return
	}
	draft, err := h.draftService.AddField(c.Request.Context(), sess, c.Param("draftId"), &req)
	h.respond(c, http.StatusCreated, draft, err)
}

// UpdateField godoc
// @Summary      Edit a field
// @Description  Template-derived fields only accept required, placeholder and layout.
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Param        draftId path string true "Draft ID"
// @Param        fieldId path string true "Field ID"
// @Param        request body builder.FieldPatch true "Field patch"
// @Success      200 {object} response.SuccessResponse{data=builder.Draft}
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse "Draft or field not found"
// @Security     BearerAuth
// @Router       /drafts/{draftId}/fields/{fieldId} [patch]
func (h *DraftHandler) UpdateField(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	var patch builder.FieldPatch
	if !bindJSON(c, &patch) {
		return
	}
	draft, err := h.draftService.UpdateField(c.Request.Context(), sess, c.Param("draftId"), c.Param("fieldId"), patch)
	h.respond(c, http.StatusOK, draft, err)
}

// RemoveField godoc
// @Summary      Remove a field
// @Tags         drafts
// @Produce      json
// @Param        draftId path string true "Draft ID"
// @Param        fieldId path string true "Field ID"
// @Success      200 {object} response.SuccessResponse{data=builder.Draft}
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /drafts/{draftId}/fields/{fieldId} [delete]
func (h *DraftHandler) RemoveField(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	draft, err := h.draftService.RemoveField(c.Request.Context(), sess, c.Param("draftId"), c.Param("fieldId"))
	h.respond(c, http.StatusOK, draft, err)
}

// ReorderFields godoc
// @Summary      Reorder fields
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Param        draftId path string true "Draft ID"
// @Param        request body dto.ReorderRequest true "Every field id in the new order"
// @Success      200 {object} response.SuccessResponse{data=builder.Draft}
// @Failure      400 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /drafts/{draftId}/fields/order [put]
func (h *DraftHandler) ReorderFields(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	var req dto.ReorderRequest
	if !bindJSON(c, &req) {
		return
	}
	draft, err := h.draftService.ReorderFields(c.Request.Context(), sess, c.Param("draftId"), req.Order)
	h.respond(c, http.StatusOK, draft, err)
}

// AddOption godoc
// @Summary      Add an option to a choice field
// @Tags         drafts
// @Produce      json
// @Param        draftId path string true "Draft ID"
// @Param        fieldId path string true "Field ID"
// @Success      201 {object} response.SuccessResponse{data=builder.Draft}
// @Failure      403 {object} response.ErrorResponse "Template field"
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /drafts/{draftId}/fields/{fieldId}/options [post]
func (h *DraftHandler) AddOption(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	draft, err := h.draftService.AddOption(c.Request.Context(), sess, c.Param("draftId"), c.Param("fieldId"))
	h.respond(c, http.StatusCreated, draft, err)
}

// UpdateOption godoc
// @Summary      Edit an option
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Param        draftId path string true "Draft ID"
// @Param        fieldId path string true "Field ID"
// @Param        optionId path string true "Option ID"
// @Param        request body builder.OptionPatch true "Option patch"
// @Success      200 {object} response.SuccessResponse{data=builder.Draft}
// @Failure      403 {object} response.ErrorResponse "Template field"
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /drafts/{draftId}/fields/{fieldId}/options/{optionId} [patch]
func (h *DraftHandler) UpdateOption(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	var patch builder.OptionPatch
	if !bindJSON(c, &patch) {
		return
	}
	draft, err := h.draftService.UpdateOption(c.Request.Context(), sess, c.Param("draftId"), c.Param("fieldId"), c.Param("optionId"), patch)
	h.respond(c, http.StatusOK, draft, err)
}

// RemoveOption godoc
// @Summary      Remove an option
// @Tags         drafts
// @Produce      json
// @Param        draftId path string true "Draft ID"
// @Param        fieldId path string true "Field ID"
// @Param        optionId path string true "Option ID"
// @Success      200 {object} response.SuccessResponse{data=builder.Draft}
// @Failure      403 {object} response.ErrorResponse "Template field"
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /drafts/{draftId}/fields/{fieldId}/options/{optionId} [delete]
func (h *DraftHandler) RemoveOption(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	draft, err := h.draftService.RemoveOption(c.Request.Context(), sess, c.Param("draftId"), c.Param("fieldId"), c.Param("optionId"))
	h.respond(c, http.StatusOK, draft, err)
}

// Select godoc
// @Summary      Select a field
// @Description  An empty fieldId clears the selection.
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Param        draftId path string true "Draft ID"
// @Param        request body dto.SelectionRequest true "Selection"
// @Success      200 {object} response.SuccessResponse{data=builder.Draft}
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /drafts/{draftId}/selection [put]
func (h *DraftHandler) Select(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	var req dto.SelectionRequest
	if !bindJSON(c, &req) {
		return
	}
	draft, err := h.draftService.Select(c.Request.Context(), sess, c.Param("draftId"), req.FieldID)
	h.respond(c, http.StatusOK, draft, err)
}

// Drop godoc
// @Summary      Apply a drag gesture
// @Description  data is the raw transfer payload. A new-component payload inserts a field at row; anything else moves the field at sourceIndex.
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Param        draftId path string true "Draft ID"
// @Param        request body dto.DropRequest true "Drop"
// @Success      200 {object} response.SuccessResponse{data=dto.DropResponse}
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /drafts/{draftId}/drop [post]
func (h *DraftHandler) Drop(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	var req dto.DropRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.draftService.Drop(c.Request.Context(), sess, c.Param("draftId"), &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// LoadSource godoc
// @Summary      Load an existing candidature into the draft
// @Description  A load superseded by a newer one is discarded and the current draft is returned.
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Param        draftId path string true "Draft ID"
// @Param        request body dto.LoadSourceRequest true "Source"
// @Success      200 {object} response.SuccessResponse{data=builder.Draft}
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /drafts/{draftId}/source [post]
func (h *DraftHandler) LoadSource(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	var req dto.LoadSourceRequest
	if !bindJSON(c, &req) {
		return
	}
	draft, err := h.draftService.LoadSource(c.Request.Context(), sess, c.Param("draftId"), req.CandidatureID)
	h.respond(c, http.StatusOK, draft, err)
}

// Save godoc
// @Summary      Save the draft as a candidature
// @Description  Creates a candidature, or updates the one the draft was loaded from. The draft is kept.
// @Tags         drafts
// @Produce      json
// @Param        draftId path string true "Draft ID"
// @Success      200 {object} response.SuccessResponse{data=domain.Candidature}
// @Failure      400 {object} response.ErrorResponse "Validation failed; messages lists every problem"
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /drafts/{draftId}/save [post]
func (h *DraftHandler) Save(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	candidature, err := h.draftService.Save(c.Request.Context(), sess, c.Param("draftId"))
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, candidature)
}
