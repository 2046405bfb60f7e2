package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"candidature-api/internal/dto"
	"candidature-api/internal/response"
	"candidature-api/internal/service"
)

type AttachmentHandler struct {
	attachmentService service.AttachmentService
	logger            *zap.Logger
}

func NewAttachmentHandler(attachmentService service.AttachmentService, logger *zap.Logger) *AttachmentHandler {
	return &AttachmentHandler{
		attachmentService: attachmentService,
		logger:            logger,
	}
}

// GeneratePresignedURL godoc
// @Summary      Request an upload URL
// @Description  Creates a TEMP attachment and returns a presigned PUT URL. Unclaimed uploads are removed by the cleanup job.
// @Tags         attachments
// @Accept       json
// @Produce      json
// @Param        request body dto.PresignedURLRequest true "File"
// @Success      200 {object} response.SuccessResponse{data=dto.PresignedURLResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid, too large or unsupported file"
// @Failure      401 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /attachments/presigned-url [post]
func (h *AttachmentHandler) GeneratePresignedURL(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	var req dto.PresignedURLRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.attachmentService.CreatePresignedUpload(c.Request.Context(), sess.UserID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// GetAttachment godoc
// @Summary      Get attachment metadata
// @Description  fileUrl is a short-lived presigned download URL.
// @Tags         attachments
// @Produce      json
// @Param        id path string true "Attachment ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.AttachmentResponse}
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /attachments/{id} [get]
func (h *AttachmentHandler) GetAttachment(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "attachment ID")
	if !ok {
		return
	}

	attachment, err := h.attachmentService.GetAttachment(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, attachment)
}
