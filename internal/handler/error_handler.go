package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"candidature-api/internal/response"
	"candidature-api/internal/service"
)

// handleServiceError maps service layer errors to appropriate HTTP responses
func handleServiceError(c *gin.Context, logger *zap.Logger, err error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.SendError(c, http.StatusNotFound, response.ErrCodeNotFound, "Resource not found")
		return
	}

	var appErr *response.AppError
	if errors.As(err, &appErr) {
		statusCode := mapErrorCodeToHTTPStatus(appErr.Code)
		fields := []zap.Field{
			zap.String("code", appErr.Code),
			zap.String("message", appErr.Message),
			zap.String("details", appErr.Details),
			zap.String("path", c.FullPath()),
		}
		if statusCode >= http.StatusInternalServerError {
			logger.Error("Service error", fields...)
		} else {
			logger.Debug("Request rejected", fields...)
		}
		response.SendAppError(c, statusCode, appErr)
		return
	}

	logger.Error("Unhandled service error",
		zap.String("path", c.FullPath()),
		zap.String("type", fmt.Sprintf("%T", err)),
		zap.Error(err))
	response.SendError(c, http.StatusInternalServerError, response.ErrCodeInternal, "Internal server error")
}

// mapErrorCodeToHTTPStatus maps error codes to HTTP status codes
func mapErrorCodeToHTTPStatus(code string) int {
	switch code {
	case response.ErrCodeNotFound, response.ErrCodeFieldNotFound:
		return http.StatusNotFound
	case response.ErrCodeAlreadyExists, response.ErrCodeConflict:
		return http.StatusConflict
	case response.ErrCodeValidation, service.ErrCodeFileTooLarge, service.ErrCodeInvalidFileType:
		return http.StatusBadRequest
	case response.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case response.ErrCodeForbidden, response.ErrCodeClosed:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
