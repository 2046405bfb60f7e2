// Package response defines the JSON envelope and application errors shared by all handlers.
package response

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeInternal      = "INTERNAL_ERROR"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeForbidden     = "FORBIDDEN"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeConflict      = "CONFLICT"
	ErrCodeClosed        = "CANDIDATURE_CLOSED"
	ErrCodeFieldNotFound = "FIELD_NOT_FOUND"
)

// AppError is an error carrying an API error code. Messages holds the
// individual problems of a validation failure; Message is their joined form.
type AppError struct {
	Code     string
	Message  string
	Details  string
	Messages []string
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return e.Code + ": " + e.Message + " (" + e.Details + ")"
	}
	return e.Code + ": " + e.Message
}

// NewAppError creates an AppError
func NewAppError(code, message, details string) *AppError {
	return &AppError{Code: code, Message: message, Details: details}
}

// NewValidationError creates a validation AppError
func NewValidationError(message, details string) *AppError {
	return NewAppError(ErrCodeValidation, message, details)
}

// NewValidationErrors keeps every message and joins them for Message.
func NewValidationErrors(messages []string) *AppError {
	err := NewAppError(ErrCodeValidation, strings.Join(messages, ", "), "")
	err.Messages = append([]string(nil), messages...)
	return err
}

// MessageList returns the messages shown to the user, one per problem.
func (e *AppError) MessageList() []string {
	if len(e.Messages) > 0 {
		return e.Messages
	}
	if e.Message == "" {
		return nil
	}
	return []string{e.Message}
}

// NewNotFoundError creates a not found AppError
func NewNotFoundError(message, details string) *AppError {
	return NewAppError(ErrCodeNotFound, message, details)
}

// NewForbiddenError creates a forbidden AppError
func NewForbiddenError(message, details string) *AppError {
	return NewAppError(ErrCodeForbidden, message, details)
}

// NewUnauthorizedError creates an unauthorized AppError
func NewUnauthorizedError(message, details string) *AppError {
	return NewAppError(ErrCodeUnauthorized, message, details)
}

// NewConflictError creates a conflict AppError
func NewConflictError(message, details string) *AppError {
	return NewAppError(ErrCodeConflict, message, details)
}

// SuccessResponse wraps successful payloads
type SuccessResponse struct {
	Data interface{} `json:"data"`
}

// ErrorResponse wraps errors. Messages holds one entry per problem.
type ErrorResponse struct {
	Error    interface{} `json:"error"`
	Messages []string    `json:"messages,omitempty"`
}

// SendSuccess writes a success envelope
func SendSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, SuccessResponse{Data: data})
}

// SendError writes an error envelope with a single message
func SendError(c *gin.Context, status int, code, message string) {
	SendAppError(c, status, NewAppError(code, message, ""))
}

// SendAppError writes an error envelope for err. Details stay server side.
func SendAppError(c *gin.Context, status int, err *AppError) {
	c.JSON(status, ErrorResponse{
		Error: gin.H{
			"code":    err.Code,
			"message": err.Message,
		},
		Messages: err.MessageList(),
	})
}
