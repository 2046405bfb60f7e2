package dto

import (
	"time"

	"github.com/google/uuid"
)

// PresignedURLRequest asks for an upload URL
type PresignedURLRequest struct {
	EntityType  string `json:"entityType" binding:"required" example:"CANDIDATURE"`
	FileName    string `json:"fileName" binding:"required" example:"affiche.png"`
	FileSize    int64  `json:"fileSize" binding:"required" example:"204800"`
	ContentType string `json:"contentType" binding:"required" example:"image/png"`
}

// PresignedURLResponse carries the upload URL and the TEMP attachment created for it
type PresignedURLResponse struct {
	AttachmentID uuid.UUID `json:"attachmentId" example:"f47ac10b-58cc-4372-a567-0e02b2c3d479"`
	UploadURL    string    `json:"uploadUrl"`
	FileKey      string    `json:"fileKey" example:"candidature/candidatures/2026/04/0b6e..._1775736000.png"`
	ExpiresIn    int       `json:"expiresIn" example:"300"`
}

// AttachmentResponse is the metadata of an uploaded file
type AttachmentResponse struct {
	ID          uuid.UUID `json:"id"`
	FileName    string    `json:"fileName"`
	FileURL     string    `json:"fileUrl"`
	FileSize    int64     `json:"fileSize"`
	ContentType string    `json:"contentType"`
	Status      string    `json:"status"`
	UploadedAt  time.Time `json:"uploadedAt"`
}
