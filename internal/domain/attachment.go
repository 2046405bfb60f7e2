package domain

import (
	"time"

	"github.com/google/uuid"
)

// EntityType represents the type of entity an attachment is associated with
type EntityType string

const (
	EntityTypeCandidature EntityType = "CANDIDATURE"
	EntityTypeSubmission  EntityType = "SUBMISSION"
)

// IsValid reports whether the entity type is supported.
func (e EntityType) IsValid() bool {
	return e == EntityTypeCandidature || e == EntityTypeSubmission
}

// AttachmentStatus represents the status of an attachment
type AttachmentStatus string

const (
	AttachmentStatusTemp      AttachmentStatus = "TEMP"
	AttachmentStatusConfirmed AttachmentStatus = "CONFIRMED"
)

// Attachment is an uploaded file: a candidature cover image or a file answer.
// EntityID references candidatures or submissions, so it carries no foreign key.
type Attachment struct {
	BaseModel
	EntityType  EntityType       `gorm:"type:varchar(20);not null;index:idx_attachments_entity,priority:1" json:"entityType"`
	EntityID    *uuid.UUID       `gorm:"type:uuid;index:idx_attachments_entity,priority:2" json:"entityId,omitempty"`
	Status      AttachmentStatus `gorm:"type:varchar(20);not null;default:'TEMP';index:idx_attachments_status" json:"status"`
	FileName    string           `gorm:"type:varchar(255);not null" json:"fileName"`
	FileKey     string           `gorm:"type:text;not null" json:"fileKey"`
	FileSize    int64            `gorm:"not null" json:"fileSize"`
	ContentType string           `gorm:"type:varchar(100);not null" json:"contentType"`
	UploadedBy  *uuid.UUID       `gorm:"type:uuid;index" json:"uploadedBy,omitempty"`
	ExpiresAt   *time.Time       `gorm:"index:idx_attachments_expires_at" json:"expiresAt,omitempty"`
}

// TableName specifies the table name for Attachment
func (Attachment) TableName() string {
	return "attachments"
}
