package dto

import (
	"time"

	"github.com/google/uuid"

	"candidature-api/internal/domain"
)

// CandidatureRequest is the body for creating or replacing a candidature
// @Description The whole candidature is sent: metadata plus the complete ordered fields array.
// @Description imageAttachmentId references a TEMP attachment uploaded through a presigned URL.
type CandidatureRequest struct {
	Title             domain.Bilingual   `json:"title"`
	Description       domain.Bilingual   `json:"description"`
	EventLocation     domain.Bilingual   `json:"eventLocation"`
	Region            domain.Bilingual   `json:"region"`
	StartDate         *time.Time         `json:"startDate,omitempty" example:"2026-01-01T00:00:00Z"`
	EndDate           *time.Time         `json:"endDate,omitempty" example:"2026-03-31T23:59:59Z"`
	EventDates        []domain.EventDate `json:"eventDates"`
	Prizes            []domain.Prize     `json:"prizes"`
	Fields            []domain.Field     `json:"fields"`
	ImageAttachmentID *uuid.UUID         `json:"imageAttachmentId,omitempty" example:"f47ac10b-58cc-4372-a567-0e02b2c3d479"`
}

// ToDomain builds an unsaved candidature from the request
func (r CandidatureRequest) ToDomain() *domain.Candidature {
	c := &domain.Candidature{
		Title:             r.Title,
		Description:       r.Description,
		EventLocation:     r.EventLocation,
		Region:            r.Region,
		StartDate:         r.StartDate,
		EndDate:           r.EndDate,
		EventDates:        r.EventDates,
		Prizes:            r.Prizes,
		Fields:            r.Fields,
		ImageAttachmentID: r.ImageAttachmentID,
	}
	if c.EventDates == nil {
		c.EventDates = []domain.EventDate{}
	}
	if c.Prizes == nil {
		c.Prizes = []domain.Prize{}
	}
	if c.Fields == nil {
		c.Fields = []domain.Field{}
	}
	return c
}

// ValidationRequest toggles the validated flag
type ValidationRequest struct {
	Validated *bool `json:"validated" binding:"required" example:"true"`
}

// PublicationRequest toggles the published flag
type PublicationRequest struct {
	Published *bool `json:"published" binding:"required" example:"true"`
}

// CandidatureListQuery filters the candidature listing
type CandidatureListQuery struct {
	PageQuery
	Region    string `form:"region"`
	Published *bool  `form:"published"`
	Validated *bool  `form:"validated"`
}

// CandidatureSummary is one row of the candidature listing
type CandidatureSummary struct {
	ID         uuid.UUID        `json:"_id" example:"539167fb-b599-41ba-9ead-344a6d0b3a2f"`
	Title      domain.Bilingual `json:"title"`
	Region     domain.Bilingual `json:"region"`
	StartDate  *time.Time       `json:"startDate,omitempty"`
	EndDate    *time.Time       `json:"endDate,omitempty"`
	ImageURL   string           `json:"imageUrl,omitempty"`
	Validated  bool             `json:"validated"`
	Published  bool             `json:"published"`
	FieldCount int              `json:"fieldCount" example:"12"`
	CreatedAt  time.Time        `json:"createdAt"`
}

// NewCandidatureSummary maps a candidature to its listing row
func NewCandidatureSummary(c *domain.Candidature) CandidatureSummary {
	return CandidatureSummary{
		ID:         c.ID,
		Title:      c.Title,
		Region:     c.Region,
		StartDate:  c.StartDate,
		EndDate:    c.EndDate,
		ImageURL:   c.ImageURL,
		Validated:  c.Validated,
		Published:  c.Published,
		FieldCount: len(c.Fields),
		CreatedAt:  c.CreatedAt,
	}
}
