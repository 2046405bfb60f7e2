package dto

import (
	"time"

	"github.com/google/uuid"

	"candidature-api/internal/builder"
	"candidature-api/internal/domain"
)

// CreateDraftRequest starts a draft, empty or seeded from a template or an existing candidature
type CreateDraftRequest struct {
	TemplateID    *uuid.UUID `json:"templateId,omitempty"`
	CandidatureID *uuid.UUID `json:"candidatureId,omitempty"`
}

// MetadataRequest patches the draft metadata. Omitted members are left alone;
// the clear flags unset the optional dates and the cover image.
type MetadataRequest struct {
	Title             *builder.TextPatch  `json:"title,omitempty"`
	Description       *builder.TextPatch  `json:"description,omitempty"`
	EventLocation     *builder.TextPatch  `json:"eventLocation,omitempty"`
	Region            *builder.TextPatch  `json:"region,omitempty"`
	StartDate         *time.Time          `json:"startDate,omitempty"`
	EndDate           *time.Time          `json:"endDate,omitempty"`
	EventDates        *[]domain.EventDate `json:"eventDates,omitempty"`
	Prizes            *[]domain.Prize     `json:"prizes,omitempty"`
	ImageAttachmentID *uuid.UUID          `json:"imageAttachmentId,omitempty"`
	ClearStartDate    bool                `json:"clearStartDate,omitempty"`
	ClearEndDate      bool                `json:"clearEndDate,omitempty"`
	ClearImage        bool                `json:"clearImage,omitempty"`
}

// Conflicts lists members that are both set and cleared
func (r MetadataRequest) Conflicts() []string {
	var msgs []string
	if r.ClearStartDate && r.StartDate != nil {
		msgs = append(msgs, "startDate cannot be set and cleared at once")
	}
	if r.ClearEndDate && r.EndDate != nil {
		msgs = append(msgs, "endDate cannot be set and cleared at once")
	}
	if r.ClearImage && r.ImageAttachmentID != nil {
		msgs = append(msgs, "imageAttachmentId cannot be set and cleared at once")
	}
	return msgs
}

// Apply merges the request into m
func (r MetadataRequest) Apply(m *builder.Metadata) {
	m.Title = r.Title.Apply(m.Title)
	m.Description = r.Description.Apply(m.Description)
	m.EventLocation = r.EventLocation.Apply(m.EventLocation)
	m.Region = r.Region.Apply(m.Region)
	if r.StartDate != nil {
		m.StartDate = r.StartDate
	}
	if r.EndDate != nil {
		m.EndDate = r.EndDate
	}
	if r.EventDates != nil {
		m.EventDates = append([]domain.EventDate{}, (*r.EventDates)...)
	}
	if r.Prizes != nil {
		m.Prizes = append([]domain.Prize{}, (*r.Prizes)...)
	}
	if r.ImageAttachmentID != nil {
		id := *r.ImageAttachmentID
		m.ImageAttachmentID = &id
	}
	if r.ClearStartDate {
		m.StartDate = nil
	}
	if r.ClearEndDate {
		m.EndDate = nil
	}
	if r.ClearImage {
		m.ImageAttachmentID = nil
	}
}

// AddFieldRequest adds one field from the palette or from a stored template field.
// Index is optional; without it the field is appended.
type AddFieldRequest struct {
	Component       *builder.PaletteComponent `json:"component,omitempty"`
	TemplateFieldID *uuid.UUID                `json:"templateFieldId,omitempty"`
	Index           *int                      `json:"index,omitempty"`
}

// ReorderRequest lists every field id in the new order
type ReorderRequest struct {
	Order []string `json:"order" binding:"required"`
}

// SelectionRequest selects a field; an empty fieldId clears the selection
type SelectionRequest struct {
	FieldID string `json:"fieldId"`
}

// DropRequest is a completed drag gesture: the raw transfer data, the index
// of the dragged row (for reorders) and the row it was dropped on.
type DropRequest struct {
	Data        string `json:"data"`
	SourceIndex int    `json:"sourceIndex"`
	Row         int    `json:"row"`
}

// LoadSourceRequest loads an existing candidature into the draft
type LoadSourceRequest struct {
	CandidatureID uuid.UUID `json:"candidatureId" binding:"required"`
}

// DropResponse returns the draft together with what the drop did
type DropResponse struct {
	Draft  *builder.Draft     `json:"draft"`
	Result builder.DropResult `json:"result"`
}

// PaletteResponse lists the components offered by the builder palette
type PaletteResponse struct {
	Components     []builder.PaletteComponent `json:"components"`
	TemplateFields []*domain.TemplateField    `json:"templateFields"`
}
