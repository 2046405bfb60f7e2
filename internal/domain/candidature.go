package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// EventDate is one dated milestone of the program (pitch day, jury, ...)
type EventDate struct {
	Date        time.Time `json:"date"`
	Description Bilingual `json:"description"`
}

// Prize is one award of the program
type Prize struct {
	Amount      float64   `json:"amount"`
	Description Bilingual `json:"description"`
}

// Candidature is a call for applications together with its form.
// Validated and Published are owned by the review workflow.
type Candidature struct {
	BaseModel
	Title             Bilingual                      `gorm:"embedded;embeddedPrefix:title_" json:"title"`
	Description       Bilingual                      `gorm:"embedded;embeddedPrefix:description_" json:"description"`
	EventLocation     Bilingual                      `gorm:"embedded;embeddedPrefix:event_location_" json:"eventLocation"`
	Region            Bilingual                      `gorm:"embedded;embeddedPrefix:region_" json:"region"`
	StartDate         *time.Time                     `gorm:"index:idx_candidatures_window,priority:1" json:"startDate,omitempty"`
	EndDate           *time.Time                     `gorm:"index:idx_candidatures_window,priority:2" json:"endDate,omitempty"`
	EventDates        datatypes.JSONSlice[EventDate] `json:"eventDates"`
	Prizes            datatypes.JSONSlice[Prize]     `json:"prizes"`
	Fields            datatypes.JSONSlice[Field]     `json:"fields"`
	ImageURL          string                         `gorm:"type:text" json:"imageUrl,omitempty"`
	ImageAttachmentID *uuid.UUID                     `gorm:"type:uuid" json:"imageAttachmentId,omitempty"`
	Validated         bool                           `gorm:"not null;default:false;index" json:"validated"`
	Published         bool                           `gorm:"not null;default:false;index" json:"published"`
	CreatedBy         uuid.UUID                      `gorm:"type:uuid;not null;index" json:"createdBy"`
}

// TableName specifies the table name for Candidature
func (Candidature) TableName() string {
	return "candidatures"
}

// FieldByID finds a field of the form.
func (c *Candidature) FieldByID(id string) (Field, bool) {
	for _, f := range c.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return Field{}, false
}

// IsOpen reports whether submissions are accepted at now.
func (c *Candidature) IsOpen(now time.Time) bool {
	if !c.Published {
		return false
	}
	if c.StartDate != nil && now.Before(*c.StartDate) {
		return false
	}
	if c.EndDate != nil && now.After(*c.EndDate) {
		return false
	}
	return true
}

// Validate checks the metadata and every field, returning all messages.
func (c *Candidature) Validate() []string {
	var msgs []string

	if c.Title.IsEmpty() {
		msgs = append(msgs, "title is required")
	}
	if !c.Region.IsComplete() {
		msgs = append(msgs, "region is required in French and Arabic")
	}
	if c.StartDate != nil && c.EndDate != nil && c.EndDate.Before(*c.StartDate) {
		msgs = append(msgs, "endDate must not be before startDate")
	}
	for i, d := range c.EventDates {
		if d.Date.IsZero() {
			msgs = append(msgs, fmt.Sprintf("event date #%d has no date", i+1))
		}
	}
	for i, p := range c.Prizes {
		if p.Amount < 0 {
			msgs = append(msgs, fmt.Sprintf("prize #%d amount must not be negative", i+1))
		}
	}

	seen := make(map[string]bool, len(c.Fields))
	for _, f := range c.Fields {
		if f.ID != "" && seen[f.ID] {
			msgs = append(msgs, fmt.Sprintf("duplicate field id %q", f.ID))
		}
		seen[f.ID] = true
		msgs = append(msgs, f.Validate()...)
	}
	return msgs
}
