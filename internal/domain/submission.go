package domain

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Answer is the value submitted for one field, keyed by field id
type Answer struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

// Submission is one applicant's answers to a published candidature
type Submission struct {
	BaseModel
	CandidatureID uuid.UUID                   `gorm:"type:uuid;not null;index:idx_submissions_candidature" json:"candidatureId"`
	SubmittedBy   *uuid.UUID                  `gorm:"type:uuid;index" json:"submittedBy,omitempty"`
	Lang          Lang                        `gorm:"type:varchar(2);not null;default:'fr'" json:"lang"`
	Answers       datatypes.JSONSlice[Answer] `json:"answers"`
}

// TableName specifies the table name for Submission
func (Submission) TableName() string {
	return "submissions"
}

// AnswerFor returns the value given for a field.
func (s *Submission) AnswerFor(fieldID string) (any, bool) {
	for _, a := range s.Answers {
		if a.Field == fieldID {
			return a.Value, true
		}
	}
	return nil, false
}
