package dto

import "candidature-api/internal/domain"

// SubmitRequest is an applicant's answers to a published candidature
// @Description Each answer references a field id. File answers carry TEMP attachment ids.
type SubmitRequest struct {
	Answers []domain.Answer `json:"answers" binding:"required"`
	Lang    string          `json:"lang,omitempty" example:"ar"`
}

// SubmissionEvent is published on the live feed when a submission is stored
type SubmissionEvent struct {
	Type          string             `json:"type" example:"submission.created"`
	CandidatureID string             `json:"candidatureId"`
	Submission    *domain.Submission `json:"submission"`
}

const SubmissionCreatedEvent = "submission.created"
