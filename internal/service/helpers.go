package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"candidature-api/internal/domain"
	"candidature-api/internal/response"
	"candidature-api/internal/session"
)

// removeDuplicateUUIDs removes duplicate UUIDs from a slice
func removeDuplicateUUIDs(uuids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool)
	result := make([]uuid.UUID, 0, len(uuids))

	for _, id := range uuids {
		if !seen[id] {
			seen[id] = true
			result = append(result, id)
		}
	}

	return result
}

// lookupError maps a repository read error: missing rows become NOT_FOUND
// with notFoundMsg, anything else INTERNAL_ERROR with failMsg.
func lookupError(err error, notFoundMsg, failMsg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return response.NewNotFoundError(notFoundMsg, "")
	}
	return response.NewAppError(response.ErrCodeInternal, failMsg, err.Error())
}

// regionError is the FORBIDDEN returned when candidature lies outside the
// caller's region.
func regionError(sess *session.Session, candidature *domain.Candidature) error {
	if sess.CanAccessRegion(candidature.Region) {
		return nil
	}
	return response.NewForbiddenError("Candidature is outside your region", "")
}

func internalError(msg string, err error) error {
	return response.NewAppError(response.ErrCodeInternal, msg, err.Error())
}
