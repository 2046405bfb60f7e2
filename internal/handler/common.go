package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"candidature-api/internal/domain"
	"candidature-api/internal/response"
	"candidature-api/internal/session"
)

// requireSession returns the caller's session or writes a 401.
func requireSession(c *gin.Context) (*session.Session, bool) {
	sess, ok := session.From(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "User not authenticated")
		return nil, false
	}
	return sess, true
}

// optionalSession returns the caller's session, or nil for anonymous requests.
func optionalSession(c *gin.Context) *session.Session {
	sess, _ := session.From(c)
	return sess
}

// parseUUIDParam parses a path parameter or writes a 400 naming it.
func parseUUIDParam(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid "+label)
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return false
	}
	return true
}

func queryLang(c *gin.Context) domain.Lang {
	return domain.ParseLang(c.DefaultQuery("lang", string(domain.LangFR)))
}
