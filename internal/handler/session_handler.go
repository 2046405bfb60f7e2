package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"candidature-api/internal/response"
	"candidature-api/internal/session"
)

// SessionResponse is the caller's session and navigation
type SessionResponse struct {
	Session    *session.Session  `json:"session"`
	Navigation []session.NavItem `json:"navigation"`
}

// GetSession godoc
// @Summary      Current session
// @Description  The authenticated user with the sidebar sections of their role.
// @Tags         session
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=handler.SessionResponse}
// @Failure      401 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /session [get]
func GetSession(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	response.SendSuccess(c, http.StatusOK, SessionResponse{
		Session:    sess,
		Navigation: session.Navigation(sess.Role),
	})
}
