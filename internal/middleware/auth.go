package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"candidature-api/internal/response"
	"candidature-api/internal/session"
)

const accessTokenCookie = "accessToken"

// extractToken reads the JWT from the Authorization header, then the
// accessToken cookie, then the token query parameter (websocket clients).
func extractToken(c *gin.Context) (string, bool) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}
	if cookie, err := c.Cookie(accessTokenCookie); err == nil && cookie != "" {
		return cookie, true
	}
	if token := c.Query("token"); token != "" {
		return token, true
	}
	return "", false
}

func parseSession(tokenString, jwtSecret string) (*session.Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return session.FromClaims(claims, tokenString)
}

func unauthorized(c *gin.Context, message string) {
	response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, message)
	c.Abort()
}

// Auth rejects requests without a valid token and stores the session otherwise
func Auth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := extractToken(c)
		if !ok {
			unauthorized(c, "Authentication required")
			return
		}

		sess, err := parseSession(tokenString, jwtSecret)
		if err != nil {
			unauthorized(c, "Invalid or expired token")
			return
		}

		session.Set(c, sess)
		c.Next()
	}
}

// OptionalAuth stores the session when a valid token is present and lets
// anonymous requests through. An invalid token is treated as anonymous.
func OptionalAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, ok := extractToken(c); ok {
			if sess, err := parseSession(tokenString, jwtSecret); err == nil {
				session.Set(c, sess)
			}
		}
		c.Next()
	}
}

// RequireRoles must run after Auth.
func RequireRoles(roles ...session.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := session.From(c)
		if !ok {
			unauthorized(c, "Authentication required")
			return
		}
		if !sess.HasRole(roles...) {
			response.SendError(c, http.StatusForbidden, response.ErrCodeForbidden, "Insufficient role")
			c.Abort()
			return
		}
		c.Next()
	}
}
