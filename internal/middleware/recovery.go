package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"candidature-api/internal/response"
	"candidature-api/internal/session"
)

// Recovery turns a panic into a 500 error envelope. When the handler already
// started a response (CSV streaming, websocket upgrade) the connection is
// only aborted.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			fields := []zap.Field{
				zap.Any("error", rec),
				zap.String("error_type", fmt.Sprintf("%T", rec)),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.String("route", c.FullPath()),
				zap.Bool("response_started", c.Writer.Written()),
				zap.Stack("stacktrace"),
			}
			if sess, ok := session.From(c); ok {
				fields = append(fields, zap.String("user_id", sess.UserID.String()))
			}
			logger.Error("Panic recovered", fields...)

			if c.Writer.Written() {
				c.Abort()
				return
			}
			response.SendError(c, http.StatusInternalServerError, response.ErrCodeInternal, "Internal server error")
			c.Abort()
		}()

		c.Next()
	}
}
