package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Logging returns middleware that logs request processing time. Bodies are
// never logged; what people write here is sensitive.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.New().String()
		c.Set(CtxRequestID, requestID)

		c.Next()

		slog.Debug("request processed",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"user_id", c.GetString(CtxUserID),
			"duration", time.Since(start),
		)
	}
}
