package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/serenity-health/serenity/internal/repository"
)

// RateLimit returns middleware that enforces a per-minute request limit,
// keyed by user id once authenticated and by client IP before that. Scopes
// keep counters independent, so the chat limit does not eat into the general
// API budget. When the limit store is unreachable the request is let through.
func RateLimit(store *repository.Store, scope string, limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := scope + ":user:" + c.GetString(CtxUserID)
		if key == scope+":user:" {
			key = scope + ":ip:" + c.ClientIP()
		}

		count, err := store.CheckAndIncrementRateLimit(c.Request.Context(), key)
		if err != nil {
			slog.Error("rate limit check failed", "error", err, "key", key)
			c.Next()
			return
		}

		if count > limit {
			slog.Debug("rate limited", "key", key, "count", count, "limit", limit)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, slow down a little"})
			return
		}
		c.Next()
	}
}
