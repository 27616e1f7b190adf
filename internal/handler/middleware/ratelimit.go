package middleware

import (
	"log/slog"
	"net/http"
	"strconv"

	redisinfra "casaraiz-backend/internal/infra/redis"

	"github.com/gin-gonic/gin"
)

// RateLimit applies a per-client sliding window. The identity comes from the
// authenticated user when present, falling back to the client IP for
// unauthenticated routes like the webhook endpoint.
func RateLimit(limiter *redisinfra.SlidingWindowLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.ClientIP()
		if userID, ok := GetUserID(c); ok {
			id = userID.String()
		}

		allowed, retryAfter, err := limiter.Allow(c.Request.Context(), id)
		if err != nil {
			// Limiter unavailability must not take the API down.
			slog.Warn("rate limiter unavailable", "error", err.Error())
			c.Next()
			return
		}

		if !allowed {
			seconds := int(retryAfter.Seconds())
			if seconds < 1 {
				seconds = 1
			}
			c.Header("Retry-After", strconv.Itoa(seconds))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
