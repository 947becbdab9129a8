package middleware

import (
	"net/http"

	"portfolio-app/internal/api/respond"
	"portfolio-app/internal/ratelimit"

	"github.com/gin-gonic/gin"
)

// GuestRateLimit throttles the unauthenticated guest endpoints per client IP.
// A nil limiter disables throttling.
func GuestRateLimit(limiter *ratelimit.FixedWindowLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter != nil && !limiter.Allow(c.Request.Context(), c.ClientIP()) {
			respond.AbortError(c, http.StatusTooManyRequests, "Too many requests")
			return
		}
		c.Next()
	}
}
