package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"groupledger/internal/logger"
)

// JobKeyHeader carries the shared secret of scheduled jobs.
const JobKeyHeader = "X-API-Key"

// JobAuthMiddleware guards the internal endpoints a scheduler calls, such as
// the orphan payment repair. Requests must present apiKey in JobKeyHeader.
// With no key configured the endpoints are disabled.
func JobAuthMiddleware(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable,
				gin.H{"error": gin.H{"code": "JOBS_NOT_CONFIGURED", "message": "Scheduled job endpoints are disabled"}})
			return
		}
		key := c.GetHeader(JobKeyHeader)
		if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
			logger.Get().Warnw("rejected job request",
				"path", c.Request.URL.Path,
				"client_ip", c.ClientIP(),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"error": gin.H{"code": "INVALID_API_KEY", "message": "Invalid or missing API key"}})
			return
		}
		c.Next()
	}
}
