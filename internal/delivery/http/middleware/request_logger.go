package middleware

import (
	"time"

	"employee-onboarding-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// RequestLogger writes one structured access line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []interface{}{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
			"request_id", c.GetString("RequestID"),
		}
		switch {
		case status >= 500:
			logger.Log.Errorw("http request", fields...)
		case status >= 400:
			logger.Log.Warnw("http request", fields...)
		default:
			logger.Log.Infow("http request", fields...)
		}
	}
}
