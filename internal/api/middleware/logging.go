package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/martijn/shopadmin/internal/logger"
	"github.com/martijn/shopadmin/pkg/metrics"
)

// RequestLogger logs every request with its status and latency and records
// the latency histogram.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RequestDurationHistogram.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).
			Observe(latency.Seconds())

		sessionID, _ := GetSessionID(c)
		fields := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency_ms", latency.Milliseconds(),
			"session", sessionID,
		}
		switch {
		case status >= 500:
			log.Error("request", fields...)
		case status >= 400:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}
