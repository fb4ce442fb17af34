package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pharmabot/basket-service/internal/domain/model"
	"github.com/pharmabot/basket-service/internal/logger"
	"github.com/pharmabot/basket-service/internal/service"
)

// RequestLogger logs a summary of every request to the console and,
// when an audit trail is configured, enqueues the same summary for
// persistence. Enqueueing never blocks the response.
func RequestLogger(trail service.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		elapsed := time.Since(start)
		requestID := GetRequestID(c)
		method := c.Request.Method
		path := c.Request.URL.Path

		level := "info"
		l := logger.Logger()
		evt := l.Info()
		switch {
		case status >= 500:
			level = "error"
			evt = l.Error()
		case status >= 400:
			level = "warn"
			evt = l.Warn()
		}

		evt.
			Str("request_id", requestID).
			Str("method", method).
			Str("path", path).
			Int("status_code", status).
			Int64("duration_ms", elapsed.Milliseconds()).
			Str("ip", c.ClientIP()).
			Msg("HTTP request")

		if trail != nil {
			trail.Record(&model.AuditRecord{
				At:         time.Now(),
				Level:      level,
				Message:    "HTTP request",
				RequestID:  requestID,
				Method:     method,
				Path:       path,
				Status:     status,
				DurationMS: elapsed.Milliseconds(),
				ClientIP:   c.ClientIP(),
				UserAgent:  c.Request.UserAgent(),
			})
		}
	}
}
