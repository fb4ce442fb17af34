package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pharmabot/basket-service/internal/domain/model"
	"github.com/pharmabot/basket-service/internal/service"
)

// AuditAction records a domain action (optimize run, catalog mutation)
// on the audit trail. A nil trail disables auditing.
func AuditAction(trail service.AuditService, c *gin.Context, action, message string, detail map[string]interface{}) {
	auditRecord(trail, c, "info", action, message, "", detail)
}

// AuditFailure records a failed domain action together with its error.
func AuditFailure(trail service.AuditService, c *gin.Context, action, message string, err error, detail map[string]interface{}) {
	errText := ""
	if err != nil {
		errText = err.Error()
	}
	auditRecord(trail, c, "error", action, message, errText, detail)
}

func auditRecord(trail service.AuditService, c *gin.Context, level, action, message, errText string, detail map[string]interface{}) {
	if trail == nil {
		return
	}
	trail.Record(&model.AuditRecord{
		At:        time.Now(),
		Level:     level,
		Message:   message,
		RequestID: GetRequestID(c),
		Method:    c.Request.Method,
		Path:      c.Request.URL.Path,
		ClientIP:  c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Error:     errText,
		Action:    action,
		Detail:    detail,
	})
}
