package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuditRecord is one line of the service's audit trail: either an HTTP
// request summary written by the request logger, or a domain action
// (optimize run, catalog mutation) written by a handler.
type AuditRecord struct {
	ID         primitive.ObjectID     `json:"id"`
	At         time.Time              `json:"timestamp"`
	Level      string                 `json:"level"`
	Message    string                 `json:"message"`
	RequestID  string                 `json:"request_id,omitempty"`
	Method     string                 `json:"method,omitempty"`
	Path       string                 `json:"path,omitempty"`
	Status     int                    `json:"status_code,omitempty"`
	DurationMS int64                  `json:"duration_ms,omitempty"`
	ClientIP   string                 `json:"ip,omitempty"`
	UserAgent  string                 `json:"user_agent,omitempty"`
	Error      string                 `json:"error,omitempty"`
	Action     string                 `json:"action,omitempty"`
	Detail     map[string]interface{} `json:"detail,omitempty"`
}

// Tag attaches one key to the record's Detail map, allocating it on
// first use.
func (r *AuditRecord) Tag(key string, value interface{}) *AuditRecord {
	if r.Detail == nil {
		r.Detail = make(map[string]interface{})
	}
	r.Detail[key] = value
	return r
}

// AuditQuery filters the audit trail. Zero fields match everything.
type AuditQuery struct {
	RequestID string
	Level     string
	Action    string
	Path      string
	From      *time.Time
	To        *time.Time
	Limit     int
	Skip      int
}
