//go:build !integration

package dto

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewError(t *testing.T) {
	err := NewError(ErrCodeInvalidRequest, "quantity must be positive")

	assert.Equal(t, ErrCodeInvalidRequest, err.Error)
	assert.Equal(t, "quantity must be positive", err.Message)
	assert.WithinDuration(t, time.Now(), err.Timestamp, time.Second)
	assert.Empty(t, err.RequestID)

	tagged := err.WithRequestID("req-42")
	assert.Equal(t, "req-42", tagged.RequestID)
	// WithRequestID works on a copy.
	assert.Empty(t, err.RequestID)
}

func TestErrCodeFromStatus(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{http.StatusBadRequest, ErrCodeInvalidRequest},
		{http.StatusUnauthorized, ErrCodeUnauthorized},
		{http.StatusForbidden, ErrCodeForbidden},
		{http.StatusNotFound, ErrCodeNotFound},
		{http.StatusConflict, ErrCodeConflict},
		{http.StatusTooManyRequests, ErrCodeRateLimit},
		{http.StatusRequestTimeout, ErrCodeTimeout},
		{http.StatusGatewayTimeout, ErrCodeTimeout},
		{http.StatusInternalServerError, ErrCodeInternal},
		{http.StatusBadGateway, ErrCodeInternal},
		{http.StatusServiceUnavailable, ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, ErrCodeFromStatus(tt.status))
		})
	}
}

func TestErrorResponse_JSONShape(t *testing.T) {
	data, err := json.Marshal(NewError(ErrCodeNotFound, "Product not found").WithRequestID("req-7"))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, ErrCodeNotFound, decoded["error"])
	assert.Equal(t, "Product not found", decoded["message"])
	assert.Equal(t, "req-7", decoded["request_id"])
	// Optional fields stay off the wire when unset.
	assert.NotContains(t, decoded, "details")
	assert.NotContains(t, decoded, "trace_id")
}
