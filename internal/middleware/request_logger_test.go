//go:build !integration

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLogger(t *testing.T) {
	newRouter := func(trail *trailStub) *gin.Engine {
		gin.SetMode(gin.TestMode)
		router := gin.New()
		var handler gin.HandlerFunc
		if trail != nil {
			handler = RequestLogger(trail)
		} else {
			handler = RequestLogger(nil)
		}
		router.Use(RequestID(), handler)
		router.GET("/api/basket", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"items": []string{}})
		})
		router.GET("/api/products/unknown", func(c *gin.Context) {
			c.Status(http.StatusNotFound)
		})
		router.POST("/api/optimize", func(c *gin.Context) {
			c.Status(http.StatusInternalServerError)
		})
		return router
	}

	t.Run("enqueues one record per request", func(t *testing.T) {
		trail := &trailStub{}
		router := newRouter(trail)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/basket", nil))
		require.Equal(t, http.StatusOK, w.Code)

		records := trail.recorded()
		require.Len(t, records, 1)
		rec := records[0]
		assert.Equal(t, "info", rec.Level)
		assert.Equal(t, http.MethodGet, rec.Method)
		assert.Equal(t, "/api/basket", rec.Path)
		assert.Equal(t, http.StatusOK, rec.Status)
		assert.NotEmpty(t, rec.RequestID)
		assert.GreaterOrEqual(t, rec.DurationMS, int64(0))
	})

	t.Run("grades client errors as warnings", func(t *testing.T) {
		trail := &trailStub{}
		router := newRouter(trail)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products/unknown", nil))

		records := trail.recorded()
		require.Len(t, records, 1)
		assert.Equal(t, "warn", records[0].Level)
		assert.Equal(t, http.StatusNotFound, records[0].Status)
	})

	t.Run("grades server errors as errors", func(t *testing.T) {
		trail := &trailStub{}
		router := newRouter(trail)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/optimize", nil))

		records := trail.recorded()
		require.Len(t, records, 1)
		assert.Equal(t, "error", records[0].Level)
	})

	t.Run("runs without an audit trail", func(t *testing.T) {
		router := newRouter(nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/basket", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
