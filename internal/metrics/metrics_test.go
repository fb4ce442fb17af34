//go:build !integration

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(PrometheusMiddleware())
	router.POST("/api/optimize", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	router.GET("/api/products/:minsan", func(c *gin.Context) {
		c.String(http.StatusNotFound, "missing")
	})

	t.Run("counts requests under the route template", func(t *testing.T) {
		before := testutil.ToFloat64(HTTPRequestTotal.WithLabelValues(http.MethodPost, "/api/optimize", "200"))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/optimize", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		after := testutil.ToFloat64(HTTPRequestTotal.WithLabelValues(http.MethodPost, "/api/optimize", "200"))
		assert.Equal(t, before+1, after)
	})

	t.Run("parameterized routes share one label", func(t *testing.T) {
		before := testutil.ToFloat64(HTTPRequestTotal.WithLabelValues(http.MethodGet, "/api/products/:minsan", "404"))

		for _, minsan := range []string{"935621793", "904713472"} {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products/"+minsan, nil))
			assert.Equal(t, http.StatusNotFound, w.Code)
		}

		after := testutil.ToFloat64(HTTPRequestTotal.WithLabelValues(http.MethodGet, "/api/products/:minsan", "404"))
		assert.Equal(t, before+2, after)
	})
}

func TestRecordOptimization(t *testing.T) {
	before := testutil.ToFloat64(OptimizationsTotal.WithLabelValues("success"))
	beforeErr := testutil.ToFloat64(OptimizationsTotal.WithLabelValues("error"))

	RecordOptimization(100*time.Millisecond, "success", 3, 12, 5)
	RecordOptimization(50*time.Millisecond, "error", 0, 0, 0)

	assert.Equal(t, before+1, testutil.ToFloat64(OptimizationsTotal.WithLabelValues("success")))
	assert.Equal(t, beforeErr+1, testutil.ToFloat64(OptimizationsTotal.WithLabelValues("error")))
}

func TestRecordOfferCacheOperation(t *testing.T) {
	hits := testutil.ToFloat64(OfferCacheOperationsTotal.WithLabelValues("get", "hit"))
	misses := testutil.ToFloat64(OfferCacheOperationsTotal.WithLabelValues("get", "miss"))

	RecordOfferCacheOperation("get", "hit")
	RecordOfferCacheOperation("get", "miss")
	RecordOfferCacheOperation("get", "hit")

	assert.Equal(t, hits+2, testutil.ToFloat64(OfferCacheOperationsTotal.WithLabelValues("get", "hit")))
	assert.Equal(t, misses+1, testutil.ToFloat64(OfferCacheOperationsTotal.WithLabelValues("get", "miss")))
}
