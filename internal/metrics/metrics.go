// Package metrics provides Prometheus metrics collection for the basket service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// OptimizationsTotal tracks basket optimization runs by outcome.
	OptimizationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "basket_optimizations_total",
			Help: "Total number of basket optimization runs",
		},
		[]string{"status"},
	)

	// OptimizationDuration tracks how long one optimization run takes.
	OptimizationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "basket_optimization_duration_seconds",
			Help:    "Basket optimization duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
		},
	)

	// BasketSize tracks how many distinct products optimization runs see.
	BasketSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "basket_optimization_basket_size",
			Help:    "Number of distinct basket products per optimization run",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21, 34},
		},
	)

	// CandidateOffers tracks how many joined offers feed each run.
	CandidateOffers = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "basket_optimization_candidate_offers",
			Help:    "Number of candidate offers per optimization run",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
		},
	)

	// SolutionsReturned tracks how many solutions each run reports.
	SolutionsReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "basket_optimization_solutions_returned",
			Help:    "Number of solutions returned per optimization run",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		},
	)

	// OfferCacheOperationsTotal tracks offer snapshot cache hits and misses.
	OfferCacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "offer_cache_operations_total",
			Help: "Total number of offer snapshot cache operations",
		},
		[]string{"operation", "result"},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordOptimization records metrics for one optimization run.
func RecordOptimization(duration time.Duration, status string, basketSize, offerCount, solutionCount int) {
	OptimizationDuration.Observe(duration.Seconds())
	OptimizationsTotal.WithLabelValues(status).Inc()
	BasketSize.Observe(float64(basketSize))
	CandidateOffers.Observe(float64(offerCount))
	SolutionsReturned.Observe(float64(solutionCount))
}

// RecordOfferCacheOperation records one offer snapshot cache operation.
func RecordOfferCacheOperation(operation, result string) {
	OfferCacheOperationsTotal.WithLabelValues(operation, result).Inc()
}
