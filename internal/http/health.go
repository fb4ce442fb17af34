package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pharmabot/basket-service/internal/circuitbreaker"
)

// CheckFunc probes one dependency and reports an error when it is down.
type CheckFunc func() error

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	checks   map[string]CheckFunc
	breakers []*circuitbreaker.Breaker
}

// NewHealthHandler creates an empty health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{checks: make(map[string]CheckFunc)}
}

// AddCheck registers a dependency probe under the given name.
func (h *HealthHandler) AddCheck(name string, fn CheckFunc) {
	h.checks[name] = fn
}

// WatchBreaker includes a circuit breaker's state in the readiness report.
func (h *HealthHandler) WatchBreaker(b *circuitbreaker.Breaker) {
	h.breakers = append(h.breakers, b)
}

// Register registers health endpoints on the router.
func (h *HealthHandler) Register(router *gin.Engine) {
	router.GET("/healthz", h.Liveness)
	router.GET("/readyz", h.Readiness)
}

// Liveness handles the liveness probe endpoint.
// @Summary     Liveness probe
// @Description Returns OK if the service is running. Used by Kubernetes and other orchestration platforms to determine if the service should be restarted.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]string "Service is alive"
// @Router      /healthz [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles the readiness probe endpoint. The service is ready
// when every registered probe passes and no watched circuit breaker is
// shedding load.
// @Summary     Readiness probe
// @Description Returns OK if all dependencies are healthy and the service is ready to accept traffic. Used by load balancers and orchestration platforms.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]interface{} "Service is ready"
// @Failure     503 {object} map[string]interface{} "Service is not ready"
// @Router      /readyz [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	ready := true
	checks := make(map[string]interface{})

	for name, check := range h.checks {
		if err := check(); err != nil {
			checks[name] = err.Error()
			ready = false
		} else {
			checks[name] = "ok"
		}
	}

	for _, b := range h.breakers {
		snap := b.Snapshot()
		checks[snap.Name+"_circuit"] = snap.State.String()
		if !snap.Healthy() {
			ready = false
		}
	}

	if len(checks) == 0 {
		checks["service"] = "ok"
	}

	status := http.StatusOK
	overall := "ok"
	if !ready {
		status = http.StatusServiceUnavailable
		overall = "degraded"
	}
	c.JSON(status, gin.H{"status": overall, "checks": checks})
}
