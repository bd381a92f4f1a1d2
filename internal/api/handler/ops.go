// Package handler provides HTTP handlers for the FuelStack API.
package handler

import (
	"net/http"
	"time"

	"github.com/fuelstack/fuelstack/internal/api/models"
	"github.com/fuelstack/fuelstack/internal/api/response"
	"github.com/fuelstack/fuelstack/internal/provider/resilience"
)

// HealthChecker reports the health of an upstream dependency.
type HealthChecker interface {
	Health() resilience.Health
}

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	upstreams []HealthChecker
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(version, buildTime string, upstreams ...HealthChecker) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		upstreams: upstreams,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check. Reports
// DEGRADED when any upstream circuit breaker is open.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	status := models.HealthStatusOK
	details := make(map[string]interface{}, len(h.upstreams))
	for _, upstream := range h.upstreams {
		hs := upstream.Health()
		details[hs.Name] = hs.String()
		if !hs.Healthy() {
			status = models.HealthStatusDegraded
		}
	}

	health := models.Health{
		Status: status,
		Time:   models.Timestamp(time.Now()),
	}
	if len(details) > 0 {
		health.Details = details
	}
	response.JSON(w, r, http.StatusOK, health)
}
