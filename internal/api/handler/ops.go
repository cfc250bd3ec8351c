package handler

import (
	"net/http"

	"github.com/jonboulle/clockwork"

	"github.com/breatheroute/airindex/internal/api/models"
	"github.com/breatheroute/airindex/internal/api/response"
	"github.com/breatheroute/airindex/internal/aqi"
)

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	clock     clockwork.Clock
}

// NewOpsHandler creates a new OpsHandler. A nil clock uses the real clock.
func NewOpsHandler(version, buildTime string, clock clockwork.Clock) *OpsHandler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		clock:     clock,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(h.clock.Now()),
		Details: map[string]any{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check. The service is
// ready when every standard classifies a known index.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status:  models.HealthStatusOK,
		Time:    models.Timestamp(h.clock.Now()),
		Details: map[string]any{},
	}

	for _, std := range aqi.Standards() {
		if !std.Classify(0).Category.IsKnown() || len(std.Pollutants()) == 0 {
			health.Status = models.HealthStatusFail
			health.Details[string(std.Name())] = "breakpoint tables unavailable"
			continue
		}
		health.Details[string(std.Name())] = "ok"
	}

	status := http.StatusOK
	if health.Status != models.HealthStatusOK {
		status = http.StatusServiceUnavailable
	}
	response.JSON(w, r, status, health)
}
