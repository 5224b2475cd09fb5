package api

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	xhttp "MarketPulse/pkg/http"
)

// HealthChecker probes one dependency.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthHandler serves the readiness endpoint. Each registered dependency is
// probed with a short timeout; any failure degrades the overall status.
type HealthHandler struct {
	checks map[string]HealthChecker
}

// NewHealthHandler creates the health handler over named dependency probes.
func NewHealthHandler(checks map[string]HealthChecker) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// RegisterRoutes registers the health route on the Echo instance.
func (h *HealthHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)
}

type healthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
}

// Health probes every dependency and reports per-component status.
func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	resp := healthResponse{Status: "ok", Components: make(map[string]string, len(h.checks))}
	for name, check := range h.checks {
		if err := check.Health(ctx); err != nil {
			resp.Status = "degraded"
			resp.Components[name] = err.Error()
			continue
		}
		resp.Components[name] = "ok"
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	return xhttp.DataResponse(c, status, resp)
}
