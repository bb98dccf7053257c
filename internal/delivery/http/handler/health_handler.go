package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"go-clinic-scheduling/pkg/response"
)

// HealthCheck pings one dependency
type HealthCheck func(ctx context.Context) error

type HealthHandler struct {
	checks map[string]HealthCheck
}

func NewHealthHandler(checks map[string]HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks}
}

type healthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	result := healthResponse{Status: "ok", Components: make(map[string]string, len(names))}
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			result.Status = "degraded"
			result.Components[name] = err.Error()
			continue
		}
		result.Components[name] = "ok"
	}

	if result.Status != "ok" {
		response.JSON(w, http.StatusServiceUnavailable, result)
		return
	}
	response.JSON(w, http.StatusOK, result)
}
