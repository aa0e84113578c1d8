package handler

import (
	"net/http"

	"citynav/internal/delivery/http/response"
	"citynav/internal/infra/routing"

	"github.com/labstack/echo/v4"
)

// graphStatus is the slice of the routing engine health reporting needs.
type graphStatus interface {
	NodeCount() int
}

// HealthHandler reports service liveness and routing graph readiness.
type HealthHandler struct {
	engine graphStatus
}

// NewHealthHandler is the constructor for HealthHandler, injected by Fx.
func NewHealthHandler(engine *routing.Engine) *HealthHandler {
	return &HealthHandler{engine: engine}
}

// Check reports whether the service is up and how many graph nodes are loaded.
func (h *HealthHandler) Check(c echo.Context) error {
	payload := map[string]any{
		"status":      "ok",
		"graph_nodes": h.engine.NodeCount(),
	}

	return response.Success(c, http.StatusOK, payload, "Service healthy")
}
