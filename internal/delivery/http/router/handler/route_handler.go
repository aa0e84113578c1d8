package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	httpmiddleware "citynav/internal/delivery/http/middleware"
	"citynav/internal/delivery/http/response"
	"citynav/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const defaultHistoryLimit = 20

// RouteHandler holds dependencies for route planning handlers.
type RouteHandler struct {
	uc     usecase.RouteUsecase
	logger *slog.Logger
}

// NewRouteHandler is the constructor for RouteHandler, injected by Fx.
func NewRouteHandler(uc usecase.RouteUsecase, logger *slog.Logger) *RouteHandler {
	return &RouteHandler{uc: uc, logger: logger}
}

type planRouteRequest struct {
	StartLon     *float64 `json:"start_lon"`
	StartLat     *float64 `json:"start_lat"`
	EndLon       *float64 `json:"end_lon"`
	EndLat       *float64 `json:"end_lat"`
	Optimization string   `json:"optimization"`
	StartName    string   `json:"start_name"`
	EndName      string   `json:"end_name"`
}

// PlanRoute handles walking-route requests. Anonymous callers get a route;
// authenticated callers additionally get the route saved to their history.
func (h *RouteHandler) PlanRoute(c echo.Context) error {
	var req planRouteRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid route input")
	}

	input := &usecase.PlanRouteInput{
		StartLon:     req.StartLon,
		StartLat:     req.StartLat,
		EndLon:       req.EndLon,
		EndLat:       req.EndLat,
		Optimization: req.Optimization,
		StartName:    req.StartName,
		EndName:      req.EndName,
	}
	if userID, ok := httpmiddleware.UserIDFromContext(c); ok {
		input.UserID = &userID
	}

	output, err := h.uc.PlanRoute(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Route calculated successfully")
}

// ListHistory handles fetching the authenticated user's saved routes.
func (h *RouteHandler) ListHistory(c echo.Context) error {
	userID, ok := httpmiddleware.UserIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Authentication required")
	}

	limit := defaultHistoryLimit
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid limit parameter")
		}
		limit = parsed
	}

	routes, err := h.uc.ListHistory(c.Request().Context(), userID, limit)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newRouteViews(routes), "Route history retrieved successfully")
}
