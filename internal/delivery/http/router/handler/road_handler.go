package handler

import (
	"log/slog"
	"net/http"

	"citynav/internal/delivery/http/response"
	"citynav/internal/domain/entity"
	"citynav/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// RoadHandler holds dependencies for road-network handlers. Road mutations
// rebuild the routing graph before the response is written.
type RoadHandler struct {
	uc     usecase.RoadUsecase
	logger *slog.Logger
}

// NewRoadHandler is the constructor for RoadHandler, injected by Fx.
func NewRoadHandler(uc usecase.RoadUsecase, logger *slog.Logger) *RoadHandler {
	return &RoadHandler{uc: uc, logger: logger}
}

type roadRequest struct {
	Name        entity.LocalizedText `json:"name"`
	RoadType    string               `json:"road_type"`
	IsOneway    bool                 `json:"is_oneway"`
	Coordinates [][]float64          `json:"coordinates"`
	IsActive    *bool                `json:"is_active"`
}

func (r *roadRequest) toInput() *usecase.RoadInput {
	return &usecase.RoadInput{
		Name:        r.Name,
		RoadType:    r.RoadType,
		IsOneway:    r.IsOneway,
		Coordinates: r.Coordinates,
		IsActive:    r.IsActive,
	}
}

// ListRoads handles the public road listing with optional filters.
func (h *RoadHandler) ListRoads(c echo.Context) error {
	input := usecase.ListRoadsInput{}
	if userIDStr := c.QueryParam("user_id"); userIDStr != "" {
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid user_id filter")
		}
		input.CreatedBy = &userID
	}

	roads, err := h.uc.ListRoads(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newRoadViews(roads), "Roads retrieved successfully")
}

// GetRoad handles fetching one road by ID.
func (h *RoadHandler) GetRoad(c echo.Context) error {
	id, ok := idParam(c)
	if !ok {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid road ID")
	}

	road, err := h.uc.GetRoad(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newRoadView(road), "Road retrieved successfully")
}

// CreateRoad handles road creation by contributors.
func (h *RoadHandler) CreateRoad(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Authentication required")
	}

	var req roadRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid road input")
	}

	road, err := h.uc.CreateRoad(c.Request().Context(), actor, req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newRoadView(road), "Road created successfully")
}

// UpdateRoad handles road updates by the owner or an admin.
func (h *RoadHandler) UpdateRoad(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Authentication required")
	}

	id, ok := idParam(c)
	if !ok {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid road ID")
	}

	var req roadRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid road input")
	}

	road, err := h.uc.UpdateRoad(c.Request().Context(), actor, id, req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newRoadView(road), "Road updated successfully")
}

// DeleteRoad handles road deletion by the owner or an admin.
func (h *RoadHandler) DeleteRoad(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Authentication required")
	}

	id, ok := idParam(c)
	if !ok {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid road ID")
	}

	if err := h.uc.DeleteRoad(c.Request().Context(), actor, id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"id": id.String()}, "Road deleted successfully")
}
