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

// LocationHandler holds dependencies for location geodata handlers.
type LocationHandler struct {
	uc     usecase.LocationUsecase
	logger *slog.Logger
}

// NewLocationHandler is the constructor for LocationHandler, injected by Fx.
func NewLocationHandler(uc usecase.LocationUsecase, logger *slog.Logger) *LocationHandler {
	return &LocationHandler{uc: uc, logger: logger}
}

type locationRequest struct {
	CityID       uuid.UUID            `json:"city_id"`
	Name         entity.LocalizedText `json:"name"`
	Address      entity.LocalizedText `json:"address"`
	Description  entity.LocalizedText `json:"description"`
	LocationType string               `json:"location_type"`
	Longitude    float64              `json:"longitude"`
	Latitude     float64              `json:"latitude"`
	ImageURLs    []string             `json:"image_urls"`
	IsActive     *bool                `json:"is_active"`
}

func (r *locationRequest) toInput() *usecase.LocationInput {
	return &usecase.LocationInput{
		CityID:       r.CityID,
		Name:         r.Name,
		Address:      r.Address,
		Description:  r.Description,
		LocationType: r.LocationType,
		Longitude:    r.Longitude,
		Latitude:     r.Latitude,
		ImageURLs:    r.ImageURLs,
		IsActive:     r.IsActive,
	}
}

// ListLocations handles the public location listing with optional filters.
func (h *LocationHandler) ListLocations(c echo.Context) error {
	input := usecase.ListLocationsInput{}
	if cityIDStr := c.QueryParam("city_id"); cityIDStr != "" {
		cityID, err := uuid.Parse(cityIDStr)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid city_id filter")
		}
		input.CityID = &cityID
	}
	if userIDStr := c.QueryParam("user_id"); userIDStr != "" {
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid user_id filter")
		}
		input.CreatedBy = &userID
	}

	locations, err := h.uc.ListLocations(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newLocationViews(locations), "Locations retrieved successfully")
}

// GetLocation handles fetching one location by ID.
func (h *LocationHandler) GetLocation(c echo.Context) error {
	id, ok := idParam(c)
	if !ok {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid location ID")
	}

	location, err := h.uc.GetLocation(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newLocationView(location), "Location retrieved successfully")
}

// CreateLocation handles location creation by contributors.
func (h *LocationHandler) CreateLocation(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Authentication required")
	}

	var req locationRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid location input")
	}

	location, err := h.uc.CreateLocation(c.Request().Context(), actor, req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newLocationView(location), "Location created successfully")
}

// UpdateLocation handles location updates by the owner or an admin.
func (h *LocationHandler) UpdateLocation(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Authentication required")
	}

	id, ok := idParam(c)
	if !ok {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid location ID")
	}

	var req locationRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid location input")
	}

	location, err := h.uc.UpdateLocation(c.Request().Context(), actor, id, req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newLocationView(location), "Location updated successfully")
}

// DeleteLocation handles location deletion by the owner or an admin.
func (h *LocationHandler) DeleteLocation(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Authentication required")
	}

	id, ok := idParam(c)
	if !ok {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid location ID")
	}

	if err := h.uc.DeleteLocation(c.Request().Context(), actor, id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"id": id.String()}, "Location deleted successfully")
}
