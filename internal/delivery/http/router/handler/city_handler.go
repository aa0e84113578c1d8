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

// CityHandler holds dependencies for city geodata handlers.
type CityHandler struct {
	uc     usecase.CityUsecase
	logger *slog.Logger
}

// NewCityHandler is the constructor for CityHandler, injected by Fx.
func NewCityHandler(uc usecase.CityUsecase, logger *slog.Logger) *CityHandler {
	return &CityHandler{uc: uc, logger: logger}
}

type cityRequest struct {
	Name        entity.LocalizedText `json:"name"`
	Address     entity.LocalizedText `json:"address"`
	Description entity.LocalizedText `json:"description"`
	Longitude   float64              `json:"longitude"`
	Latitude    float64              `json:"latitude"`
	ImageURLs   []string             `json:"image_urls"`
	IsActive    *bool                `json:"is_active"`
}

func (r *cityRequest) toInput() *usecase.CityInput {
	return &usecase.CityInput{
		Name:        r.Name,
		Address:     r.Address,
		Description: r.Description,
		Longitude:   r.Longitude,
		Latitude:    r.Latitude,
		ImageURLs:   r.ImageURLs,
		IsActive:    r.IsActive,
	}
}

// ListCities handles the public city listing.
func (h *CityHandler) ListCities(c echo.Context) error {
	input := usecase.ListCitiesInput{}
	if userIDStr := c.QueryParam("user_id"); userIDStr != "" {
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid user_id filter")
		}
		input.CreatedBy = &userID
	}

	cities, err := h.uc.ListCities(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newCityViews(cities), "Cities retrieved successfully")
}

// GetCity handles fetching one city by ID.
func (h *CityHandler) GetCity(c echo.Context) error {
	id, ok := idParam(c)
	if !ok {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid city ID")
	}

	city, err := h.uc.GetCity(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newCityView(city), "City retrieved successfully")
}

// CreateCity handles city creation by contributors.
func (h *CityHandler) CreateCity(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Authentication required")
	}

	var req cityRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid city input")
	}

	city, err := h.uc.CreateCity(c.Request().Context(), actor, req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newCityView(city), "City created successfully")
}

// UpdateCity handles city updates by the owner or an admin.
func (h *CityHandler) UpdateCity(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Authentication required")
	}

	id, ok := idParam(c)
	if !ok {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid city ID")
	}

	var req cityRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid city input")
	}

	city, err := h.uc.UpdateCity(c.Request().Context(), actor, id, req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newCityView(city), "City updated successfully")
}

// DeleteCity handles city deletion by the owner or an admin.
func (h *CityHandler) DeleteCity(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Authentication required")
	}

	id, ok := idParam(c)
	if !ok {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid city ID")
	}

	if err := h.uc.DeleteCity(c.Request().Context(), actor, id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"id": id.String()}, "City deleted successfully")
}
