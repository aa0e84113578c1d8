// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"citynav/internal/domain/entity"
	"citynav/internal/errors"

	"github.com/google/uuid"
)

// ErrCityNotFound is a domain-specific error returned when a city is not found.
var ErrCityNotFound = errors.New("city not found")

// CityFilter narrows city listings.
type CityFilter struct {
	// CreatedBy restricts results to records owned by this user when set.
	CreatedBy *uuid.UUID
	// IncludeInactive also returns deactivated records.
	IncludeInactive bool
}

// CityRepository defines the standard operations for city persistence.
type CityRepository interface {
	// FindByID retrieves a single city by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.City, error)

	// List retrieves cities matching the filter, newest first.
	List(ctx context.Context, filter CityFilter) ([]*entity.City, error)

	// Create persists a new city entity to the storage.
	Create(ctx context.Context, city *entity.City) error

	// Update modifies an existing city entity in the storage.
	Update(ctx context.Context, city *entity.City) error

	// Delete removes a city by its ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
