// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"citynav/internal/domain/entity"
	"citynav/internal/errors"

	"github.com/google/uuid"
)

// ErrLocationNotFound is a domain-specific error returned when a location is not found.
var ErrLocationNotFound = errors.New("location not found")

// LocationFilter narrows location listings.
type LocationFilter struct {
	// CityID restricts results to one city when set.
	CityID *uuid.UUID
	// CreatedBy restricts results to records owned by this user when set.
	CreatedBy *uuid.UUID
	// IncludeInactive also returns deactivated records.
	IncludeInactive bool
}

// LocationRepository defines the standard operations for location persistence.
type LocationRepository interface {
	// FindByID retrieves a single location by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Location, error)

	// List retrieves locations matching the filter, newest first.
	List(ctx context.Context, filter LocationFilter) ([]*entity.Location, error)

	// ListActive retrieves every active location. Route annotation scans
	// this set for named points near the route.
	ListActive(ctx context.Context) ([]*entity.Location, error)

	// Create persists a new location entity to the storage.
	Create(ctx context.Context, location *entity.Location) error

	// Update modifies an existing location entity in the storage.
	Update(ctx context.Context, location *entity.Location) error

	// Delete removes a location by its ID.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByCity removes all locations belonging to a city.
	DeleteByCity(ctx context.Context, cityID uuid.UUID) error
}
