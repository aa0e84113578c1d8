// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"citynav/internal/domain/entity"
	"citynav/internal/errors"

	"github.com/google/uuid"
)

// ErrRoadNotFound is a domain-specific error returned when a road is not found.
var ErrRoadNotFound = errors.New("road not found")

// RoadFilter narrows road listings.
type RoadFilter struct {
	// CreatedBy restricts results to records owned by this user when set.
	CreatedBy *uuid.UUID
	// IncludeInactive also returns deactivated records.
	IncludeInactive bool
}

// RoadRepository defines the standard operations for road persistence.
type RoadRepository interface {
	// FindByID retrieves a single road by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Road, error)

	// List retrieves roads matching the filter, newest first.
	List(ctx context.Context, filter RoadFilter) ([]*entity.Road, error)

	// ListActive retrieves every active road in creation order. The routing
	// graph is built from exactly this set.
	ListActive(ctx context.Context) ([]*entity.Road, error)

	// FindNamesByIDs resolves bilingual road names for the given IDs.
	// Unknown IDs are simply absent from the result map.
	FindNamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]entity.LocalizedText, error)

	// Create persists a new road entity to the storage.
	Create(ctx context.Context, road *entity.Road) error

	// Update modifies an existing road entity in the storage.
	Update(ctx context.Context, road *entity.Road) error

	// Delete removes a road by its ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
