// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"citynav/internal/domain/entity"

	"github.com/google/uuid"
)

// RouteRepository defines the standard operations for route history persistence.
type RouteRepository interface {
	// Create persists a planned route for an authenticated user.
	Create(ctx context.Context, route *entity.Route) error

	// ListByUser retrieves a user's planned routes, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Route, error)
}
