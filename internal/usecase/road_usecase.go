package usecase

import (
	"context"

	"citynav/internal/domain/entity"

	"github.com/google/uuid"
)

// RoadInput defines the data required to create or update a road.
// Coordinates arrive as raw [lon, lat] pairs; geometry validation and
// per-segment length computation happen in the usecase.
type RoadInput struct {
	Name        entity.LocalizedText
	RoadType    string
	IsOneway    bool
	Coordinates [][]float64
	IsActive    *bool
}

// ListRoadsInput narrows the public road listing.
type ListRoadsInput struct {
	CreatedBy       *uuid.UUID
	IncludeInactive bool
}

// RoadUsecase defines the interface for road geodata operations.
// Every successful mutation rebuilds the routing graph before returning,
// so the next route request already sees the change.
type RoadUsecase interface {
	ListRoads(ctx context.Context, input ListRoadsInput) ([]*entity.Road, error)
	GetRoad(ctx context.Context, id uuid.UUID) (*entity.Road, error)
	CreateRoad(ctx context.Context, actor *entity.User, input *RoadInput) (*entity.Road, error)
	UpdateRoad(ctx context.Context, actor *entity.User, id uuid.UUID, input *RoadInput) (*entity.Road, error)
	DeleteRoad(ctx context.Context, actor *entity.User, id uuid.UUID) error
}
