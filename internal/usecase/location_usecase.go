package usecase

import (
	"context"

	"citynav/internal/domain/entity"

	"github.com/google/uuid"
)

// LocationInput defines the data required to create or update a location.
type LocationInput struct {
	CityID       uuid.UUID
	Name         entity.LocalizedText
	Address      entity.LocalizedText
	Description  entity.LocalizedText
	LocationType string
	Longitude    float64
	Latitude     float64
	ImageURLs    []string
	IsActive     *bool
}

// ListLocationsInput narrows the public location listing.
type ListLocationsInput struct {
	CityID          *uuid.UUID
	CreatedBy       *uuid.UUID
	IncludeInactive bool
}

// LocationUsecase defines the interface for location geodata operations.
type LocationUsecase interface {
	ListLocations(ctx context.Context, input ListLocationsInput) ([]*entity.Location, error)
	GetLocation(ctx context.Context, id uuid.UUID) (*entity.Location, error)
	CreateLocation(ctx context.Context, actor *entity.User, input *LocationInput) (*entity.Location, error)
	UpdateLocation(ctx context.Context, actor *entity.User, id uuid.UUID, input *LocationInput) (*entity.Location, error)
	DeleteLocation(ctx context.Context, actor *entity.User, id uuid.UUID) error
}
