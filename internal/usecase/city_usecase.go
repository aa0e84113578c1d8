package usecase

import (
	"context"

	"citynav/internal/domain/entity"

	"github.com/google/uuid"
)

// CityInput defines the data required to create or update a city.
type CityInput struct {
	Name        entity.LocalizedText
	Address     entity.LocalizedText
	Description entity.LocalizedText
	Longitude   float64
	Latitude    float64
	ImageURLs   []string
	IsActive    *bool
}

// ListCitiesInput narrows the public city listing.
type ListCitiesInput struct {
	CreatedBy       *uuid.UUID
	IncludeInactive bool
}

// CityUsecase defines the interface for city geodata operations.
// Mutations require an actor; ownership rules are enforced here.
type CityUsecase interface {
	ListCities(ctx context.Context, input ListCitiesInput) ([]*entity.City, error)
	GetCity(ctx context.Context, id uuid.UUID) (*entity.City, error)
	CreateCity(ctx context.Context, actor *entity.User, input *CityInput) (*entity.City, error)
	UpdateCity(ctx context.Context, actor *entity.User, id uuid.UUID, input *CityInput) (*entity.City, error)
	DeleteCity(ctx context.Context, actor *entity.User, id uuid.UUID) error
}
