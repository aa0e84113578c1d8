package impl

import (
	"context"
	"log/slog"

	deliverycontext "citynav/internal/delivery/context"
	"citynav/internal/domain/entity"
	domainerrors "citynav/internal/domain/errors"
	"citynav/internal/domain/repository"
	"citynav/internal/usecase"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// locationService implements the LocationUsecase interface.
type locationService struct {
	locationRepo repository.LocationRepository
	cityRepo     repository.CityRepository
	logger       *slog.Logger
}

// LocationServiceParams holds dependencies for locationService, injected by Fx.
type LocationServiceParams struct {
	fx.In

	LocationRepo repository.LocationRepository
	CityRepo     repository.CityRepository
	Logger       *slog.Logger
}

// NewLocationService is the constructor for locationService.
func NewLocationService(params LocationServiceParams) usecase.LocationUsecase {
	return &locationService{
		locationRepo: params.LocationRepo,
		cityRepo:     params.CityRepo,
		logger:       params.Logger,
	}
}

func (srv *locationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListLocations returns locations matching the filter.
func (srv *locationService) ListLocations(ctx context.Context, input usecase.ListLocationsInput) ([]*entity.Location, error) {
	locations, err := srv.locationRepo.List(ctx, repository.LocationFilter{
		CityID:          input.CityID,
		CreatedBy:       input.CreatedBy,
		IncludeInactive: input.IncludeInactive,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list locations")
	}

	return locations, nil
}

// GetLocation returns a single location by ID.
func (srv *locationService) GetLocation(ctx context.Context, id uuid.UUID) (*entity.Location, error) {
	location, err := srv.locationRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrLocationNotFound) {
			return nil, domainerrors.ErrLocationNotFound.WrapMessage("location lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find location")
	}

	return location, nil
}

// CreateLocation persists a new location owned by the actor. The referenced
// city must exist.
func (srv *locationService) CreateLocation(ctx context.Context, actor *entity.User, input *usecase.LocationInput) (*entity.Location, error) {
	if err := requireContributor(actor); err != nil {
		return nil, err
	}
	if !validLonLat(input.Longitude, input.Latitude) {
		return nil, domainerrors.ErrInvalidCoordinates.WrapMessage("location geometry out of range")
	}

	if _, err := srv.cityRepo.FindByID(ctx, input.CityID); err != nil {
		if errors.Is(err, repository.ErrCityNotFound) {
			return nil, domainerrors.ErrCityNotFound.WrapMessage("location references an unknown city")
		}

		return nil, errors.Wrap(err, "failed to verify city for location")
	}

	location := &entity.Location{
		CityID:       input.CityID,
		Name:         input.Name,
		Address:      input.Address,
		Description:  input.Description,
		LocationType: input.LocationType,
		Geometry:     orb.Point{input.Longitude, input.Latitude},
		ImageURLs:    input.ImageURLs,
		IsActive:     activeOrDefault(input.IsActive),
		CreatedBy:    actor.ID,
	}

	if err := srv.locationRepo.Create(ctx, location); err != nil {
		return nil, errors.Wrap(err, "failed to create location")
	}

	srv.log(ctx).Info("Location created", slog.Any("locationID", location.ID), slog.Any("createdBy", actor.ID))

	return location, nil
}

// UpdateLocation modifies an existing location after an ownership check.
func (srv *locationService) UpdateLocation(ctx context.Context, actor *entity.User, id uuid.UUID, input *usecase.LocationInput) (*entity.Location, error) {
	location, err := srv.GetLocation(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(location.CreatedBy) {
		srv.log(ctx).Warn("Ownership violation on location update", slog.Any("locationID", id), slog.Any("actorID", actor.ID))

		return nil, domainerrors.ErrOwnershipViolation.WrapMessage("location is owned by another user")
	}
	if !validLonLat(input.Longitude, input.Latitude) {
		return nil, domainerrors.ErrInvalidCoordinates.WrapMessage("location geometry out of range")
	}

	if input.CityID != uuid.Nil && input.CityID != location.CityID {
		if _, err := srv.cityRepo.FindByID(ctx, input.CityID); err != nil {
			if errors.Is(err, repository.ErrCityNotFound) {
				return nil, domainerrors.ErrCityNotFound.WrapMessage("location references an unknown city")
			}

			return nil, errors.Wrap(err, "failed to verify city for location")
		}
		location.CityID = input.CityID
	}

	location.Name = input.Name
	location.Address = input.Address
	location.Description = input.Description
	location.LocationType = input.LocationType
	location.Geometry = orb.Point{input.Longitude, input.Latitude}
	location.ImageURLs = input.ImageURLs
	if input.IsActive != nil {
		location.IsActive = *input.IsActive
	}

	if err := srv.locationRepo.Update(ctx, location); err != nil {
		return nil, errors.Wrap(err, "failed to update location")
	}

	return location, nil
}

// DeleteLocation removes a location after an ownership check.
func (srv *locationService) DeleteLocation(ctx context.Context, actor *entity.User, id uuid.UUID) error {
	location, err := srv.GetLocation(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanManage(location.CreatedBy) {
		srv.log(ctx).Warn("Ownership violation on location delete", slog.Any("locationID", id), slog.Any("actorID", actor.ID))

		return domainerrors.ErrOwnershipViolation.WrapMessage("location is owned by another user")
	}

	if err := srv.locationRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete location")
	}

	srv.log(ctx).Info("Location deleted", slog.Any("locationID", id), slog.Any("actorID", actor.ID))

	return nil
}
