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

// cityService implements the CityUsecase interface.
type cityService struct {
	cityRepo  repository.CityRepository
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// CityServiceParams holds dependencies for cityService, injected by Fx.
type CityServiceParams struct {
	fx.In

	CityRepo  repository.CityRepository
	TxManager repository.TransactionManager
	Logger    *slog.Logger
}

// NewCityService is the constructor for cityService.
func NewCityService(params CityServiceParams) usecase.CityUsecase {
	return &cityService{
		cityRepo:  params.CityRepo,
		txManager: params.TxManager,
		logger:    params.Logger,
	}
}

func (srv *cityService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListCities returns cities matching the filter.
func (srv *cityService) ListCities(ctx context.Context, input usecase.ListCitiesInput) ([]*entity.City, error) {
	cities, err := srv.cityRepo.List(ctx, repository.CityFilter{
		CreatedBy:       input.CreatedBy,
		IncludeInactive: input.IncludeInactive,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list cities")
	}

	return cities, nil
}

// GetCity returns a single city by ID.
func (srv *cityService) GetCity(ctx context.Context, id uuid.UUID) (*entity.City, error) {
	city, err := srv.cityRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCityNotFound) {
			return nil, domainerrors.ErrCityNotFound.WrapMessage("city lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find city")
	}

	return city, nil
}

// CreateCity persists a new city owned by the actor.
func (srv *cityService) CreateCity(ctx context.Context, actor *entity.User, input *usecase.CityInput) (*entity.City, error) {
	if err := requireContributor(actor); err != nil {
		return nil, err
	}
	if !validLonLat(input.Longitude, input.Latitude) {
		return nil, domainerrors.ErrInvalidCoordinates.WrapMessage("city geometry out of range")
	}

	city := &entity.City{
		Name:        input.Name,
		Address:     input.Address,
		Description: input.Description,
		Geometry:    orb.Point{input.Longitude, input.Latitude},
		ImageURLs:   input.ImageURLs,
		IsActive:    activeOrDefault(input.IsActive),
		CreatedBy:   actor.ID,
	}

	if err := srv.cityRepo.Create(ctx, city); err != nil {
		return nil, errors.Wrap(err, "failed to create city")
	}

	srv.log(ctx).Info("City created", slog.Any("cityID", city.ID), slog.Any("createdBy", actor.ID))

	return city, nil
}

// UpdateCity modifies an existing city after an ownership check.
func (srv *cityService) UpdateCity(ctx context.Context, actor *entity.User, id uuid.UUID, input *usecase.CityInput) (*entity.City, error) {
	city, err := srv.GetCity(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(city.CreatedBy) {
		srv.log(ctx).Warn("Ownership violation on city update", slog.Any("cityID", id), slog.Any("actorID", actor.ID))

		return nil, domainerrors.ErrOwnershipViolation.WrapMessage("city is owned by another user")
	}
	if !validLonLat(input.Longitude, input.Latitude) {
		return nil, domainerrors.ErrInvalidCoordinates.WrapMessage("city geometry out of range")
	}

	city.Name = input.Name
	city.Address = input.Address
	city.Description = input.Description
	city.Geometry = orb.Point{input.Longitude, input.Latitude}
	city.ImageURLs = input.ImageURLs
	if input.IsActive != nil {
		city.IsActive = *input.IsActive
	}

	if err := srv.cityRepo.Update(ctx, city); err != nil {
		return nil, errors.Wrap(err, "failed to update city")
	}

	return city, nil
}

// DeleteCity removes a city and its locations after an ownership check.
// The two deletes run in one transaction so a failure leaves both in place.
func (srv *cityService) DeleteCity(ctx context.Context, actor *entity.User, id uuid.UUID) error {
	city, err := srv.GetCity(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanManage(city.CreatedBy) {
		srv.log(ctx).Warn("Ownership violation on city delete", slog.Any("cityID", id), slog.Any("actorID", actor.ID))

		return domainerrors.ErrOwnershipViolation.WrapMessage("city is owned by another user")
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewLocationRepository().DeleteByCity(ctx, id); err != nil {
			return err
		}

		return repoFactory.NewCityRepository().Delete(ctx, id)
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete city")
	}

	srv.log(ctx).Info("City deleted", slog.Any("cityID", id), slog.Any("actorID", actor.ID))

	return nil
}

// requireContributor rejects actors that may not create geodata records.
func requireContributor(actor *entity.User) error {
	if actor == nil {
		return domainerrors.ErrForbidden.WrapMessage("missing actor")
	}
	if !actor.HasRole(entity.RoleAdmin) && !actor.HasRole(entity.RoleCollaborator) {
		return domainerrors.ErrForbidden.WrapMessage("actor lacks a contributor role")
	}

	return nil
}

// activeOrDefault treats an omitted is_active flag as active.
func activeOrDefault(flag *bool) bool {
	if flag == nil {
		return true
	}

	return *flag
}
