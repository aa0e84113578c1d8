package impl

import (
	"context"
	"log/slog"
	"testing"

	"citynav/internal/domain/entity"
	domainerrors "citynav/internal/domain/errors"
	"citynav/internal/usecase"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildLocationService() (*locationService, *fakeLocationRepo, *fakeCityRepo) {
	locationRepo := newFakeLocationRepo()
	cityRepo := newFakeCityRepo()
	srv := &locationService{
		locationRepo: locationRepo,
		cityRepo:     cityRepo,
		logger:       slog.Default(),
	}

	return srv, locationRepo, cityRepo
}

func seedCity(cityRepo *fakeCityRepo) *entity.City {
	city := &entity.City{
		ID:       uuid.New(),
		Name:     entity.LocalizedText{EN: "Yangon"},
		Geometry: orb.Point{96.1561, 16.8409},
		IsActive: true,
	}
	cityRepo.byID[city.ID] = city

	return city
}

func validLocationInput(cityID uuid.UUID) *usecase.LocationInput {
	return &usecase.LocationInput{
		CityID:       cityID,
		Name:         entity.LocalizedText{EN: "Bogyoke Market"},
		Address:      entity.LocalizedText{EN: "Bogyoke Aung San Road"},
		LocationType: "market",
		Longitude:    96.1526,
		Latitude:     16.7809,
	}
}

func TestLocationService_CreateLocation(t *testing.T) {
	srv, locationRepo, cityRepo := buildLocationService()
	city := seedCity(cityRepo)
	actor := collaborator()

	location, err := srv.CreateLocation(context.Background(), actor, validLocationInput(city.ID))
	require.NoError(t, err)

	assert.Equal(t, city.ID, location.CityID)
	assert.Equal(t, actor.ID, location.CreatedBy)
	assert.True(t, location.IsActive)
	assert.Len(t, locationRepo.byID, 1)
}

func TestLocationService_CreateLocation_UnknownCity(t *testing.T) {
	srv, _, _ := buildLocationService()

	_, err := srv.CreateLocation(context.Background(), collaborator(), validLocationInput(uuid.New()))
	assert.True(t, errors.Is(err, domainerrors.ErrCityNotFound))
}

func TestLocationService_CreateLocation_RequiresContributorRole(t *testing.T) {
	srv, _, cityRepo := buildLocationService()
	city := seedCity(cityRepo)

	_, err := srv.CreateLocation(context.Background(), plainUser(), validLocationInput(city.ID))
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestLocationService_UpdateLocation_OwnershipViolation(t *testing.T) {
	srv, _, cityRepo := buildLocationService()
	city := seedCity(cityRepo)

	location, err := srv.CreateLocation(context.Background(), collaborator(), validLocationInput(city.ID))
	require.NoError(t, err)

	_, err = srv.UpdateLocation(context.Background(), collaborator(), location.ID, validLocationInput(city.ID))
	assert.True(t, errors.Is(err, domainerrors.ErrOwnershipViolation))
}

func TestLocationService_ListLocations_ByCity(t *testing.T) {
	srv, _, cityRepo := buildLocationService()
	cityA := seedCity(cityRepo)
	cityB := seedCity(cityRepo)
	actor := collaborator()

	_, err := srv.CreateLocation(context.Background(), actor, validLocationInput(cityA.ID))
	require.NoError(t, err)
	_, err = srv.CreateLocation(context.Background(), actor, validLocationInput(cityB.ID))
	require.NoError(t, err)

	locations, err := srv.ListLocations(context.Background(), usecase.ListLocationsInput{CityID: &cityA.ID})
	require.NoError(t, err)
	require.Len(t, locations, 1)
	assert.Equal(t, cityA.ID, locations[0].CityID)
}

func TestLocationService_DeleteLocation(t *testing.T) {
	srv, locationRepo, cityRepo := buildLocationService()
	city := seedCity(cityRepo)
	actor := collaborator()

	location, err := srv.CreateLocation(context.Background(), actor, validLocationInput(city.ID))
	require.NoError(t, err)

	require.NoError(t, srv.DeleteLocation(context.Background(), actor, location.ID))
	assert.Empty(t, locationRepo.byID)
}
