package impl

import (
	"context"
	"testing"

	"citynav/internal/domain/entity"
	domainerrors "citynav/internal/domain/errors"
	"citynav/internal/infra/routing"
	"citynav/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collaborator() *entity.User {
	return &entity.User{ID: uuid.New(), Roles: entity.Roles{entity.RoleCollaborator}}
}

func admin() *entity.User {
	return &entity.User{ID: uuid.New(), Roles: entity.Roles{entity.RoleAdmin}}
}

func plainUser() *entity.User {
	return &entity.User{ID: uuid.New(), Roles: entity.Roles{entity.RoleUser}}
}

func buildRoadService() (*roadService, *fakeRoadRepo, *fakeRebuilder) {
	roadRepo := &fakeRoadRepo{}
	rebuilder := &fakeRebuilder{}

	return newRoadService(roadRepo, rebuilder, nil), roadRepo, rebuilder
}

func validRoadInput() *usecase.RoadInput {
	return &usecase.RoadInput{
		Name:        entity.LocalizedText{EN: "Strand Road"},
		RoadType:    "street",
		Coordinates: [][]float64{{96.10, 16.80}, {96.11, 16.80}, {96.12, 16.80}},
	}
}

func TestRoadService_CreateRoad(t *testing.T) {
	srv, roadRepo, rebuilder := buildRoadService()
	actor := collaborator()

	road, err := srv.CreateRoad(context.Background(), actor, validRoadInput())
	require.NoError(t, err)

	assert.Equal(t, actor.ID, road.CreatedBy)
	assert.True(t, road.IsActive)
	require.Len(t, road.Geometry, 3)

	require.Len(t, road.SegmentLengths, 2)
	for i := range road.SegmentLengths {
		expected := routing.HaversineMeters(road.Geometry[i], road.Geometry[i+1])
		assert.InDelta(t, expected, road.SegmentLengths[i], 1e-9)
	}

	assert.Len(t, roadRepo.roads, 1)
	assert.Equal(t, 1, rebuilder.calls)
}

func TestRoadService_CreateRoad_InvalidGeometry(t *testing.T) {
	srv, roadRepo, rebuilder := buildRoadService()

	input := validRoadInput()
	input.Coordinates = [][]float64{{96.10, 16.80}}

	_, err := srv.CreateRoad(context.Background(), collaborator(), input)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidGeometry))
	assert.Empty(t, roadRepo.roads)
	assert.Zero(t, rebuilder.calls)
}

func TestRoadService_CreateRoad_DropsUnparseablePairs(t *testing.T) {
	srv, _, _ := buildRoadService()

	input := validRoadInput()
	input.Coordinates = [][]float64{{96.10, 16.80}, {999, 999}, {96.11}, {96.12, 16.80}}

	road, err := srv.CreateRoad(context.Background(), collaborator(), input)
	require.NoError(t, err)
	assert.Len(t, road.Geometry, 2)
}

func TestRoadService_CreateRoad_RequiresContributorRole(t *testing.T) {
	srv, _, rebuilder := buildRoadService()

	_, err := srv.CreateRoad(context.Background(), plainUser(), validRoadInput())
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
	assert.Zero(t, rebuilder.calls)
}

func TestRoadService_UpdateRoad_OwnershipViolation(t *testing.T) {
	srv, _, rebuilder := buildRoadService()

	owner := collaborator()
	road, err := srv.CreateRoad(context.Background(), owner, validRoadInput())
	require.NoError(t, err)
	rebuilder.calls = 0

	other := collaborator()
	_, err = srv.UpdateRoad(context.Background(), other, road.ID, validRoadInput())
	assert.True(t, errors.Is(err, domainerrors.ErrOwnershipViolation))
	assert.Zero(t, rebuilder.calls)
}

func TestRoadService_UpdateRoad_AdminManagesAnyRecord(t *testing.T) {
	srv, _, rebuilder := buildRoadService()

	road, err := srv.CreateRoad(context.Background(), collaborator(), validRoadInput())
	require.NoError(t, err)

	input := validRoadInput()
	input.Name = entity.LocalizedText{EN: "Renamed Road"}
	input.IsOneway = true

	updated, err := srv.UpdateRoad(context.Background(), admin(), road.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Road", updated.Name.EN)
	assert.True(t, updated.IsOneway)
	assert.Equal(t, 2, rebuilder.calls)
}

func TestRoadService_DeleteRoad_TriggersRebuild(t *testing.T) {
	srv, roadRepo, rebuilder := buildRoadService()

	owner := collaborator()
	road, err := srv.CreateRoad(context.Background(), owner, validRoadInput())
	require.NoError(t, err)

	require.NoError(t, srv.DeleteRoad(context.Background(), owner, road.ID))
	assert.Empty(t, roadRepo.roads)
	assert.Equal(t, 2, rebuilder.calls)
}

func TestRoadService_CreateRoad_RebuildFailureSurfaces(t *testing.T) {
	srv, _, rebuilder := buildRoadService()
	rebuilder.err = errors.New("load failed")

	_, err := srv.CreateRoad(context.Background(), collaborator(), validRoadInput())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rebuild routing graph")
}
