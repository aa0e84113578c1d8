package impl

import (
	"context"
	"testing"

	"citynav/config"
	"citynav/internal/domain/entity"
	domainerrors "citynav/internal/domain/errors"
	"citynav/internal/infra/routing"
	"citynav/internal/usecase"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoutingConfig() *config.RoutingConfig {
	return &config.RoutingConfig{
		SnapThresholdMeters:    1,
		MaxNearestNodeMeters:   500,
		WalkingSpeedMps:        1.4,
		EndpointLocationMeters: 50,
		WaypointLocationMeters: 500,
	}
}

func testRoad(name string, points ...orb.Point) *entity.Road {
	return &entity.Road{
		ID:       uuid.New(),
		Name:     entity.LocalizedText{EN: name},
		Geometry: orb.LineString(points),
		IsActive: true,
	}
}

func testLocation(name string, p orb.Point) *entity.Location {
	return &entity.Location{
		ID:       uuid.New(),
		Name:     entity.LocalizedText{EN: name},
		Address:  entity.LocalizedText{EN: name + " address"},
		Geometry: p,
		IsActive: true,
	}
}

// buildRouteService wires a route service over a prebuilt graph and fakes.
func buildRouteService(roads []*entity.Road, locations []*entity.Location) (*routeService, *fakeRouteRepo, *fakeRoadRepo) {
	cfg := testRoutingConfig()
	graph := routing.BuildGraph(roads, cfg.SnapThresholdMeters, nil)

	roadRepo := &fakeRoadRepo{roads: roads}
	locationRepo := newFakeLocationRepo()
	for _, loc := range locations {
		locationRepo.byID[loc.ID] = loc
	}
	routeRepo := &fakeRouteRepo{}

	srv := newRouteService(
		cfg,
		&fixedGraphSource{graph: graph, maxDistance: cfg.MaxNearestNodeMeters},
		roadRepo,
		locationRepo,
		routeRepo,
		nil,
	)

	return srv, routeRepo, roadRepo
}

func floatPtr(v float64) *float64 { return &v }

func planInput(startLon, startLat, endLon, endLat float64) *usecase.PlanRouteInput {
	return &usecase.PlanRouteInput{
		StartLon: floatPtr(startLon),
		StartLat: floatPtr(startLat),
		EndLon:   floatPtr(endLon),
		EndLat:   floatPtr(endLat),
	}
}

func TestRouteService_PlanRoute_MissingCoordinates(t *testing.T) {
	srv, _, _ := buildRouteService([]*entity.Road{
		testRoad("Main", orb.Point{96.10, 16.80}, orb.Point{96.11, 16.80}),
	}, nil)

	input := planInput(96.10, 16.80, 96.11, 16.80)
	input.EndLat = nil

	_, err := srv.PlanRoute(context.Background(), input)
	assert.True(t, errors.Is(err, domainerrors.ErrMissingCoordinates))
}

func TestRouteService_PlanRoute_InvalidCoordinates(t *testing.T) {
	srv, _, _ := buildRouteService([]*entity.Road{
		testRoad("Main", orb.Point{96.10, 16.80}, orb.Point{96.11, 16.80}),
	}, nil)

	_, err := srv.PlanRoute(context.Background(), planInput(96.10, 200, 96.11, 16.80))
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCoordinates))
}

func TestRouteService_PlanRoute_NoNearbyRoad(t *testing.T) {
	srv, _, _ := buildRouteService([]*entity.Road{
		testRoad("Main", orb.Point{96.10, 16.80}, orb.Point{96.11, 16.80}),
	}, nil)

	// Start is about a degree away from the network.
	_, err := srv.PlanRoute(context.Background(), planInput(97.10, 16.80, 96.11, 16.80))
	assert.True(t, errors.Is(err, domainerrors.ErrNoNearbyRoad))
}

func TestRouteService_PlanRoute_NoRouteFound(t *testing.T) {
	srv, _, _ := buildRouteService([]*entity.Road{
		testRoad("West", orb.Point{96.10, 16.80}, orb.Point{96.11, 16.80}),
		testRoad("East", orb.Point{96.50, 16.80}, orb.Point{96.51, 16.80}),
	}, nil)

	_, err := srv.PlanRoute(context.Background(), planInput(96.10, 16.80, 96.51, 16.80))
	assert.True(t, errors.Is(err, domainerrors.ErrNoRouteFound))
}

func TestRouteService_PlanRoute_Anonymous(t *testing.T) {
	a := orb.Point{96.10, 16.80}
	b := orb.Point{96.11, 16.80}
	c := orb.Point{96.12, 16.80}
	srv, routeRepo, _ := buildRouteService([]*entity.Road{testRoad("Main", a, b, c)}, nil)

	start := orb.Point{96.0999, 16.80}
	end := orb.Point{96.1201, 16.80}

	output, err := srv.PlanRoute(context.Background(), planInput(start[0], start[1], end[0], end[1]))
	require.NoError(t, err)

	expected := routing.HaversineMeters(start, a) +
		routing.HaversineMeters(a, b) +
		routing.HaversineMeters(b, c) +
		routing.HaversineMeters(c, end)
	assert.InDelta(t, expected, output.Distance, 1e-6)
	assert.InDelta(t, output.Distance/1.4, output.EstimatedTime, 1e-9)

	require.NotNil(t, output.Route)
	line, ok := output.Route.Geometry.(orb.LineString)
	require.True(t, ok)
	assert.Equal(t, start, line[0])
	assert.Equal(t, end, line[len(line)-1])

	// approach + two road legs + departure
	require.Len(t, output.RoadNames, 4)
	assert.Equal(t, "user_to_road", output.RoadNames[0].RoadID)
	assert.Equal(t, "Main", output.RoadNames[1].Name.EN)
	assert.Equal(t, "road_to_user", output.RoadNames[3].RoadID)

	assert.Equal(t, "user_input", output.StartLocation.Type)
	assert.Equal(t, "user_input", output.EndLocation.Type)

	assert.False(t, output.SavedToHistory)
	assert.Nil(t, output.RouteID)
	assert.Empty(t, routeRepo.routes)
}

func TestRouteService_PlanRoute_SavesHistoryForAuthenticated(t *testing.T) {
	a := orb.Point{96.10, 16.80}
	b := orb.Point{96.11, 16.80}
	srv, routeRepo, _ := buildRouteService([]*entity.Road{testRoad("Main", a, b)}, nil)

	userID := uuid.New()
	input := planInput(a[0], a[1], b[0], b[1])
	input.UserID = &userID

	output, err := srv.PlanRoute(context.Background(), input)
	require.NoError(t, err)

	assert.True(t, output.SavedToHistory)
	require.NotNil(t, output.RouteID)

	require.Len(t, routeRepo.routes, 1)
	saved := routeRepo.routes[0]
	assert.Equal(t, *output.RouteID, saved.ID)
	assert.Equal(t, userID, saved.UserID)
	assert.InDelta(t, output.Distance, saved.DistanceMeters, 1e-9)
	assert.InDelta(t, output.EstimatedTime, saved.DurationSeconds, 1e-9)
}

func TestRouteService_PlanRoute_EndpointDescriptors(t *testing.T) {
	a := orb.Point{96.10, 16.80}
	b := orb.Point{96.11, 16.80}

	// ~11m from the start point, well inside the 50m endpoint radius.
	nearStart := testLocation("City Hall", orb.Point{96.10, 16.8001})
	// ~600m from the end point, outside the endpoint radius.
	farFromEnd := testLocation("Market", orb.Point{96.11, 16.8054})

	srv, _, _ := buildRouteService(
		[]*entity.Road{testRoad("Main", a, b)},
		[]*entity.Location{nearStart, farFromEnd},
	)

	output, err := srv.PlanRoute(context.Background(), planInput(a[0], a[1], b[0], b[1]))
	require.NoError(t, err)

	assert.Equal(t, "defined_location", output.StartLocation.Type)
	require.NotNil(t, output.StartLocation.Name)
	assert.Equal(t, "City Hall", output.StartLocation.Name.EN)

	assert.Equal(t, "user_input", output.EndLocation.Type)
	assert.Nil(t, output.EndLocation.Name)
}

func TestRouteService_PlanRoute_EndOnNodeGetsEndStep(t *testing.T) {
	a := orb.Point{96.10, 16.80}
	b := orb.Point{96.11, 16.80}
	c := orb.Point{96.12, 16.80}
	srv, _, _ := buildRouteService([]*entity.Road{testRoad("Main", a, b, c)}, nil)

	// End exactly on the last road node.
	output, err := srv.PlanRoute(context.Background(), planInput(96.0999, 16.80, c[0], c[1]))
	require.NoError(t, err)

	line, ok := output.Route.Geometry.(orb.LineString)
	require.True(t, ok)
	assert.Equal(t, c, line[len(line)-1])
	for i := 1; i < len(line); i++ {
		assert.NotEqual(t, line[i-1], line[i])
	}

	require.NotEmpty(t, output.StepLocations)
	last := output.StepLocations[len(output.StepLocations)-1]
	assert.Equal(t, "user_input_end", last.Type)
	assert.Equal(t, c[0], last.Longitude)
	assert.Equal(t, c[1], last.Latitude)
}

func TestRouteService_PlanRoute_HistoryNamesUseWaypointRadius(t *testing.T) {
	a := orb.Point{96.10, 16.80}
	b := orb.Point{96.11, 16.80}

	// ~100m from the start point: outside the 50m endpoint radius but
	// inside the 500m waypoint radius used for history naming.
	station := testLocation("Railway Station", orb.Point{96.10, 16.8009})

	srv, routeRepo, _ := buildRouteService(
		[]*entity.Road{testRoad("Main", a, b)},
		[]*entity.Location{station},
	)

	userID := uuid.New()
	input := planInput(a[0], a[1], b[0], b[1])
	input.UserID = &userID

	output, err := srv.PlanRoute(context.Background(), input)
	require.NoError(t, err)

	// Too far for the response descriptor, close enough for history.
	assert.Equal(t, "user_input", output.StartLocation.Type)

	require.Len(t, routeRepo.routes, 1)
	saved := routeRepo.routes[0]
	assert.Equal(t, "Railway Station", saved.StartName)
	assert.Equal(t, "End", saved.EndName)
}

func TestRouteService_PlanRoute_WaypointDedup(t *testing.T) {
	a := orb.Point{96.100, 16.80}
	b1 := orb.Point{96.102, 16.80}
	b2 := orb.Point{96.104, 16.80}
	c := orb.Point{96.120, 16.80}

	// One location sits between the two interior nodes; both resolve to it.
	between := testLocation("Pagoda", orb.Point{96.103, 16.80})

	srv, _, _ := buildRouteService(
		[]*entity.Road{testRoad("Main", a, b1, b2, c)},
		[]*entity.Location{between},
	)

	output, err := srv.PlanRoute(context.Background(), planInput(a[0], a[1], c[0], c[1]))
	require.NoError(t, err)

	count := 0
	for _, step := range output.StepLocations {
		if step.Name != nil && step.Name.EN == "Pagoda" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestRouteService_PlanRoute_UnknownRoadNameFallback(t *testing.T) {
	a := orb.Point{96.10, 16.80}
	b := orb.Point{96.11, 16.80}
	unnamed := &entity.Road{
		ID:       uuid.New(),
		Geometry: orb.LineString{a, b},
		IsActive: true,
	}

	srv, _, _ := buildRouteService([]*entity.Road{unnamed}, nil)

	output, err := srv.PlanRoute(context.Background(), planInput(a[0], a[1], b[0], b[1]))
	require.NoError(t, err)

	require.Len(t, output.RoadNames, 1)
	assert.Equal(t, "Unknown Road", output.RoadNames[0].Name.EN)
}

func TestRouteService_PlanRoute_NameLookupFailure(t *testing.T) {
	a := orb.Point{96.10, 16.80}
	b := orb.Point{96.11, 16.80}
	srv, _, roadRepo := buildRouteService([]*entity.Road{testRoad("Main", a, b)}, nil)
	roadRepo.namesErr = errors.New("connection reset")

	_, err := srv.PlanRoute(context.Background(), planInput(a[0], a[1], b[0], b[1]))
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "DATABASE_EXECUTE_FAILED", appErr.ErrorCode())
}

func TestRouteService_ListHistory(t *testing.T) {
	srv, routeRepo, _ := buildRouteService(nil, nil)

	userID := uuid.New()
	routeRepo.routes = []*entity.Route{
		{ID: uuid.New(), UserID: userID},
		{ID: uuid.New(), UserID: uuid.New()},
	}

	routes, err := srv.ListHistory(context.Background(), userID, 10)
	require.NoError(t, err)
	require.Len(t, routes, 1)
	assert.Equal(t, userID, routes[0].UserID)
}
