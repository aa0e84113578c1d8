package impl

import (
	"context"
	"log/slog"
	"math"
	"strconv"

	"citynav/config"
	deliverycontext "citynav/internal/delivery/context"
	"citynav/internal/domain/entity"
	domainerrors "citynav/internal/domain/errors"
	"citynav/internal/domain/repository"
	"citynav/internal/infra/routing"
	"citynav/internal/usecase"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Fixed bilingual labels for the synthetic route legs.
var (
	approachLabel = entity.LocalizedText{
		MM: "စတင်သည့်နေရာမှအနီးဆုံးသတ်မှတ်နေရာသို့",
		EN: "From Start Location to Nearest Defined Location",
	}
	departureLabel = entity.LocalizedText{
		MM: "အနီးဆုံးသတ်မှတ်နေရာမှပြီးဆုံးနေရာသို့",
		EN: "From Nearest Defined Location to End Location",
	}
	unknownSegmentLabel = entity.LocalizedText{
		MM: "အမည်မသိလမ်း",
		EN: "Unknown Road Segment",
	}
	unknownRoadLabel = entity.LocalizedText{
		MM: "အမည်မသိလမ်း",
		EN: "Unknown Road",
	}
)

// Synthetic road IDs used in route annotations.
const (
	segmentIDApproach  = "user_to_road"
	segmentIDDeparture = "road_to_user"
	segmentIDUnknown   = "unknown_road"
)

// graphSource is the slice of the routing engine the route service needs.
type graphSource interface {
	Snapshot() *routing.Graph
	MaxNearestNodeMeters() float64
}

// routeService implements the RouteUsecase interface.
type routeService struct {
	cfg          *config.RoutingConfig
	engine       graphSource
	roadRepo     repository.RoadRepository
	locationRepo repository.LocationRepository
	routeRepo    repository.RouteRepository
	logger       *slog.Logger
}

// RouteServiceParams holds dependencies for routeService, injected by Fx.
type RouteServiceParams struct {
	fx.In

	Config       *config.Config
	Engine       *routing.Engine
	RoadRepo     repository.RoadRepository
	LocationRepo repository.LocationRepository
	RouteRepo    repository.RouteRepository
	Logger       *slog.Logger
}

// NewRouteService is the constructor for routeService.
func NewRouteService(params RouteServiceParams) usecase.RouteUsecase {
	return newRouteService(
		params.Config.Routing,
		params.Engine,
		params.RoadRepo,
		params.LocationRepo,
		params.RouteRepo,
		params.Logger,
	)
}

func newRouteService(
	cfg *config.RoutingConfig,
	engine graphSource,
	roadRepo repository.RoadRepository,
	locationRepo repository.LocationRepository,
	routeRepo repository.RouteRepository,
	logger *slog.Logger,
) *routeService {
	if logger == nil {
		logger = slog.Default()
	}

	return &routeService{
		cfg:          cfg,
		engine:       engine,
		roadRepo:     roadRepo,
		locationRepo: locationRepo,
		routeRepo:    routeRepo,
		logger:       logger,
	}
}

func (srv *routeService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// PlanRoute computes the shortest walking route between the requested points
// on the current graph snapshot and annotates it for display.
func (srv *routeService) PlanRoute(ctx context.Context, input *usecase.PlanRouteInput) (*usecase.PlanRouteOutput, error) {
	startPt, endPt, err := validateRouteCoordinates(input)
	if err != nil {
		return nil, err
	}

	graph := srv.engine.Snapshot()
	maxDistance := srv.engine.MaxNearestNodeMeters()

	startNode, _, ok := graph.NearestNode(startPt, maxDistance)
	if !ok {
		srv.log(ctx).Warn("No road near start point", slog.Float64("lon", startPt[0]), slog.Float64("lat", startPt[1]))

		return nil, domainerrors.ErrNoNearbyRoad.WrapMessage("no road near start point")
	}

	endNode, _, ok := graph.NearestNode(endPt, maxDistance)
	if !ok {
		srv.log(ctx).Warn("No road near end point", slog.Float64("lon", endPt[0]), slog.Float64("lat", endPt[1]))

		return nil, domainerrors.ErrNoNearbyRoad.WrapMessage("no road near end point")
	}

	nodePath, _, ok := graph.ShortestPath(startNode, endNode)
	if !ok {
		return nil, domainerrors.ErrNoRouteFound.WrapMessage("points are on disconnected parts of the network")
	}

	path := graph.ReconstructPath(startPt, endPt, nodePath)

	roadNames, err := srv.annotateSegments(ctx, path.Segments)
	if err != nil {
		return nil, err
	}

	locations, err := srv.locationRepo.ListActive(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to load locations for route annotation", slog.Any("error", err))

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to load locations for route annotation")
	}

	closeStart := nearestLocation(startPt, locations, srv.cfg.EndpointLocationMeters)
	closeEnd := nearestLocation(endPt, locations, srv.cfg.EndpointLocationMeters)

	output := &usecase.PlanRouteOutput{
		Distance:       path.Distance,
		EstimatedTime:  path.Distance / srv.cfg.WalkingSpeedMps,
		Route:          routeFeature(path.Points),
		RoadNames:      roadNames,
		StepLocations:  srv.stepLocations(path.Points, locations, closeStart, closeEnd),
		StartLocation:  endpointLocation(startPt, closeStart),
		EndLocation:    endpointLocation(endPt, closeEnd),
		SavedToHistory: false,
	}

	if input.UserID == nil {
		return output, nil
	}

	// History entries are named more loosely than the response descriptors:
	// any location within waypoint range of an endpoint lends it a name.
	historyStart := nearestLocation(startPt, locations, srv.cfg.WaypointLocationMeters)
	historyEnd := nearestLocation(endPt, locations, srv.cfg.WaypointLocationMeters)

	route := &entity.Route{
		UserID:          *input.UserID,
		StartPoint:      startPt,
		EndPoint:        endPt,
		StartName:       routeEndpointName(input.StartName, historyStart, "Start"),
		EndName:         routeEndpointName(input.EndName, historyEnd, "End"),
		Geometry:        path.Points,
		DistanceMeters:  path.Distance,
		DurationSeconds: output.EstimatedTime,
	}

	if err := srv.routeRepo.Create(ctx, route); err != nil {
		srv.log(ctx).Error("Failed to save route history", slog.Any("userID", *input.UserID), slog.Any("error", err))

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to save route history")
	}

	output.RouteID = &route.ID
	output.SavedToHistory = true

	return output, nil
}

// ListHistory returns the user's previously planned routes, newest first.
func (srv *routeService) ListHistory(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Route, error) {
	routes, err := srv.routeRepo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list route history")
	}

	return routes, nil
}

// annotateSegments resolves bilingual names for every route leg.
func (srv *routeService) annotateSegments(ctx context.Context, segments []routing.Segment) ([]usecase.RoadName, error) {
	ids := make([]uuid.UUID, 0, len(segments))
	seen := make(map[uuid.UUID]struct{}, len(segments))
	for _, seg := range segments {
		if seg.Kind != routing.SegmentRoad {
			continue
		}
		if _, ok := seen[seg.RoadID]; ok {
			continue
		}
		seen[seg.RoadID] = struct{}{}
		ids = append(ids, seg.RoadID)
	}

	names := map[uuid.UUID]entity.LocalizedText{}
	if len(ids) > 0 {
		var err error
		names, err = srv.roadRepo.FindNamesByIDs(ctx, ids)
		if err != nil {
			srv.log(ctx).Error("Failed to resolve road names", slog.Any("error", err))

			return nil, domainerrors.NewDatabaseExecuteError(err, "failed to resolve road names")
		}
	}

	roadNames := make([]usecase.RoadName, 0, len(segments))
	for _, seg := range segments {
		lengthText := formatFloat(seg.Length) + " meters"

		switch seg.Kind {
		case routing.SegmentUserApproach:
			roadNames = append(roadNames, usecase.RoadName{
				RoadID: segmentIDApproach,
				Name:   approachLabel,
				Length: lengthText,
				Type:   "user_segment",
			})
		case routing.SegmentUserDeparture:
			roadNames = append(roadNames, usecase.RoadName{
				RoadID: segmentIDDeparture,
				Name:   departureLabel,
				Length: lengthText,
				Type:   "user_segment",
			})
		case routing.SegmentUnmatched:
			roadNames = append(roadNames, usecase.RoadName{
				RoadID: segmentIDUnknown,
				Name:   unknownSegmentLabel,
				Length: lengthText,
				Type:   "unknown_segment",
			})
		case routing.SegmentRoad:
			name, ok := names[seg.RoadID]
			if !ok || name.IsEmpty() {
				name = unknownRoadLabel
			}
			roadNames = append(roadNames, usecase.RoadName{
				RoadID: seg.RoadID.String(),
				Name:   name.WithFallback(),
				Length: lengthText,
			})
		}
	}

	return roadNames, nil
}

// stepLocations names the points along the route. The first and last points
// use the tight endpoint radius; interior points use the wider waypoint
// radius. Each named location appears at most once.
func (srv *routeService) stepLocations(
	points orb.LineString,
	locations []*entity.Location,
	closeStart, closeEnd *entity.Location,
) []usecase.RouteLocation {
	steps := make([]usecase.RouteLocation, 0, len(points))
	added := make(map[string]struct{}, len(points))

	for i, coord := range points {
		if i > 0 && coord == points[i-1] {
			continue
		}

		coordKey := routing.PointKey(coord)
		if _, ok := added[coordKey]; ok {
			continue
		}

		switch {
		case i == 0:
			if closeStart != nil {
				steps = append(steps, definedLocation(closeStart, "defined_location"))
				added[routing.PointKey(closeStart.Geometry)] = struct{}{}
			} else {
				steps = append(steps, rawLocation(coord, "user_input_start"))
				added[coordKey] = struct{}{}
			}
		case i == len(points)-1:
			if closeEnd != nil {
				endKey := routing.PointKey(closeEnd.Geometry)
				if _, ok := added[endKey]; !ok {
					steps = append(steps, definedLocation(closeEnd, "defined_location"))
					added[endKey] = struct{}{}
				}
			} else {
				steps = append(steps, rawLocation(coord, "user_input_end"))
				added[coordKey] = struct{}{}
			}
		default:
			if loc := nearestLocation(coord, locations, srv.cfg.WaypointLocationMeters); loc != nil {
				locKey := routing.PointKey(loc.Geometry)
				if _, ok := added[locKey]; !ok {
					steps = append(steps, definedLocation(loc, "defined_location"))
					added[locKey] = struct{}{}
				}
			} else {
				steps = append(steps, rawLocation(coord, "road_point"))
				added[coordKey] = struct{}{}
			}
		}
	}

	return steps
}

// validateRouteCoordinates checks presence and range of the request points.
func validateRouteCoordinates(input *usecase.PlanRouteInput) (orb.Point, orb.Point, error) {
	if input.StartLon == nil || input.StartLat == nil || input.EndLon == nil || input.EndLat == nil {
		return orb.Point{}, orb.Point{}, domainerrors.ErrMissingCoordinates.WrapMessage("route request incomplete")
	}

	coords := []float64{*input.StartLon, *input.StartLat, *input.EndLon, *input.EndLat}
	for _, v := range coords {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return orb.Point{}, orb.Point{}, domainerrors.ErrInvalidCoordinates.WrapMessage("coordinate is not a finite number")
		}
	}
	if !validLonLat(*input.StartLon, *input.StartLat) || !validLonLat(*input.EndLon, *input.EndLat) {
		return orb.Point{}, orb.Point{}, domainerrors.ErrInvalidCoordinates.WrapMessage("coordinate out of range")
	}

	return orb.Point{*input.StartLon, *input.StartLat}, orb.Point{*input.EndLon, *input.EndLat}, nil
}

// nearestLocation returns the closest stored location within maxDistance
// meters, or nil.
func nearestLocation(p orb.Point, locations []*entity.Location, maxDistance float64) *entity.Location {
	var nearest *entity.Location
	minDist := math.MaxFloat64

	for _, loc := range locations {
		dist := routing.HaversineMeters(p, loc.Geometry)
		if dist < minDist && dist <= maxDistance {
			minDist = dist
			nearest = loc
		}
	}

	return nearest
}

func definedLocation(loc *entity.Location, locationType string) usecase.RouteLocation {
	name := loc.Name.WithFallback()
	address := loc.Address.WithFallback()

	return usecase.RouteLocation{
		Name:      &name,
		Address:   &address,
		Longitude: loc.Geometry[0],
		Latitude:  loc.Geometry[1],
		Type:      locationType,
	}
}

func rawLocation(p orb.Point, locationType string) usecase.RouteLocation {
	return usecase.RouteLocation{
		Longitude:   p[0],
		Latitude:    p[1],
		Coordinates: formatFloat(p[0]) + ", " + formatFloat(p[1]),
		Type:        locationType,
	}
}

func endpointLocation(p orb.Point, close *entity.Location) usecase.RouteLocation {
	if close != nil {
		return definedLocation(close, "defined_location")
	}

	return rawLocation(p, "user_input")
}

// routeEndpointName picks the display name stored with the route history.
func routeEndpointName(requested string, close *entity.Location, fallback string) string {
	if close != nil {
		name := close.Name.WithFallback()
		if name.EN != "" {
			return name.EN
		}
	}
	if requested != "" {
		return requested
	}

	return fallback
}

func routeFeature(points orb.LineString) *geojson.Feature {
	feature := geojson.NewFeature(points)
	feature.Properties = geojson.Properties{}

	return feature
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
