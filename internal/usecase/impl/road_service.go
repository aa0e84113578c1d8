package impl

import (
	"context"
	"log/slog"

	deliverycontext "citynav/internal/delivery/context"
	"citynav/internal/domain/entity"
	domainerrors "citynav/internal/domain/errors"
	"citynav/internal/domain/repository"
	"citynav/internal/infra/routing"
	"citynav/internal/usecase"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// graphRebuilder is the slice of the routing engine the road service needs.
type graphRebuilder interface {
	Rebuild(ctx context.Context) error
}

// roadService implements the RoadUsecase interface. Every successful road
// mutation rebuilds the routing graph before the call returns, so route
// requests never see a stale network after a write is acknowledged.
type roadService struct {
	roadRepo repository.RoadRepository
	engine   graphRebuilder
	logger   *slog.Logger
}

// RoadServiceParams holds dependencies for roadService, injected by Fx.
type RoadServiceParams struct {
	fx.In

	RoadRepo repository.RoadRepository
	Engine   *routing.Engine
	Logger   *slog.Logger
}

// NewRoadService is the constructor for roadService.
func NewRoadService(params RoadServiceParams) usecase.RoadUsecase {
	return newRoadService(params.RoadRepo, params.Engine, params.Logger)
}

func newRoadService(roadRepo repository.RoadRepository, engine graphRebuilder, logger *slog.Logger) *roadService {
	if logger == nil {
		logger = slog.Default()
	}

	return &roadService{
		roadRepo: roadRepo,
		engine:   engine,
		logger:   logger,
	}
}

func (srv *roadService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListRoads returns roads matching the filter.
func (srv *roadService) ListRoads(ctx context.Context, input usecase.ListRoadsInput) ([]*entity.Road, error) {
	roads, err := srv.roadRepo.List(ctx, repository.RoadFilter{
		CreatedBy:       input.CreatedBy,
		IncludeInactive: input.IncludeInactive,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list roads")
	}

	return roads, nil
}

// GetRoad returns a single road by ID.
func (srv *roadService) GetRoad(ctx context.Context, id uuid.UUID) (*entity.Road, error) {
	road, err := srv.roadRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRoadNotFound) {
			return nil, domainerrors.ErrRoadNotFound.WrapMessage("road lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find road")
	}

	return road, nil
}

// CreateRoad validates the geometry, persists the road and rebuilds the
// routing graph.
func (srv *roadService) CreateRoad(ctx context.Context, actor *entity.User, input *usecase.RoadInput) (*entity.Road, error) {
	if err := requireContributor(actor); err != nil {
		return nil, err
	}

	geometry, err := parseRoadGeometry(input.Coordinates)
	if err != nil {
		return nil, err
	}

	road := &entity.Road{
		Name:           input.Name,
		RoadType:       input.RoadType,
		IsOneway:       input.IsOneway,
		Geometry:       geometry,
		SegmentLengths: computeSegmentLengths(geometry),
		IsActive:       activeOrDefault(input.IsActive),
		CreatedBy:      actor.ID,
	}

	if err := srv.roadRepo.Create(ctx, road); err != nil {
		return nil, errors.Wrap(err, "failed to create road")
	}

	if err := srv.rebuildGraph(ctx, "create", road.ID); err != nil {
		return nil, err
	}

	return road, nil
}

// UpdateRoad modifies an existing road after an ownership check and rebuilds
// the routing graph.
func (srv *roadService) UpdateRoad(ctx context.Context, actor *entity.User, id uuid.UUID, input *usecase.RoadInput) (*entity.Road, error) {
	road, err := srv.GetRoad(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(road.CreatedBy) {
		srv.log(ctx).Warn("Ownership violation on road update", slog.Any("roadID", id), slog.Any("actorID", actor.ID))

		return nil, domainerrors.ErrOwnershipViolation.WrapMessage("road is owned by another user")
	}

	geometry, err := parseRoadGeometry(input.Coordinates)
	if err != nil {
		return nil, err
	}

	road.Name = input.Name
	road.RoadType = input.RoadType
	road.IsOneway = input.IsOneway
	road.Geometry = geometry
	road.SegmentLengths = computeSegmentLengths(geometry)
	if input.IsActive != nil {
		road.IsActive = *input.IsActive
	}

	if err := srv.roadRepo.Update(ctx, road); err != nil {
		return nil, errors.Wrap(err, "failed to update road")
	}

	if err := srv.rebuildGraph(ctx, "update", road.ID); err != nil {
		return nil, err
	}

	return road, nil
}

// DeleteRoad removes a road after an ownership check and rebuilds the
// routing graph.
func (srv *roadService) DeleteRoad(ctx context.Context, actor *entity.User, id uuid.UUID) error {
	road, err := srv.GetRoad(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanManage(road.CreatedBy) {
		srv.log(ctx).Warn("Ownership violation on road delete", slog.Any("roadID", id), slog.Any("actorID", actor.ID))

		return domainerrors.ErrOwnershipViolation.WrapMessage("road is owned by another user")
	}

	if err := srv.roadRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete road")
	}

	return srv.rebuildGraph(ctx, "delete", id)
}

func (srv *roadService) rebuildGraph(ctx context.Context, operation string, roadID uuid.UUID) error {
	if err := srv.engine.Rebuild(ctx); err != nil {
		srv.log(ctx).Error("Graph rebuild failed after road mutation",
			slog.String("operation", operation),
			slog.Any("roadID", roadID),
			slog.Any("error", err),
		)

		return errors.Wrap(err, "failed to rebuild routing graph after road mutation")
	}

	return nil
}

// parseRoadGeometry converts raw [lon, lat] pairs into a polyline. A road
// needs at least two valid vertices.
func parseRoadGeometry(coordinates [][]float64) (orb.LineString, error) {
	line := make(orb.LineString, 0, len(coordinates))
	for _, pair := range coordinates {
		if len(pair) != 2 || !validLonLat(pair[0], pair[1]) {
			continue
		}
		line = append(line, orb.Point{pair[0], pair[1]})
	}

	if len(line) < 2 {
		return nil, domainerrors.ErrInvalidGeometry.WrapMessage("road geometry needs at least two valid coordinates")
	}

	return line, nil
}

// computeSegmentLengths measures every consecutive vertex pair in meters.
func computeSegmentLengths(line orb.LineString) []float64 {
	if len(line) < 2 {
		return nil
	}

	lengths := make([]float64, len(line)-1)
	for i := 0; i < len(line)-1; i++ {
		lengths[i] = routing.HaversineMeters(line[i], line[i+1])
	}

	return lengths
}
