package routing

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"citynav/config"
	"citynav/internal/domain/entity"
	"citynav/internal/domain/repository"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// RoadSource supplies the active roads the graph is built from.
// repository.RoadRepository satisfies it.
type RoadSource interface {
	ListActive(ctx context.Context) ([]*entity.Road, error)
}

// Engine owns the current graph snapshot and rebuilds it when roads change.
//
// Readers load the snapshot through an atomic pointer and never block:
// a request that started on the old graph finishes on the old graph while
// a rebuild publishes the new one. Rebuilds themselves are serialized.
type Engine struct {
	cfg    *config.RoutingConfig
	logger *slog.Logger
	roads  RoadSource

	graph     atomic.Pointer[Graph]
	rebuildMu sync.Mutex
}

// Params defines the dependencies for the routing engine.
type Params struct {
	fx.In
	fx.Lifecycle

	Config   *config.Config
	Logger   *slog.Logger
	RoadRepo repository.RoadRepository
}

// NewEngine constructs the engine and schedules the initial graph build on
// application start.
func NewEngine(params Params) *Engine {
	engine := newEngine(params.Config.Routing, params.Logger, params.RoadRepo)

	params.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return engine.Rebuild(ctx)
		},
	})

	return engine
}

func newEngine(cfg *config.RoutingConfig, logger *slog.Logger, roads RoadSource) *Engine {
	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{
		cfg:    cfg,
		logger: logger,
		roads:  roads,
	}
}

// Rebuild loads the active roads and atomically replaces the graph snapshot.
// On failure the previous snapshot stays in place and keeps serving queries.
func (e *Engine) Rebuild(ctx context.Context) error {
	e.rebuildMu.Lock()
	defer e.rebuildMu.Unlock()

	started := time.Now()

	roads, err := e.roads.ListActive(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to load roads for graph rebuild")
	}

	graph := BuildGraph(roads, e.cfg.SnapThresholdMeters, e.logger)
	e.graph.Store(graph)

	e.logger.Info("Routing graph rebuilt",
		slog.Int("roads", len(roads)),
		slog.Int("nodes", graph.NodeCount()),
		slog.Duration("elapsed", time.Since(started)),
	)

	return nil
}

// Snapshot returns the current graph. It is nil until the first rebuild.
func (e *Engine) Snapshot() *Graph {
	return e.graph.Load()
}

// NodeCount reports the size of the current graph for health reporting.
func (e *Engine) NodeCount() int {
	return e.graph.Load().NodeCount()
}

// MaxNearestNodeMeters returns the configured bound for matching query
// points to the network.
func (e *Engine) MaxNearestNodeMeters() float64 {
	return e.cfg.MaxNearestNodeMeters
}
