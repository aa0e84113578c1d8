package routing

import (
	"log/slog"
	"math"

	"citynav/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// edgeKey identifies a directed edge between two node indices.
type edgeKey struct {
	from, to int32
}

// Edge is a directed connection between two graph nodes.
type Edge struct {
	RoadID uuid.UUID // The road this edge was built from.
	Length float64   // Edge length in meters.
}

// Graph is an immutable snapshot of the road network. Nodes are stored in
// registration order; builds from the same road set always number nodes the
// same way. A Graph is never mutated after Build returns, so it is safe for
// concurrent readers.
type Graph struct {
	nodes []orb.Point
	adj   [][]int32
	edges map[edgeKey]Edge
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	if g == nil {
		return 0
	}

	return len(g.nodes)
}

// Node returns the coordinates of a node by index.
func (g *Graph) Node(i int32) orb.Point {
	return g.nodes[i]
}

// Edge returns the directed edge between two node indices, if one exists.
func (g *Graph) Edge(from, to int32) (Edge, bool) {
	edge, ok := g.edges[edgeKey{from: from, to: to}]

	return edge, ok
}

// NearestNode finds the node closest to p within maxDistance meters.
// The scan runs in registration order, so among equally distant nodes the
// first-registered one wins. Returns the node index, its distance from p,
// and whether a node was found.
func (g *Graph) NearestNode(p orb.Point, maxDistance float64) (int32, float64, bool) {
	if g == nil || len(g.nodes) == 0 {
		return 0, 0, false
	}

	best := int32(-1)
	bestDist := math.MaxFloat64
	for i, node := range g.nodes {
		if d := HaversineMeters(p, node); d < bestDist {
			best = int32(i)
			bestDist = d
		}
	}

	if bestDist > maxDistance {
		return 0, 0, false
	}

	return best, bestDist, true
}

// builder accumulates nodes and edges while roads are added.
type builder struct {
	snapThreshold float64
	logger        *slog.Logger

	nodes []orb.Point
	adj   [][]int32
	edges map[edgeKey]Edge
}

// BuildGraph constructs a routing graph from the given roads, in order.
// Road endpoints within snapThreshold meters of an already registered node
// merge into that node instead of creating a new one. Roads with fewer than
// two vertices are skipped with a warning; a bad road never aborts the build.
func BuildGraph(roads []*entity.Road, snapThreshold float64, logger *slog.Logger) *Graph {
	if logger == nil {
		logger = slog.Default()
	}

	b := &builder{
		snapThreshold: snapThreshold,
		logger:        logger,
		edges:         make(map[edgeKey]Edge),
	}

	for _, road := range roads {
		b.addRoad(road)
	}

	return &Graph{
		nodes: b.nodes,
		adj:   b.adj,
		edges: b.edges,
	}
}

func (b *builder) addRoad(road *entity.Road) {
	if len(road.Geometry) < 2 {
		b.logger.Warn("Skipping road with too few coordinates",
			slog.String("roadID", road.ID.String()),
			slog.Int("coordinates", len(road.Geometry)),
		)

		return
	}

	nodeIdxs := make([]int32, len(road.Geometry))
	for i, pt := range road.Geometry {
		nodeIdxs[i] = b.getOrCreateNode(pt)
	}

	for i := 0; i < len(nodeIdxs)-1; i++ {
		from, to := nodeIdxs[i], nodeIdxs[i+1]

		length := road.SegmentLength(i)
		if length <= 0 {
			// Measure between the snapped node positions, not the raw
			// vertices, so snapping cannot skew edge weights.
			length = HaversineMeters(b.nodes[from], b.nodes[to])
		}

		b.addEdge(from, to, road.ID, length)
		if !road.IsOneway {
			b.addEdge(to, from, road.ID, length)
		}
	}
}

// getOrCreateNode returns the index of the nearest registered node within the
// snap threshold, or registers the point as a new node. The scan runs in
// registration order and keeps the first of equally distant candidates, so
// repeated builds over the same roads snap identically.
func (b *builder) getOrCreateNode(p orb.Point) int32 {
	best := int32(-1)
	bestDist := math.MaxFloat64
	for i, node := range b.nodes {
		if d := HaversineMeters(p, node); d < bestDist {
			best = int32(i)
			bestDist = d
		}
	}

	if best >= 0 && bestDist <= b.snapThreshold {
		return best
	}

	b.nodes = append(b.nodes, p)
	b.adj = append(b.adj, nil)

	return int32(len(b.nodes) - 1)
}

// addEdge registers a directed edge. When two roads produce the same directed
// node pair, the first-added edge wins, mirroring the node snapping policy.
func (b *builder) addEdge(from, to int32, roadID uuid.UUID, length float64) {
	key := edgeKey{from: from, to: to}
	if _, exists := b.edges[key]; exists {
		return
	}

	b.edges[key] = Edge{RoadID: roadID, Length: length}
	b.adj[from] = append(b.adj[from], to)
}
