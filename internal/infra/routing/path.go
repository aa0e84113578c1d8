package routing

import (
	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// SegmentKind classifies how a route segment relates to the road network.
type SegmentKind uint8

const (
	// SegmentRoad follows a stored road edge.
	SegmentRoad SegmentKind = iota
	// SegmentUserApproach is the synthetic leg from the requested start to the network.
	SegmentUserApproach
	// SegmentUserDeparture is the synthetic leg from the network to the requested end.
	SegmentUserDeparture
	// SegmentUnmatched connects consecutive path nodes with no stored edge between them.
	SegmentUnmatched
)

// String returns a stable identifier for the segment kind.
func (k SegmentKind) String() string {
	switch k {
	case SegmentRoad:
		return "road"
	case SegmentUserApproach:
		return "user_approach"
	case SegmentUserDeparture:
		return "user_departure"
	case SegmentUnmatched:
		return "unmatched"
	default:
		return "unknown"
	}
}

// Segment is one leg of a reconstructed route.
type Segment struct {
	Kind   SegmentKind
	RoadID uuid.UUID // Set only for SegmentRoad.
	Length float64   // Leg length in meters.
}

// Path is a fully reconstructed route between two requested points.
type Path struct {
	Points   orb.LineString // Start point, every path node, end point.
	Distance float64        // Total length in meters; equals the sum of segment lengths.
	Segments []Segment
}

// ReconstructPath expands a node path into the full route polyline and its
// segment breakdown. The polyline starts at the literal requested start
// point and ends at the literal requested end point; the approach and
// departure legs appear as segments only when their length is positive.
func (g *Graph) ReconstructPath(startPt, endPt orb.Point, nodePath []int32) Path {
	points := make(orb.LineString, 0, len(nodePath)+2)
	segments := make([]Segment, 0, len(nodePath)+1)
	total := 0.0

	points = append(points, startPt)

	if len(nodePath) > 0 {
		if approach := HaversineMeters(startPt, g.Node(nodePath[0])); approach > 0 {
			segments = append(segments, Segment{Kind: SegmentUserApproach, Length: approach})
			total += approach
		}

		for i, node := range nodePath {
			if pt := g.Node(node); pt != points[len(points)-1] {
				points = append(points, pt)
			}
			if i == 0 {
				continue
			}

			from, to := nodePath[i-1], node
			if edge, ok := g.Edge(from, to); ok {
				segments = append(segments, Segment{Kind: SegmentRoad, RoadID: edge.RoadID, Length: edge.Length})
				total += edge.Length

				continue
			}

			// No stored edge between these nodes; measure the gap directly.
			gap := HaversineMeters(g.Node(from), g.Node(to))
			segments = append(segments, Segment{Kind: SegmentUnmatched, Length: gap})
			total += gap
		}

		last := nodePath[len(nodePath)-1]
		if departure := HaversineMeters(g.Node(last), endPt); departure > 0 {
			segments = append(segments, Segment{Kind: SegmentUserDeparture, Length: departure})
			total += departure
		}
	}

	if points[len(points)-1] != endPt {
		points = append(points, endPt)
	}

	return Path{
		Points:   points,
		Distance: total,
		Segments: segments,
	}
}
