// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// Road is a polyline in the city road network. Active roads are the sole
// input of the routing graph; every mutation to a road triggers a rebuild.
type Road struct {
	ID       uuid.UUID      // The Global Unique Identifier (GUID) for the road.
	Name     LocalizedText  // Bilingual road name.
	RoadType string         // Category tag, e.g. "street", "highway", "alley".
	IsOneway bool           // One-way roads are traversable in geometry order only.
	Geometry orb.LineString // Ordered vertices (lon, lat), at least two.
	// SegmentLengths holds one value per consecutive vertex pair, in meters.
	// Recomputed from the geometry whenever the road is written.
	SegmentLengths []float64
	IsActive       bool      // Inactive roads are excluded from the routing graph.
	CreatedBy      uuid.UUID // The user who owns this record.
	CreatedAt      time.Time // Timestamp of when this record was created.
	UpdatedAt      time.Time // Timestamp of the last modification.
}

// SegmentLength returns the stored length for the i-th vertex pair, or 0
// when no usable value is stored and the caller should recompute it.
func (r *Road) SegmentLength(i int) float64 {
	if i < 0 || i >= len(r.SegmentLengths) {
		return 0
	}
	if r.SegmentLengths[i] <= 0 {
		return 0
	}

	return r.SegmentLengths[i]
}
