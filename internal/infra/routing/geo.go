// Package routing implements the in-memory road-network routing engine:
// graph construction from stored roads, nearest-node matching, shortest-path
// search and route reconstruction.
package routing

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

const earthRadiusMeters = 6371000.0

// HaversineMeters calculates the great circle distance between two points in meters.
func HaversineMeters(p, q orb.Point) float64 {
	lat1Rad := p.Lat() * math.Pi / 180
	lng1Rad := p.Lon() * math.Pi / 180
	lat2Rad := q.Lat() * math.Pi / 180
	lng2Rad := q.Lon() * math.Pi / 180

	dLat := lat2Rad - lat1Rad
	dLng := lng2Rad - lng1Rad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// PointKey renders a point as a 7-decimal "lon,lat" string. Seven decimals
// is roughly centimeter precision, so two points with the same key are the
// same place for deduplication purposes.
func PointKey(p orb.Point) string {
	return fmt.Sprintf("%.7f,%.7f", p.Lon(), p.Lat())
}
