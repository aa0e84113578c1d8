// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// Route is a planned route kept for an authenticated user's history.
type Route struct {
	ID              uuid.UUID      // The Global Unique Identifier (GUID) for the route.
	UserID          uuid.UUID      // The user who requested the route.
	StartPoint      orb.Point      // Requested start (lon, lat).
	EndPoint        orb.Point      // Requested end (lon, lat).
	StartName       string         // Optional display name supplied with the request.
	EndName         string         // Optional display name supplied with the request.
	Geometry        orb.LineString // The full route polyline.
	DistanceMeters  float64        // Total route length in meters.
	DurationSeconds float64        // Estimated walking duration in seconds.
	CreatedAt       time.Time      // Timestamp of when this route was planned.
}
