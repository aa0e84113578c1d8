package usecase

import (
	"context"

	"citynav/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/paulmach/orb/geojson"
)

// PlanRouteInput defines a route request. Coordinates are pointers so a
// missing field is distinguishable from zero. UserID is set only for
// authenticated callers; their routes are saved to history.
type PlanRouteInput struct {
	StartLon *float64
	StartLat *float64
	EndLon   *float64
	EndLat   *float64

	// Optimization is accepted for forward compatibility; only
	// shortest-distance routing is implemented.
	Optimization string

	StartName string
	EndName   string

	UserID *uuid.UUID
}

// RouteLocation describes a point along the route. Points within range of a
// stored location carry its bilingual name and address; the rest carry raw
// coordinates.
type RouteLocation struct {
	Name        *entity.LocalizedText `json:"name,omitempty"`
	Address     *entity.LocalizedText `json:"address,omitempty"`
	Longitude   float64               `json:"longitude"`
	Latitude    float64               `json:"latitude"`
	Coordinates string                `json:"coordinates,omitempty"`
	Type        string                `json:"type"`
}

// RoadName annotates one route segment with its bilingual road name.
type RoadName struct {
	RoadID string               `json:"road_id"`
	Name   entity.LocalizedText `json:"name"`
	Length string               `json:"length"`
	Type   string               `json:"type,omitempty"`
}

// PlanRouteOutput is the full route planning result.
type PlanRouteOutput struct {
	RouteID        *uuid.UUID       `json:"route_id"`
	Distance       float64          `json:"distance"`
	EstimatedTime  float64          `json:"estimated_time"`
	Route          *geojson.Feature `json:"route"`
	RoadNames      []RoadName       `json:"road_names"`
	StepLocations  []RouteLocation  `json:"step_locations"`
	StartLocation  RouteLocation    `json:"start_location"`
	EndLocation    RouteLocation    `json:"end_location"`
	SavedToHistory bool             `json:"saved_to_history"`
}

// RouteUsecase defines the interface for route planning operations.
type RouteUsecase interface {
	// PlanRoute computes the shortest walking route between two points on
	// the current road network snapshot and annotates it with nearby
	// stored locations and road names.
	PlanRoute(ctx context.Context, input *PlanRouteInput) (*PlanRouteOutput, error)

	// ListHistory returns the user's previously planned routes, newest first.
	ListHistory(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Route, error)
}
