package handler

import (
	"time"

	"citynav/internal/domain/entity"

	"github.com/google/uuid"
)

// Geodata projections with wire-friendly field names. Point geometry is
// flattened into longitude/latitude; polylines stay [lon, lat] pairs.

type cityView struct {
	ID          uuid.UUID            `json:"id"`
	Name        entity.LocalizedText `json:"name"`
	Address     entity.LocalizedText `json:"address"`
	Description entity.LocalizedText `json:"description"`
	Longitude   float64              `json:"longitude"`
	Latitude    float64              `json:"latitude"`
	ImageURLs   []string             `json:"image_urls"`
	IsActive    bool                 `json:"is_active"`
	CreatedBy   uuid.UUID            `json:"created_by"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

func newCityView(city *entity.City) cityView {
	return cityView{
		ID:          city.ID,
		Name:        city.Name,
		Address:     city.Address,
		Description: city.Description,
		Longitude:   city.Geometry[0],
		Latitude:    city.Geometry[1],
		ImageURLs:   city.ImageURLs,
		IsActive:    city.IsActive,
		CreatedBy:   city.CreatedBy,
		CreatedAt:   city.CreatedAt,
		UpdatedAt:   city.UpdatedAt,
	}
}

func newCityViews(cities []*entity.City) []cityView {
	views := make([]cityView, len(cities))
	for i, city := range cities {
		views[i] = newCityView(city)
	}

	return views
}

type locationView struct {
	ID           uuid.UUID            `json:"id"`
	CityID       uuid.UUID            `json:"city_id"`
	Name         entity.LocalizedText `json:"name"`
	Address      entity.LocalizedText `json:"address"`
	Description  entity.LocalizedText `json:"description"`
	LocationType string               `json:"location_type"`
	Longitude    float64              `json:"longitude"`
	Latitude     float64              `json:"latitude"`
	ImageURLs    []string             `json:"image_urls"`
	IsActive     bool                 `json:"is_active"`
	CreatedBy    uuid.UUID            `json:"created_by"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

func newLocationView(location *entity.Location) locationView {
	return locationView{
		ID:           location.ID,
		CityID:       location.CityID,
		Name:         location.Name,
		Address:      location.Address,
		Description:  location.Description,
		LocationType: location.LocationType,
		Longitude:    location.Geometry[0],
		Latitude:     location.Geometry[1],
		ImageURLs:    location.ImageURLs,
		IsActive:     location.IsActive,
		CreatedBy:    location.CreatedBy,
		CreatedAt:    location.CreatedAt,
		UpdatedAt:    location.UpdatedAt,
	}
}

func newLocationViews(locations []*entity.Location) []locationView {
	views := make([]locationView, len(locations))
	for i, location := range locations {
		views[i] = newLocationView(location)
	}

	return views
}

type roadView struct {
	ID             uuid.UUID            `json:"id"`
	Name           entity.LocalizedText `json:"name"`
	RoadType       string               `json:"road_type"`
	IsOneway       bool                 `json:"is_oneway"`
	Coordinates    [][]float64          `json:"coordinates"`
	SegmentLengths []float64            `json:"segment_lengths"`
	IsActive       bool                 `json:"is_active"`
	CreatedBy      uuid.UUID            `json:"created_by"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

func newRoadView(road *entity.Road) roadView {
	coordinates := make([][]float64, len(road.Geometry))
	for i, pt := range road.Geometry {
		coordinates[i] = []float64{pt[0], pt[1]}
	}

	return roadView{
		ID:             road.ID,
		Name:           road.Name,
		RoadType:       road.RoadType,
		IsOneway:       road.IsOneway,
		Coordinates:    coordinates,
		SegmentLengths: road.SegmentLengths,
		IsActive:       road.IsActive,
		CreatedBy:      road.CreatedBy,
		CreatedAt:      road.CreatedAt,
		UpdatedAt:      road.UpdatedAt,
	}
}

func newRoadViews(roads []*entity.Road) []roadView {
	views := make([]roadView, len(roads))
	for i, road := range roads {
		views[i] = newRoadView(road)
	}

	return views
}

type routeView struct {
	ID              uuid.UUID   `json:"id"`
	StartName       string      `json:"start_name"`
	EndName         string      `json:"end_name"`
	StartPoint      []float64   `json:"start_point"`
	EndPoint        []float64   `json:"end_point"`
	Coordinates     [][]float64 `json:"coordinates"`
	DistanceMeters  float64     `json:"distance_m"`
	DurationSeconds float64     `json:"duration_s"`
	CreatedAt       time.Time   `json:"created_at"`
}

func newRouteView(route *entity.Route) routeView {
	coordinates := make([][]float64, len(route.Geometry))
	for i, pt := range route.Geometry {
		coordinates[i] = []float64{pt[0], pt[1]}
	}

	return routeView{
		ID:              route.ID,
		StartName:       route.StartName,
		EndName:         route.EndName,
		StartPoint:      []float64{route.StartPoint[0], route.StartPoint[1]},
		EndPoint:        []float64{route.EndPoint[0], route.EndPoint[1]},
		Coordinates:     coordinates,
		DistanceMeters:  route.DistanceMeters,
		DurationSeconds: route.DurationSeconds,
		CreatedAt:       route.CreatedAt,
	}
}

func newRouteViews(routes []*entity.Route) []routeView {
	views := make([]routeView, len(routes))
	for i, route := range routes {
		views[i] = newRouteView(route)
	}

	return views
}
