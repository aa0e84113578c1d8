package model

import (
	"time"

	"citynav/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/paulmach/orb/encoding/wkt"
)

// RouteModel mirrors the 'routes' table holding planned-route history.
type RouteModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index"`
	StartPoint      string    `gorm:"type:text;not null"`
	EndPoint        string    `gorm:"type:text;not null"`
	StartName       string    `gorm:"type:varchar(255)"`
	EndName         string    `gorm:"type:varchar(255)"`
	Geometry        string    `gorm:"type:text;not null"`
	DistanceMeters  float64   `gorm:"not null"`
	DurationSeconds float64   `gorm:"not null"`
	CreatedAt       time.Time

	User *UserModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (RouteModel) TableName() string {
	return "routes"
}

// ToEntity converts the persistence model to a domain entity.
func (m *RouteModel) ToEntity() (*entity.Route, error) {
	start, err := parsePointWKT(m.StartPoint)
	if err != nil {
		return nil, err
	}
	end, err := parsePointWKT(m.EndPoint)
	if err != nil {
		return nil, err
	}
	line, err := parseLineStringWKT(m.Geometry)
	if err != nil {
		return nil, err
	}

	return &entity.Route{
		ID:              m.ID,
		UserID:          m.UserID,
		StartPoint:      start,
		EndPoint:        end,
		StartName:       m.StartName,
		EndName:         m.EndName,
		Geometry:        line,
		DistanceMeters:  m.DistanceMeters,
		DurationSeconds: m.DurationSeconds,
		CreatedAt:       m.CreatedAt,
	}, nil
}

// RouteModelFromEntity converts a domain entity to the persistence model.
func RouteModelFromEntity(route *entity.Route) *RouteModel {
	return &RouteModel{
		ID:              route.ID,
		UserID:          route.UserID,
		StartPoint:      wkt.MarshalString(route.StartPoint),
		EndPoint:        wkt.MarshalString(route.EndPoint),
		StartName:       route.StartName,
		EndName:         route.EndName,
		Geometry:        wkt.MarshalString(route.Geometry),
		DistanceMeters:  route.DistanceMeters,
		DurationSeconds: route.DurationSeconds,
		CreatedAt:       route.CreatedAt,
	}
}
