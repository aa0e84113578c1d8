package model

import (
	"time"

	"citynav/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/paulmach/orb/encoding/wkt"
	"gorm.io/datatypes"
)

// RoadModel mirrors the 'roads' table. The linestring geometry is stored as
// WKT text and the per-segment lengths as a JSONB array.
type RoadModel struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name           datatypes.JSON `gorm:"type:jsonb;not null"`
	RoadType       string         `gorm:"type:varchar(100);index"`
	IsOneway       bool           `gorm:"not null;default:false"`
	Geometry       string         `gorm:"type:text;not null"`
	SegmentLengths datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"`
	IsActive       bool           `gorm:"not null;default:true;index"`
	CreatedBy      uuid.UUID      `gorm:"type:uuid;not null;index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (RoadModel) TableName() string {
	return "roads"
}

// ToEntity converts the persistence model to a domain entity.
func (m *RoadModel) ToEntity() (*entity.Road, error) {
	line, err := parseLineStringWKT(m.Geometry)
	if err != nil {
		return nil, err
	}

	return &entity.Road{
		ID:             m.ID,
		Name:           localizedFromJSON(m.Name),
		RoadType:       m.RoadType,
		IsOneway:       m.IsOneway,
		Geometry:       line,
		SegmentLengths: floatsFromJSON(m.SegmentLengths),
		IsActive:       m.IsActive,
		CreatedBy:      m.CreatedBy,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}, nil
}

// RoadModelFromEntity converts a domain entity to the persistence model.
func RoadModelFromEntity(road *entity.Road) *RoadModel {
	return &RoadModel{
		ID:             road.ID,
		Name:           localizedToJSON(road.Name),
		RoadType:       road.RoadType,
		IsOneway:       road.IsOneway,
		Geometry:       wkt.MarshalString(road.Geometry),
		SegmentLengths: floatsToJSON(road.SegmentLengths),
		IsActive:       road.IsActive,
		CreatedBy:      road.CreatedBy,
		CreatedAt:      road.CreatedAt,
		UpdatedAt:      road.UpdatedAt,
	}
}
