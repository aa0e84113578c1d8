package model

import (
	"time"

	"citynav/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"gorm.io/datatypes"
)

// CityModel mirrors the 'cities' table. The point geometry is stored as WKT
// text; all geographic math happens in-process, so no PostGIS functions are
// required on the Go side.
type CityModel struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name        datatypes.JSON `gorm:"type:jsonb;not null"`
	Address     datatypes.JSON `gorm:"type:jsonb"`
	Description datatypes.JSON `gorm:"type:jsonb"`
	Geometry    string         `gorm:"type:text;not null"`
	ImageURLs   datatypes.JSON `gorm:"column:image_urls;type:jsonb;not null;default:'[]'"`
	IsActive    bool           `gorm:"not null;default:true;index"`
	CreatedBy   uuid.UUID      `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (CityModel) TableName() string {
	return "cities"
}

// ToEntity converts the persistence model to a domain entity.
func (m *CityModel) ToEntity() (*entity.City, error) {
	point, err := parsePointWKT(m.Geometry)
	if err != nil {
		return nil, err
	}

	return &entity.City{
		ID:          m.ID,
		Name:        localizedFromJSON(m.Name),
		Address:     localizedFromJSON(m.Address),
		Description: localizedFromJSON(m.Description),
		Geometry:    point,
		ImageURLs:   stringsFromJSON(m.ImageURLs),
		IsActive:    m.IsActive,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}, nil
}

// CityModelFromEntity converts a domain entity to the persistence model.
func CityModelFromEntity(city *entity.City) *CityModel {
	return &CityModel{
		ID:          city.ID,
		Name:        localizedToJSON(city.Name),
		Address:     localizedToJSON(city.Address),
		Description: localizedToJSON(city.Description),
		Geometry:    wkt.MarshalString(city.Geometry),
		ImageURLs:   stringsToJSON(city.ImageURLs),
		IsActive:    city.IsActive,
		CreatedBy:   city.CreatedBy,
		CreatedAt:   city.CreatedAt,
		UpdatedAt:   city.UpdatedAt,
	}
}

func parsePointWKT(raw string) (orb.Point, error) {
	geom, err := wkt.Unmarshal(raw)
	if err != nil {
		return orb.Point{}, err
	}
	point, ok := geom.(orb.Point)
	if !ok {
		return orb.Point{}, errInvalidGeometryKind
	}

	return point, nil
}
