package model

import (
	"time"

	"citynav/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/paulmach/orb/encoding/wkt"
	"gorm.io/datatypes"
)

// LocationModel mirrors the 'locations' table.
type LocationModel struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	CityID       uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name         datatypes.JSON `gorm:"type:jsonb;not null"`
	Address      datatypes.JSON `gorm:"type:jsonb"`
	Description  datatypes.JSON `gorm:"type:jsonb"`
	LocationType string         `gorm:"type:varchar(100);index"`
	Geometry     string         `gorm:"type:text;not null"`
	ImageURLs    datatypes.JSON `gorm:"column:image_urls;type:jsonb;not null;default:'[]'"`
	IsActive     bool           `gorm:"not null;default:true;index"`
	CreatedBy    uuid.UUID      `gorm:"type:uuid;not null;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	City *CityModel `gorm:"foreignKey:CityID"`
}

// TableName explicitly sets the table name for GORM.
func (LocationModel) TableName() string {
	return "locations"
}

// ToEntity converts the persistence model to a domain entity.
func (m *LocationModel) ToEntity() (*entity.Location, error) {
	point, err := parsePointWKT(m.Geometry)
	if err != nil {
		return nil, err
	}

	return &entity.Location{
		ID:           m.ID,
		CityID:       m.CityID,
		Name:         localizedFromJSON(m.Name),
		Address:      localizedFromJSON(m.Address),
		Description:  localizedFromJSON(m.Description),
		LocationType: m.LocationType,
		Geometry:     point,
		ImageURLs:    stringsFromJSON(m.ImageURLs),
		IsActive:     m.IsActive,
		CreatedBy:    m.CreatedBy,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}, nil
}

// LocationModelFromEntity converts a domain entity to the persistence model.
func LocationModelFromEntity(location *entity.Location) *LocationModel {
	return &LocationModel{
		ID:           location.ID,
		CityID:       location.CityID,
		Name:         localizedToJSON(location.Name),
		Address:      localizedToJSON(location.Address),
		Description:  localizedToJSON(location.Description),
		LocationType: location.LocationType,
		Geometry:     wkt.MarshalString(location.Geometry),
		ImageURLs:    stringsToJSON(location.ImageURLs),
		IsActive:     location.IsActive,
		CreatedBy:    location.CreatedBy,
		CreatedAt:    location.CreatedAt,
		UpdatedAt:    location.UpdatedAt,
	}
}
