// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// City is a top-level geodata record grouping locations and roads.
type City struct {
	ID          uuid.UUID     // The Global Unique Identifier (GUID) for the city.
	Name        LocalizedText // Bilingual city name.
	Address     LocalizedText // Bilingual address or region description.
	Description LocalizedText // Bilingual free-form description.
	Geometry    orb.Point     // Representative point (lon, lat).
	ImageURLs   []string      // Stored image URLs for this city.
	IsActive    bool          // Inactive cities are hidden from public listings.
	CreatedBy   uuid.UUID     // The user who owns this record.
	CreatedAt   time.Time     // Timestamp of when this record was created.
	UpdatedAt   time.Time     // Timestamp of the last modification.
}
