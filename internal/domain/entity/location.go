// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// Location is a named point of interest inside a city. Besides serving the
// CRUD surface, active locations annotate planned routes with human-readable
// start, end and waypoint names.
type Location struct {
	ID           uuid.UUID     // The Global Unique Identifier (GUID) for the location.
	CityID       uuid.UUID     // The city this location belongs to.
	Name         LocalizedText // Bilingual location name.
	Address      LocalizedText // Bilingual street address.
	Description  LocalizedText // Bilingual free-form description.
	LocationType string        // Category tag, e.g. "restaurant", "pagoda", "market".
	Geometry     orb.Point     // Position (lon, lat).
	ImageURLs    []string      // Stored image URLs for this location.
	IsActive     bool          // Inactive locations are hidden and never annotate routes.
	CreatedBy    uuid.UUID     // The user who owns this record.
	CreatedAt    time.Time     // Timestamp of when this record was created.
	UpdatedAt    time.Time     // Timestamp of the last modification.
}
