// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity in the system, representing a unique "person" or "account".
type User struct {
	ID           uuid.UUID // The Global Unique Identifier (GUID) for the user.
	Email        string    // The user's primary contact email, used as the login identifier.
	Name         string    // The user's display name.
	PasswordHash string    // The bcrypt hash of the user's password.
	Roles        Roles     // The roles granted to this user.
	IsActive     bool      // Deactivated accounts cannot authenticate.
	CreatedAt    time.Time // Timestamp of when this user account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this user's data.
}

// HasRole reports whether the user holds the given role.
func (u *User) HasRole(role Role) bool {
	return u.Roles.Contains(role)
}

// CanManage reports whether the user may modify a record owned by ownerID.
// Admins manage everything; collaborators manage only their own records.
func (u *User) CanManage(ownerID uuid.UUID) bool {
	if u.HasRole(RoleAdmin) {
		return true
	}

	return u.HasRole(RoleCollaborator) && u.ID == ownerID
}
