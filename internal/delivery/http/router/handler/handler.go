// Package handler contains the HTTP handlers for the application.
package handler

import (
	"time"

	httpmiddleware "citynav/internal/delivery/http/middleware"
	"citynav/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// userView is the safe projection of a user for API responses.
type userView struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserView(user *entity.User) userView {
	return userView{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Roles:     user.Roles.ToStrings(),
		CreatedAt: user.CreatedAt,
	}
}

// actorFromContext rebuilds the acting user from the JWT claims stored by
// the auth middleware. It carries exactly what ownership checks need.
func actorFromContext(c echo.Context) (*entity.User, bool) {
	userID, ok := httpmiddleware.UserIDFromContext(c)
	if !ok {
		return nil, false
	}

	return &entity.User{
		ID:    userID,
		Roles: entity.RolesFromStrings(httpmiddleware.RolesFromContext(c)),
	}, true
}

// idParam parses the :id path parameter.
func idParam(c echo.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))

	return id, err == nil
}
