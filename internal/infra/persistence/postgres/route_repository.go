// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"citynav/internal/domain/entity"
	domainerrors "citynav/internal/domain/errors"
	"citynav/internal/domain/repository"
	"citynav/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const defaultRouteHistoryLimit = 50

// routeRepository implements the domain.RouteRepository interface using GORM.
type routeRepository struct {
	db *gorm.DB
}

// NewRouteRepository is the constructor for routeRepository.
func NewRouteRepository(db *gorm.DB) repository.RouteRepository {
	return &routeRepository{db: db}
}

// Create persists a planned route for an authenticated user.
func (repo *routeRepository) Create(ctx context.Context, route *entity.Route) error {
	routeM := model.RouteModelFromEntity(route)

	if err := repo.db.WithContext(ctx).Create(routeM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create route")
	}

	route.ID = routeM.ID
	route.CreatedAt = routeM.CreatedAt

	return nil
}

// ListByUser retrieves a user's planned routes, newest first.
func (repo *routeRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Route, error) {
	if limit <= 0 {
		limit = defaultRouteHistoryLimit
	}

	var routeMs []model.RouteModel
	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&routeMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list routes")
	}

	routes := make([]*entity.Route, 0, len(routeMs))
	for i := range routeMs {
		route, err := routeMs[i].ToEntity()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to decode route %s", routeMs[i].ID)
		}
		routes = append(routes, route)
	}

	return routes, nil
}
