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

// roadRepository implements the domain.RoadRepository interface using GORM.
type roadRepository struct {
	db *gorm.DB
}

// NewRoadRepository is the constructor for roadRepository.
func NewRoadRepository(db *gorm.DB) repository.RoadRepository {
	return &roadRepository{db: db}
}

// FindByID retrieves a single road by its unique ID.
func (repo *roadRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Road, error) {
	var roadM model.RoadModel
	if err := repo.db.WithContext(ctx).First(&roadM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRoadNotFound
		}

		return nil, errors.Wrap(err, "failed to find road by id")
	}

	road, err := roadM.ToEntity()
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode road geometry")
	}

	return road, nil
}

// List retrieves roads matching the filter, newest first.
func (repo *roadRepository) List(ctx context.Context, filter repository.RoadFilter) ([]*entity.Road, error) {
	tx := repo.db.WithContext(ctx).Order("created_at DESC")
	if !filter.IncludeInactive {
		tx = tx.Where("is_active = ?", true)
	}
	if filter.CreatedBy != nil {
		tx = tx.Where("created_by = ?", *filter.CreatedBy)
	}

	var roadMs []model.RoadModel
	if err := tx.Find(&roadMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list roads")
	}

	return toRoadEntities(roadMs)
}

// ListActive retrieves every active road in creation order.
// The graph builder depends on this ordering for deterministic node numbering.
func (repo *roadRepository) ListActive(ctx context.Context) ([]*entity.Road, error) {
	var roadMs []model.RoadModel
	if err := repo.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at ASC").
		Find(&roadMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list active roads")
	}

	return toRoadEntities(roadMs)
}

// FindNamesByIDs resolves bilingual road names for the given IDs.
func (repo *roadRepository) FindNamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]entity.LocalizedText, error) {
	names := make(map[uuid.UUID]entity.LocalizedText, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var roadMs []model.RoadModel
	if err := repo.db.WithContext(ctx).
		Select("id", "name").
		Where("id IN ?", ids).
		Find(&roadMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find road names")
	}

	for i := range roadMs {
		names[roadMs[i].ID] = model.LocalizedFromJSON(roadMs[i].Name)
	}

	return names, nil
}

// Create persists a new road entity to the database.
func (repo *roadRepository) Create(ctx context.Context, road *entity.Road) error {
	roadM := model.RoadModelFromEntity(road)

	if err := repo.db.WithContext(ctx).Create(roadM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create road")
	}

	road.ID = roadM.ID
	road.CreatedAt = roadM.CreatedAt
	road.UpdatedAt = roadM.UpdatedAt

	return nil
}

// Update modifies an existing road entity in the database.
func (repo *roadRepository) Update(ctx context.Context, road *entity.Road) error {
	roadM := model.RoadModelFromEntity(road)

	if err := repo.db.WithContext(ctx).Save(roadM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update road")
	}

	road.UpdatedAt = roadM.UpdatedAt

	return nil
}

// Delete removes a road by its ID.
func (repo *roadRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.RoadModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete road")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRoadNotFound
	}

	return nil
}

func toRoadEntities(roadMs []model.RoadModel) ([]*entity.Road, error) {
	roads := make([]*entity.Road, 0, len(roadMs))
	for i := range roadMs {
		road, err := roadMs[i].ToEntity()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to decode road %s", roadMs[i].ID)
		}
		roads = append(roads, road)
	}

	return roads, nil
}
