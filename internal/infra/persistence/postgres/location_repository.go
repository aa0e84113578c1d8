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

// locationRepository implements the domain.LocationRepository interface using GORM.
type locationRepository struct {
	db *gorm.DB
}

// NewLocationRepository is the constructor for locationRepository.
func NewLocationRepository(db *gorm.DB) repository.LocationRepository {
	return &locationRepository{db: db}
}

// FindByID retrieves a single location by its unique ID.
func (repo *locationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Location, error) {
	var locationM model.LocationModel
	if err := repo.db.WithContext(ctx).First(&locationM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrLocationNotFound
		}

		return nil, errors.Wrap(err, "failed to find location by id")
	}

	location, err := locationM.ToEntity()
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode location geometry")
	}

	return location, nil
}

// List retrieves locations matching the filter, newest first.
func (repo *locationRepository) List(ctx context.Context, filter repository.LocationFilter) ([]*entity.Location, error) {
	tx := repo.db.WithContext(ctx).Order("created_at DESC")
	if !filter.IncludeInactive {
		tx = tx.Where("is_active = ?", true)
	}
	if filter.CityID != nil {
		tx = tx.Where("city_id = ?", *filter.CityID)
	}
	if filter.CreatedBy != nil {
		tx = tx.Where("created_by = ?", *filter.CreatedBy)
	}

	var locationMs []model.LocationModel
	if err := tx.Find(&locationMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list locations")
	}

	return toLocationEntities(locationMs)
}

// ListActive retrieves every active location for route annotation.
func (repo *locationRepository) ListActive(ctx context.Context) ([]*entity.Location, error) {
	var locationMs []model.LocationModel
	if err := repo.db.WithContext(ctx).Where("is_active = ?", true).Find(&locationMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list active locations")
	}

	return toLocationEntities(locationMs)
}

// Create persists a new location entity to the database.
func (repo *locationRepository) Create(ctx context.Context, location *entity.Location) error {
	locationM := model.LocationModelFromEntity(location)

	if err := repo.db.WithContext(ctx).Create(locationM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrCityNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create location")
	}

	location.ID = locationM.ID
	location.CreatedAt = locationM.CreatedAt
	location.UpdatedAt = locationM.UpdatedAt

	return nil
}

// Update modifies an existing location entity in the database.
func (repo *locationRepository) Update(ctx context.Context, location *entity.Location) error {
	locationM := model.LocationModelFromEntity(location)

	if err := repo.db.WithContext(ctx).Save(locationM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrCityNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update location")
	}

	location.UpdatedAt = locationM.UpdatedAt

	return nil
}

// Delete removes a location by its ID.
func (repo *locationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.LocationModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete location")
	}
	if result.RowsAffected == 0 {
		return repository.ErrLocationNotFound
	}

	return nil
}

// DeleteByCity removes every location belonging to a city. Used when a city
// is deleted so its locations do not linger as orphans.
func (repo *locationRepository) DeleteByCity(ctx context.Context, cityID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).Delete(&model.LocationModel{}, "city_id = ?", cityID).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete locations by city")
	}

	return nil
}

func toLocationEntities(locationMs []model.LocationModel) ([]*entity.Location, error) {
	locations := make([]*entity.Location, 0, len(locationMs))
	for i := range locationMs {
		location, err := locationMs[i].ToEntity()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to decode location %s", locationMs[i].ID)
		}
		locations = append(locations, location)
	}

	return locations, nil
}
