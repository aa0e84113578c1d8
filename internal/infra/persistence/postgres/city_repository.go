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

// cityRepository implements the domain.CityRepository interface using GORM.
type cityRepository struct {
	db *gorm.DB
}

// NewCityRepository is the constructor for cityRepository.
func NewCityRepository(db *gorm.DB) repository.CityRepository {
	return &cityRepository{db: db}
}

// FindByID retrieves a single city by its unique ID.
func (repo *cityRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.City, error) {
	var cityM model.CityModel
	if err := repo.db.WithContext(ctx).First(&cityM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCityNotFound
		}

		return nil, errors.Wrap(err, "failed to find city by id")
	}

	city, err := cityM.ToEntity()
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode city geometry")
	}

	return city, nil
}

// List retrieves cities matching the filter, newest first.
func (repo *cityRepository) List(ctx context.Context, filter repository.CityFilter) ([]*entity.City, error) {
	tx := repo.db.WithContext(ctx).Order("created_at DESC")
	if !filter.IncludeInactive {
		tx = tx.Where("is_active = ?", true)
	}
	if filter.CreatedBy != nil {
		tx = tx.Where("created_by = ?", *filter.CreatedBy)
	}

	var cityMs []model.CityModel
	if err := tx.Find(&cityMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list cities")
	}

	cities := make([]*entity.City, 0, len(cityMs))
	for i := range cityMs {
		city, err := cityMs[i].ToEntity()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to decode city %s", cityMs[i].ID)
		}
		cities = append(cities, city)
	}

	return cities, nil
}

// Create persists a new city entity to the database.
func (repo *cityRepository) Create(ctx context.Context, city *entity.City) error {
	cityM := model.CityModelFromEntity(city)

	if err := repo.db.WithContext(ctx).Create(cityM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create city")
	}

	city.ID = cityM.ID
	city.CreatedAt = cityM.CreatedAt
	city.UpdatedAt = cityM.UpdatedAt

	return nil
}

// Update modifies an existing city entity in the database.
func (repo *cityRepository) Update(ctx context.Context, city *entity.City) error {
	cityM := model.CityModelFromEntity(city)

	if err := repo.db.WithContext(ctx).Save(cityM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update city")
	}

	city.UpdatedAt = cityM.UpdatedAt

	return nil
}

// Delete removes a city by its ID.
func (repo *cityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.CityModel{}, "id = ?", id)
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrConflict.WrapMessage("city still has locations")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete city")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCityNotFound
	}

	return nil
}
