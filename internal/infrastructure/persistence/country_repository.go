package persistence

import (
	"context"

	"github.com/codops/backend/internal/domain/inventory"
	"github.com/codops/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCountryRepository implements CountryRepository using GORM
type GormCountryRepository struct {
	db *gorm.DB
}

// NewGormCountryRepository creates a new GormCountryRepository
func NewGormCountryRepository(db *gorm.DB) *GormCountryRepository {
	return &GormCountryRepository{db: db}
}

// FindAll returns every country ordered by code
func (r *GormCountryRepository) FindAll(ctx context.Context) ([]inventory.Country, error) {
	var rows []models.CountryModel
	if err := r.db.WithContext(ctx).Order("code ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	countries := make([]inventory.Country, len(rows))
	for i := range rows {
		countries[i] = *rows[i].ToDomain()
	}
	return countries, nil
}

// FindByCode finds a country by its code
func (r *GormCountryRepository) FindByCode(ctx context.Context, code string) (*inventory.Country, error) {
	var model models.CountryModel
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&model).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return model.ToDomain(), nil
}

// Save creates or updates a country
func (r *GormCountryRepository) Save(ctx context.Context, country *inventory.Country) error {
	return r.db.WithContext(ctx).Save(models.CountryModelFromDomain(country)).Error
}

// Count counts all countries
func (r *GormCountryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.CountryModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormCountryRepository implements CountryRepository
var _ inventory.CountryRepository = (*GormCountryRepository)(nil)
