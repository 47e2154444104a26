package persistence

import (
	"context"

	"github.com/codops/backend/internal/domain/inventory"
	"github.com/codops/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormWarehouseRepository implements WarehouseRepository using GORM
type GormWarehouseRepository struct {
	db *gorm.DB
}

// NewGormWarehouseRepository creates a new GormWarehouseRepository
func NewGormWarehouseRepository(db *gorm.DB) *GormWarehouseRepository {
	return &GormWarehouseRepository{db: db}
}

// FindByID finds a warehouse by its ID
func (r *GormWarehouseRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Warehouse, error) {
	var model models.WarehouseModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return model.ToDomain(), nil
}

// FindAll returns every warehouse ordered by country, then code
func (r *GormWarehouseRepository) FindAll(ctx context.Context) ([]inventory.Warehouse, error) {
	return r.find(r.db.WithContext(ctx))
}

// FindActive returns active warehouses ordered by country, then code
func (r *GormWarehouseRepository) FindActive(ctx context.Context) ([]inventory.Warehouse, error) {
	return r.find(r.db.WithContext(ctx).Where("active = ?", true))
}

// FindActiveByCountry returns the first active warehouse of a country by code
func (r *GormWarehouseRepository) FindActiveByCountry(ctx context.Context, countryCode string) (*inventory.Warehouse, error) {
	var model models.WarehouseModel
	if err := r.db.WithContext(ctx).
		Where("country_code = ? AND active = ?", countryCode, true).
		Order("code ASC").
		Take(&model).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return model.ToDomain(), nil
}

// Save creates or updates a warehouse
func (r *GormWarehouseRepository) Save(ctx context.Context, warehouse *inventory.Warehouse) error {
	return r.db.WithContext(ctx).Save(models.WarehouseModelFromDomain(warehouse)).Error
}

// Count counts all warehouses
func (r *GormWarehouseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.WarehouseModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormWarehouseRepository) find(query *gorm.DB) ([]inventory.Warehouse, error) {
	var rows []models.WarehouseModel
	if err := query.Order("country_code ASC, code ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	warehouses := make([]inventory.Warehouse, len(rows))
	for i := range rows {
		warehouses[i] = *rows[i].ToDomain()
	}
	return warehouses, nil
}

// Ensure GormWarehouseRepository implements WarehouseRepository
var _ inventory.WarehouseRepository = (*GormWarehouseRepository)(nil)
