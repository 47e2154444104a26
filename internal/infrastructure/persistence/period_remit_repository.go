package persistence

import (
	"context"

	"github.com/codops/backend/internal/domain/finance"
	"github.com/codops/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPeriodRemitRepository implements PeriodRemitRepository using GORM
type GormPeriodRemitRepository struct {
	db *gorm.DB
}

// NewGormPeriodRemitRepository creates a new GormPeriodRemitRepository
func NewGormPeriodRemitRepository(db *gorm.DB) *GormPeriodRemitRepository {
	return &GormPeriodRemitRepository{db: db}
}

// FindByKey returns the row for a period key
func (r *GormPeriodRemitRepository) FindByKey(ctx context.Context, key finance.PeriodKey) (*finance.PeriodRemit, error) {
	var model models.PeriodRemitModel
	if err := r.db.WithContext(ctx).
		Where("start_date = ? AND end_date = ? AND country_code = ? AND sku = ?",
			key.StartDate, key.EndDate, key.CountryCode, key.SKU).
		First(&model).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return model.ToDomain(), nil
}

// Save inserts or updates a row by ID. The unique period key index rejects
// a second row for the same key.
func (r *GormPeriodRemitRepository) Save(ctx context.Context, remit *finance.PeriodRemit) error {
	return r.db.WithContext(ctx).Save(models.PeriodRemitModelFromDomain(remit)).Error
}

// Find returns rows ordered by country, then profit descending
func (r *GormPeriodRemitRepository) Find(ctx context.Context, filter finance.RemitFilter) ([]finance.PeriodRemit, error) {
	query := r.db.WithContext(ctx).Model(&models.PeriodRemitModel{})
	if filter.StartFrom != "" {
		query = query.Where("start_date >= ?", filter.StartFrom)
	}
	if filter.EndTo != "" {
		query = query.Where("end_date <= ?", filter.EndTo)
	}
	if filter.CountryCode != "" {
		query = query.Where("country_code = ?", filter.CountryCode)
	}
	if filter.SKU != "" {
		query = query.Where("sku = ?", filter.SKU)
	}

	var rows []models.PeriodRemitModel
	if err := query.Order("country_code ASC, profit_total DESC, sku ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	remits := make([]finance.PeriodRemit, len(rows))
	for i := range rows {
		remits[i] = *rows[i].ToDomain()
	}
	return remits, nil
}

// Ensure GormPeriodRemitRepository implements PeriodRemitRepository
var _ finance.PeriodRemitRepository = (*GormPeriodRemitRepository)(nil)
