package persistence

import (
	"context"
	"time"

	"github.com/codops/backend/internal/domain/finance"
	"github.com/codops/backend/internal/domain/shared"
	"github.com/codops/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDailyDeliveredRepository implements DailyDeliveredRepository using GORM
type GormDailyDeliveredRepository struct {
	db *gorm.DB
}

// NewGormDailyDeliveredRepository creates a new GormDailyDeliveredRepository
func NewGormDailyDeliveredRepository(db *gorm.DB) *GormDailyDeliveredRepository {
	return &GormDailyDeliveredRepository{db: db}
}

// Upsert writes the delivered count keyed by date and country
func (r *GormDailyDeliveredRepository) Upsert(ctx context.Context, row *finance.DailyDelivered) error {
	model := models.DailyDeliveredModelFromDomain(row)
	model.UpdatedAt = time.Now()

	db := r.db.WithContext(ctx)
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}, {Name: "country_code"}},
		DoUpdates: clause.AssignmentColumns([]string{"delivered", "updated_at"}),
	}).Create(model).Error; err != nil {
		return err
	}

	var stored models.DailyDeliveredModel
	if err := db.Where("date = ? AND country_code = ?", row.Date, row.CountryCode).
		First(&stored).Error; err != nil {
		return err
	}
	row.BaseEntity = stored.BaseModel.ToDomain()
	return nil
}

// FindRange returns rows within dates, newest first
func (r *GormDailyDeliveredRepository) FindRange(ctx context.Context, dates shared.DateRange, limit int) ([]finance.DailyDelivered, error) {
	query := r.db.WithContext(ctx).Model(&models.DailyDeliveredModel{})
	if dates.From != "" {
		query = query.Where("date >= ?", dates.From)
	}
	if dates.To != "" {
		query = query.Where("date <= ?", dates.To)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []models.DailyDeliveredModel
	if err := query.Order("date DESC, country_code ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]finance.DailyDelivered, len(rows))
	for i := range rows {
		result[i] = *rows[i].ToDomain()
	}
	return result, nil
}

// Ensure GormDailyDeliveredRepository implements DailyDeliveredRepository
var _ finance.DailyDeliveredRepository = (*GormDailyDeliveredRepository)(nil)
