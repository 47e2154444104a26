package persistence

import (
	"context"
	"time"

	"github.com/codops/backend/internal/domain/finance"
	"github.com/codops/backend/internal/domain/shared"
	"github.com/codops/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPlatformSpendRepository implements PlatformSpendRepository using GORM
type GormPlatformSpendRepository struct {
	db *gorm.DB
}

// NewGormPlatformSpendRepository creates a new GormPlatformSpendRepository
func NewGormPlatformSpendRepository(db *gorm.DB) *GormPlatformSpendRepository {
	return &GormPlatformSpendRepository{db: db}
}

// Upsert writes spend keyed by SKU, platform and country. On conflict only
// the amount changes; spend afterwards carries the stored row's identity.
func (r *GormPlatformSpendRepository) Upsert(ctx context.Context, spend *finance.PlatformSpend) error {
	model := models.PlatformSpendModelFromDomain(spend)
	model.UpdatedAt = time.Now()

	db := r.db.WithContext(ctx)
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "sku"}, {Name: "platform"}, {Name: "country_code"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
	}).Create(model).Error; err != nil {
		return err
	}

	var stored models.PlatformSpendModel
	if err := db.Where("sku = ? AND platform = ? AND country_code = ?",
		spend.SKU, spend.Platform, spend.CountryCode).
		First(&stored).Error; err != nil {
		return err
	}
	spend.BaseEntity = stored.BaseModel.ToDomain()
	return nil
}

// FindByID finds a spend row by its ID
func (r *GormPlatformSpendRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.PlatformSpend, error) {
	var model models.PlatformSpendModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return model.ToDomain(), nil
}

// FindBySKU returns a SKU's spend rows ordered by country, then platform
func (r *GormPlatformSpendRepository) FindBySKU(ctx context.Context, sku string) ([]finance.PlatformSpend, error) {
	return r.find(r.db.WithContext(ctx).Where("sku = ?", sku))
}

// FindAll returns every spend row
func (r *GormPlatformSpendRepository) FindAll(ctx context.Context) ([]finance.PlatformSpend, error) {
	return r.find(r.db.WithContext(ctx))
}

// Delete removes a spend row
func (r *GormPlatformSpendRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PlatformSpendModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormPlatformSpendRepository) find(query *gorm.DB) ([]finance.PlatformSpend, error) {
	var rows []models.PlatformSpendModel
	if err := query.Order("sku ASC, country_code ASC, platform ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	spend := make([]finance.PlatformSpend, len(rows))
	for i := range rows {
		spend[i] = *rows[i].ToDomain()
	}
	return spend, nil
}

// Ensure GormPlatformSpendRepository implements PlatformSpendRepository
var _ finance.PlatformSpendRepository = (*GormPlatformSpendRepository)(nil)
