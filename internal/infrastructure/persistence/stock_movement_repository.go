package persistence

import (
	"context"

	"github.com/codops/backend/internal/domain/inventory"
	"github.com/codops/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// movementBatchSize bounds rows per INSERT when writing many movements
const movementBatchSize = 200

// GormStockMovementRepository implements StockMovementRepository using GORM.
// Movements are never updated or deleted here.
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewGormStockMovementRepository creates a new GormStockMovementRepository
func NewGormStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// Create appends one movement
func (r *GormStockMovementRepository) Create(ctx context.Context, movement *inventory.StockMovement) error {
	return r.db.WithContext(ctx).Create(models.StockMovementModelFromDomain(movement)).Error
}

// CreateBatch appends movements in batches
func (r *GormStockMovementRepository) CreateBatch(ctx context.Context, movements []*inventory.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}
	rows := make([]*models.StockMovementModel, len(movements))
	for i, m := range movements {
		rows[i] = models.StockMovementModelFromDomain(m)
	}
	return r.db.WithContext(ctx).CreateInBatches(rows, movementBatchSize).Error
}

// FindBySKU returns a SKU's movements in ledger order
func (r *GormStockMovementRepository) FindBySKU(ctx context.Context, sku string) ([]inventory.StockMovement, error) {
	return r.find(r.db.WithContext(ctx).Where("sku = ?", sku))
}

// FindAll returns every movement in ledger order
func (r *GormStockMovementRepository) FindAll(ctx context.Context) ([]inventory.StockMovement, error) {
	return r.find(r.db.WithContext(ctx))
}

// FindByReference returns movements carrying reference
func (r *GormStockMovementRepository) FindByReference(ctx context.Context, reference string) ([]inventory.StockMovement, error) {
	return r.find(r.db.WithContext(ctx).Where("reference = ?", reference))
}

func (r *GormStockMovementRepository) find(query *gorm.DB) ([]inventory.StockMovement, error) {
	var rows []models.StockMovementModel
	if err := query.Order("date ASC, created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	movements := make([]inventory.StockMovement, len(rows))
	for i := range rows {
		movements[i] = *rows[i].ToDomain()
	}
	return movements, nil
}

// Ensure GormStockMovementRepository implements StockMovementRepository
var _ inventory.StockMovementRepository = (*GormStockMovementRepository)(nil)
