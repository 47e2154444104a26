package inventory

import (
	"context"

	"github.com/google/uuid"
)

// CountryRepository defines persistence for countries
type CountryRepository interface {
	FindAll(ctx context.Context) ([]Country, error)
	FindByCode(ctx context.Context, code string) (*Country, error)
	Save(ctx context.Context, country *Country) error
	Count(ctx context.Context) (int64, error)
}

// WarehouseRepository defines persistence for warehouses
type WarehouseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Warehouse, error)
	FindAll(ctx context.Context) ([]Warehouse, error)
	FindActive(ctx context.Context) ([]Warehouse, error)
	// FindActiveByCountry returns the first active warehouse in a country,
	// or shared.ErrNotFound
	FindActiveByCountry(ctx context.Context, countryCode string) (*Warehouse, error)
	Save(ctx context.Context, warehouse *Warehouse) error
	Count(ctx context.Context) (int64, error)
}

// StockMovementRepository is the append-only movement ledger
type StockMovementRepository interface {
	Create(ctx context.Context, movement *StockMovement) error
	CreateBatch(ctx context.Context, movements []*StockMovement) error
	FindBySKU(ctx context.Context, sku string) ([]StockMovement, error)
	FindAll(ctx context.Context) ([]StockMovement, error)
	FindByReference(ctx context.Context, reference string) ([]StockMovement, error)
}
