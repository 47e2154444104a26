package persistence

import (
	"context"
	"testing"

	"github.com/codops/backend/internal/domain/catalog"
	"github.com/codops/backend/internal/domain/inventory"
	"github.com/codops/backend/internal/infrastructure/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(&config.DatabaseConfig{
		Driver:       config.DriverSQLite,
		Path:         MemoryPath,
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return newTestDatabase(t).DB
}

func saveProduct(t *testing.T, db *gorm.DB, sku string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(sku, catalog.ProductDetails{
		Name:             "Product " + sku,
		Category:         "Wellness",
		WeightGrams:      500,
		OriginCost:       decimal.RequireFromString("8.20"),
		FirstLegShipCost: decimal.RequireFromString("1.20"),
	})
	require.NoError(t, err)
	require.NoError(t, NewGormProductRepository(db).Save(context.Background(), p))
	return p
}

func saveWarehouse(t *testing.T, db *gorm.DB, code, country string) *inventory.Warehouse {
	t.Helper()
	w, err := inventory.NewWarehouse(code, code+" warehouse", country)
	require.NoError(t, err)
	require.NoError(t, NewGormWarehouseRepository(db).Save(context.Background(), w))
	return w
}
