package persistence

import (
	"context"
	"testing"

	"github.com/codops/backend/internal/domain/catalog"
	"github.com/codops/backend/internal/domain/finance"
	"github.com/codops/backend/internal/domain/inventory"
	"github.com/codops/backend/internal/domain/shared"
	"github.com/codops/backend/internal/domain/shipping"
	"github.com/codops/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormProductRepository_SaveAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	saved := saveProduct(t, db, "TK1-FOOT")
	saveProduct(t, db, "GLS-TRIM")

	t.Run("finds by SKU", func(t *testing.T) {
		p, err := repo.FindBySKU(ctx, "TK1-FOOT")
		require.NoError(t, err)
		assert.Equal(t, saved.ID, p.ID)
		assert.Equal(t, "Product TK1-FOOT", p.Name)
		assert.Equal(t, 500, p.WeightGrams)
		assert.True(t, decimal.RequireFromString("8.2").Equal(p.OriginCost))
		assert.Equal(t, catalog.ProductStatusActive, p.Status)
		assert.Empty(t, p.GetDomainEvents())
	})

	t.Run("missing SKU is not found", func(t *testing.T) {
		_, err := repo.FindBySKU(ctx, "NOPE")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("lists ordered by SKU", func(t *testing.T) {
		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "GLS-TRIM", all[0].SKU)
		assert.Equal(t, "TK1-FOOT", all[1].SKU)
	})

	t.Run("exists and count", func(t *testing.T) {
		ok, err := repo.ExistsBySKU(ctx, "GLS-TRIM")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.ExistsBySKU(ctx, "OTHER")
		require.NoError(t, err)
		assert.False(t, ok)

		n, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})

	t.Run("save updates in place", func(t *testing.T) {
		p, err := repo.FindBySKU(ctx, "TK1-FOOT")
		require.NoError(t, err)
		require.NoError(t, p.Update(catalog.ProductDetails{
			Name:             "EMS Foot Massager",
			WeightGrams:      720,
			OriginCost:       decimal.RequireFromString("9.00"),
			FirstLegShipCost: decimal.RequireFromString("1.20"),
		}))
		require.NoError(t, repo.Save(ctx, p))

		reloaded, err := repo.FindBySKU(ctx, "TK1-FOOT")
		require.NoError(t, err)
		assert.Equal(t, "EMS Foot Massager", reloaded.Name)
		assert.True(t, decimal.NewFromInt(9).Equal(reloaded.OriginCost))

		n, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})
}

func TestGormProductRepository_DeleteBySKUCascades(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewGormProductRepository(db)

	saveProduct(t, db, "TK1-FOOT")
	saveProduct(t, db, "GLS-TRIM")
	ke := saveWarehouse(t, db, "KE-NBO", "KE")

	for _, sku := range []string{"TK1-FOOT", "GLS-TRIM"} {
		spend, err := finance.NewPlatformSpend(sku, "facebook", "KE", decimal.NewFromInt(10))
		require.NoError(t, err)
		require.NoError(t, NewGormPlatformSpendRepository(db).Upsert(ctx, spend))

		mv, err := inventory.NewStockIncrease("2025-01-01", sku, ke.ID, 10, "MANUAL")
		require.NoError(t, err)
		require.NoError(t, NewGormStockMovementRepository(db).Create(ctx, mv))

		key, err := finance.NewPeriodKey("2025-01-01", "2025-01-31", "KE", sku)
		require.NoError(t, err)
		remit := finance.NewPeriodRemit(key, finance.RemitFigures{Orders: 1, Pieces: 1, Revenue: decimal.NewFromInt(20)}, decimal.NewFromInt(5))
		require.NoError(t, NewGormPeriodRemitRepository(db).Save(ctx, remit))
	}

	sh, err := shipping.NewShipment("SH-1", "CN", "KE", "2025-01-01", decimal.Zero)
	require.NoError(t, err)
	_, err = sh.AddItem("TK1-FOOT", 5)
	require.NoError(t, err)
	_, err = sh.AddItem("GLS-TRIM", 3)
	require.NoError(t, err)
	require.NoError(t, NewGormShipmentRepository(db).Save(ctx, sh))

	require.NoError(t, repo.DeleteBySKU(ctx, "TK1-FOOT"))

	for _, m := range []any{
		&models.ProductModel{},
		&models.PlatformSpendModel{},
		&models.StockMovementModel{},
		&models.ShipmentItemModel{},
		&models.PeriodRemitModel{},
	} {
		var deleted, kept int64
		require.NoError(t, db.Model(m).Where("sku = ?", "TK1-FOOT").Count(&deleted).Error)
		require.NoError(t, db.Model(m).Where("sku = ?", "GLS-TRIM").Count(&kept).Error)
		assert.Zero(t, deleted, "%T still holds TK1-FOOT rows", m)
		assert.Equal(t, int64(1), kept, "%T lost GLS-TRIM rows", m)
	}

	stored, err := NewGormShipmentRepository(db).FindByID(ctx, sh.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, "GLS-TRIM", stored.Items[0].SKU)

	assert.ErrorIs(t, repo.DeleteBySKU(ctx, "TK1-FOOT"), shared.ErrNotFound)
}
