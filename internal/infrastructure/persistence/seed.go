package persistence

import (
	"context"
	"fmt"

	"github.com/codops/backend/internal/domain/catalog"
	"github.com/codops/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type seedCountry struct {
	code, name    string
	warehouseCode string
	warehouseName string
}

var seedCountries = []seedCountry{
	{"CN", "China", "CN-HUB", "China Hub"},
	{"KE", "Kenya", "KE-NBO", "Nairobi Main"},
	{"TZ", "Tanzania", "TZ-DAR", "Dar Hub"},
	{"UG", "Uganda", "UG-KLA", "Kampala Hub"},
	{"ZM", "Zambia", "ZM-LUN", "Lusaka Hub"},
	{"ZW", "Zimbabwe", "ZW-HRE", "Harare Hub"},
}

var seedProducts = []struct {
	sku     string
	details catalog.ProductDetails
}{
	{"TK1-FOOT", catalog.ProductDetails{
		Name:             "EMS Foot Massager",
		Category:         "Wellness",
		WeightGrams:      720,
		OriginCost:       decimal.RequireFromString("8.20"),
		FirstLegShipCost: decimal.RequireFromString("1.20"),
	}},
	{"GLS-TRIM", catalog.ProductDetails{
		Name:             "Dermave Trimmer",
		Category:         "Beauty",
		WeightGrams:      180,
		OriginCost:       decimal.RequireFromString("3.10"),
		FirstLegShipCost: decimal.RequireFromString("0.70"),
	}},
}

// Seed fills empty reference tables. Countries and their warehouses are
// always seeded into an empty database; demo products only when
// withDemoProducts is set. Tables that already hold rows are left alone.
func Seed(ctx context.Context, db *gorm.DB, withDemoProducts bool, logger *zap.Logger) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		countries := NewGormCountryRepository(tx)
		warehouses := NewGormWarehouseRepository(tx)
		products := NewGormProductRepository(tx)

		n, err := countries.Count(ctx)
		if err != nil {
			return err
		}
		if n == 0 {
			for _, sc := range seedCountries {
				c, err := inventory.NewCountry(sc.code, sc.name, "USD", decimal.NewFromInt(1))
				if err != nil {
					return err
				}
				if err := countries.Save(ctx, c); err != nil {
					return fmt.Errorf("seed country %s: %w", sc.code, err)
				}
			}
			logger.Info("Seeded countries", zap.Int("count", len(seedCountries)))
		}

		n, err = warehouses.Count(ctx)
		if err != nil {
			return err
		}
		if n == 0 {
			for _, sc := range seedCountries {
				w, err := inventory.NewWarehouse(sc.warehouseCode, sc.warehouseName, sc.code)
				if err != nil {
					return err
				}
				if err := warehouses.Save(ctx, w); err != nil {
					return fmt.Errorf("seed warehouse %s: %w", sc.warehouseCode, err)
				}
			}
			logger.Info("Seeded warehouses", zap.Int("count", len(seedCountries)))
		}

		if !withDemoProducts {
			return nil
		}
		n, err = products.Count(ctx)
		if err != nil || n > 0 {
			return err
		}
		for _, sp := range seedProducts {
			p, err := catalog.NewProduct(sp.sku, sp.details)
			if err != nil {
				return err
			}
			if err := products.Save(ctx, p); err != nil {
				return fmt.Errorf("seed product %s: %w", sp.sku, err)
			}
		}
		logger.Info("Seeded demo products", zap.Int("count", len(seedProducts)))
		return nil
	})
}
