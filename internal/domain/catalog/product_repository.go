package catalog

import (
	"context"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindBySKU finds a product by SKU, returning shared.ErrNotFound if absent
	FindBySKU(ctx context.Context, sku string) (*Product, error)

	// FindAll returns all products ordered by SKU
	FindAll(ctx context.Context) ([]Product, error)

	// ExistsBySKU checks whether a SKU is taken
	ExistsBySKU(ctx context.Context, sku string) (bool, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// DeleteBySKU deletes a product together with its spend, movement,
	// shipment item and remittance rows
	DeleteBySKU(ctx context.Context, sku string) error

	// Count counts all products
	Count(ctx context.Context) (int64, error)
}
