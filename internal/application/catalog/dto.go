package catalog

import (
	"time"

	"github.com/codops/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	SKU              string           `json:"sku" binding:"required,min=1,max=50"`
	Name             string           `json:"name" binding:"required,min=1,max=200"`
	Category         string           `json:"category" binding:"max=100"`
	WeightGrams      int              `json:"weight_g" binding:"gte=0"`
	OriginCost       *decimal.Decimal `json:"cost_cn_usd"`
	FirstLegShipCost *decimal.Decimal `json:"default_cnke_ship_usd"`
	AdBudget         *decimal.Decimal `json:"profit_ads_budget_usd"`
}

// UpdateProductRequest represents a request to update a product.
// Nil fields keep their current value.
type UpdateProductRequest struct {
	Name             *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Category         *string          `json:"category" binding:"omitempty,max=100"`
	WeightGrams      *int             `json:"weight_g" binding:"omitempty,gte=0"`
	OriginCost       *decimal.Decimal `json:"cost_cn_usd"`
	FirstLegShipCost *decimal.Decimal `json:"default_cnke_ship_usd"`
	AdBudget         *decimal.Decimal `json:"profit_ads_budget_usd"`
	Status           *string          `json:"status" binding:"omitempty,oneof=active inactive"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID               uuid.UUID       `json:"id"`
	SKU              string          `json:"sku"`
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	WeightGrams      int             `json:"weight_g"`
	OriginCost       decimal.Decimal `json:"cost_cn_usd"`
	FirstLegShipCost decimal.Decimal `json:"default_cnke_ship_usd"`
	AdBudget         decimal.Decimal `json:"profit_ads_budget_usd"`
	Status           string          `json:"status"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:               p.ID,
		SKU:              p.SKU,
		Name:             p.Name,
		Category:         p.Category,
		WeightGrams:      p.WeightGrams,
		OriginCost:       p.OriginCost,
		FirstLegShipCost: p.FirstLegShipCost,
		AdBudget:         p.AdBudget,
		Status:           string(p.Status),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of domain Products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}

func valueOr(d *decimal.Decimal, fallback decimal.Decimal) decimal.Decimal {
	if d == nil {
		return fallback
	}
	return *d
}
