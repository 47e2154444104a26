package catalog

import (
	"strings"

	"github.com/codops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

// IsValid reports whether the status is known
func (s ProductStatus) IsValid() bool {
	return s == ProductStatusActive || s == ProductStatusInactive
}

// Product is a sellable SKU. The SKU is its business identity and is
// referenced by stock movements, shipment items, spend and remittance rows.
type Product struct {
	shared.BaseAggregateRoot
	SKU         string
	Name        string
	Category    string
	WeightGrams int
	// OriginCost is the purchase cost per unit at the China origin, USD
	OriginCost decimal.Decimal
	// FirstLegShipCost is the default China to Kenya shipping cost per unit, USD
	FirstLegShipCost decimal.Decimal
	AdBudget         decimal.Decimal
	Status           ProductStatus
}

// ProductDetails groups the mutable product attributes
type ProductDetails struct {
	Name             string
	Category         string
	WeightGrams      int
	OriginCost       decimal.Decimal
	FirstLegShipCost decimal.Decimal
	AdBudget         decimal.Decimal
}

// NewProduct creates a new active product
func NewProduct(sku string, details ProductDetails) (*Product, error) {
	sku = NormalizeSKU(sku)
	if err := validateSKU(sku); err != nil {
		return nil, err
	}

	p := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               sku,
		Status:            ProductStatusActive,
	}
	if err := p.apply(details); err != nil {
		return nil, err
	}

	p.AddDomainEvent(NewProductCreatedEvent(p))
	return p, nil
}

// Update replaces the product's mutable attributes
func (p *Product) Update(details ProductDetails) error {
	if err := p.apply(details); err != nil {
		return err
	}
	p.Touch()
	return nil
}

// SetStatus changes the product status
func (p *Product) SetStatus(status ProductStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown product status")
	}
	p.Status = status
	p.Touch()
	return nil
}

// IsActive reports whether the product is active
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

func (p *Product) apply(d ProductDetails) error {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	if d.WeightGrams < 0 {
		return shared.NewDomainError("INVALID_WEIGHT", "Weight cannot be negative")
	}

	p.Name = name
	p.Category = NormalizeCategory(d.Category)
	p.WeightGrams = d.WeightGrams
	p.OriginCost = d.OriginCost
	p.FirstLegShipCost = d.FirstLegShipCost
	p.AdBudget = d.AdBudget
	return nil
}

// NormalizeSKU trims and upper-cases a SKU
func NormalizeSKU(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}

// NormalizeCategory title-cases a category so "wellness" and "WELLNESS"
// group together
func NormalizeCategory(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ToLower(category))
}

func validateSKU(sku string) error {
	if sku == "" {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if len(sku) > 50 {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 50 characters")
	}
	for _, r := range sku {
		if !(r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '_') {
			return shared.NewDomainError("INVALID_SKU", "SKU can only contain letters, digits, '-' and '_'")
		}
	}
	return nil
}
