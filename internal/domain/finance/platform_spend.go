package finance

import (
	"strings"

	"github.com/codops/backend/internal/domain/catalog"
	"github.com/codops/backend/internal/domain/inventory"
	"github.com/codops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PlatformSpend is the latest daily ad spend of one SKU on one platform in
// one country. A new value for the same key replaces the old one. It is a
// live figure for the dashboard and never feeds period profit.
type PlatformSpend struct {
	shared.BaseEntity
	SKU         string
	Platform    string
	CountryCode string
	Amount      decimal.Decimal
}

// NewPlatformSpend validates and creates a spend value
func NewPlatformSpend(sku, platform, countryCode string, amount decimal.Decimal) (*PlatformSpend, error) {
	sku = catalog.NormalizeSKU(sku)
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	platform = strings.ToLower(strings.TrimSpace(platform))
	if platform == "" {
		return nil, shared.NewDomainError("INVALID_PLATFORM", "Platform cannot be empty")
	}
	countryCode = inventory.NormalizeCountryCode(countryCode)
	if !inventory.IsCountryCode(countryCode) {
		return nil, shared.NewDomainError("INVALID_COUNTRY_CODE", "Country code must be two letters")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Spend amount cannot be negative")
	}
	return &PlatformSpend{
		BaseEntity:  shared.NewBaseEntity(),
		SKU:         sku,
		Platform:    platform,
		CountryCode: countryCode,
		Amount:      amount,
	}, nil
}

// SpendByCountry sums live spend per country
func SpendByCountry(spends []PlatformSpend) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, s := range spends {
		totals[s.CountryCode] = totals[s.CountryCode].Add(s.Amount)
	}
	return totals
}
