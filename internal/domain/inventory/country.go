package inventory

import (
	"strings"

	"github.com/codops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	// OriginCountryCode is the sourcing country. It holds a warehouse but is
	// left out of every operational country listing.
	OriginCountryCode = "CN"
	// HubCountryCode is the first-leg destination all goods pass through
	HubCountryCode = "KE"
)

// Country is a market or sourcing country. Code is the canonical
// identifier used by every other table; Name is display only.
type Country struct {
	Code     string
	Name     string
	Currency string
	FxToUSD  decimal.Decimal
}

// NewCountry creates a country
func NewCountry(code, name, currency string, fxToUSD decimal.Decimal) (*Country, error) {
	code = NormalizeCountryCode(code)
	if !IsCountryCode(code) {
		return nil, shared.NewDomainError("INVALID_COUNTRY_CODE", "Country code must be two letters")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Country name cannot be empty")
	}
	if currency == "" {
		currency = "USD"
	}
	return &Country{
		Code:     code,
		Name:     strings.TrimSpace(name),
		Currency: strings.ToUpper(currency),
		FxToUSD:  fxToUSD,
	}, nil
}

// IsOperational reports whether the country is a sales market
func (c Country) IsOperational() bool {
	return c.Code != OriginCountryCode
}

// NormalizeCountryCode trims and upper-cases a country code
func NormalizeCountryCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsCountryCode reports whether code looks like an ISO 3166 alpha-2 code
func IsCountryCode(code string) bool {
	if len(code) != 2 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// OperationalCountries filters out the origin country, keeping order
func OperationalCountries(countries []Country) []Country {
	out := make([]Country, 0, len(countries))
	for _, c := range countries {
		if c.IsOperational() {
			out = append(out, c)
		}
	}
	return out
}
