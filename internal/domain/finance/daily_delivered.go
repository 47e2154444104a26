package finance

import (
	"github.com/codops/backend/internal/domain/inventory"
	"github.com/codops/backend/internal/domain/shared"
)

// DailyDelivered is the number of orders delivered in a country on a day
type DailyDelivered struct {
	shared.BaseEntity
	Date        string
	CountryCode string
	Delivered   int
}

// NewDailyDelivered validates and creates a delivered count
func NewDailyDelivered(date, countryCode string, delivered int) (*DailyDelivered, error) {
	if !shared.IsValidDate(date) {
		return nil, shared.NewDomainError("INVALID_DATE", "Date must be YYYY-MM-DD")
	}
	countryCode = inventory.NormalizeCountryCode(countryCode)
	if !inventory.IsCountryCode(countryCode) {
		return nil, shared.NewDomainError("INVALID_COUNTRY_CODE", "Country code must be two letters")
	}
	if delivered < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Delivered count cannot be negative")
	}
	return &DailyDelivered{
		BaseEntity:  shared.NewBaseEntity(),
		Date:        date,
		CountryCode: countryCode,
		Delivered:   delivered,
	}, nil
}

// TotalDelivered sums delivered counts
func TotalDelivered(rows []DailyDelivered) int {
	total := 0
	for _, r := range rows {
		total += r.Delivered
	}
	return total
}
