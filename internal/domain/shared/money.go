package shared

import "github.com/shopspring/decimal"

// ZeroIfNil dereferences an optional amount, treating nil as zero
func ZeroIfNil(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
