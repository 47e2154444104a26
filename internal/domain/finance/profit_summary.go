package finance

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CountryProfit aggregates remittance rows of one product in one country
type CountryProfit struct {
	CountryCode    string
	Pieces         int
	Revenue        decimal.Decimal
	AdSpend        decimal.Decimal
	ProfitTotal    decimal.Decimal
	ProfitPerPiece decimal.Decimal
}

// ProfitTotals sums CountryProfit rows
type ProfitTotals struct {
	Pieces      int
	Revenue     decimal.Decimal
	AdSpend     decimal.Decimal
	ProfitTotal decimal.Decimal
}

// SummarizeByCountry groups remits by country, ordered by country code.
// Per piece profit is recomputed on the aggregate, zero when no pieces.
func SummarizeByCountry(remits []PeriodRemit) ([]CountryProfit, ProfitTotals) {
	byCountry := make(map[string]*CountryProfit)
	for _, r := range remits {
		cp, ok := byCountry[r.CountryCode]
		if !ok {
			cp = &CountryProfit{
				CountryCode: r.CountryCode,
				Revenue:     decimal.Zero,
				AdSpend:     decimal.Zero,
				ProfitTotal: decimal.Zero,
			}
			byCountry[r.CountryCode] = cp
		}
		cp.Pieces += r.Pieces
		cp.Revenue = cp.Revenue.Add(r.Revenue)
		cp.AdSpend = cp.AdSpend.Add(r.AdSpend)
		cp.ProfitTotal = cp.ProfitTotal.Add(r.ProfitTotal)
	}

	totals := ProfitTotals{Revenue: decimal.Zero, AdSpend: decimal.Zero, ProfitTotal: decimal.Zero}
	rows := make([]CountryProfit, 0, len(byCountry))
	for _, cp := range byCountry {
		cp.ProfitPerPiece = decimal.Zero
		if cp.Pieces != 0 {
			cp.ProfitPerPiece = cp.ProfitTotal.Div(decimal.NewFromInt(int64(cp.Pieces)))
		}
		rows = append(rows, *cp)

		totals.Pieces += cp.Pieces
		totals.Revenue = totals.Revenue.Add(cp.Revenue)
		totals.AdSpend = totals.AdSpend.Add(cp.AdSpend)
		totals.ProfitTotal = totals.ProfitTotal.Add(cp.ProfitTotal)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CountryCode < rows[j].CountryCode })
	return rows, totals
}
