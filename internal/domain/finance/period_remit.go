package finance

import (
	"fmt"
	"strings"

	"github.com/codops/backend/internal/domain/catalog"
	"github.com/codops/backend/internal/domain/inventory"
	"github.com/codops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// RemitReferencePrefix prefixes the reference of the stock decrease
// recorded with each remittance
const RemitReferencePrefix = "REMIT-"

// PeriodKey identifies one remittance row
type PeriodKey struct {
	StartDate   string
	EndDate     string
	CountryCode string
	SKU         string
}

// NewPeriodKey validates and normalizes a period key
func NewPeriodKey(start, end, countryCode, sku string) (PeriodKey, error) {
	if !shared.IsValidDate(start) || !shared.IsValidDate(end) {
		return PeriodKey{}, shared.NewDomainError("INVALID_DATE", "Period dates must be YYYY-MM-DD")
	}
	if end < start {
		return PeriodKey{}, shared.NewDomainError("INVALID_PERIOD", "Period end cannot be before its start")
	}
	countryCode = inventory.NormalizeCountryCode(countryCode)
	if !inventory.IsCountryCode(countryCode) {
		return PeriodKey{}, shared.NewDomainError("INVALID_COUNTRY_CODE", "Country code must be two letters")
	}
	sku = catalog.NormalizeSKU(sku)
	if sku == "" {
		return PeriodKey{}, shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	return PeriodKey{StartDate: start, EndDate: end, CountryCode: countryCode, SKU: sku}, nil
}

// StockReference is the reference stamped on the stock decrease
func (k PeriodKey) StockReference() string {
	return fmt.Sprintf("%s%s-%s-%s", RemitReferencePrefix, k.CountryCode, k.StartDate, k.EndDate)
}

// String renders the key for logs
func (k PeriodKey) String() string {
	return strings.Join([]string{k.StartDate, k.EndDate, k.CountryCode, k.SKU}, "/")
}

// RemitFigures are the reported numbers for a period. They are taken as
// given: negative values flow into the profit arithmetic unchanged.
type RemitFigures struct {
	Orders  int
	Pieces  int
	Revenue decimal.Decimal
	AdSpend decimal.Decimal
}

// PeriodRemit is the profit result for one product in one country over
// one reporting period
type PeriodRemit struct {
	shared.BaseAggregateRoot
	PeriodKey
	RemitFigures
	UnitCost       decimal.Decimal
	ProfitTotal    decimal.Decimal
	ProfitPerPiece decimal.Decimal
}

// NewPeriodRemit computes a fresh remittance row
func NewPeriodRemit(key PeriodKey, figures RemitFigures, unitCost decimal.Decimal) *PeriodRemit {
	r := &PeriodRemit{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PeriodKey:         key,
	}
	r.compute(figures, unitCost)
	return r
}

// Recompute overwrites every figure and derived value. Nothing carries
// over from the previous submission.
func (r *PeriodRemit) Recompute(figures RemitFigures, unitCost decimal.Decimal) {
	r.compute(figures, unitCost)
	r.Touch()
}

func (r *PeriodRemit) compute(figures RemitFigures, unitCost decimal.Decimal) {
	r.RemitFigures = figures
	r.UnitCost = unitCost
	r.ProfitTotal, r.ProfitPerPiece = ComputeProfit(figures.Pieces, figures.Revenue, figures.AdSpend, unitCost)
}

// StockDecrease builds the movement deducting the sold pieces from the
// country's warehouse. It returns nil when no pieces were sold.
func (r *PeriodRemit) StockDecrease(warehouse *inventory.Warehouse) (*inventory.StockMovement, error) {
	if r.Pieces <= 0 || warehouse == nil {
		return nil, nil
	}
	return inventory.NewStockDecrease(r.EndDate, r.SKU, warehouse.ID, r.Pieces, r.StockReference())
}
