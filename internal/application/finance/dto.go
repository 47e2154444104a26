package finance

import (
	"time"

	"github.com/codops/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UpsertRemitRequest submits the figures of one product in one country
// for one period. RouteCostOverride, when set, replaces the historical
// route shipping cost per unit.
type UpsertRemitRequest struct {
	StartDate         string           `json:"start_date" binding:"required,isodate"`
	EndDate           string           `json:"end_date" binding:"required,isodate"`
	CountryCode       string           `json:"country_code" binding:"required,country_code"`
	SKU               string           `json:"sku" binding:"required"`
	Orders            int              `json:"orders"`
	Pieces            int              `json:"pieces"`
	Revenue           decimal.Decimal  `json:"revenue_usd"`
	AdSpend           decimal.Decimal  `json:"ad_usd"`
	RouteCostOverride *decimal.Decimal `json:"override_ship_unit"`
}

// RemitReportFilter selects the rows of the remittance report
type RemitReportFilter struct {
	StartFrom   string `form:"rs" binding:"omitempty,isodate"`
	EndTo       string `form:"re" binding:"omitempty,isodate"`
	CountryCode string `form:"rc" binding:"omitempty,country_code"`
	SKU         string `form:"sku"`
}

// RemitResponse represents a remittance row in API responses
type RemitResponse struct {
	ID             uuid.UUID       `json:"id"`
	StartDate      string          `json:"start_date"`
	EndDate        string          `json:"end_date"`
	CountryCode    string          `json:"country_code"`
	SKU            string          `json:"sku"`
	Orders         int             `json:"orders"`
	Pieces         int             `json:"pieces"`
	Revenue        decimal.Decimal `json:"revenue_usd"`
	AdSpend        decimal.Decimal `json:"ad_usd"`
	UnitCost       decimal.Decimal `json:"cost_unit_usd"`
	ProfitTotal    decimal.Decimal `json:"profit_total_usd"`
	ProfitPerPiece decimal.Decimal `json:"profit_per_piece_usd"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// UpsertRemitResponse is the stored row plus what the write did
type UpsertRemitResponse struct {
	Remit         RemitResponse `json:"remit"`
	Replaced      bool          `json:"replaced"`
	StockDeducted bool          `json:"stock_deducted"`
}

// RemitReport is the filtered remittance report
type RemitReport struct {
	Rows   []RemitResponse `json:"rows"`
	Totals RemitTotals     `json:"totals"`
}

// RemitTotals sums a report
type RemitTotals struct {
	Orders      int             `json:"orders"`
	Pieces      int             `json:"pieces"`
	Revenue     decimal.Decimal `json:"revenue_usd"`
	AdSpend     decimal.Decimal `json:"ad_usd"`
	ProfitTotal decimal.Decimal `json:"profit_total_usd"`
}

// UpsertSpendRequest sets the current daily ad spend of a SKU
type UpsertSpendRequest struct {
	SKU         string          `json:"sku" binding:"required"`
	Platform    string          `json:"platform" binding:"required,max=50"`
	CountryCode string          `json:"country_code" binding:"required,country_code"`
	Amount      decimal.Decimal `json:"amount_usd"`
}

// SpendResponse represents current platform spend in API responses
type SpendResponse struct {
	ID          uuid.UUID       `json:"id"`
	SKU         string          `json:"sku"`
	Platform    string          `json:"platform"`
	CountryCode string          `json:"country_code"`
	Amount      decimal.Decimal `json:"amount_usd"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// SpendTotal is the summed current spend of a country
type SpendTotal struct {
	CountryCode string          `json:"country_code"`
	Amount      decimal.Decimal `json:"amount_usd"`
}

// UpsertDeliveredRequest sets the delivered count of a country on a day
type UpsertDeliveredRequest struct {
	Date        string `json:"date" binding:"required,isodate"`
	CountryCode string `json:"country_code" binding:"required,country_code"`
	Delivered   int    `json:"delivered" binding:"gte=0"`
}

// DeliveredFilter selects delivered rows
type DeliveredFilter struct {
	From  string `form:"from" binding:"omitempty,isodate"`
	To    string `form:"to" binding:"omitempty,isodate"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=500"`
}

// DeliveredResponse represents a delivered row in API responses
type DeliveredResponse struct {
	ID          uuid.UUID `json:"id"`
	Date        string    `json:"date"`
	CountryCode string    `json:"country_code"`
	Delivered   int       `json:"delivered"`
}

// DeliveredList is a range of delivered rows with their sum
type DeliveredList struct {
	Rows  []DeliveredResponse `json:"rows"`
	Total int                 `json:"total"`
}

// ToRemitResponse converts a domain PeriodRemit
func ToRemitResponse(r *finance.PeriodRemit) RemitResponse {
	return RemitResponse{
		ID:             r.ID,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		CountryCode:    r.CountryCode,
		SKU:            r.SKU,
		Orders:         r.Orders,
		Pieces:         r.Pieces,
		Revenue:        r.Revenue,
		AdSpend:        r.AdSpend,
		UnitCost:       r.UnitCost,
		ProfitTotal:    r.ProfitTotal,
		ProfitPerPiece: r.ProfitPerPiece,
		UpdatedAt:      r.UpdatedAt,
	}
}

// ToSpendResponse converts a domain PlatformSpend
func ToSpendResponse(s *finance.PlatformSpend) SpendResponse {
	return SpendResponse{
		ID:          s.ID,
		SKU:         s.SKU,
		Platform:    s.Platform,
		CountryCode: s.CountryCode,
		Amount:      s.Amount,
		UpdatedAt:   s.UpdatedAt,
	}
}

// ToSpendResponses converts a slice of domain PlatformSpends
func ToSpendResponses(spends []finance.PlatformSpend) []SpendResponse {
	responses := make([]SpendResponse, len(spends))
	for i := range spends {
		responses[i] = ToSpendResponse(&spends[i])
	}
	return responses
}

// ToDeliveredResponse converts a domain DailyDelivered
func ToDeliveredResponse(d *finance.DailyDelivered) DeliveredResponse {
	return DeliveredResponse{
		ID:          d.ID,
		Date:        d.Date,
		CountryCode: d.CountryCode,
		Delivered:   d.Delivered,
	}
}
