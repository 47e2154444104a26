package finance

import (
	"github.com/codops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AggregateTypePeriodRemit is the aggregate type for remittance rows
const AggregateTypePeriodRemit = "PeriodRemit"

// EventTypePeriodRemitUpserted is emitted after a remittance row is written
const EventTypePeriodRemitUpserted = "PeriodRemitUpserted"

// PeriodRemitUpsertedEvent carries the recomputed figures
type PeriodRemitUpsertedEvent struct {
	shared.BaseDomainEvent
	StartDate     string          `json:"start_date"`
	EndDate       string          `json:"end_date"`
	CountryCode   string          `json:"country_code"`
	SKU           string          `json:"sku"`
	Pieces        int             `json:"pieces"`
	ProfitTotal   decimal.Decimal `json:"profit_total"`
	Replaced      bool            `json:"replaced"`
	StockDeducted bool            `json:"stock_deducted"`
}

// NewPeriodRemitUpsertedEvent creates a PeriodRemitUpsertedEvent
func NewPeriodRemitUpsertedEvent(r *PeriodRemit, replaced, stockDeducted bool) *PeriodRemitUpsertedEvent {
	return &PeriodRemitUpsertedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePeriodRemitUpserted, AggregateTypePeriodRemit, r.ID),
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		CountryCode:     r.CountryCode,
		SKU:             r.SKU,
		Pieces:          r.Pieces,
		ProfitTotal:     r.ProfitTotal,
		Replaced:        replaced,
		StockDeducted:   stockDeducted,
	}
}
