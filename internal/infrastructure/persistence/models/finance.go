package models

import (
	"github.com/codops/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// PeriodRemitModel is the persistence model for finance.PeriodRemit.
// The period key columns form a unique index, so one row exists per key.
type PeriodRemitModel struct {
	BaseModel
	StartDate      string          `gorm:"type:varchar(10);not null;uniqueIndex:idx_remit_period_key,priority:1"`
	EndDate        string          `gorm:"type:varchar(10);not null;uniqueIndex:idx_remit_period_key,priority:2"`
	CountryCode    string          `gorm:"type:varchar(2);not null;uniqueIndex:idx_remit_period_key,priority:3"`
	SKU            string          `gorm:"type:varchar(64);not null;uniqueIndex:idx_remit_period_key,priority:4;index"`
	Orders         int             `gorm:"not null;default:0"`
	Pieces         int             `gorm:"not null;default:0"`
	Revenue        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	AdSpend        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UnitCost       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ProfitTotal    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ProfitPerPiece decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (PeriodRemitModel) TableName() string {
	return "period_remits"
}

// ToDomain converts the model to a domain PeriodRemit
func (m *PeriodRemitModel) ToDomain() *finance.PeriodRemit {
	return &finance.PeriodRemit{
		BaseAggregateRoot: m.aggregateRoot(),
		PeriodKey: finance.PeriodKey{
			StartDate:   m.StartDate,
			EndDate:     m.EndDate,
			CountryCode: m.CountryCode,
			SKU:         m.SKU,
		},
		RemitFigures: finance.RemitFigures{
			Orders:  m.Orders,
			Pieces:  m.Pieces,
			Revenue: m.Revenue,
			AdSpend: m.AdSpend,
		},
		UnitCost:       m.UnitCost,
		ProfitTotal:    m.ProfitTotal,
		ProfitPerPiece: m.ProfitPerPiece,
	}
}

// PeriodRemitModelFromDomain creates a model from a domain PeriodRemit
func PeriodRemitModelFromDomain(r *finance.PeriodRemit) *PeriodRemitModel {
	m := &PeriodRemitModel{
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
	}
	m.FromDomainBaseEntity(r.BaseEntity)
	return m
}

// PlatformSpendModel is the persistence model for finance.PlatformSpend
type PlatformSpendModel struct {
	BaseModel
	SKU         string          `gorm:"type:varchar(64);not null;uniqueIndex:idx_spend_key,priority:1"`
	Platform    string          `gorm:"type:varchar(32);not null;uniqueIndex:idx_spend_key,priority:2"`
	CountryCode string          `gorm:"type:varchar(2);not null;uniqueIndex:idx_spend_key,priority:3"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (PlatformSpendModel) TableName() string {
	return "platform_spend_current"
}

// ToDomain converts the model to a domain PlatformSpend
func (m *PlatformSpendModel) ToDomain() *finance.PlatformSpend {
	return &finance.PlatformSpend{
		BaseEntity:  m.BaseModel.ToDomain(),
		SKU:         m.SKU,
		Platform:    m.Platform,
		CountryCode: m.CountryCode,
		Amount:      m.Amount,
	}
}

// PlatformSpendModelFromDomain creates a model from a domain PlatformSpend
func PlatformSpendModelFromDomain(s *finance.PlatformSpend) *PlatformSpendModel {
	m := &PlatformSpendModel{
		SKU:         s.SKU,
		Platform:    s.Platform,
		CountryCode: s.CountryCode,
		Amount:      s.Amount,
	}
	m.FromDomainBaseEntity(s.BaseEntity)
	return m
}

// DailyDeliveredModel is the persistence model for finance.DailyDelivered
type DailyDeliveredModel struct {
	BaseModel
	Date        string `gorm:"type:varchar(10);not null;uniqueIndex:idx_delivered_key,priority:1"`
	CountryCode string `gorm:"type:varchar(2);not null;uniqueIndex:idx_delivered_key,priority:2"`
	Delivered   int    `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (DailyDeliveredModel) TableName() string {
	return "daily_delivered"
}

// ToDomain converts the model to a domain DailyDelivered
func (m *DailyDeliveredModel) ToDomain() *finance.DailyDelivered {
	return &finance.DailyDelivered{
		BaseEntity:  m.BaseModel.ToDomain(),
		Date:        m.Date,
		CountryCode: m.CountryCode,
		Delivered:   m.Delivered,
	}
}

// DailyDeliveredModelFromDomain creates a model from a domain DailyDelivered
func DailyDeliveredModelFromDomain(d *finance.DailyDelivered) *DailyDeliveredModel {
	m := &DailyDeliveredModel{
		Date:        d.Date,
		CountryCode: d.CountryCode,
		Delivered:   d.Delivered,
	}
	m.FromDomainBaseEntity(d.BaseEntity)
	return m
}
