package models

import (
	"github.com/codops/backend/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CountryModel is the persistence model for inventory.Country
type CountryModel struct {
	Code     string          `gorm:"type:varchar(2);primaryKey"`
	Name     string          `gorm:"type:varchar(100);not null"`
	Currency string          `gorm:"type:varchar(3);not null;default:'USD'"`
	FxToUSD  decimal.Decimal `gorm:"column:fx_to_usd;type:decimal(18,6);not null;default:1"`
}

// TableName returns the table name for GORM
func (CountryModel) TableName() string {
	return "countries"
}

// ToDomain converts the model to a domain Country
func (m *CountryModel) ToDomain() *inventory.Country {
	return &inventory.Country{
		Code:     m.Code,
		Name:     m.Name,
		Currency: m.Currency,
		FxToUSD:  m.FxToUSD,
	}
}

// CountryModelFromDomain creates a model from a domain Country
func CountryModelFromDomain(c *inventory.Country) *CountryModel {
	return &CountryModel{
		Code:     c.Code,
		Name:     c.Name,
		Currency: c.Currency,
		FxToUSD:  c.FxToUSD,
	}
}

// WarehouseModel is the persistence model for inventory.Warehouse
type WarehouseModel struct {
	BaseModel
	Code        string `gorm:"type:varchar(32);not null;uniqueIndex"`
	Name        string `gorm:"type:varchar(100);not null"`
	CountryCode string `gorm:"type:varchar(2);not null;index"`
	Active      bool   `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (WarehouseModel) TableName() string {
	return "warehouses"
}

// ToDomain converts the model to a domain Warehouse
func (m *WarehouseModel) ToDomain() *inventory.Warehouse {
	return &inventory.Warehouse{
		BaseEntity:  m.BaseModel.ToDomain(),
		Code:        m.Code,
		Name:        m.Name,
		CountryCode: m.CountryCode,
		Active:      m.Active,
	}
}

// WarehouseModelFromDomain creates a model from a domain Warehouse
func WarehouseModelFromDomain(w *inventory.Warehouse) *WarehouseModel {
	m := &WarehouseModel{
		Code:        w.Code,
		Name:        w.Name,
		CountryCode: w.CountryCode,
		Active:      w.Active,
	}
	m.FromDomainBaseEntity(w.BaseEntity)
	return m
}

// StockMovementModel is one append-only ledger row
type StockMovementModel struct {
	BaseModel
	Date            string     `gorm:"type:varchar(10);not null;index"`
	SKU             string     `gorm:"type:varchar(64);not null;index"`
	FromWarehouseID *uuid.UUID `gorm:"type:uuid;index"`
	ToWarehouseID   *uuid.UUID `gorm:"type:uuid;index"`
	Quantity        int        `gorm:"not null"`
	Reference       string     `gorm:"type:varchar(128);index"`
}

// TableName returns the table name for GORM
func (StockMovementModel) TableName() string {
	return "stock_movements"
}

// ToDomain converts the model to a domain StockMovement
func (m *StockMovementModel) ToDomain() *inventory.StockMovement {
	return &inventory.StockMovement{
		BaseEntity:      m.BaseModel.ToDomain(),
		Date:            m.Date,
		SKU:             m.SKU,
		FromWarehouseID: m.FromWarehouseID,
		ToWarehouseID:   m.ToWarehouseID,
		Quantity:        m.Quantity,
		Reference:       m.Reference,
	}
}

// StockMovementModelFromDomain creates a model from a domain StockMovement
func StockMovementModelFromDomain(mv *inventory.StockMovement) *StockMovementModel {
	m := &StockMovementModel{
		Date:            mv.Date,
		SKU:             mv.SKU,
		FromWarehouseID: mv.FromWarehouseID,
		ToWarehouseID:   mv.ToWarehouseID,
		Quantity:        mv.Quantity,
		Reference:       mv.Reference,
	}
	m.FromDomainBaseEntity(mv.BaseEntity)
	return m
}
