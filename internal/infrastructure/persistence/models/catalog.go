package models

import (
	"github.com/codops/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for catalog.Product
type ProductModel struct {
	BaseModel
	SKU              string                `gorm:"type:varchar(64);not null;uniqueIndex"`
	Name             string                `gorm:"type:varchar(200);not null"`
	Category         string                `gorm:"type:varchar(100)"`
	WeightGrams      int                   `gorm:"not null;default:0"`
	OriginCost       decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	FirstLegShipCost decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	AdBudget         decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	Status           catalog.ProductStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the model to a domain Product
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseAggregateRoot: m.aggregateRoot(),
		SKU:               m.SKU,
		Name:              m.Name,
		Category:          m.Category,
		WeightGrams:       m.WeightGrams,
		OriginCost:        m.OriginCost,
		FirstLegShipCost:  m.FirstLegShipCost,
		AdBudget:          m.AdBudget,
		Status:            m.Status,
	}
}

// FromDomain populates the model from a domain Product
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.SKU = p.SKU
	m.Name = p.Name
	m.Category = p.Category
	m.WeightGrams = p.WeightGrams
	m.OriginCost = p.OriginCost
	m.FirstLegShipCost = p.FirstLegShipCost
	m.AdBudget = p.AdBudget
	m.Status = p.Status
}

// ProductModelFromDomain creates a model from a domain Product
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}
