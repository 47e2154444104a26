package models

import (
	"github.com/codops/backend/internal/domain/shipping"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShipmentModel is the persistence model for shipping.Shipment
type ShipmentModel struct {
	BaseModel
	Reference          string                  `gorm:"type:varchar(128);not null;index"`
	OriginCountry      string                  `gorm:"type:varchar(2);not null;index:idx_shipment_route,priority:1"`
	DestinationCountry string                  `gorm:"type:varchar(2);not null;index:idx_shipment_route,priority:2"`
	Status             shipping.ShipmentStatus `gorm:"type:varchar(20);not null;index"`
	CreatedDate        string                  `gorm:"type:varchar(10);not null"`
	ETADate            string                  `gorm:"column:eta_date;type:varchar(10)"`
	ArrivedDate        string                  `gorm:"type:varchar(10)"`
	TransitDays        int                     `gorm:"not null;default:0"`
	ShippingCost       decimal.Decimal         `gorm:"type:decimal(18,4);not null;default:0"`
	PurchaseCost       decimal.Decimal         `gorm:"type:decimal(18,4);not null;default:0"`
	Items              []ShipmentItemModel     `gorm:"foreignKey:ShipmentID"`
}

// TableName returns the table name for GORM
func (ShipmentModel) TableName() string {
	return "shipments"
}

// ToDomain converts the model, including loaded items, to a domain Shipment
func (m *ShipmentModel) ToDomain() *shipping.Shipment {
	s := &shipping.Shipment{
		BaseAggregateRoot:  m.aggregateRoot(),
		Reference:          m.Reference,
		OriginCountry:      m.OriginCountry,
		DestinationCountry: m.DestinationCountry,
		Status:             m.Status,
		CreatedDate:        m.CreatedDate,
		ETADate:            m.ETADate,
		ArrivedDate:        m.ArrivedDate,
		TransitDays:        m.TransitDays,
		ShippingCost:       m.ShippingCost,
		PurchaseCost:       m.PurchaseCost,
		Items:              make([]shipping.ShipmentItem, len(m.Items)),
	}
	for i := range m.Items {
		s.Items[i] = m.Items[i].ToDomain()
	}
	return s
}

// ShipmentModelFromDomain creates a model from a domain Shipment. Items are
// returned separately so the repository can replace them explicitly.
func ShipmentModelFromDomain(s *shipping.Shipment) (*ShipmentModel, []ShipmentItemModel) {
	m := &ShipmentModel{
		Reference:          s.Reference,
		OriginCountry:      s.OriginCountry,
		DestinationCountry: s.DestinationCountry,
		Status:             s.Status,
		CreatedDate:        s.CreatedDate,
		ETADate:            s.ETADate,
		ArrivedDate:        s.ArrivedDate,
		TransitDays:        s.TransitDays,
		ShippingCost:       s.ShippingCost,
		PurchaseCost:       s.PurchaseCost,
	}
	m.FromDomainBaseEntity(s.BaseEntity)

	items := make([]ShipmentItemModel, len(s.Items))
	for i, it := range s.Items {
		items[i] = ShipmentItemModel{
			ID:         it.ID,
			ShipmentID: s.ID,
			SKU:        it.SKU,
			Quantity:   it.Quantity,
		}
	}
	return m, items
}

// ShipmentItemModel is one SKU line of a shipment
type ShipmentItemModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID uuid.UUID `gorm:"type:uuid;not null;index"`
	SKU        string    `gorm:"type:varchar(64);not null;index"`
	Quantity   int       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ShipmentItemModel) TableName() string {
	return "shipment_items"
}

// ToDomain converts the model to a domain ShipmentItem
func (m *ShipmentItemModel) ToDomain() shipping.ShipmentItem {
	return shipping.ShipmentItem{
		ID:         m.ID,
		ShipmentID: m.ShipmentID,
		SKU:        m.SKU,
		Quantity:   m.Quantity,
	}
}
