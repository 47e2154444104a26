package models

import (
	"time"

	"github.com/codops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BaseModel provides the common persistence fields. It maps to the
// domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to a domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from a domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// aggregateRoot rebuilds an aggregate root with no pending events
func (m *BaseModel) aggregateRoot() shared.BaseAggregateRoot {
	return shared.BaseAggregateRoot{BaseEntity: m.ToDomain()}
}

// All returns every model in migration order
func All() []any {
	return []any{
		&CountryModel{},
		&WarehouseModel{},
		&ProductModel{},
		&StockMovementModel{},
		&ShipmentModel{},
		&ShipmentItemModel{},
		&PlatformSpendModel{},
		&DailyDeliveredModel{},
		&PeriodRemitModel{},
	}
}
