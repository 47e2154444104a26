package inventory

import (
	"github.com/codops/backend/internal/domain/shared"
)

// AggregateTypeStockMovement is the aggregate type for ledger rows
const AggregateTypeStockMovement = "StockMovement"

// EventTypeStockMovementRecorded is emitted for manually recorded movements
const EventTypeStockMovementRecorded = "StockMovementRecorded"

// StockMovementRecordedEvent is published after a manual movement is appended
type StockMovementRecordedEvent struct {
	shared.BaseDomainEvent
	SKU       string       `json:"sku"`
	Kind      MovementKind `json:"kind"`
	Quantity  int          `json:"qty"`
	Reference string       `json:"ref"`
}

// NewStockMovementRecordedEvent creates a StockMovementRecordedEvent
func NewStockMovementRecordedEvent(m *StockMovement) *StockMovementRecordedEvent {
	return &StockMovementRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockMovementRecorded, AggregateTypeStockMovement, m.ID),
		SKU:             m.SKU,
		Kind:            m.Kind(),
		Quantity:        m.Quantity,
		Reference:       m.Reference,
	}
}
