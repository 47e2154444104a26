package inventory

import (
	"strings"

	"github.com/codops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MovementKind classifies a movement by which sides are populated
type MovementKind string

const (
	MovementKindIncrease MovementKind = "increase"
	MovementKindDecrease MovementKind = "decrease"
	MovementKindTransfer MovementKind = "transfer"
)

// StockMovement is one append-only ledger row. Quantity is always positive;
// the effect on balances comes from which of From/To is set:
// only To adds stock there, only From removes it, both moves it.
type StockMovement struct {
	shared.BaseEntity
	Date            string
	SKU             string
	FromWarehouseID *uuid.UUID
	ToWarehouseID   *uuid.UUID
	Quantity        int
	Reference       string
}

// NewStockMovement creates a validated movement
func NewStockMovement(date, sku string, from, to *uuid.UUID, quantity int, reference string) (*StockMovement, error) {
	if !shared.IsValidDate(date) {
		return nil, shared.NewDomainError("INVALID_DATE", "Movement date must be YYYY-MM-DD")
	}
	if strings.TrimSpace(sku) == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if from == nil && to == nil {
		return nil, shared.NewDomainError("INVALID_MOVEMENT", "Movement needs a source or a destination warehouse")
	}
	if from != nil && to != nil && *from == *to {
		return nil, shared.NewDomainError("INVALID_MOVEMENT", "Source and destination warehouse must differ")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be a positive integer")
	}

	return &StockMovement{
		BaseEntity:      shared.NewBaseEntity(),
		Date:            date,
		SKU:             sku,
		FromWarehouseID: from,
		ToWarehouseID:   to,
		Quantity:        quantity,
		Reference:       strings.TrimSpace(reference),
	}, nil
}

// NewStockIncrease records goods arriving at a warehouse
func NewStockIncrease(date, sku string, to uuid.UUID, quantity int, reference string) (*StockMovement, error) {
	return NewStockMovement(date, sku, nil, &to, quantity, reference)
}

// NewStockDecrease records goods leaving a warehouse (sold, delivered, written off)
func NewStockDecrease(date, sku string, from uuid.UUID, quantity int, reference string) (*StockMovement, error) {
	return NewStockMovement(date, sku, &from, nil, quantity, reference)
}

// NewStockTransfer records goods moving between two warehouses
func NewStockTransfer(date, sku string, from, to uuid.UUID, quantity int, reference string) (*StockMovement, error) {
	return NewStockMovement(date, sku, &from, &to, quantity, reference)
}

// Kind returns how the movement affects balances
func (m *StockMovement) Kind() MovementKind {
	switch {
	case m.FromWarehouseID != nil && m.ToWarehouseID != nil:
		return MovementKindTransfer
	case m.FromWarehouseID != nil:
		return MovementKindDecrease
	default:
		return MovementKindIncrease
	}
}
