package shipping

import (
	"context"

	"github.com/google/uuid"
)

// ShipmentFilter narrows shipment queries. Zero values match everything.
type ShipmentFilter struct {
	Status             ShipmentStatus
	OriginCountry      string
	DestinationCountry string
	SKU                string
}

// ShipmentRepository persists shipments together with their items
type ShipmentRepository interface {
	// FindByID loads a shipment with items, or shared.ErrNotFound
	FindByID(ctx context.Context, id uuid.UUID) (*Shipment, error)

	// Find returns shipments with items matching the filter, newest first
	Find(ctx context.Context, filter ShipmentFilter) ([]Shipment, error)

	// Save creates or updates a shipment and replaces its item set
	Save(ctx context.Context, shipment *Shipment) error

	// CountByStatus counts shipments in a status
	CountByStatus(ctx context.Context, status ShipmentStatus) (int64, error)
}
