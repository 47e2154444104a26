package shipping

import (
	"github.com/codops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AggregateTypeShipment is the aggregate type for shipments
const AggregateTypeShipment = "Shipment"

// EventTypeShipmentArrived is emitted when a shipment is marked arrived
const EventTypeShipmentArrived = "ShipmentArrived"

// ShipmentArrivedEvent carries the arrival facts
type ShipmentArrivedEvent struct {
	shared.BaseDomainEvent
	ShipmentID         uuid.UUID `json:"shipment_id"`
	Reference          string    `json:"reference"`
	OriginCountry      string    `json:"origin_country"`
	DestinationCountry string    `json:"destination_country"`
	ArrivedDate        string    `json:"arrived_date"`
	TransitDays        int       `json:"transit_days"`
	ItemCount          int       `json:"item_count"`
	TotalQuantity      int       `json:"total_quantity"`
}

// NewShipmentArrivedEvent creates a ShipmentArrivedEvent
func NewShipmentArrivedEvent(s *Shipment) *ShipmentArrivedEvent {
	return &ShipmentArrivedEvent{
		BaseDomainEvent:    shared.NewBaseDomainEvent(EventTypeShipmentArrived, AggregateTypeShipment, s.ID),
		ShipmentID:         s.ID,
		Reference:          s.Reference,
		OriginCountry:      s.OriginCountry,
		DestinationCountry: s.DestinationCountry,
		ArrivedDate:        s.ArrivedDate,
		TransitDays:        s.TransitDays,
		ItemCount:          len(s.Items),
		TotalQuantity:      s.TotalQuantity(),
	}
}
