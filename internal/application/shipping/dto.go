package shipping

import (
	"time"

	"github.com/codops/backend/internal/domain/shipping"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemInput is one SKU line of a shipment request
type ItemInput struct {
	SKU      string `json:"sku" binding:"required"`
	Quantity int    `json:"qty" binding:"required,gt=0"`
}

// CreateShipmentRequest represents a request to create an in-transit shipment
type CreateShipmentRequest struct {
	Reference          string           `json:"ref" binding:"required,max=100"`
	OriginCountry      string           `json:"from_code" binding:"required,country_code"`
	DestinationCountry string           `json:"to_code" binding:"required,country_code"`
	CreatedDate        string           `json:"created_date" binding:"omitempty,isodate"`
	ETADate            string           `json:"eta_date" binding:"omitempty,isodate"`
	ShippingCost       *decimal.Decimal `json:"shipping_cost_usd"`
	PurchaseCost       *decimal.Decimal `json:"purchase_cost_usd"`
	Items              []ItemInput      `json:"items" binding:"required,min=1,dive"`
}

// UpdateItemRequest changes the quantity of a shipment line
type UpdateItemRequest struct {
	Quantity int `json:"qty" binding:"required,gt=0"`
}

// UpdateCostRequest changes the shipping cost of a shipment
type UpdateCostRequest struct {
	ShippingCost decimal.Decimal `json:"shipping_cost_usd"`
}

// ArriveRequest marks a shipment arrived. An empty date means today.
type ArriveRequest struct {
	ArrivedDate string `json:"arrived_date" binding:"omitempty,isodate"`
}

// ListShipmentsFilter narrows shipment listings
type ListShipmentsFilter struct {
	Status             string `form:"status" binding:"omitempty,oneof=in_transit arrived"`
	OriginCountry      string `form:"from_code" binding:"omitempty,country_code"`
	DestinationCountry string `form:"to_code" binding:"omitempty,country_code"`
	SKU                string `form:"sku"`
}

// ShipmentItemResponse represents a shipment line in API responses
type ShipmentItemResponse struct {
	ID       uuid.UUID `json:"id"`
	SKU      string    `json:"sku"`
	Quantity int       `json:"qty"`
}

// ShipmentResponse represents a shipment in API responses
type ShipmentResponse struct {
	ID                 uuid.UUID              `json:"id"`
	Reference          string                 `json:"ref"`
	OriginCountry      string                 `json:"from_code"`
	DestinationCountry string                 `json:"to_code"`
	Status             string                 `json:"status"`
	CreatedDate        string                 `json:"created_date"`
	ETADate            string                 `json:"eta_date,omitempty"`
	ArrivedDate        string                 `json:"arrived_date,omitempty"`
	TransitDays        int                    `json:"transit_days"`
	ShippingCost       decimal.Decimal        `json:"shipping_cost_usd"`
	PurchaseCost       decimal.Decimal        `json:"purchase_cost_usd"`
	TotalQuantity      int                    `json:"total_qty"`
	ItemsSummary       string                 `json:"items_str"`
	Items              []ShipmentItemResponse `json:"items"`
	UpdatedAt          time.Time              `json:"updated_at"`
}

// ArrivalResponse reports the outcome of marking a shipment arrived
type ArrivalResponse struct {
	Shipment       ShipmentResponse `json:"shipment"`
	MovementsAdded int              `json:"movements_added"`
}

// ToShipmentResponse converts a domain Shipment to ShipmentResponse
func ToShipmentResponse(s *shipping.Shipment) ShipmentResponse {
	items := make([]ShipmentItemResponse, len(s.Items))
	for i, it := range s.Items {
		items[i] = ShipmentItemResponse{ID: it.ID, SKU: it.SKU, Quantity: it.Quantity}
	}
	return ShipmentResponse{
		ID:                 s.ID,
		Reference:          s.Reference,
		OriginCountry:      s.OriginCountry,
		DestinationCountry: s.DestinationCountry,
		Status:             string(s.Status),
		CreatedDate:        s.CreatedDate,
		ETADate:            s.ETADate,
		ArrivedDate:        s.ArrivedDate,
		TransitDays:        s.TransitDays,
		ShippingCost:       s.ShippingCost,
		PurchaseCost:       s.PurchaseCost,
		TotalQuantity:      s.TotalQuantity(),
		ItemsSummary:       s.ItemsSummary(),
		Items:              items,
		UpdatedAt:          s.UpdatedAt,
	}
}

// ToShipmentResponses converts a slice of domain Shipments
func ToShipmentResponses(shipments []shipping.Shipment) []ShipmentResponse {
	responses := make([]ShipmentResponse, len(shipments))
	for i := range shipments {
		responses[i] = ToShipmentResponse(&shipments[i])
	}
	return responses
}
