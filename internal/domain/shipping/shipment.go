package shipping

import (
	"fmt"
	"strings"

	"github.com/codops/backend/internal/domain/inventory"
	"github.com/codops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShipmentStatus is the lifecycle state of a shipment
type ShipmentStatus string

const (
	ShipmentStatusInTransit ShipmentStatus = "in_transit"
	ShipmentStatusArrived   ShipmentStatus = "arrived"
)

// IsValid reports whether the status is known
func (s ShipmentStatus) IsValid() bool {
	return s == ShipmentStatusInTransit || s == ShipmentStatusArrived
}

// ArrivalReferencePrefix prefixes the reference of movements emitted on arrival
const ArrivalReferencePrefix = "ARR-"

// ShipmentItem is one SKU line of a shipment
type ShipmentItem struct {
	ID         uuid.UUID
	ShipmentID uuid.UUID
	SKU        string
	Quantity   int
}

// Shipment moves goods from one country to another. Items can change only
// while it is in transit; arrival is terminal.
type Shipment struct {
	shared.BaseAggregateRoot
	Reference          string
	OriginCountry      string
	DestinationCountry string
	Status             ShipmentStatus
	CreatedDate        string
	ETADate            string
	ArrivedDate        string
	TransitDays        int
	ShippingCost       decimal.Decimal
	PurchaseCost       decimal.Decimal
	Items              []ShipmentItem
}

// NewShipment creates an in-transit shipment dated createdDate
func NewShipment(reference, origin, destination, createdDate string, shippingCost decimal.Decimal) (*Shipment, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Shipment reference cannot be empty")
	}
	origin = inventory.NormalizeCountryCode(origin)
	destination = inventory.NormalizeCountryCode(destination)
	if !inventory.IsCountryCode(origin) || !inventory.IsCountryCode(destination) {
		return nil, shared.NewDomainError("INVALID_COUNTRY_CODE", "Origin and destination must be two-letter country codes")
	}
	if origin == destination {
		return nil, shared.NewDomainError("INVALID_ROUTE", "Origin and destination must differ")
	}
	if !shared.IsValidDate(createdDate) {
		return nil, shared.NewDomainError("INVALID_DATE", "Created date must be YYYY-MM-DD")
	}

	return &Shipment{
		BaseAggregateRoot:  shared.NewBaseAggregateRoot(),
		Reference:          reference,
		OriginCountry:      origin,
		DestinationCountry: destination,
		Status:             ShipmentStatusInTransit,
		CreatedDate:        createdDate,
		ShippingCost:       shippingCost,
		PurchaseCost:       decimal.Zero,
		Items:              make([]ShipmentItem, 0),
	}, nil
}

// IsInTransit reports whether the shipment is still on the way
func (s *Shipment) IsInTransit() bool {
	return s.Status == ShipmentStatusInTransit
}

// IsArrived reports whether the shipment has arrived
func (s *Shipment) IsArrived() bool {
	return s.Status == ShipmentStatusArrived
}

// AddItem appends a SKU line
func (s *Shipment) AddItem(sku string, quantity int) (*ShipmentItem, error) {
	if err := s.requireInTransit(); err != nil {
		return nil, err
	}
	sku = strings.ToUpper(strings.TrimSpace(sku))
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be a positive integer")
	}

	s.Items = append(s.Items, ShipmentItem{
		ID:         uuid.New(),
		ShipmentID: s.ID,
		SKU:        sku,
		Quantity:   quantity,
	})
	s.Touch()
	return &s.Items[len(s.Items)-1], nil
}

// UpdateItemQuantity changes the quantity of an existing line
func (s *Shipment) UpdateItemQuantity(itemID uuid.UUID, quantity int) error {
	if err := s.requireInTransit(); err != nil {
		return err
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be a positive integer")
	}
	idx := s.itemIndex(itemID)
	if idx < 0 {
		return shared.NewDomainError("ITEM_NOT_FOUND", "Shipment item not found")
	}
	s.Items[idx].Quantity = quantity
	s.Touch()
	return nil
}

// RemoveItem drops a line. The last line cannot be removed.
func (s *Shipment) RemoveItem(itemID uuid.UUID) error {
	if err := s.requireInTransit(); err != nil {
		return err
	}
	idx := s.itemIndex(itemID)
	if idx < 0 {
		return shared.NewDomainError("ITEM_NOT_FOUND", "Shipment item not found")
	}
	if len(s.Items) == 1 {
		return shared.NewDomainError("SHIPMENT_REQUIRES_ITEM", "A shipment must keep at least one item")
	}
	s.Items = append(s.Items[:idx], s.Items[idx+1:]...)
	s.Touch()
	return nil
}

// UpdateShippingCost replaces the total shipping cost. Allowed in any
// status: costs are often invoiced after arrival.
func (s *Shipment) UpdateShippingCost(cost decimal.Decimal) error {
	if cost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Shipping cost cannot be negative")
	}
	s.ShippingCost = cost
	s.Touch()
	return nil
}

// SetPurchaseCost records the purchase cost of the goods on board
func (s *Shipment) SetPurchaseCost(cost decimal.Decimal) error {
	if cost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Purchase cost cannot be negative")
	}
	s.PurchaseCost = cost
	s.Touch()
	return nil
}

// SetETA sets the expected arrival date; empty clears it
func (s *Shipment) SetETA(eta string) error {
	if eta != "" && !shared.IsValidDate(eta) {
		return shared.NewDomainError("INVALID_DATE", "ETA must be YYYY-MM-DD")
	}
	s.ETADate = eta
	s.Touch()
	return nil
}

// MarkArrived closes the shipment on arrivedDate and returns one stock
// movement per item, from the origin warehouse to the destination
// warehouse. Either warehouse may be nil when the country has none active;
// the movement then records only the side that exists.
func (s *Shipment) MarkArrived(arrivedDate string, fromWarehouse, toWarehouse *uuid.UUID) ([]*inventory.StockMovement, error) {
	if err := s.requireInTransit(); err != nil {
		return nil, err
	}
	if !shared.IsValidDate(arrivedDate) {
		return nil, shared.NewDomainError("INVALID_DATE", "Arrived date must be YYYY-MM-DD")
	}
	if fromWarehouse == nil && toWarehouse == nil {
		return nil, shared.NewDomainError("NO_ACTIVE_WAREHOUSE",
			fmt.Sprintf("No active warehouse in %s or %s", s.OriginCountry, s.DestinationCountry))
	}

	movements := make([]*inventory.StockMovement, 0, len(s.Items))
	for _, it := range s.Items {
		m, err := inventory.NewStockMovement(arrivedDate, it.SKU, fromWarehouse, toWarehouse, it.Quantity, s.ArrivalReference())
		if err != nil {
			return nil, err
		}
		movements = append(movements, m)
	}

	s.Status = ShipmentStatusArrived
	s.ArrivedDate = arrivedDate
	s.TransitDays = shared.DaysBetween(s.CreatedDate, arrivedDate)
	if s.TransitDays < 0 {
		s.TransitDays = 0
	}
	s.Touch()

	s.AddDomainEvent(NewShipmentArrivedEvent(s))
	return movements, nil
}

// ArrivalReference is the reference stamped on arrival movements
func (s *Shipment) ArrivalReference() string {
	return ArrivalReferencePrefix + s.Reference
}

// TotalQuantity sums all item quantities
func (s *Shipment) TotalQuantity() int {
	total := 0
	for _, it := range s.Items {
		total += it.Quantity
	}
	return total
}

// QuantityOf sums the quantity of one SKU across items
func (s *Shipment) QuantityOf(sku string) int {
	total := 0
	for _, it := range s.Items {
		if it.SKU == sku {
			total += it.Quantity
		}
	}
	return total
}

// OnRoute reports whether the shipment travelled origin to destination
func (s *Shipment) OnRoute(origin, destination string) bool {
	return s.OriginCountry == origin && s.DestinationCountry == destination
}

// ItemsSummary renders items as "SKU:qty, SKU:qty"
func (s *Shipment) ItemsSummary() string {
	parts := make([]string, 0, len(s.Items))
	for _, it := range s.Items {
		parts = append(parts, fmt.Sprintf("%s:%d", it.SKU, it.Quantity))
	}
	return strings.Join(parts, ", ")
}

// Snapshot returns the ledger view of the shipment and its items
func (s *Shipment) Snapshot() (inventory.ShipmentSnapshot, []inventory.ShipmentItemSnapshot) {
	items := make([]inventory.ShipmentItemSnapshot, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, inventory.ShipmentItemSnapshot{
			ShipmentID: s.ID,
			SKU:        it.SKU,
			Quantity:   it.Quantity,
		})
	}
	return inventory.ShipmentSnapshot{
		ID:                 s.ID,
		DestinationCountry: s.DestinationCountry,
		InTransit:          s.IsInTransit(),
	}, items
}

// Snapshots flattens shipments for the ledger
func Snapshots(shipments []Shipment) ([]inventory.ShipmentSnapshot, []inventory.ShipmentItemSnapshot) {
	heads := make([]inventory.ShipmentSnapshot, 0, len(shipments))
	var items []inventory.ShipmentItemSnapshot
	for i := range shipments {
		h, its := shipments[i].Snapshot()
		heads = append(heads, h)
		items = append(items, its...)
	}
	return heads, items
}

func (s *Shipment) requireInTransit() error {
	if !s.IsInTransit() {
		return shared.NewDomainError("SHIPMENT_NOT_IN_TRANSIT", "Shipment has already arrived")
	}
	return nil
}

func (s *Shipment) itemIndex(itemID uuid.UUID) int {
	for i := range s.Items {
		if s.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}
