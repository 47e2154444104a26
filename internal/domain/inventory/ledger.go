package inventory

import "github.com/google/uuid"

// ShipmentSnapshot is the part of a shipment the ledger needs to report
// stock that is still on the way
type ShipmentSnapshot struct {
	ID                 uuid.UUID
	DestinationCountry string
	InTransit          bool
}

// ShipmentItemSnapshot is one line of a shipment
type ShipmentItemSnapshot struct {
	ShipmentID uuid.UUID
	SKU        string
	Quantity   int
}

// BalanceByLocation sums movements into an on-hand balance per warehouse.
// A warehouse missing from the result has a zero balance. Rows are not
// validated: whatever quantities are stored flow through arithmetically.
func BalanceByLocation(movements []StockMovement) map[uuid.UUID]int {
	balances := make(map[uuid.UUID]int)
	for _, m := range movements {
		if m.ToWarehouseID != nil {
			balances[*m.ToWarehouseID] += m.Quantity
		}
		if m.FromWarehouseID != nil {
			balances[*m.FromWarehouseID] -= m.Quantity
		}
	}
	return balances
}

// BalanceByCountry folds warehouse balances through locationToCountry.
// Warehouses absent from the lookup are skipped.
func BalanceByCountry(movements []StockMovement, locationToCountry map[uuid.UUID]string) map[string]int {
	byCountry := make(map[string]int)
	for id, qty := range BalanceByLocation(movements) {
		country, ok := locationToCountry[id]
		if !ok {
			continue
		}
		byCountry[country] += qty
	}
	return byCountry
}

// InTransitByDestinationCountry sums item quantities of in-transit
// shipments per destination country. Arrived shipments are ignored; their
// goods show up in BalanceByLocation instead.
func InTransitByDestinationCountry(shipments []ShipmentSnapshot, items []ShipmentItemSnapshot) map[string]int {
	destination := make(map[uuid.UUID]string, len(shipments))
	for _, s := range shipments {
		if s.InTransit {
			destination[s.ID] = s.DestinationCountry
		}
	}

	totals := make(map[string]int)
	for _, it := range items {
		country, ok := destination[it.ShipmentID]
		if !ok {
			continue
		}
		totals[country] += it.Quantity
	}
	return totals
}
