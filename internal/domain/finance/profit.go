package finance

import (
	"github.com/codops/backend/internal/domain/catalog"
	"github.com/codops/backend/internal/domain/inventory"
	"github.com/codops/backend/internal/domain/shipping"
	"github.com/shopspring/decimal"
)

// RouteUnitShipCost is the historical shipping cost per unit of sku on the
// origin to destination route. Only arrived shipments carrying the SKU
// count: each adds its whole shipping cost and its quantity of the SKU.
// With no such history the result is exactly zero, meaning "no data".
func RouteUnitShipCost(sku, origin, destination string, shipments []shipping.Shipment) decimal.Decimal {
	totalCost := decimal.Zero
	totalQty := int64(0)
	for i := range shipments {
		s := &shipments[i]
		if !s.IsArrived() || !s.OnRoute(origin, destination) {
			continue
		}
		qty := s.QuantityOf(sku)
		if qty <= 0 {
			continue
		}
		totalCost = totalCost.Add(s.ShippingCost)
		totalQty += int64(qty)
	}
	if totalQty == 0 {
		return decimal.Zero
	}
	return totalCost.Div(decimal.NewFromInt(totalQty))
}

// ResolveRouteCost picks the caller's override when given, otherwise the
// route average from the first hub to destination
func ResolveRouteCost(override *decimal.Decimal, sku, destination string, history []shipping.Shipment) decimal.Decimal {
	if override != nil {
		return *override
	}
	return RouteUnitShipCost(sku, inventory.HubCountryCode, destination, history)
}

// UnitCost is origin cost plus first-leg shipping plus the route leg
func UnitCost(product *catalog.Product, routeCost decimal.Decimal) decimal.Decimal {
	return product.OriginCost.Add(product.FirstLegShipCost).Add(routeCost)
}

// ComputeProfit returns revenue - adSpend - unitCost*pieces and that total
// per piece. Per piece is zero when pieces is not positive.
func ComputeProfit(pieces int, revenue, adSpend, unitCost decimal.Decimal) (total, perPiece decimal.Decimal) {
	total = revenue.Sub(adSpend).Sub(unitCost.Mul(decimal.NewFromInt(int64(pieces))))
	if pieces <= 0 {
		return total, decimal.Zero
	}
	return total, total.Div(decimal.NewFromInt(int64(pieces)))
}
