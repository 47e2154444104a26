package telemetry

import (
	"context"
	"strconv"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
)

// BusinessMetrics records COD operations counters.
type BusinessMetrics struct {
	shipmentsArrived  *Counter
	unitsArrived      *Counter
	transitDays       *Histogram
	movementsAppended *Counter
	movementUnits     *Counter
	remitsUpserted    *Counter
	remitProfit       *Histogram
}

// TransitDaysBuckets are bucket boundaries for shipment transit time in days.
var TransitDaysBuckets = []float64{1, 3, 5, 7, 10, 14, 21, 30, 45, 60}

// NewBusinessMetrics registers the business instruments on meter.
func NewBusinessMetrics(meter metric.Meter) (*BusinessMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	bm := &BusinessMetrics{}
	var err error

	if bm.shipmentsArrived, err = NewCounter(meter,
		"cod_shipments_arrived_total", "Shipments marked arrived", "{shipments}"); err != nil {
		return nil, err
	}
	if bm.unitsArrived, err = NewCounter(meter,
		"cod_shipment_units_arrived_total", "Units received through shipment arrival", "{units}"); err != nil {
		return nil, err
	}
	if bm.transitDays, err = NewHistogram(meter, HistogramOpts{
		Name:        "cod_shipment_transit_days",
		Description: "Days between shipment creation and arrival",
		Unit:        "d",
		Boundaries:  TransitDaysBuckets,
	}); err != nil {
		return nil, err
	}
	if bm.movementsAppended, err = NewCounter(meter,
		"cod_stock_movements_total", "Stock ledger movements appended", "{movements}"); err != nil {
		return nil, err
	}
	if bm.movementUnits, err = NewCounter(meter,
		"cod_stock_movement_units_total", "Units moved through the stock ledger", "{units}"); err != nil {
		return nil, err
	}
	if bm.remitsUpserted, err = NewCounter(meter,
		"cod_period_remits_upserted_total", "Period remittance rows written", "{remits}"); err != nil {
		return nil, err
	}
	if bm.remitProfit, err = NewHistogram(meter, HistogramOpts{
		Name:        "cod_period_remit_profit_usd",
		Description: "Total profit of each upserted period row",
		Unit:        "USD",
	}); err != nil {
		return nil, err
	}

	return bm, nil
}

// RecordShipmentArrived counts one arrival on origin→destination.
func (bm *BusinessMetrics) RecordShipmentArrived(ctx context.Context, origin, destination string, units, transitDays int) {
	route := AttrRoute.String(origin + "-" + destination)
	bm.shipmentsArrived.Inc(ctx, route)
	bm.unitsArrived.Add(ctx, int64(units), route)
	if transitDays > 0 {
		bm.transitDays.Record(ctx, float64(transitDays), route)
	}
}

// RecordStockMovement counts a ledger append of the given kind.
func (bm *BusinessMetrics) RecordStockMovement(ctx context.Context, kind string, units int) {
	attr := AttrMovement.String(kind)
	bm.movementsAppended.Inc(ctx, attr)
	bm.movementUnits.Add(ctx, int64(units), attr)
}

// RecordRemitUpserted counts a period row write and its profit.
func (bm *BusinessMetrics) RecordRemitUpserted(ctx context.Context, countryCode string, replaced bool, profit decimal.Decimal) {
	country := AttrCountryCode.String(countryCode)
	bm.remitsUpserted.Inc(ctx, country, AttrReplaced.String(strconv.FormatBool(replaced)))
	bm.remitProfit.Record(ctx, profit.InexactFloat64(), country)
}
