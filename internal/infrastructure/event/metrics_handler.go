package event

import (
	"context"

	"github.com/codops/backend/internal/domain/finance"
	"github.com/codops/backend/internal/domain/inventory"
	"github.com/codops/backend/internal/domain/shared"
	"github.com/codops/backend/internal/domain/shipping"
	"github.com/codops/backend/internal/infrastructure/telemetry"
)

// Movement kinds recorded for movements that services append as a side
// effect rather than as a manual adjustment
const (
	movementKindArrival = "arrival"
	movementKindRemit   = "remit"
)

// MetricsHandler turns domain events into business metrics
type MetricsHandler struct {
	metrics *telemetry.BusinessMetrics
}

// NewMetricsHandler creates a MetricsHandler
func NewMetricsHandler(metrics *telemetry.BusinessMetrics) *MetricsHandler {
	return &MetricsHandler{metrics: metrics}
}

// EventTypes returns the events that carry business figures
func (h *MetricsHandler) EventTypes() []string {
	return []string{
		shipping.EventTypeShipmentArrived,
		finance.EventTypePeriodRemitUpserted,
		inventory.EventTypeStockMovementRecorded,
	}
}

// Handle records the event's figures. Unknown events are ignored.
func (h *MetricsHandler) Handle(ctx context.Context, evt shared.DomainEvent) error {
	switch e := evt.(type) {
	case *shipping.ShipmentArrivedEvent:
		h.metrics.RecordShipmentArrived(ctx, e.OriginCountry, e.DestinationCountry, e.TotalQuantity, e.TransitDays)
		h.metrics.RecordStockMovement(ctx, movementKindArrival, e.TotalQuantity)
	case *finance.PeriodRemitUpsertedEvent:
		h.metrics.RecordRemitUpserted(ctx, e.CountryCode, e.Replaced, e.ProfitTotal)
		if e.StockDeducted {
			h.metrics.RecordStockMovement(ctx, movementKindRemit, e.Pieces)
		}
	case *inventory.StockMovementRecordedEvent:
		h.metrics.RecordStockMovement(ctx, string(e.Kind), e.Quantity)
	}
	return nil
}

var _ shared.EventHandler = (*MetricsHandler)(nil)
