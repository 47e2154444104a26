package event

import (
	"context"

	"github.com/codops/backend/internal/domain/shared"
	"github.com/codops/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// LogHandler writes one debug line per event
type LogHandler struct {
	logger *zap.Logger
}

// NewLogHandler creates a LogHandler
func NewLogHandler(l *zap.Logger) *LogHandler {
	return &LogHandler{logger: l.Named("events")}
}

// EventTypes returns nil so the handler receives every event
func (h *LogHandler) EventTypes() []string {
	return nil
}

// Handle logs the event envelope
func (h *LogHandler) Handle(ctx context.Context, evt shared.DomainEvent) error {
	logger.WithTraceContext(ctx, h.logger).Debug("Domain event",
		zap.String("event_type", evt.EventType()),
		zap.String("event_id", evt.EventID().String()),
		zap.String("aggregate_type", evt.AggregateType()),
		zap.String("aggregate_id", evt.AggregateID().String()),
		zap.Time("occurred_at", evt.OccurredAt()),
	)
	return nil
}

var _ shared.EventHandler = (*LogHandler)(nil)
