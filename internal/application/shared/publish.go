package shared

import (
	"context"

	"github.com/codops/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// EventSource is an aggregate holding domain events
type EventSource interface {
	GetDomainEvents() []shared.DomainEvent
	ClearDomainEvents()
}

// PublishEvents hands the aggregate's pending events to the publisher and
// clears them. Failures are logged and never fail the operation, since the
// state change is already committed.
func PublishEvents(ctx context.Context, publisher shared.EventPublisher, logger *zap.Logger, source EventSource) {
	events := source.GetDomainEvents()
	source.ClearDomainEvents()
	if publisher == nil || len(events) == 0 {
		return
	}
	if err := publisher.Publish(ctx, events...); err != nil {
		logger.Warn("failed to publish domain events",
			zap.Int("count", len(events)),
			zap.Error(err),
		)
	}
}
