package event

import (
	"context"
	"sync/atomic"

	"github.com/codops/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// IdempotencyStats counts what an IdempotentHandler did
type IdempotencyStats struct {
	Processed  int64 `json:"processed"`
	Duplicates int64 `json:"duplicates"`
	Failed     int64 `json:"failed"`
}

// IdempotentHandler delivers each event ID to the wrapped handler at most
// once per TTL window
type IdempotentHandler struct {
	handler shared.EventHandler
	store   shared.IdempotencyStore
	config  shared.IdempotencyConfig
	logger  *zap.Logger

	processed  atomic.Int64
	duplicates atomic.Int64
	failed     atomic.Int64
}

// NewIdempotentHandler wraps handler
func NewIdempotentHandler(
	handler shared.EventHandler,
	store shared.IdempotencyStore,
	config shared.IdempotencyConfig,
	logger *zap.Logger,
) *IdempotentHandler {
	return &IdempotentHandler{
		handler: handler,
		store:   store,
		config:  config,
		logger:  logger,
	}
}

// EventTypes returns the wrapped handler's event types
func (h *IdempotentHandler) EventTypes() []string {
	return h.handler.EventTypes()
}

// Handle skips events whose ID is already recorded. When the store cannot
// be reached the event is processed anyway.
func (h *IdempotentHandler) Handle(ctx context.Context, evt shared.DomainEvent) error {
	if !h.config.Enabled {
		return h.handle(ctx, evt)
	}

	id := evt.EventID().String()
	fresh, err := h.store.MarkProcessed(ctx, id, h.config.TTL)
	switch {
	case err != nil:
		h.logger.Warn("Idempotency check failed, processing anyway",
			zap.String("event_id", id),
			zap.String("event_type", evt.EventType()),
			zap.Error(err),
		)
	case !fresh:
		h.duplicates.Add(1)
		h.logger.Debug("Duplicate event skipped",
			zap.String("event_id", id),
			zap.String("event_type", evt.EventType()),
		)
		return nil
	}
	return h.handle(ctx, evt)
}

// The ID stays recorded after a failure, so a redelivery inside the TTL
// window is skipped.
func (h *IdempotentHandler) handle(ctx context.Context, evt shared.DomainEvent) error {
	if err := h.handler.Handle(ctx, evt); err != nil {
		h.failed.Add(1)
		return err
	}
	h.processed.Add(1)
	return nil
}

// Stats returns a snapshot of the counters
func (h *IdempotentHandler) Stats() IdempotencyStats {
	return IdempotencyStats{
		Processed:  h.processed.Load(),
		Duplicates: h.duplicates.Load(),
		Failed:     h.failed.Load(),
	}
}

var _ shared.EventHandler = (*IdempotentHandler)(nil)
