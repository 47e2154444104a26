package event

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogHandler_ReceivesEveryEvent(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	bus := NewInMemoryEventBus(zap.NewNop())
	bus.Subscribe(NewLogHandler(zap.New(core)))

	evt := newTestEvent("ShipmentArrived")
	require.NoError(t, bus.Publish(context.Background(), evt, newTestEvent("Other")))

	entries := logs.FilterMessage("Domain event").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "ShipmentArrived", entries[0].ContextMap()["event_type"])
	assert.Equal(t, evt.AggregateID().String(), entries[0].ContextMap()["aggregate_id"])
	assert.Equal(t, "events", entries[0].LoggerName)
}
