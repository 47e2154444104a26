package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestInMemoryEventBus_DeliversByType(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	require.NoError(t, bus.Start(context.Background()))

	arrived := newRecordingHandler("ShipmentArrived")
	wildcard := newRecordingHandler()
	bus.Subscribe(arrived)
	bus.Subscribe(wildcard)

	err := bus.Publish(context.Background(),
		newTestEvent("ShipmentArrived"),
		newTestEvent("PeriodRemitUpserted"),
	)
	require.NoError(t, err)

	assert.Equal(t, 1, arrived.count())
	assert.Equal(t, 2, wildcard.count())
}

func TestInMemoryEventBus_ExplicitTypesOverrideHandler(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	h := newRecordingHandler("ShipmentArrived")
	bus.Subscribe(h, "PeriodRemitUpserted")

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("ShipmentArrived")))
	assert.Zero(t, h.count())

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("PeriodRemitUpserted")))
	assert.Equal(t, 1, h.count())
}

func TestInMemoryEventBus_FailuresDoNotStopDelivery(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	bus := NewInMemoryEventBus(zap.New(core))

	failing := newRecordingHandler("X")
	failing.err = errors.New("boom")
	panicking := newRecordingHandler("X")
	panicking.panics = true
	after := newRecordingHandler("X")

	bus.Subscribe(failing)
	bus.Subscribe(panicking)
	bus.Subscribe(after)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("X")))

	assert.Equal(t, 1, after.count())
	assert.Equal(t, 2, logs.FilterMessage("Event handler failed").Len())
}

func TestInMemoryEventBus_StopRejectsPublish(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	h := newRecordingHandler()
	bus.Subscribe(h)

	require.NoError(t, bus.Stop(context.Background()))
	assert.ErrorIs(t, bus.Publish(context.Background(), newTestEvent("X")), ErrBusStopped)
	assert.Zero(t, h.count())

	require.NoError(t, bus.Start(context.Background()))
	require.NoError(t, bus.Publish(context.Background(), newTestEvent("X")))
	assert.Equal(t, 1, h.count())
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	h := newRecordingHandler("X")
	bus.Subscribe(h)
	bus.Unsubscribe(h)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("X")))
	assert.Zero(t, h.count())
}
