package event

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/codops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

type testEvent struct {
	shared.BaseDomainEvent
}

func newTestEvent(eventType string) *testEvent {
	return &testEvent{BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "Test", uuid.New())}
}

// recordingHandler remembers what it was given
type recordingHandler struct {
	mu      sync.Mutex
	types   []string
	handled []shared.DomainEvent
	err     error
	panics  bool
}

func newRecordingHandler(types ...string) *recordingHandler {
	return &recordingHandler{types: types}
}

func (h *recordingHandler) Handle(_ context.Context, evt shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handled = append(h.handled, evt)
	if h.panics {
		panic("handler exploded")
	}
	return h.err
}

func (h *recordingHandler) EventTypes() []string {
	return h.types
}

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handled)
}

// failingStore is an IdempotencyStore that is always unreachable
type failingStore struct{}

var errStoreDown = errors.New("store down")

func (failingStore) MarkProcessed(context.Context, string, time.Duration) (bool, error) {
	return false, errStoreDown
}

func (failingStore) IsProcessed(context.Context, string) (bool, error) {
	return false, errStoreDown
}

func (failingStore) Close() error {
	return nil
}
