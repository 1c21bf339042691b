package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func TestNewEvent(t *testing.T) {
	payload := OrderPlaced{
		OrderID:  uuid.New(),
		BuyerID:  uuid.New(),
		GoodID:   uuid.New(),
		Quantity: 3,
		Total:    2997,
		Currency: "EUR",
	}

	event, err := NewEvent(TypeOrderPlaced, payload, testNow)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, TypeOrderPlaced, event.Type)
	assert.Equal(t, testNow, event.CreatedAt)

	var decoded OrderPlaced
	require.NoError(t, event.UnmarshalPayload(&decoded))
	assert.Equal(t, payload, decoded)
}

func TestNewEvent_UnencodablePayload(t *testing.T) {
	_, err := NewEvent("bad", map[string]interface{}{"ch": make(chan int)}, testNow)
	assert.Error(t, err)
}

func TestUnmarshalPayload_WrongShape(t *testing.T) {
	event, err := NewEvent(TypeDeliveryStatusChanged, []string{"not", "an", "object"}, testNow)
	require.NoError(t, err)

	var decoded DeliveryStatusChanged
	assert.Error(t, event.UnmarshalPayload(&decoded))
}

// MockEventHandler implements the EventHandler interface for testing
type MockEventHandler struct {
	LastEvent    *Event
	HandlerError error
	HandledCount int
}

// HandleEvent implements the EventHandler interface
func (h *MockEventHandler) HandleEvent(ctx context.Context, event *Event) error {
	h.LastEvent = event
	h.HandledCount++
	return h.HandlerError
}

func TestNopEmitter(t *testing.T) {
	event, err := NewEvent(TypeOrderPlaced, OrderPlaced{}, testNow)
	require.NoError(t, err)

	var emitter EventEmitter = NopEmitter{}
	assert.NoError(t, emitter.EmitEvent(context.Background(), event))
}

func TestEventHandler(t *testing.T) {
	handler := &MockEventHandler{}

	event, err := NewEvent("test_type", map[string]string{"key": "value"}, testNow)
	require.NoError(t, err)

	err = handler.HandleEvent(context.Background(), event)
	assert.NoError(t, err)
	assert.Equal(t, 1, handler.HandledCount)
	assert.Equal(t, event, handler.LastEvent)

	expectedErr := errors.New("handler error")
	handler.HandlerError = expectedErr
	err = handler.HandleEvent(context.Background(), event)
	assert.Equal(t, expectedErr, err)
	assert.Equal(t, 2, handler.HandledCount)
}
