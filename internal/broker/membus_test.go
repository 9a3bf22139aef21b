package broker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"fulfillment-pipeline/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemBusDeliversToSubscribers(t *testing.T) {
	bus := NewMemBus()
	ctx := context.Background()

	var received []Message
	bus.Subscribe("payment-events", func(ctx context.Context, msg Message) error {
		received = append(received, msg)
		return nil
	})

	event := &models.PaymentProcessedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   "evt-1",
			EventType: models.EventTypePaymentProcessed,
			Timestamp: time.Now(),
		},
		OrderID:   7,
		PaymentID: 1,
		Amount:    100.0,
	}

	require.NoError(t, bus.Publish(ctx, "payment-events", "order-7", event))

	require.Len(t, received, 1)
	assert.Equal(t, "payment-events", received[0].Topic)
	assert.Equal(t, []byte("order-7"), received[0].Key)

	var decoded models.PaymentProcessedEvent
	require.NoError(t, json.Unmarshal(received[0].Value, &decoded))
	assert.Equal(t, int64(7), decoded.OrderID)
}

func TestMemBusTopicIsolation(t *testing.T) {
	bus := NewMemBus()
	ctx := context.Background()

	calls := 0
	bus.Subscribe("order-events", func(ctx context.Context, msg Message) error {
		calls++
		return nil
	})

	require.NoError(t, bus.Publish(ctx, "shipping-events", "k", &models.BaseEvent{}))
	assert.Zero(t, calls)
}

func TestMemBusNoSubscribersIsNotAnError(t *testing.T) {
	bus := NewMemBus()
	assert.NoError(t, bus.Publish(context.Background(), "order-events", "k", &models.BaseEvent{}))
}

func TestMemBusHandlerErrorIsSwallowed(t *testing.T) {
	bus := NewMemBus()
	ctx := context.Background()

	bus.Subscribe("order-events", func(ctx context.Context, msg Message) error {
		return errors.New("boom")
	})

	second := 0
	bus.Subscribe("order-events", func(ctx context.Context, msg Message) error {
		second++
		return nil
	})

	// At-most-once: the failing handler does not poison delivery.
	assert.NoError(t, bus.Publish(ctx, "order-events", "k", &models.BaseEvent{}))
	assert.Equal(t, 1, second)
}
