package broker

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"fulfillment-pipeline/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeMessage(t *testing.T, topic string, event interface{}) Message {
	t.Helper()
	data, err := json.Marshal(event)
	require.NoError(t, err)
	return Message{Topic: topic, Value: data, Time: time.Now()}
}

func TestEventHandlerRoutesTypedEvents(t *testing.T) {
	eh := NewEventHandler()
	ctx := context.Background()

	var gotOrder *models.OrderCreatedEvent
	eh.OnOrderCreated(func(ctx context.Context, event *models.OrderCreatedEvent) error {
		gotOrder = event
		return nil
	})

	var gotShipment *models.ShipmentTrackedEvent
	eh.OnShipmentTracked(func(ctx context.Context, event *models.ShipmentTrackedEvent) error {
		gotShipment = event
		return nil
	})

	orderEvent := &models.OrderCreatedEvent{
		BaseEvent: models.BaseEvent{EventID: "e1", EventType: models.EventTypeOrderCreated},
		OrderID:   42,
		Product:   "Laptop",
	}
	require.NoError(t, eh.HandleMessage(ctx, makeMessage(t, "order-events", orderEvent)))
	require.NotNil(t, gotOrder)
	assert.Equal(t, int64(42), gotOrder.OrderID)

	shipmentEvent := &models.ShipmentTrackedEvent{
		BaseEvent:      models.BaseEvent{EventID: "e2", EventType: models.EventTypeShipmentTracked},
		OrderID:        42,
		TrackingNumber: "TRK123456",
	}
	require.NoError(t, eh.HandleMessage(ctx, makeMessage(t, "shipping-events", shipmentEvent)))
	require.NotNil(t, gotShipment)
	assert.Equal(t, "TRK123456", gotShipment.TrackingNumber)
}

func TestEventHandlerCatchAllSeesEveryEvent(t *testing.T) {
	eh := NewEventHandler()
	ctx := context.Background()

	var topics []string
	var types []string
	eh.OnAny(func(ctx context.Context, topic string, base models.BaseEvent, raw []byte) error {
		topics = append(topics, topic)
		types = append(types, base.EventType)
		return nil
	})

	payment := &models.PaymentProcessedEvent{
		BaseEvent: models.BaseEvent{EventID: "e1", EventType: models.EventTypePaymentProcessed},
	}
	notification := &models.NotificationEvent{
		BaseEvent: models.BaseEvent{EventID: "e2", EventType: models.EventTypeNotification},
		Message:   "hello",
	}

	require.NoError(t, eh.HandleMessage(ctx, makeMessage(t, "payment-events", payment)))
	require.NoError(t, eh.HandleMessage(ctx, makeMessage(t, "notification-events", notification)))

	assert.Equal(t, []string{"payment-events", "notification-events"}, topics)
	assert.Equal(t, []string{models.EventTypePaymentProcessed, models.EventTypeNotification}, types)
}

func TestEventHandlerRejectsMalformedPayload(t *testing.T) {
	eh := NewEventHandler()

	err := eh.HandleMessage(context.Background(), Message{
		Topic: "order-events",
		Value: []byte("not json"),
	})
	assert.Error(t, err)
}

func TestEventPublisherTopicRouting(t *testing.T) {
	bus := NewMemBus()
	topics := DefaultTopics()
	ep := NewEventPublisher(bus, topics)
	ctx := context.Background()

	var seen []string
	record := func(ctx context.Context, msg Message) error {
		seen = append(seen, msg.Topic)
		return nil
	}
	bus.Subscribe(topics.Orders, record)
	bus.Subscribe(topics.Payments, record)
	bus.Subscribe(topics.Shipments, record)
	bus.Subscribe(topics.Notifications, record)

	require.NoError(t, ep.PublishOrderCreated(ctx, &models.OrderCreatedEvent{
		BaseEvent: models.BaseEvent{EventType: models.EventTypeOrderCreated}, OrderID: 1}))
	require.NoError(t, ep.PublishPaymentProcessed(ctx, &models.PaymentProcessedEvent{
		BaseEvent: models.BaseEvent{EventType: models.EventTypePaymentProcessed}, OrderID: 1}))
	require.NoError(t, ep.PublishShipmentTracked(ctx, &models.ShipmentTrackedEvent{
		BaseEvent: models.BaseEvent{EventType: models.EventTypeShipmentTracked}, OrderID: 1}))
	require.NoError(t, ep.PublishNotification(ctx, &models.NotificationEvent{
		BaseEvent: models.BaseEvent{EventID: "n1", EventType: models.EventTypeNotification}}))

	assert.Equal(t, []string{
		topics.Orders, topics.Payments, topics.Shipments, topics.Notifications,
	}, seen)
}
