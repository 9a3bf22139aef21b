package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"fulfillment-pipeline/internal/models"
)

// Topics names the four channels of the fulfillment pipeline
type Topics struct {
	Orders        string
	Payments      string
	Shipments     string
	Notifications string
}

// DefaultTopics returns the standard topic names
func DefaultTopics() Topics {
	return Topics{
		Orders:        "order-events",
		Payments:      "payment-events",
		Shipments:     "shipping-events",
		Notifications: "notification-events",
	}
}

// EventPublisher handles publishing domain events
type EventPublisher struct {
	pub    Publisher
	topics Topics
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(pub Publisher, topics Topics) *EventPublisher {
	return &EventPublisher{pub: pub, topics: topics}
}

// PublishOrderCreated publishes OrderCreated onto the order topic
func (ep *EventPublisher) PublishOrderCreated(ctx context.Context, event *models.OrderCreatedEvent) error {
	key := fmt.Sprintf("order-%d", event.OrderID)
	return ep.pub.Publish(ctx, ep.topics.Orders, key, event)
}

// PublishPaymentProcessed publishes PaymentProcessed onto the payment topic
func (ep *EventPublisher) PublishPaymentProcessed(ctx context.Context, event *models.PaymentProcessedEvent) error {
	key := fmt.Sprintf("order-%d", event.OrderID)
	return ep.pub.Publish(ctx, ep.topics.Payments, key, event)
}

// PublishShipmentTracked publishes ShipmentTracked onto the shipping topic
func (ep *EventPublisher) PublishShipmentTracked(ctx context.Context, event *models.ShipmentTrackedEvent) error {
	key := fmt.Sprintf("order-%d", event.OrderID)
	return ep.pub.Publish(ctx, ep.topics.Shipments, key, event)
}

// PublishNotification publishes a free-form notification message
func (ep *EventPublisher) PublishNotification(ctx context.Context, event *models.NotificationEvent) error {
	return ep.pub.Publish(ctx, ep.topics.Notifications, event.EventID, event)
}

// EventHandler routes incoming messages to registered typed handlers
type EventHandler struct {
	onOrderCreated     func(context.Context, *models.OrderCreatedEvent) error
	onPaymentProcessed func(context.Context, *models.PaymentProcessedEvent) error
	onShipmentTracked  func(context.Context, *models.ShipmentTrackedEvent) error
	onNotification     func(context.Context, *models.NotificationEvent) error
	onAny              func(ctx context.Context, topic string, base models.BaseEvent, raw []byte) error
}

// NewEventHandler creates a new event handler
func NewEventHandler() *EventHandler {
	return &EventHandler{}
}

// OnOrderCreated registers a handler for OrderCreated events
func (eh *EventHandler) OnOrderCreated(handler func(context.Context, *models.OrderCreatedEvent) error) {
	eh.onOrderCreated = handler
}

// OnPaymentProcessed registers a handler for PaymentProcessed events
func (eh *EventHandler) OnPaymentProcessed(handler func(context.Context, *models.PaymentProcessedEvent) error) {
	eh.onPaymentProcessed = handler
}

// OnShipmentTracked registers a handler for ShipmentTracked events
func (eh *EventHandler) OnShipmentTracked(handler func(context.Context, *models.ShipmentTrackedEvent) error) {
	eh.onShipmentTracked = handler
}

// OnNotification registers a handler for free-form notification events
func (eh *EventHandler) OnNotification(handler func(context.Context, *models.NotificationEvent) error) {
	eh.onNotification = handler
}

// OnAny registers a catch-all invoked for every decodable event, after the
// typed handler if one matched
func (eh *EventHandler) OnAny(handler func(ctx context.Context, topic string, base models.BaseEvent, raw []byte) error) {
	eh.onAny = handler
}

// HandleMessage routes a message to the appropriate handlers
func (eh *EventHandler) HandleMessage(ctx context.Context, msg Message) error {
	var baseEvent models.BaseEvent
	if err := json.Unmarshal(msg.Value, &baseEvent); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	switch baseEvent.EventType {
	case models.EventTypeOrderCreated:
		if eh.onOrderCreated != nil {
			var event models.OrderCreatedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal OrderCreated event: %w", err)
			}
			if err := eh.onOrderCreated(ctx, &event); err != nil {
				return err
			}
		}

	case models.EventTypePaymentProcessed:
		if eh.onPaymentProcessed != nil {
			var event models.PaymentProcessedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal PaymentProcessed event: %w", err)
			}
			if err := eh.onPaymentProcessed(ctx, &event); err != nil {
				return err
			}
		}

	case models.EventTypeShipmentTracked:
		if eh.onShipmentTracked != nil {
			var event models.ShipmentTrackedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal ShipmentTracked event: %w", err)
			}
			if err := eh.onShipmentTracked(ctx, &event); err != nil {
				return err
			}
		}

	case models.EventTypeNotification:
		if eh.onNotification != nil {
			var event models.NotificationEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal Notification event: %w", err)
			}
			if err := eh.onNotification(ctx, &event); err != nil {
				return err
			}
		}

	default:
		log.Printf("Unhandled event type: %s", baseEvent.EventType)
	}

	if eh.onAny != nil {
		return eh.onAny(ctx, msg.Topic, baseEvent, msg.Value)
	}

	return nil
}
