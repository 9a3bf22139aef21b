package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"fulfillment-pipeline/internal/broker"
	"fulfillment-pipeline/internal/models"
	"fulfillment-pipeline/internal/service"
)

// Worker runs one consumer against one topic with a message handler
type Worker struct {
	name     string
	consumer *broker.Consumer
	handler  broker.MessageHandler
}

// New creates a new worker
func New(name string, consumer *broker.Consumer, handler broker.MessageHandler) *Worker {
	return &Worker{name: name, consumer: consumer, handler: handler}
}

// Start starts the worker and blocks until ctx is cancelled
func (w *Worker) Start(ctx context.Context) error {
	log.Printf("Starting %s worker...", w.name)
	return w.consumer.StartConsuming(ctx, w.handler)
}

// Stop stops the worker
func (w *Worker) Stop() error {
	log.Printf("Stopping %s worker...", w.name)
	return w.consumer.Close()
}

// PaymentHandler consumes the order topic: every OrderCreated event yields
// a payment record and a PaymentProcessed event.
func PaymentHandler(payments *service.PaymentService) broker.MessageHandler {
	eh := broker.NewEventHandler()
	eh.OnOrderCreated(func(ctx context.Context, event *models.OrderCreatedEvent) error {
		amount := event.Price * float64(event.Quantity)
		payments.ProcessOrder(ctx, event.OrderID, amount)
		return nil
	})
	return eh.HandleMessage
}

// ShippingHandler consumes the payment topic: every PaymentProcessed event
// yields a shipment with a fresh tracking number and a ShipmentTracked
// event. The shipping method defaults since the event does not carry one.
func ShippingHandler(shipping *service.ShippingService) broker.MessageHandler {
	eh := broker.NewEventHandler()
	eh.OnPaymentProcessed(func(ctx context.Context, event *models.PaymentProcessedEvent) error {
		shipping.CreateShipment(ctx, event.OrderID, models.DefaultShippingMethod)
		return nil
	})
	return eh.HandleMessage
}

// NotificationHandler consumes any pipeline topic and delivers a human
// readable message per event.
func NotificationHandler(notifications *service.NotificationService) broker.MessageHandler {
	eh := broker.NewEventHandler()
	eh.OnAny(func(ctx context.Context, topic string, base models.BaseEvent, raw []byte) error {
		message, err := formatNotification(base.EventType, raw)
		if err != nil {
			return err
		}
		notifications.Deliver(ctx, topic, message)
		return nil
	})
	return eh.HandleMessage
}

func formatNotification(eventType string, raw []byte) (string, error) {
	switch eventType {
	case models.EventTypeOrderCreated:
		var event models.OrderCreatedEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			return "", fmt.Errorf("failed to unmarshal OrderCreated event: %w", err)
		}
		return fmt.Sprintf("Order %d created for customer %s: %s x%d",
			event.OrderID, event.CustomerID, event.Product, event.Quantity), nil

	case models.EventTypePaymentProcessed:
		var event models.PaymentProcessedEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			return "", fmt.Errorf("failed to unmarshal PaymentProcessed event: %w", err)
		}
		return fmt.Sprintf("Payment %d for order %d is %s, amount %.2f",
			event.PaymentID, event.OrderID, event.Status, event.Amount), nil

	case models.EventTypeShipmentTracked:
		var event models.ShipmentTrackedEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			return "", fmt.Errorf("failed to unmarshal ShipmentTracked event: %w", err)
		}
		return fmt.Sprintf("Order %d shipped, tracking number %s",
			event.OrderID, event.TrackingNumber), nil

	case models.EventTypeNotification:
		var event models.NotificationEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			return "", fmt.Errorf("failed to unmarshal Notification event: %w", err)
		}
		return event.Message, nil

	default:
		return string(raw), nil
	}
}
