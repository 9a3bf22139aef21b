package models

import "time"

// Event types
const (
	EventTypeOrderCreated     = "ORDER_CREATED"
	EventTypePaymentProcessed = "PAYMENT_PROCESSED"
	EventTypeShipmentTracked  = "SHIPMENT_TRACKED"
	EventTypeNotification     = "NOTIFICATION"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderCreatedEvent published by the orders service when an order is stored
type OrderCreatedEvent struct {
	BaseEvent
	OrderID    int64   `json:"order_id"`
	CustomerID string  `json:"customer_id"`
	Product    string  `json:"product"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
	Status     string  `json:"status"`
}

// PaymentProcessedEvent published by the payments service after a payment
// record is created for an order
type PaymentProcessedEvent struct {
	BaseEvent
	OrderID   int64   `json:"order_id"`
	PaymentID int64   `json:"payment_id"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"`
}

// ShipmentTrackedEvent published by the shipping service once a shipment
// has a tracking number
type ShipmentTrackedEvent struct {
	BaseEvent
	OrderID        int64  `json:"order_id"`
	ShipmentID     int64  `json:"shipment_id"`
	TrackingNumber string `json:"tracking_number"`
	Status         string `json:"status"`
}

// NotificationEvent carries a free-form message for the notifications
// service, published via the send endpoint
type NotificationEvent struct {
	BaseEvent
	Message string `json:"message"`
}
