package models

import "time"

// Order represents a customer order owned by the orders service
type Order struct {
	ID         int64   `json:"order_id"`
	CustomerID string  `json:"customer_id"`
	Product    string  `json:"product"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
	Status     string  `json:"status"`
}

// Payment represents a payment record owned by the payments service
type Payment struct {
	ID     int64   `json:"id"`
	Status string  `json:"status"`
	Amount float64 `json:"amount"`
}

// Shipment represents a shipment owned by the shipping service.
// DeliveryDate stays nil until the shipment is marked delivered.
type Shipment struct {
	ID             int64      `json:"shipment_id"`
	OrderID        int64      `json:"order_id"`
	TrackingNumber string     `json:"tracking_number"`
	ShippingMethod string     `json:"shipping_method"`
	Status         string     `json:"status"`
	ShippingDate   time.Time  `json:"shipping_date"`
	DeliveryDate   *time.Time `json:"delivery_date,omitempty"`
}

// ShippingOrder is the request body for creating a shipment. Not persisted.
type ShippingOrder struct {
	OrderID        int64  `json:"order_id"`
	ShippingMethod string `json:"shipping_method"`
}

// Order statuses
const (
	OrderStatusCreated = "Created"
)

// Payment statuses
const (
	PaymentStatusPending   = "Pending"
	PaymentStatusCompleted = "Completed"
	PaymentStatusFailed    = "Failed"
)

// Shipment statuses. Status strings are free-form at the API; only
// ShipmentStatusDelivered carries a side effect (sets DeliveryDate).
const (
	ShipmentStatusPending   = "Pending"
	ShipmentStatusInTransit = "InTransit"
	ShipmentStatusDelivered = "Delivered"
)

// DefaultShippingMethod is used when a payment event arrives without a
// caller-chosen method.
const DefaultShippingMethod = "Standard"
