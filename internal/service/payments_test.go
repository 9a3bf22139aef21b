package service

import (
	"context"
	"encoding/json"
	"testing"

	"fulfillment-pipeline/internal/broker"
	"fulfillment-pipeline/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPaymentOnEmptyStore(t *testing.T) {
	publisher, _, _ := newTestPublisher()
	payments := NewPaymentService(publisher)

	_, ok := payments.GetPaymentByID(context.Background(), 999)
	assert.False(t, ok)
}

func TestCreatePaymentKeepsCallerStatus(t *testing.T) {
	publisher, _, _ := newTestPublisher()
	payments := NewPaymentService(publisher)
	ctx := context.Background()

	created := payments.CreatePayment(ctx, models.Payment{
		Status: models.PaymentStatusPending,
		Amount: 49.99,
	})

	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, models.PaymentStatusPending, created.Status)

	got, ok := payments.GetPaymentByID(ctx, created.ID)
	require.True(t, ok)
	assert.Equal(t, created, got)
}

func TestUpdatePaymentStatusAcceptsAnyString(t *testing.T) {
	publisher, _, _ := newTestPublisher()
	payments := NewPaymentService(publisher)
	ctx := context.Background()

	created := payments.CreatePayment(ctx, models.Payment{Status: models.PaymentStatusPending})

	updated, ok := payments.UpdatePaymentStatus(ctx, created.ID, "whatever-the-caller-says")
	require.True(t, ok)
	assert.Equal(t, "whatever-the-caller-says", updated.Status)

	_, ok = payments.UpdatePaymentStatus(ctx, 999, models.PaymentStatusCompleted)
	assert.False(t, ok)
}

func TestDeletePayment(t *testing.T) {
	publisher, _, _ := newTestPublisher()
	payments := NewPaymentService(publisher)
	ctx := context.Background()

	created := payments.CreatePayment(ctx, models.Payment{Status: models.PaymentStatusPending})

	assert.True(t, payments.DeletePayment(ctx, created.ID))
	assert.False(t, payments.DeletePayment(ctx, created.ID))
	assert.False(t, payments.DeletePayment(ctx, 999))
}

func TestProcessOrderRecordsCompletedPaymentAndPublishes(t *testing.T) {
	publisher, bus, topics := newTestPublisher()
	payments := NewPaymentService(publisher)
	ctx := context.Background()

	var events []models.PaymentProcessedEvent
	bus.Subscribe(topics.Payments, func(ctx context.Context, msg broker.Message) error {
		var event models.PaymentProcessedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return err
		}
		events = append(events, event)
		return nil
	})

	payment := payments.ProcessOrder(ctx, 42, 3000.00)

	assert.Equal(t, models.PaymentStatusCompleted, payment.Status)
	assert.Equal(t, 3000.00, payment.Amount)

	require.Len(t, events, 1)
	assert.Equal(t, int64(42), events[0].OrderID)
	assert.Equal(t, payment.ID, events[0].PaymentID)
	assert.Equal(t, models.PaymentStatusCompleted, events[0].Status)
}

// A payment referencing an order nobody created is accepted: order ids are
// opaque, there is no foreign-key enforcement.
func TestProcessOrderDoesNotValidateOrderID(t *testing.T) {
	publisher, _, _ := newTestPublisher()
	payments := NewPaymentService(publisher)

	payment := payments.ProcessOrder(context.Background(), 123456, 10.0)
	assert.NotZero(t, payment.ID)
}
