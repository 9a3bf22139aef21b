package service

import (
	"context"
	"time"

	"fulfillment-pipeline/internal/broker"
	"fulfillment-pipeline/internal/models"
	"fulfillment-pipeline/internal/store"
	"fulfillment-pipeline/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentService owns payment records. Payments reference orders only
// through the events that carry the order id; the record itself is opaque.
type PaymentService struct {
	store          *store.Store[models.Payment]
	eventPublisher *broker.EventPublisher
	logger         *zap.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(eventPublisher *broker.EventPublisher) *PaymentService {
	return &PaymentService{
		store: store.New(func(p *models.Payment, id int64) {
			p.ID = id
		}),
		eventPublisher: eventPublisher,
		logger:         util.GetLogger(),
	}
}

// CreatePayment assigns an identifier and stores the payment. The initial
// status is whatever the caller supplied, not defaulted.
func (ps *PaymentService) CreatePayment(ctx context.Context, payment models.Payment) models.Payment {
	stored := ps.store.Create(payment)
	ps.logger.Info("Payment created",
		zap.Int64("payment_id", stored.ID),
		zap.String("status", stored.Status),
		zap.Float64("amount", stored.Amount))
	return stored
}

// GetPaymentByID retrieves a payment. Absence is an expected result.
func (ps *PaymentService) GetPaymentByID(ctx context.Context, paymentID int64) (models.Payment, bool) {
	payment, ok := ps.store.Get(paymentID)
	if !ok {
		ps.logger.Warn("Payment not found", zap.Int64("payment_id", paymentID))
	}
	return payment, ok
}

// UpdatePaymentStatus overwrites the status field. Any string is accepted;
// no state machine is enforced.
func (ps *PaymentService) UpdatePaymentStatus(ctx context.Context, paymentID int64, status string) (models.Payment, bool) {
	payment, ok := ps.store.Update(paymentID, func(p *models.Payment) {
		p.Status = status
	})
	if !ok {
		ps.logger.Warn("Payment not found for status update", zap.Int64("payment_id", paymentID))
		return models.Payment{}, false
	}

	ps.logger.Info("Payment status updated",
		zap.Int64("payment_id", paymentID),
		zap.String("status", status))
	return payment, true
}

// DeletePayment removes a payment and reports whether it existed
func (ps *PaymentService) DeletePayment(ctx context.Context, paymentID int64) bool {
	deleted := ps.store.Delete(paymentID)
	if deleted {
		ps.logger.Info("Payment deleted", zap.Int64("payment_id", paymentID))
	} else {
		ps.logger.Warn("Payment not found for deletion", zap.Int64("payment_id", paymentID))
	}
	return deleted
}

// ProcessOrder is the workflow entry: it records a completed payment for an
// order and publishes a PaymentProcessed event. Both the order-topic
// consumer and the simulator's direct-call stage come through here. The
// order id is not validated against the orders service.
func (ps *PaymentService) ProcessOrder(ctx context.Context, orderID int64, amount float64) models.Payment {
	ctx, span := util.StartSpan(ctx, "PaymentService.ProcessOrder")
	defer span.End()

	payment := ps.store.Create(models.Payment{
		Status: models.PaymentStatusCompleted,
		Amount: amount,
	})

	util.PaymentsProcessedTotal.Inc()
	ps.logger.Info("Payment processed",
		zap.Int64("order_id", orderID),
		zap.Int64("payment_id", payment.ID),
		zap.Float64("amount", amount))

	event := &models.PaymentProcessedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypePaymentProcessed,
			Timestamp: time.Now(),
		},
		OrderID:   orderID,
		PaymentID: payment.ID,
		Amount:    payment.Amount,
		Status:    payment.Status,
	}

	if err := ps.eventPublisher.PublishPaymentProcessed(ctx, event); err != nil {
		ps.logger.Error("Failed to publish PaymentProcessed event", zap.Error(err))
	}

	return payment
}
