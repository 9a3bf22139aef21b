package simulator

import (
	"context"
	"fmt"

	"fulfillment-pipeline/internal/models"
	"fulfillment-pipeline/internal/service"
	"fulfillment-pipeline/internal/util"

	"go.uber.org/zap"
)

// Stages are the four workflow calls one simulated run drives, strictly in
// order. Each stage is a direct synchronous call; any stage error aborts
// the run.
type Stages struct {
	CreateOrder         func(ctx context.Context) (int64, error)
	ProcessPayment      func(ctx context.Context, orderID int64) (int64, error)
	TrackShipment       func(ctx context.Context, orderID int64) (string, error)
	ReceiveNotification func(ctx context.Context, orderID int64, trackingNumber string) error
}

// Driver executes end-to-end fulfillment runs
type Driver struct {
	stages Stages
	logger *zap.Logger
}

// NewDriver creates a new driver
func NewDriver(stages Stages) *Driver {
	return &Driver{
		stages: stages,
		logger: util.GetLogger(),
	}
}

// Run drives one order through all four stages. A failure in any of the
// first three stages aborts the run; a notification failure is only
// logged, never propagated. A failed run does not affect other runs.
func (d *Driver) Run(ctx context.Context) error {
	orderID, err := d.stages.CreateOrder(ctx)
	if err != nil {
		util.SimulatorRunsTotal.WithLabelValues("failed").Inc()
		d.logger.Error("Run aborted: order creation failed", zap.Error(err))
		return fmt.Errorf("create order: %w", err)
	}
	d.logger.Info("Order created", zap.Int64("order_id", orderID))

	paymentID, err := d.stages.ProcessPayment(ctx, orderID)
	if err != nil {
		util.SimulatorRunsTotal.WithLabelValues("failed").Inc()
		d.logger.Error("Run aborted: payment failed",
			zap.Int64("order_id", orderID),
			zap.Error(err))
		return fmt.Errorf("process payment for order %d: %w", orderID, err)
	}
	d.logger.Info("Order paid",
		zap.Int64("order_id", orderID),
		zap.Int64("payment_id", paymentID))

	trackingNumber, err := d.stages.TrackShipment(ctx, orderID)
	if err != nil {
		util.SimulatorRunsTotal.WithLabelValues("failed").Inc()
		d.logger.Error("Run aborted: shipment tracking failed",
			zap.Int64("order_id", orderID),
			zap.Error(err))
		return fmt.Errorf("track shipment for order %d: %w", orderID, err)
	}
	d.logger.Info("Order shipped",
		zap.Int64("order_id", orderID),
		zap.String("tracking_number", trackingNumber))

	// Notification is fire-and-forget.
	if err := d.stages.ReceiveNotification(ctx, orderID, trackingNumber); err != nil {
		d.logger.Warn("Notification failed",
			zap.Int64("order_id", orderID),
			zap.Error(err))
	}

	util.SimulatorRunsTotal.WithLabelValues("ok").Inc()
	d.logger.Info("Run completed", zap.Int64("order_id", orderID))
	return nil
}

// RunN drives count independent runs and returns how many completed
func (d *Driver) RunN(ctx context.Context, count int) int {
	completed := 0
	for i := 0; i < count; i++ {
		if err := d.Run(ctx); err == nil {
			completed++
		}
	}
	return completed
}

// DefaultStages wires the stages directly to in-process services. Every
// run creates the same synthetic demo order.
func DefaultStages(
	orders *service.OrderService,
	payments *service.PaymentService,
	shipping *service.ShippingService,
	notifications *service.NotificationService,
) Stages {
	return Stages{
		CreateOrder: func(ctx context.Context) (int64, error) {
			order := orders.CreateOrder(ctx, models.Order{
				CustomerID: "customer123",
				Product:    "Laptop",
				Quantity:   2,
				Price:      1500.00,
				Status:     models.OrderStatusCreated,
			})
			return order.ID, nil
		},
		ProcessPayment: func(ctx context.Context, orderID int64) (int64, error) {
			order, ok := orders.GetOrderDetails(ctx, orderID)
			if !ok {
				return 0, fmt.Errorf("order %d not found", orderID)
			}
			payment := payments.ProcessOrder(ctx, orderID, order.Price*float64(order.Quantity))
			return payment.ID, nil
		},
		TrackShipment: func(ctx context.Context, orderID int64) (string, error) {
			shipment := shipping.CreateShipment(ctx, orderID, models.DefaultShippingMethod)
			return shipment.TrackingNumber, nil
		},
		ReceiveNotification: func(ctx context.Context, orderID int64, trackingNumber string) error {
			notifications.Deliver(ctx, "simulator",
				fmt.Sprintf("Order %d shipped, tracking number %s", orderID, trackingNumber))
			return nil
		},
	}
}
