package service

import (
	"context"
	"time"

	"fulfillment-pipeline/internal/broker"
	"fulfillment-pipeline/internal/models"
	"fulfillment-pipeline/internal/redisclient"
	"fulfillment-pipeline/internal/store"
	"fulfillment-pipeline/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService creates orders, assigns identifiers and announces them on
// the order topic.
type OrderService struct {
	store          *store.Store[models.Order]
	cache          *redisclient.Client
	eventPublisher *broker.EventPublisher
	logger         *zap.Logger
}

// NewOrderService creates a new order service. cache may be nil, in which
// case reads are served from the local store only.
func NewOrderService(eventPublisher *broker.EventPublisher, cache *redisclient.Client) *OrderService {
	return &OrderService{
		store: store.New(func(o *models.Order, id int64) {
			o.ID = id
		}),
		cache:          cache,
		eventPublisher: eventPublisher,
		logger:         util.GetLogger(),
	}
}

// CreateOrder stores a new order and publishes an OrderCreated event. The
// caller's status is kept; an empty status defaults to "Created". A publish
// failure is logged but does not fail the creation.
func (s *OrderService) CreateOrder(ctx context.Context, order models.Order) models.Order {
	ctx, span := util.StartSpan(ctx, "OrderService.CreateOrder")
	defer span.End()

	if order.Status == "" {
		order.Status = models.OrderStatusCreated
	}

	stored := s.store.Create(order)

	util.OrdersCreatedTotal.Inc()
	s.logger.Info("Order created",
		zap.Int64("order_id", stored.ID),
		zap.String("product", stored.Product),
		zap.String("status", stored.Status))

	if s.cache != nil {
		if err := s.cache.SetOrder(ctx, &stored); err != nil {
			s.logger.Warn("Failed to cache order", zap.Int64("order_id", stored.ID), zap.Error(err))
		}
	}

	event := &models.OrderCreatedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderCreated,
			Timestamp: time.Now(),
		},
		OrderID:    stored.ID,
		CustomerID: stored.CustomerID,
		Product:    stored.Product,
		Quantity:   stored.Quantity,
		Price:      stored.Price,
		Status:     stored.Status,
	}

	if err := s.eventPublisher.PublishOrderCreated(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderCreated event", zap.Error(err))
	}

	return stored
}

// GetOrderDetails retrieves an order, consulting the cache when the local
// store misses. Absence is an expected result.
func (s *OrderService) GetOrderDetails(ctx context.Context, orderID int64) (models.Order, bool) {
	if order, ok := s.store.Get(orderID); ok {
		return order, true
	}

	if s.cache != nil {
		cached, ok, err := s.cache.GetOrder(ctx, orderID)
		if err != nil {
			s.logger.Warn("Order cache lookup failed", zap.Int64("order_id", orderID), zap.Error(err))
		} else if ok {
			return *cached, true
		}
	}

	s.logger.Warn("Order not found", zap.Int64("order_id", orderID))
	return models.Order{}, false
}

// UpdateOrderStatus overwrites the order status. No transition validation
// is applied.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID int64, status string) (models.Order, bool) {
	order, ok := s.store.Update(orderID, func(o *models.Order) {
		o.Status = status
	})
	if !ok {
		s.logger.Warn("Order not found for status update", zap.Int64("order_id", orderID))
		return models.Order{}, false
	}

	if s.cache != nil {
		if err := s.cache.SetOrder(ctx, &order); err != nil {
			s.logger.Warn("Failed to refresh cached order", zap.Int64("order_id", orderID), zap.Error(err))
		}
	}

	s.logger.Info("Order status updated",
		zap.Int64("order_id", orderID),
		zap.String("status", status))
	return order, true
}

// DeleteOrder removes an order. The fulfillment workflow never deletes
// orders; this exists for the REST surface only.
func (s *OrderService) DeleteOrder(ctx context.Context, orderID int64) bool {
	return s.store.Delete(orderID)
}
