package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"fulfillment-pipeline/internal/broker"
	"fulfillment-pipeline/internal/models"
	"fulfillment-pipeline/internal/store"
	"fulfillment-pipeline/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ShippingService owns shipment records and tracking numbers
type ShippingService struct {
	store          *store.Store[models.Shipment]
	eventPublisher *broker.EventPublisher
	logger         *zap.Logger
	now            func() time.Time
}

// NewShippingService creates a new shipping service
func NewShippingService(eventPublisher *broker.EventPublisher) *ShippingService {
	return &ShippingService{
		store: store.New(func(sh *models.Shipment, id int64) {
			sh.ID = id
		}),
		eventPublisher: eventPublisher,
		logger:         util.GetLogger(),
		now:            time.Now,
	}
}

// CreateShipment creates a shipment for an order with a generated tracking
// number and publishes a ShipmentTracked event. The order id is an opaque
// reference; it is not checked against the orders service.
func (s *ShippingService) CreateShipment(ctx context.Context, orderID int64, shippingMethod string) models.Shipment {
	ctx, span := util.StartSpan(ctx, "ShippingService.CreateShipment")
	defer span.End()

	if shippingMethod == "" {
		shippingMethod = models.DefaultShippingMethod
	}

	shipment := s.store.Create(models.Shipment{
		OrderID:        orderID,
		TrackingNumber: generateTrackingNumber(),
		ShippingMethod: shippingMethod,
		Status:         models.ShipmentStatusPending,
		ShippingDate:   s.now(),
	})

	util.ShipmentsCreatedTotal.Inc()
	s.logger.Info("Shipment created",
		zap.Int64("shipment_id", shipment.ID),
		zap.Int64("order_id", orderID),
		zap.String("tracking_number", shipment.TrackingNumber))

	event := &models.ShipmentTrackedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeShipmentTracked,
			Timestamp: time.Now(),
		},
		OrderID:        orderID,
		ShipmentID:     shipment.ID,
		TrackingNumber: shipment.TrackingNumber,
		Status:         shipment.Status,
	}

	if err := s.eventPublisher.PublishShipmentTracked(ctx, event); err != nil {
		s.logger.Error("Failed to publish ShipmentTracked event", zap.Error(err))
	}

	return shipment
}

// GetShipmentDetails retrieves a shipment. Absence is an expected result.
func (s *ShippingService) GetShipmentDetails(ctx context.Context, shipmentID int64) (models.Shipment, bool) {
	shipment, ok := s.store.Get(shipmentID)
	if !ok {
		s.logger.Warn("Shipment not found", zap.Int64("shipment_id", shipmentID))
	}
	return shipment, ok
}

// GetShipmentStatus retrieves only the status string of a shipment
func (s *ShippingService) GetShipmentStatus(ctx context.Context, shipmentID int64) (string, bool) {
	shipment, ok := s.store.Get(shipmentID)
	if !ok {
		return "", false
	}
	return shipment.Status, true
}

// UpdateShipmentStatus overwrites the shipment status. Exactly "Delivered"
// also stamps the delivery date; the date is never cleared afterwards. No
// other status carries a side effect.
func (s *ShippingService) UpdateShipmentStatus(ctx context.Context, shipmentID int64, status string) (models.Shipment, bool) {
	delivered := false
	shipment, ok := s.store.Update(shipmentID, func(sh *models.Shipment) {
		sh.Status = status
		if status == models.ShipmentStatusDelivered {
			now := s.now()
			sh.DeliveryDate = &now
			delivered = true
		}
	})
	if !ok {
		s.logger.Warn("Shipment not found for status update", zap.Int64("shipment_id", shipmentID))
		return models.Shipment{}, false
	}

	if delivered {
		util.ShipmentsDeliveredTotal.Inc()
		s.logger.Info("Shipment delivered",
			zap.Int64("shipment_id", shipmentID),
			zap.Timep("delivery_date", shipment.DeliveryDate))
	} else {
		s.logger.Info("Shipment status updated",
			zap.Int64("shipment_id", shipmentID),
			zap.String("status", status))
	}

	return shipment, true
}

// DeleteShipment removes a shipment and reports whether it existed
func (s *ShippingService) DeleteShipment(ctx context.Context, shipmentID int64) bool {
	deleted := s.store.Delete(shipmentID)
	if !deleted {
		s.logger.Warn("Shipment not found for deletion", zap.Int64("shipment_id", shipmentID))
	}
	return deleted
}

// generateTrackingNumber returns "TRK" plus a random 6-digit suffix in
// [100000, 999999]. Uniqueness is not enforced.
func generateTrackingNumber() string {
	return fmt.Sprintf("TRK%d", 100000+rand.Intn(900000))
}
