package main

import (
	"context"
	"log"

	"fulfillment-pipeline/config"
	"fulfillment-pipeline/internal/broker"
	"fulfillment-pipeline/internal/service"
	"fulfillment-pipeline/internal/simulator"
	"fulfillment-pipeline/internal/util"
	"fulfillment-pipeline/internal/worker"
)

// The simulator composes all four services in one process over the
// in-memory bus and drives end-to-end flows through direct stage calls.
// Events published by the services still fan out to the notification
// consumer, same as in the Kafka deployment.
func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting fulfillment simulator")

	bus := broker.NewMemBus()
	topics := broker.Topics{
		Orders:        cfg.Topics.Orders,
		Payments:      cfg.Topics.Payments,
		Shipments:     cfg.Topics.Shipments,
		Notifications: cfg.Topics.Notifications,
	}
	eventPublisher := broker.NewEventPublisher(bus, topics)

	orderService := service.NewOrderService(eventPublisher, nil)
	paymentService := service.NewPaymentService(eventPublisher)
	shippingService := service.NewShippingService(eventPublisher)
	notificationService := service.NewNotificationService(nil)

	notify := worker.NotificationHandler(notificationService)
	bus.Subscribe(topics.Orders, notify)
	bus.Subscribe(topics.Payments, notify)
	bus.Subscribe(topics.Shipments, notify)
	bus.Subscribe(topics.Notifications, notify)

	driver := simulator.NewDriver(simulator.DefaultStages(
		orderService, paymentService, shippingService, notificationService))

	completed := driver.RunN(context.Background(), cfg.Simulator.Runs)
	log.Printf("Simulation finished: %d/%d runs completed", completed, cfg.Simulator.Runs)
}
