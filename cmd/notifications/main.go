package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fulfillment-pipeline/config"
	"fulfillment-pipeline/internal/api"
	"fulfillment-pipeline/internal/archive"
	"fulfillment-pipeline/internal/broker"
	"fulfillment-pipeline/internal/service"
	"fulfillment-pipeline/internal/util"
	"fulfillment-pipeline/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting notifications service")

	tp, err := util.InitTracer("notifications-service", cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	var store *archive.Archive
	if cfg.Database.URL != "" {
		store, err = archive.New(cfg.Database.URL)
		if err != nil {
			log.Printf("Archive unavailable, notifications will only be logged: %v", err)
		} else {
			defer store.Close()
			log.Println("Notification archive connected")
		}
	}

	producer := broker.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()
	log.Println("Kafka producer initialized")

	topics := broker.Topics{
		Orders:        cfg.Topics.Orders,
		Payments:      cfg.Topics.Payments,
		Shipments:     cfg.Topics.Shipments,
		Notifications: cfg.Topics.Notifications,
	}
	eventPublisher := broker.NewEventPublisher(producer, topics)

	notificationService := service.NewNotificationService(store)
	handler := worker.NotificationHandler(notificationService)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	// One consumer per pipeline topic, all in the same group.
	consumeTopics := []string{
		cfg.Topics.Orders,
		cfg.Topics.Payments,
		cfg.Topics.Shipments,
		cfg.Topics.Notifications,
	}

	workers := make([]*worker.Worker, 0, len(consumeTopics))
	for _, topic := range consumeTopics {
		consumer := broker.NewConsumer(cfg.Kafka.Brokers, topic,
			"notifications-group", cfg.Kafka.Concurrency)
		w := worker.New(fmt.Sprintf("notification[%s]", topic), consumer, handler)
		workers = append(workers, w)
		go func(w *worker.Worker) {
			if err := w.Start(workerCtx); err != nil {
				log.Printf("Notification worker error: %v", err)
			}
		}(w)
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	apiHandler := api.NewNotificationAPIHandler(eventPublisher)
	apiHandler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	workerCancel()
	for _, w := range workers {
		w.Stop()
	}

	log.Println("Server exited")
}
