package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fulfillment-pipeline/internal/broker"
	"fulfillment-pipeline/internal/models"
	"fulfillment-pipeline/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newPublisher() *broker.EventPublisher {
	return broker.NewEventPublisher(broker.NewMemBus(), broker.DefaultTopics())
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestOrdersAPI(t *testing.T) {
	orders := service.NewOrderService(newPublisher(), nil)
	router := gin.New()
	NewOrderHandler(orders).SetupRoutes(router)

	rec := doRequest(router, http.MethodPost, "/orders/create",
		`{"customer_id":"customer123","product":"Laptop","quantity":2,"price":1500.00}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Order created")

	rec = doRequest(router, http.MethodGet, "/orders/1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Order Status: Created", rec.Body.String())

	rec = doRequest(router, http.MethodGet, "/orders/999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(router, http.MethodGet, "/orders/not-a-number", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPaymentsAPI(t *testing.T) {
	payments := service.NewPaymentService(newPublisher())
	router := gin.New()
	NewPaymentHandler(payments).SetupRoutes(router)

	rec := doRequest(router, http.MethodPost, "/api/payments",
		`{"status":"Pending","amount":49.99}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Payment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Pending", created.Status)

	rec = doRequest(router, http.MethodGet, fmt.Sprintf("/api/payments/%d", created.ID), "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(router, http.MethodGet, "/api/payments/999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(router, http.MethodPut, fmt.Sprintf("/api/payments/%d?status=Completed", created.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	var updated models.Payment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Completed", updated.Status)

	rec = doRequest(router, http.MethodPut, fmt.Sprintf("/api/payments/%d", created.ID), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(router, http.MethodPut, "/api/payments/999?status=Completed", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(router, http.MethodDelete, fmt.Sprintf("/api/payments/%d", created.ID), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(router, http.MethodDelete, fmt.Sprintf("/api/payments/%d", created.ID), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestShippingAPI(t *testing.T) {
	shipping := service.NewShippingService(newPublisher())
	router := gin.New()
	NewShippingHandler(shipping).SetupRoutes(router)

	rec := doRequest(router, http.MethodPost, "/api/shipments/create",
		`{"order_id":42,"shipping_method":"Express"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Shipment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, int64(42), created.OrderID)
	assert.True(t, strings.HasPrefix(created.TrackingNumber, "TRK"))

	rec = doRequest(router, http.MethodGet, fmt.Sprintf("/api/shipments/%d", created.ID), "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(router, http.MethodGet, fmt.Sprintf("/api/shipments/%d/status", created.ID), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Pending", rec.Body.String())

	rec = doRequest(router, http.MethodGet, "/api/shipments/999/status", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Shipment not found", rec.Body.String())

	rec = doRequest(router, http.MethodPut,
		fmt.Sprintf("/api/shipments/%d/status?status=Delivered", created.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	var delivered models.Shipment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &delivered))
	assert.Equal(t, "Delivered", delivered.Status)
	assert.NotNil(t, delivered.DeliveryDate)

	rec = doRequest(router, http.MethodDelete, fmt.Sprintf("/api/shipments/%d", created.ID), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(router, http.MethodGet, fmt.Sprintf("/api/shipments/%d", created.ID), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNotificationsAPI(t *testing.T) {
	bus := broker.NewMemBus()
	topics := broker.DefaultTopics()
	publisher := broker.NewEventPublisher(bus, topics)

	var received []models.NotificationEvent
	bus.Subscribe(topics.Notifications, func(ctx context.Context, msg broker.Message) error {
		var event models.NotificationEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return err
		}
		received = append(received, event)
		return nil
	})

	router := gin.New()
	NewNotificationAPIHandler(publisher).SetupRoutes(router)

	rec := doRequest(router, http.MethodPost, "/notifications/send?message=hello", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Notification sent: hello", rec.Body.String())
	require.Len(t, received, 1)
	assert.Equal(t, "hello", received[0].Message)
	assert.Equal(t, models.EventTypeNotification, received[0].EventType)

	rec = doRequest(router, http.MethodPost, "/notifications/send", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
