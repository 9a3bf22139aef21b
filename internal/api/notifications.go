package api

import (
	"net/http"
	"time"

	"fulfillment-pipeline/internal/broker"
	"fulfillment-pipeline/internal/models"
	"fulfillment-pipeline/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotificationAPIHandler exposes the notifications REST surface. The send
// endpoint publishes onto the notification topic; the service's own
// consumer performs the delivery.
type NotificationAPIHandler struct {
	eventPublisher *broker.EventPublisher
	logger         *zap.Logger
}

// NewNotificationAPIHandler creates a new notifications handler
func NewNotificationAPIHandler(eventPublisher *broker.EventPublisher) *NotificationAPIHandler {
	return &NotificationAPIHandler{
		eventPublisher: eventPublisher,
		logger:         util.GetLogger(),
	}
}

// SetupRoutes sets up the notifications routes
func (h *NotificationAPIHandler) SetupRoutes(router *gin.Engine) {
	setupCommon(router)

	router.POST("/notifications/send", h.sendNotification)
}

// sendNotification publishes a free-form message onto the notification
// topic
func (h *NotificationAPIHandler) sendNotification(c *gin.Context) {
	message := c.Query("message")
	if message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing message"})
		return
	}

	event := &models.NotificationEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeNotification,
			Timestamp: time.Now(),
		},
		Message: message,
	}

	if err := h.eventPublisher.PublishNotification(c.Request.Context(), event); err != nil {
		h.logger.Error("Failed to publish notification", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send notification"})
		return
	}

	c.String(http.StatusOK, "Notification sent: %s", message)
}
