package service

import (
	"context"

	"fulfillment-pipeline/internal/archive"
	"fulfillment-pipeline/internal/util"

	"go.uber.org/zap"
)

// NotificationService "delivers" notifications. Delivery is a log emission;
// there is no email or SMS integration, no retry and no acknowledgment.
// Every failure is caught here so the message is always considered consumed.
type NotificationService struct {
	archive *archive.Archive
	logger  *zap.Logger
}

// NewNotificationService creates a new notification service. archive may be
// nil, in which case messages are only logged.
func NewNotificationService(archive *archive.Archive) *NotificationService {
	return &NotificationService{
		archive: archive,
		logger:  util.GetLogger(),
	}
}

// Deliver sends a notification to the user. source names where the message
// came from (a topic or the send endpoint).
func (ns *NotificationService) Deliver(ctx context.Context, source, message string) {
	ctx, span := util.StartSpan(ctx, "NotificationService.Deliver")
	defer span.End()

	ns.logger.Info("Notification sent to user",
		zap.String("source", source),
		zap.String("message", message))
	util.NotificationsDeliveredTotal.Inc()

	if ns.archive != nil {
		if err := ns.archive.Record(ctx, source, message); err != nil {
			util.NotificationsFailedTotal.Inc()
			ns.logger.Error("Failed to archive notification",
				zap.String("source", source),
				zap.Error(err))
		}
	}
}
