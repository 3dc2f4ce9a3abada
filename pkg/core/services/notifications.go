package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/redbridgehub/volunteer-portal/pkg/core/model"
)

// NotificationsStore defines the database operations needed for notifications
type NotificationsStore interface {
	GetNotificationsByUser(ctx context.Context, userID string) ([]model.Notification, error)
}

// ListNotifications returns a user's unexpired notifications, newest first.
// Expired ones are pruned by the store on read.
func ListNotifications(ctx context.Context, database NotificationsStore, logger *zap.Logger, userID string) ([]model.Notification, error) {
	notifications, err := database.GetNotificationsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}

	// Newest first for display; the store returns insertion order
	for i, j := 0, len(notifications)-1; i < j; i, j = i+1, j-1 {
		notifications[i], notifications[j] = notifications[j], notifications[i]
	}

	logger.Debug("Notifications fetched", zap.String("user_id", userID), zap.Int("count", len(notifications)))
	return notifications, nil
}
