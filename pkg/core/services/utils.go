package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/redbridgehub/volunteer-portal/internal/config"
	"github.com/redbridgehub/volunteer-portal/pkg/core/model"
)

// notifier is the slice of the store that notification writers need.
type notifier interface {
	InsertNotification(notification *model.Notification) error
}

// notify records an in-memory notification for the user. Notifications are
// never delivered anywhere; they expire after the configured TTL and are
// pruned on read.
func notify(database notifier, cfg *config.Config, userID, message string) error {
	now := time.Now()
	return database.InsertNotification(&model.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Message:   message,
		CreatedAt: now,
		ExpiresAt: now.Add(cfg.NotificationTTL()),
	})
}
