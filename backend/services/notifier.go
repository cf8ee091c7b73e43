package services

import (
	"context"
	"time"

	"learnhub/backend/models"
	"learnhub/backend/repository"
	"learnhub/backend/utils"
)

// Notifier is fire-and-forget: callers never wait on delivery and a failed
// notification never fails the triggering operation.
type Notifier interface {
	Notify(userID uint, eventType models.NotificationType, title, message string, payload map[string]interface{})
}

type dbNotifier struct {
	notifications repository.NotificationRepo
	log           *utils.Logger
}

func NewNotifier(notifications repository.NotificationRepo, log *utils.Logger) Notifier {
	return &dbNotifier{notifications: notifications, log: log.With("component", "notifier")}
}

func (n *dbNotifier) Notify(userID uint, eventType models.NotificationType, title, message string, payload map[string]interface{}) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := n.notifications.Create(ctx, &models.Notification{
			UserID:  userID,
			Type:    eventType,
			Title:   title,
			Message: message,
			Payload: payload,
		})
		if err != nil {
			n.log.Error("failed to store notification", "user_id", userID, "type", eventType, "error", err)
		}
	}()
}

// NopNotifier drops every notification; used in tests.
type NopNotifier struct{}

func (NopNotifier) Notify(uint, models.NotificationType, string, string, map[string]interface{}) {}
