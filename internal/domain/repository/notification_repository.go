package repository

import "context"

// NotificationRepository publishes a report to the notification channel.
type NotificationRepository interface {
	Publish(ctx context.Context, subject, message string) (string, error)
}
