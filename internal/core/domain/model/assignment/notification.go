package assignment

import "time"

// NotificationType names an entry of the per-assignment notification log.
type NotificationType string

const (
	NotificationAssigned  NotificationType = "assigned"
	NotificationStarted   NotificationType = "started"
	NotificationDelivered NotificationType = "delivered"
	NotificationCancelled NotificationType = "cancelled"
)

// Notification is an append-only log entry.
type Notification struct {
	Type NotificationType
	At   time.Time
	Read bool
}

func notificationFor(s Status) NotificationType {
	switch s {
	case InTransit:
		return NotificationStarted
	case Delivered:
		return NotificationDelivered
	case Cancelled:
		return NotificationCancelled
	default:
		return NotificationAssigned
	}
}
