package entity

import "github.com/google/uuid"

type NotificationType string

const (
	NotificationTaskCompleted    NotificationType = "TASK_COMPLETED"
	NotificationServiceCompleted NotificationType = "SERVICE_COMPLETED"
)

type Notification struct {
	BaseSimple
	RecipientID uuid.UUID        `db:"recipient_id"`
	Type        NotificationType `db:"type"`
	BookingID   uuid.UUID        `db:"booking_id"`
	Message     string           `db:"message"`
	Read        bool             `db:"is_read"`

	// populated on list
	BookingService string `db:"-"`
}
