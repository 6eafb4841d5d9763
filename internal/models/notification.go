package models

import "time"

// NotificationType categorizes feed entries.
type NotificationType int

const (
	NotifyBookingConfirmation NotificationType = 0
	NotifyBookingCancellation NotificationType = 1
	NotifyBookingReminder     NotificationType = 2
	NotifyStationUpdate       NotificationType = 3
	NotifySystemAlert         NotificationType = 4
)

// NotificationPriority orders urgency.
type NotificationPriority int

const (
	PriorityLow      NotificationPriority = 0
	PriorityNormal   NotificationPriority = 1
	PriorityHigh     NotificationPriority = 2
	PriorityCritical NotificationPriority = 3
)

// Notification is one feed entry, addressed by recipient NIC and optionally
// tied to a booking.
type Notification struct {
	ID              string               `db:"id"`
	RecipientNIC    string               `db:"recipient_nic"`
	Title           string               `db:"title"`
	Message         string               `db:"message"`
	Type            NotificationType     `db:"type"`
	Priority        NotificationPriority `db:"priority"`
	IsRead          bool                 `db:"is_read"`
	RelatedEntityID string               `db:"related_entity_id"`
	Metadata        map[string]string    `db:"metadata"`
	CreatedAt       time.Time            `db:"created_at"`
	ReadAt          *time.Time           `db:"read_at"`
}
