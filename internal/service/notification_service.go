package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"evcharge/internal/models"
	"evcharge/timefmt"
)

// NotificationStore is the persistence contract used by NotificationService.
type NotificationStore interface {
	Create(ctx context.Context, n *models.Notification) error
	GetByRecipient(ctx context.Context, nic string, includeRead bool, limit, offset int) ([]models.Notification, error)
	GetByID(ctx context.Context, id string) (*models.Notification, error)
	MarkRead(ctx context.Context, nic string, ids []string) (int, error)
	ReminderExists(ctx context.Context, nic, bookingID string) (bool, error)
	DeleteExpired(ctx context.Context, before time.Time) (int, error)
}

// Publisher pushes a freshly created notification to the recipient's live
// connections. Delivery is best effort; the pull feed stays authoritative.
type Publisher interface {
	Publish(recipientNIC string, n models.Notification)
}

// NotificationService creates and serves the per-user feed.
type NotificationService struct {
	store     NotificationStore
	publisher Publisher
	logger    *zap.Logger
}

// NewNotificationService builds NotificationService. publisher may be nil.
func NewNotificationService(store NotificationStore, publisher Publisher, logger *zap.Logger) *NotificationService {
	return &NotificationService{store: store, publisher: publisher, logger: logger}
}

// Create persists a notification and pushes it to live listeners.
func (s *NotificationService) Create(ctx context.Context, n models.Notification) (*models.Notification, error) {
	n.ID = uuid.NewString()
	n.IsRead = false
	if err := s.store.Create(ctx, &n); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		s.publisher.Publish(n.RecipientNIC, n)
	}

	s.logger.Info("notification created",
		zap.String("notification_id", n.ID),
		zap.String("recipient_nic", n.RecipientNIC),
		zap.Int("type", int(n.Type)))
	return &n, nil
}

// Feed returns the recipient's notifications, newest first.
func (s *NotificationService) Feed(ctx context.Context, nic string, includeRead bool, limit, offset int) ([]models.Notification, error) {
	return s.store.GetByRecipient(ctx, nic, includeRead, limit, offset)
}

// Get returns one notification.
func (s *NotificationService) Get(ctx context.Context, id string) (*models.Notification, error) {
	return s.store.GetByID(ctx, id)
}

// MarkRead flags the recipient's notifications read and returns the count.
func (s *NotificationService) MarkRead(ctx context.Context, nic string, ids []string) (int, error) {
	return s.store.MarkRead(ctx, nic, ids)
}

// BookingReminder creates an upcoming-session reminder, at most once per
// booking and recipient.
func (s *NotificationService) BookingReminder(ctx context.Context, ownerNIC, bookingID, stationName string, start time.Time) error {
	sent, err := s.store.ReminderExists(ctx, ownerNIC, bookingID)
	if err != nil {
		return err
	}
	if sent {
		return nil
	}

	n := models.Notification{
		RecipientNIC:    ownerNIC,
		Title:           "Booking Reminder",
		Message:         fmt.Sprintf("Reminder: your charging session at %s starts at %s.", stationName, timefmt.Format(start)),
		Type:            models.NotifyBookingReminder,
		Priority:        models.PriorityNormal,
		RelatedEntityID: bookingID,
		Metadata: map[string]string{
			"stationName": stationName,
			"startTime":   timefmt.Format(start),
		},
	}
	_, err = s.Create(ctx, n)
	return err
}

// PurgeExpired deletes read notifications older than the cutoff and
// returns the count.
func (s *NotificationService) PurgeExpired(ctx context.Context, before time.Time) (int, error) {
	count, err := s.store.DeleteExpired(ctx, before)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.logger.Info("purged expired notifications", zap.Int("count", count))
	}
	return count, nil
}

// BookingConfirmed implements Notifier.
func (s *NotificationService) BookingConfirmed(ctx context.Context, ownerNIC, bookingID, stationName string, start, end time.Time) {
	n := models.Notification{
		RecipientNIC:    ownerNIC,
		Title:           "Booking Confirmed",
		Message:         fmt.Sprintf("Your booking at %s from %s to %s has been confirmed.", stationName, timefmt.Format(start), timefmt.Format(end)),
		Type:            models.NotifyBookingConfirmation,
		Priority:        models.PriorityHigh,
		RelatedEntityID: bookingID,
		Metadata: map[string]string{
			"stationName": stationName,
			"startTime":   timefmt.Format(start),
			"endTime":     timefmt.Format(end),
		},
	}
	if _, err := s.Create(ctx, n); err != nil {
		s.logger.Error("failed to create confirmation notification",
			zap.String("booking_id", bookingID), zap.Error(err))
	}
}

// BookingCancelled implements Notifier.
func (s *NotificationService) BookingCancelled(ctx context.Context, ownerNIC, bookingID, stationName, reason string) {
	n := models.Notification{
		RecipientNIC:    ownerNIC,
		Title:           "Booking Cancelled",
		Message:         fmt.Sprintf("Your booking at %s was cancelled. %s", stationName, reason),
		Type:            models.NotifyBookingCancellation,
		Priority:        models.PriorityHigh,
		RelatedEntityID: bookingID,
		Metadata: map[string]string{
			"stationName": stationName,
			"reason":      reason,
		},
	}
	if _, err := s.Create(ctx, n); err != nil {
		s.logger.Error("failed to create cancellation notification",
			zap.String("booking_id", bookingID), zap.Error(err))
	}
}
