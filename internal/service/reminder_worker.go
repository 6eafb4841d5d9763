package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"evcharge/internal/models"
)

const (
	reminderTick  = 30 * time.Minute
	reminderLead  = 2 * time.Hour
	cleanupEvery  = 6 * time.Hour
	readRetention = 30 * 24 * time.Hour
)

// UpcomingBookingStore feeds the reminder worker.
type UpcomingBookingStore interface {
	GetUpcomingConfirmed(ctx context.Context, from, until time.Time) ([]models.Booking, error)
}

// StationNamer resolves the station name shown in reminders.
type StationNamer interface {
	GetByID(ctx context.Context, id string) (*models.Station, error)
}

// ReminderWorker periodically reminds owners of confirmed bookings that
// start soon, and purges old read notifications.
type ReminderWorker struct {
	bookings      UpcomingBookingStore
	stations      StationNamer
	notifications *NotificationService
	tick          time.Duration
	logger        *zap.Logger
}

// NewReminderWorker builds the worker. tick <= 0 selects the default.
func NewReminderWorker(bookings UpcomingBookingStore, stations StationNamer, notifications *NotificationService, tick time.Duration, logger *zap.Logger) *ReminderWorker {
	if tick <= 0 {
		tick = reminderTick
	}
	return &ReminderWorker{
		bookings:      bookings,
		stations:      stations,
		notifications: notifications,
		tick:          tick,
		logger:        logger,
	}
}

// Run loops until the context ends. Failures are logged and retried on
// the next tick; the worker never takes the process down.
func (w *ReminderWorker) Run(ctx context.Context) {
	w.logger.Info("reminder worker started")
	ticker := time.NewTicker(w.tick)
	defer ticker.Stop()

	lastCleanup := time.Now().UTC()
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("reminder worker stopped")
			return
		case <-ticker.C:
			w.SendReminders(ctx)
			if time.Since(lastCleanup) >= cleanupEvery {
				w.Cleanup(ctx)
				lastCleanup = time.Now().UTC()
			}
		}
	}
}

// SendReminders notifies owners of confirmed bookings starting within the
// lead window. Already-reminded bookings are skipped.
func (w *ReminderWorker) SendReminders(ctx context.Context) {
	now := time.Now().UTC()
	upcoming, err := w.bookings.GetUpcomingConfirmed(ctx, now, now.Add(reminderLead))
	if err != nil {
		w.logger.Error("failed to load upcoming bookings", zap.Error(err))
		return
	}

	for i := range upcoming {
		b := &upcoming[i]
		name := "Charging Station"
		if station, err := w.stations.GetByID(ctx, b.StationID); err == nil {
			name = station.Name
		}
		if err := w.notifications.BookingReminder(ctx, b.OwnerNIC, b.ID, name, b.StartTime); err != nil {
			w.logger.Error("failed to send booking reminder",
				zap.String("booking_id", b.ID), zap.Error(err))
		}
	}
}

// Cleanup purges read notifications past the retention window.
func (w *ReminderWorker) Cleanup(ctx context.Context) {
	if _, err := w.notifications.PurgeExpired(ctx, time.Now().UTC().Add(-readRetention)); err != nil {
		w.logger.Error("failed to purge notifications", zap.Error(err))
	}
}
