package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"evcharge/booking"
	"evcharge/internal/models"
)

type fakeNotificationStore struct {
	mu      sync.Mutex
	created []models.Notification
	deleted int
	cutoff  time.Time
}

func (f *fakeNotificationStore) Create(ctx context.Context, n *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, *n)
	return nil
}

func (f *fakeNotificationStore) GetByRecipient(ctx context.Context, nic string, includeRead bool, limit, offset int) ([]models.Notification, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeNotificationStore) GetByID(ctx context.Context, id string) (*models.Notification, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeNotificationStore) MarkRead(ctx context.Context, nic string, ids []string) (int, error) {
	return 0, errors.New("not implemented")
}

func (f *fakeNotificationStore) ReminderExists(ctx context.Context, nic, bookingID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.created {
		if n.RecipientNIC == nic && n.RelatedEntityID == bookingID && n.Type == models.NotifyBookingReminder {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeNotificationStore) DeleteExpired(ctx context.Context, before time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted++
	f.cutoff = before
	return 3, nil
}

type fakeUpcomingStore struct {
	mu       sync.Mutex
	upcoming []models.Booking
	err      error
}

func (f *fakeUpcomingStore) GetUpcomingConfirmed(ctx context.Context, from, until time.Time) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.Booking(nil), f.upcoming...), nil
}

func newReminderFixture() (*ReminderWorker, *fakeUpcomingStore, *fakeNotificationStore) {
	bookings := &fakeUpcomingStore{}
	stations := newFakeStationStore()
	stations.stations["st-1"] = &models.Station{ID: "st-1", Name: "Colombo Fast Charge"}
	store := &fakeNotificationStore{}
	notifications := NewNotificationService(store, nil, zap.NewNop())
	worker := NewReminderWorker(bookings, stations, notifications, time.Minute, zap.NewNop())
	return worker, bookings, store
}

func TestSendRemindersNotifiesUpcomingBookings(t *testing.T) {
	worker, bookings, store := newReminderFixture()
	start := time.Now().UTC().Add(90 * time.Minute)
	bookings.upcoming = []models.Booking{{
		ID:        "b-1",
		OwnerNIC:  "nic-1",
		StationID: "st-1",
		StartTime: start,
		EndTime:   start.Add(2 * time.Hour),
		Status:    booking.StatusConfirmed,
	}}

	worker.SendReminders(context.Background())

	store.mu.Lock()
	defer store.mu.Unlock()
	if len(store.created) != 1 {
		t.Fatalf("created = %d notifications, want 1", len(store.created))
	}
	n := store.created[0]
	if n.Type != models.NotifyBookingReminder {
		t.Fatalf("type = %d, want reminder", n.Type)
	}
	if n.RecipientNIC != "nic-1" || n.RelatedEntityID != "b-1" {
		t.Fatalf("unexpected recipient or entity: %+v", n)
	}
	if n.Metadata["stationName"] != "Colombo Fast Charge" {
		t.Fatalf("stationName = %q", n.Metadata["stationName"])
	}
}

func TestSendRemindersSkipsAlreadyReminded(t *testing.T) {
	worker, bookings, store := newReminderFixture()
	start := time.Now().UTC().Add(90 * time.Minute)
	bookings.upcoming = []models.Booking{{
		ID:        "b-1",
		OwnerNIC:  "nic-1",
		StationID: "st-1",
		StartTime: start,
		Status:    booking.StatusConfirmed,
	}}

	worker.SendReminders(context.Background())
	worker.SendReminders(context.Background())

	store.mu.Lock()
	defer store.mu.Unlock()
	if len(store.created) != 1 {
		t.Fatalf("created = %d notifications, want 1 after repeat tick", len(store.created))
	}
}

func TestSendRemindersSurvivesStorageFailure(t *testing.T) {
	worker, bookings, store := newReminderFixture()
	bookings.err = errors.New("connection refused")

	worker.SendReminders(context.Background())

	store.mu.Lock()
	defer store.mu.Unlock()
	if len(store.created) != 0 {
		t.Fatalf("created = %d notifications, want 0", len(store.created))
	}
}

func TestCleanupPurgesOldReadNotifications(t *testing.T) {
	worker, _, store := newReminderFixture()

	worker.Cleanup(context.Background())

	store.mu.Lock()
	defer store.mu.Unlock()
	if store.deleted != 1 {
		t.Fatalf("delete calls = %d, want 1", store.deleted)
	}
	if age := time.Since(store.cutoff); age < 29*24*time.Hour || age > 31*24*time.Hour {
		t.Fatalf("cutoff %v not near the 30 day retention", store.cutoff)
	}
}
