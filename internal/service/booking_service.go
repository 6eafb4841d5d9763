package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"evcharge/booking"
	"evcharge/internal/models"
)

var (
	// ErrInvalidBookingTime covers every window rule violation; the wrapped
	// message names the specific rule.
	ErrInvalidBookingTime = errors.New("booking: invalid time window")
	// ErrStationUnavailable means the station is missing, inactive, or full.
	ErrStationUnavailable = errors.New("booking: station unavailable")
	// ErrNoSlots means every slot is taken for the requested window.
	ErrNoSlots = errors.New("booking: no slots for the requested period")
	// ErrNotOwner rejects owner actions on someone else's booking.
	ErrNotOwner = errors.New("booking: not the booking owner")
	// ErrCancelWindowClosed rejects owner cancels within 12 hours of start.
	ErrCancelWindowClosed = errors.New("booking: cancellation window closed")
	// ErrUpdateWindowClosed rejects owner updates within 12 hours of start.
	ErrUpdateWindowClosed = errors.New("booking: update window closed")
	// ErrNotActive rejects transitions whose source must be Active.
	ErrNotActive = errors.New("booking: only active bookings allowed")
	// ErrNotCancellable rejects operator cancels of terminal bookings.
	ErrNotCancellable = errors.New("booking: not cancellable")
	// ErrReasonRequired rejects operator cancels without a reason.
	ErrReasonRequired = errors.New("booking: cancellation reason required")
	// ErrQRNotRedeemable means the scanned payload has no confirmed booking.
	ErrQRNotRedeemable = errors.New("booking: qr code not redeemable")
)

const (
	minDuration    = time.Hour
	maxDuration    = 24 * time.Hour
	maxAdvance     = 7 * 24 * time.Hour
	ownerCancelGap = 12 * time.Hour
)

// BookingStore is the persistence contract used by BookingService.
type BookingStore interface {
	Create(ctx context.Context, b *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	GetByQRCode(ctx context.Context, code string) (*models.Booking, error)
	GetAll(ctx context.Context) ([]models.Booking, error)
	GetByOwner(ctx context.Context, ownerNIC string) ([]models.Booking, error)
	GetByStation(ctx context.Context, stationID string) ([]models.Booking, error)
	CountOverlapping(ctx context.Context, stationID string, start, end time.Time, excludeID string) (int, error)
	SetStatus(ctx context.Context, id string, status booking.Status, at time.Time) error
	UpdateTimes(ctx context.Context, id string, start, end time.Time, total float64) error
}

// StationStore is the station lookup contract used by BookingService.
type StationStore interface {
	GetByID(ctx context.Context, id string) (*models.Station, error)
	AdjustAvailableSlots(ctx context.Context, id string, delta int) error
}

// Notifier delivers booking lifecycle notifications. Failures are logged
// and never fail the transition that triggered them.
type Notifier interface {
	BookingConfirmed(ctx context.Context, ownerNIC, bookingID, stationName string, start, end time.Time)
	BookingCancelled(ctx context.Context, ownerNIC, bookingID, stationName, reason string)
}

// QRRegistry tracks which QR payloads are currently redeemable. A payload
// is registered on confirm and dropped on any exit from Confirmed, so a
// lookup succeeds only while the booking is confirmed.
type QRRegistry interface {
	Register(ctx context.Context, code, bookingID string, until time.Time) error
	Resolve(ctx context.Context, code string) (string, error)
	Drop(ctx context.Context, code string) error
}

// BookingService owns the booking lifecycle: creation rules, the
// role-gated transitions, and their side effects.
type BookingService struct {
	bookings BookingStore
	stations StationStore
	notifier Notifier
	qr       QRRegistry
	logger   *zap.Logger
}

// NewBookingService builds BookingService.
func NewBookingService(bookings BookingStore, stations StationStore, notifier Notifier, qr QRRegistry, logger *zap.Logger) *BookingService {
	return &BookingService{
		bookings: bookings,
		stations: stations,
		notifier: notifier,
		qr:       qr,
		logger:   logger,
	}
}

// Create books a slot for the owner after validating the time window and
// station capacity. The QR payload is assigned here but becomes redeemable
// only on confirmation.
func (s *BookingService) Create(ctx context.Context, ownerNIC, stationID string, start, end time.Time) (*models.Booking, error) {
	if err := validateWindow(start, end); err != nil {
		return nil, err
	}

	station, err := s.stations.GetByID(ctx, stationID)
	if err != nil {
		return nil, err
	}
	if station.Status != models.StationActive {
		return nil, fmt.Errorf("%w: station not active", ErrStationUnavailable)
	}
	if station.AvailableSlots <= 0 {
		return nil, fmt.Errorf("%w: no free slots", ErrStationUnavailable)
	}

	overlapping, err := s.bookings.CountOverlapping(ctx, stationID, start, end, "")
	if err != nil {
		return nil, err
	}
	if overlapping >= station.TotalSlots {
		return nil, ErrNoSlots
	}

	total := end.Sub(start).Hours() * station.PricePerHour

	b := &models.Booking{
		ID:          uuid.NewString(),
		OwnerNIC:    ownerNIC,
		StationID:   stationID,
		StartTime:   start.UTC(),
		EndTime:     end.UTC(),
		Status:      booking.StatusActive,
		QRCode:      strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")),
		TotalAmount: total,
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}
	if err := s.stations.AdjustAvailableSlots(ctx, stationID, -1); err != nil {
		s.logger.Error("failed to adjust station slots", zap.String("station_id", stationID), zap.Error(err))
	}

	s.logger.Info("booking created",
		zap.String("booking_id", b.ID),
		zap.String("station_id", stationID),
		zap.String("owner_nic", ownerNIC))
	return b, nil
}

// Update moves the owner's own active booking to a new time window, at
// least 12 hours before the current start. Zero times keep the stored
// value. The new window is validated like a fresh booking and the total
// is recomputed.
func (s *BookingService) Update(ctx context.Context, bookingID, ownerNIC string, start, end time.Time) (*models.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.OwnerNIC != ownerNIC {
		return nil, ErrNotOwner
	}
	if b.Status != booking.StatusActive {
		return nil, fmt.Errorf("%w: status is %s", ErrNotActive, b.Status)
	}
	if time.Now().UTC().Add(ownerCancelGap).After(b.StartTime) {
		return nil, ErrUpdateWindowClosed
	}

	if start.IsZero() {
		start = b.StartTime
	}
	if end.IsZero() {
		end = b.EndTime
	}
	start, end = start.UTC(), end.UTC()
	if err := validateWindow(start, end); err != nil {
		return nil, err
	}

	station, err := s.stations.GetByID(ctx, b.StationID)
	if err != nil {
		return nil, err
	}
	overlapping, err := s.bookings.CountOverlapping(ctx, b.StationID, start, end, b.ID)
	if err != nil {
		return nil, err
	}
	if overlapping >= station.TotalSlots {
		return nil, ErrNoSlots
	}

	total := end.Sub(start).Hours() * station.PricePerHour
	if err := s.bookings.UpdateTimes(ctx, b.ID, start, end, total); err != nil {
		return nil, err
	}
	b.StartTime = start
	b.EndTime = end
	b.TotalAmount = total
	b.UpdatedAt = time.Now().UTC()

	s.logger.Info("booking updated",
		zap.String("booking_id", b.ID),
		zap.Time("start", start),
		zap.Time("end", end))
	return b, nil
}

// Confirm moves an active booking to Confirmed and registers its QR
// payload for redemption until the booking window closes.
func (s *BookingService) Confirm(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != booking.StatusActive {
		return nil, fmt.Errorf("%w: status is %s", ErrNotActive, b.Status)
	}

	now := time.Now().UTC()
	if err := s.bookings.SetStatus(ctx, bookingID, booking.StatusConfirmed, now); err != nil {
		return nil, err
	}
	b.Status = booking.StatusConfirmed
	b.ConfirmedAt = &now
	b.UpdatedAt = now

	if err := s.qr.Register(ctx, b.QRCode, b.ID, b.EndTime); err != nil {
		s.logger.Error("failed to register qr redemption", zap.String("booking_id", b.ID), zap.Error(err))
	}

	s.logger.Info("booking confirmed", zap.String("booking_id", b.ID))
	s.notifyConfirmed(ctx, b)
	return b, nil
}

// CancelByOwner cancels the owner's own active booking, at least 12 hours
// before it starts.
func (s *BookingService) CancelByOwner(ctx context.Context, bookingID, ownerNIC string) error {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if b.OwnerNIC != ownerNIC {
		return ErrNotOwner
	}
	if b.Status != booking.StatusActive {
		return fmt.Errorf("%w: status is %s", ErrNotActive, b.Status)
	}
	if time.Now().UTC().Add(ownerCancelGap).After(b.StartTime) {
		return ErrCancelWindowClosed
	}

	return s.cancel(ctx, b, "Cancelled by user")
}

// CancelByOperator cancels an active or confirmed booking on the station
// side. The reason is mandatory and forwarded to the owner.
func (s *BookingService) CancelByOperator(ctx context.Context, bookingID, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return ErrReasonRequired
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if b.Status != booking.StatusActive && b.Status != booking.StatusConfirmed {
		return fmt.Errorf("%w: status is %s", ErrNotCancellable, b.Status)
	}

	return s.cancel(ctx, b, "Cancelled by station operator: "+strings.TrimSpace(reason))
}

func (s *BookingService) cancel(ctx context.Context, b *models.Booking, reason string) error {
	now := time.Now().UTC()
	if err := s.bookings.SetStatus(ctx, b.ID, booking.StatusCancelled, now); err != nil {
		return err
	}

	// Return the slot to the pool and revoke any live redemption.
	if err := s.stations.AdjustAvailableSlots(ctx, b.StationID, 1); err != nil {
		s.logger.Error("failed to return station slot", zap.String("station_id", b.StationID), zap.Error(err))
	}
	if b.Status == booking.StatusConfirmed {
		if err := s.qr.Drop(ctx, b.QRCode); err != nil {
			s.logger.Error("failed to drop qr redemption", zap.String("booking_id", b.ID), zap.Error(err))
		}
	}

	s.logger.Info("booking cancelled", zap.String("booking_id", b.ID), zap.String("reason", reason))
	s.notifyCancelled(ctx, b, reason)
	return nil
}

// Get returns one booking.
func (s *BookingService) Get(ctx context.Context, id string) (*models.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

// List returns every booking.
func (s *BookingService) List(ctx context.Context) ([]models.Booking, error) {
	return s.bookings.GetAll(ctx)
}

// ListByOwner returns one owner's bookings.
func (s *BookingService) ListByOwner(ctx context.Context, ownerNIC string) ([]models.Booking, error) {
	return s.bookings.GetByOwner(ctx, ownerNIC)
}

// ListByStation returns one station's bookings.
func (s *BookingService) ListByStation(ctx context.Context, stationID string) ([]models.Booking, error) {
	return s.bookings.GetByStation(ctx, stationID)
}

// ResolveQR maps a scanned payload to its booking. Only payloads of
// currently confirmed bookings resolve. A registry miss falls back to
// storage, so a flushed cache does not strand confirmed bookings.
func (s *BookingService) ResolveQR(ctx context.Context, code string) (*models.Booking, error) {
	bookingID, err := s.qr.Resolve(ctx, code)
	if err != nil {
		return s.resolveQRFromStore(ctx, code)
	}
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != booking.StatusConfirmed {
		return nil, ErrQRNotRedeemable
	}
	return b, nil
}

func (s *BookingService) resolveQRFromStore(ctx context.Context, code string) (*models.Booking, error) {
	b, err := s.bookings.GetByQRCode(ctx, code)
	if err != nil {
		return nil, ErrQRNotRedeemable
	}
	now := time.Now().UTC()
	if b.Status != booking.StatusConfirmed || !now.Before(b.EndTime) {
		return nil, ErrQRNotRedeemable
	}
	if err := s.qr.Register(ctx, code, b.ID, b.EndTime); err != nil {
		s.logger.Warn("failed to re-register qr redemption", zap.String("booking_id", b.ID), zap.Error(err))
	}
	return b, nil
}

func (s *BookingService) stationName(ctx context.Context, stationID string) string {
	station, err := s.stations.GetByID(ctx, stationID)
	if err != nil {
		return "Charging Station"
	}
	return station.Name
}

func (s *BookingService) notifyConfirmed(ctx context.Context, b *models.Booking) {
	if s.notifier == nil {
		return
	}
	s.notifier.BookingConfirmed(ctx, b.OwnerNIC, b.ID, s.stationName(ctx, b.StationID), b.StartTime, b.EndTime)
}

func (s *BookingService) notifyCancelled(ctx context.Context, b *models.Booking, reason string) {
	if s.notifier == nil {
		return
	}
	s.notifier.BookingCancelled(ctx, b.OwnerNIC, b.ID, s.stationName(ctx, b.StationID), reason)
}

func validateWindow(start, end time.Time) error {
	now := time.Now().UTC()
	switch {
	case !start.After(now):
		return fmt.Errorf("%w: start must be in the future", ErrInvalidBookingTime)
	case !end.After(start):
		return fmt.Errorf("%w: end must be after start", ErrInvalidBookingTime)
	case start.After(now.Add(maxAdvance)):
		return fmt.Errorf("%w: bookings open at most 7 days ahead", ErrInvalidBookingTime)
	case end.Sub(start) < minDuration:
		return fmt.Errorf("%w: minimum duration is 1 hour", ErrInvalidBookingTime)
	case end.Sub(start) > maxDuration:
		return fmt.Errorf("%w: maximum duration is 24 hours", ErrInvalidBookingTime)
	}
	return nil
}
