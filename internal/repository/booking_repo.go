package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"evcharge/booking"
	"evcharge/internal/models"
)

// ErrBookingNotFound represents missing booking rows.
var ErrBookingNotFound = errors.New("booking not found")

// BookingRepository handles persistence of bookings.
type BookingRepository struct {
	db *sql.DB
}

// NewBookingRepository returns repository instance.
func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `id, owner_nic, station_id, start_time, end_time, status, qr_code, total_amount, created_at, updated_at, confirmed_at, cancelled_at`

func scanBooking(row interface{ Scan(...interface{}) error }) (*models.Booking, error) {
	var b models.Booking
	var confirmedAt, cancelledAt sql.NullTime
	err := row.Scan(
		&b.ID,
		&b.OwnerNIC,
		&b.StationID,
		&b.StartTime,
		&b.EndTime,
		&b.Status,
		&b.QRCode,
		&b.TotalAmount,
		&b.CreatedAt,
		&b.UpdatedAt,
		&confirmedAt,
		&cancelledAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if confirmedAt.Valid {
		t := confirmedAt.Time
		b.ConfirmedAt = &t
	}
	if cancelledAt.Valid {
		t := cancelledAt.Time
		b.CancelledAt = &t
	}
	return &b, nil
}

// Create inserts a new booking.
func (r *BookingRepository) Create(ctx context.Context, b *models.Booking) error {
	const query = `
		INSERT INTO bookings (id, owner_nic, station_id, start_time, end_time, status, qr_code, total_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query,
		b.ID,
		b.OwnerNIC,
		b.StationID,
		b.StartTime,
		b.EndTime,
		b.Status,
		b.QRCode,
		b.TotalAmount,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
}

// GetByID fetches one booking.
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	const query = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 LIMIT 1`
	return scanBooking(r.db.QueryRowContext(ctx, query, id))
}

// GetByQRCode fetches one booking by its QR payload.
func (r *BookingRepository) GetByQRCode(ctx context.Context, code string) (*models.Booking, error) {
	const query = `SELECT ` + bookingColumns + ` FROM bookings WHERE qr_code = $1 LIMIT 1`
	return scanBooking(r.db.QueryRowContext(ctx, query, code))
}

func (r *BookingRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

// GetAll returns every booking, newest first.
func (r *BookingRepository) GetAll(ctx context.Context) ([]models.Booking, error) {
	return r.list(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY created_at DESC`)
}

// GetByOwner returns one owner's bookings, newest first.
func (r *BookingRepository) GetByOwner(ctx context.Context, ownerNIC string) ([]models.Booking, error) {
	return r.list(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE owner_nic = $1 ORDER BY created_at DESC`, ownerNIC)
}

// GetByStation returns one station's bookings, newest first.
func (r *BookingRepository) GetByStation(ctx context.Context, stationID string) ([]models.Booking, error) {
	return r.list(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE station_id = $1 ORDER BY created_at DESC`, stationID)
}

// GetUpcomingConfirmed returns confirmed bookings starting inside
// (from, until], oldest first. Feeds the reminder worker.
func (r *BookingRepository) GetUpcomingConfirmed(ctx context.Context, from, until time.Time) ([]models.Booking, error) {
	const query = `SELECT ` + bookingColumns + ` FROM bookings WHERE status = 1 AND start_time > $1 AND start_time <= $2 ORDER BY start_time`
	return r.list(ctx, query, from, until)
}

// CountOverlapping counts non-terminal bookings at the station whose time
// window intersects [start, end). excludeID skips one booking, for updates.
func (r *BookingRepository) CountOverlapping(ctx context.Context, stationID string, start, end time.Time, excludeID string) (int, error) {
	const query = `
		SELECT COUNT(*)
		FROM bookings
		WHERE station_id = $1
		  AND status IN (0, 1)
		  AND start_time < $3
		  AND end_time > $2
		  AND id <> $4
	`
	var count int
	if err := r.db.QueryRowContext(ctx, query, stationID, start, end, excludeID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// SetStatus moves a booking to the given status, stamping the matching
// audit column.
func (r *BookingRepository) SetStatus(ctx context.Context, id string, status booking.Status, at time.Time) error {
	const query = `
		UPDATE bookings
		SET status = $2,
		    updated_at = $3,
		    confirmed_at = CASE WHEN $2 = 1 THEN $3 ELSE confirmed_at END,
		    cancelled_at = CASE WHEN $2 = 3 THEN $3 ELSE cancelled_at END
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id, status, at)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// UpdateTimes rewrites the booking window and recalculated total.
func (r *BookingRepository) UpdateTimes(ctx context.Context, id string, start, end time.Time, total float64) error {
	const query = `
		UPDATE bookings
		SET start_time = $2,
		    end_time = $3,
		    total_amount = $4,
		    updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id, start, end, total)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrBookingNotFound
	}
	return nil
}
