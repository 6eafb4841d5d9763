package models

import (
	"time"

	"evcharge/booking"
)

// Booking is a reservation row. Status values follow the shared wire enum;
// the QR code is assigned at creation but only redeemable while confirmed.
type Booking struct {
	ID          string         `db:"id"`
	OwnerNIC    string         `db:"owner_nic"`
	StationID   string         `db:"station_id"`
	StartTime   time.Time      `db:"start_time"`
	EndTime     time.Time      `db:"end_time"`
	Status      booking.Status `db:"status"`
	QRCode      string         `db:"qr_code"`
	TotalAmount float64        `db:"total_amount"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
	ConfirmedAt *time.Time     `db:"confirmed_at"`
	CancelledAt *time.Time     `db:"cancelled_at"`
}
