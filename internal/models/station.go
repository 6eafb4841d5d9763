package models

import "time"

// StationType distinguishes AC and DC chargers.
type StationType int

const (
	StationAC StationType = 0
	StationDC StationType = 1
)

// StationStatus is the station's operational state.
type StationStatus int

const (
	StationActive      StationStatus = 0
	StationInactive    StationStatus = 1
	StationMaintenance StationStatus = 2
)

// Station is a charging station with slot-level availability.
type Station struct {
	ID             string        `db:"id"`
	Name           string        `db:"name"`
	Location       string        `db:"location"`
	Type           StationType   `db:"type"`
	TotalSlots     int           `db:"total_slots"`
	AvailableSlots int           `db:"available_slots"`
	Status         StationStatus `db:"status"`
	PricePerHour   float64       `db:"price_per_hour"`
	CreatedAt      time.Time     `db:"created_at"`
	UpdatedAt      time.Time     `db:"updated_at"`
}
