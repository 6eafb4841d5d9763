package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"evcharge/internal/models"
)

// ErrStationNotFound represents missing station rows.
var ErrStationNotFound = errors.New("station not found")

// StationRepository handles persistence of charging stations.
type StationRepository struct {
	db *sql.DB
}

// NewStationRepository returns repository instance.
func NewStationRepository(db *sql.DB) *StationRepository {
	return &StationRepository{db: db}
}

const stationColumns = `id, name, location, type, total_slots, available_slots, status, price_per_hour, created_at, updated_at`

func scanStation(row interface{ Scan(...interface{}) error }) (*models.Station, error) {
	var s models.Station
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Location,
		&s.Type,
		&s.TotalSlots,
		&s.AvailableSlots,
		&s.Status,
		&s.PricePerHour,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStationNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Create inserts a new station.
func (r *StationRepository) Create(ctx context.Context, station *models.Station) error {
	const query = `
		INSERT INTO charging_stations (id, name, location, type, total_slots, available_slots, status, price_per_hour)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query,
		station.ID,
		station.Name,
		station.Location,
		station.Type,
		station.TotalSlots,
		station.AvailableSlots,
		station.Status,
		station.PricePerHour,
	).Scan(&station.CreatedAt, &station.UpdatedAt)
}

// GetByID fetches one station.
func (r *StationRepository) GetByID(ctx context.Context, id string) (*models.Station, error) {
	const query = `SELECT ` + stationColumns + ` FROM charging_stations WHERE id = $1 LIMIT 1`
	return scanStation(r.db.QueryRowContext(ctx, query, id))
}

// List returns all stations, optionally only active ones.
func (r *StationRepository) List(ctx context.Context, activeOnly bool) ([]models.Station, error) {
	query := `SELECT ` + stationColumns + ` FROM charging_stations ORDER BY name`
	if activeOnly {
		query = `SELECT ` + stationColumns + ` FROM charging_stations WHERE status = 0 ORDER BY name`
	}
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stations []models.Station
	for rows.Next() {
		s, err := scanStation(rows)
		if err != nil {
			return nil, err
		}
		stations = append(stations, *s)
	}
	return stations, rows.Err()
}

// Update persists mutable station fields.
func (r *StationRepository) Update(ctx context.Context, station *models.Station) error {
	const query = `
		UPDATE charging_stations
		SET name = $2,
		    location = $3,
		    type = $4,
		    total_slots = $5,
		    available_slots = $6,
		    status = $7,
		    price_per_hour = $8,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		station.ID,
		station.Name,
		station.Location,
		station.Type,
		station.TotalSlots,
		station.AvailableSlots,
		station.Status,
		station.PricePerHour,
	).Scan(&station.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrStationNotFound
	}
	return err
}

// AdjustAvailableSlots moves the free-slot count by delta, clamped to the
// station's configured range.
func (r *StationRepository) AdjustAvailableSlots(ctx context.Context, id string, delta int) error {
	const query = `
		UPDATE charging_stations
		SET available_slots = LEAST(GREATEST(available_slots + $2, 0), total_slots),
		    updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id, delta)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrStationNotFound
	}
	return nil
}

// SetStatus updates the operational state.
func (r *StationRepository) SetStatus(ctx context.Context, id string, status models.StationStatus) error {
	const query = `UPDATE charging_stations SET status = $2, updated_at = NOW() WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrStationNotFound
	}
	return nil
}

// CountUpcomingBookings counts non-terminal bookings starting after now,
// used to refuse deactivating a station that still has business ahead.
func (r *StationRepository) CountUpcomingBookings(ctx context.Context, id string, now time.Time) (int, error) {
	const query = `
		SELECT COUNT(*)
		FROM bookings
		WHERE station_id = $1
		  AND start_time > $2
		  AND status IN (0, 1)
	`
	var count int
	if err := r.db.QueryRowContext(ctx, query, id, now).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
