package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"evcharge/internal/models"
	"evcharge/internal/repository"
)

// ErrStationHasBookings refuses deactivating a station with upcoming
// non-terminal bookings.
var ErrStationHasBookings = errors.New("station: upcoming bookings exist")

// StationInput is the back-office create/update payload.
type StationInput struct {
	Name         string
	Location     string
	Type         models.StationType
	TotalSlots   int
	PricePerHour float64
}

// StationService manages the station catalog.
type StationService struct {
	stations *repository.StationRepository
	logger   *zap.Logger
}

// NewStationService builds StationService.
func NewStationService(stations *repository.StationRepository, logger *zap.Logger) *StationService {
	return &StationService{stations: stations, logger: logger}
}

// Create registers a new station with all slots free.
func (s *StationService) Create(ctx context.Context, in StationInput) (*models.Station, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, errors.New("station: name required")
	}
	if in.TotalSlots <= 0 {
		return nil, errors.New("station: total slots must be positive")
	}

	station := &models.Station{
		ID:             uuid.NewString(),
		Name:           strings.TrimSpace(in.Name),
		Location:       strings.TrimSpace(in.Location),
		Type:           in.Type,
		TotalSlots:     in.TotalSlots,
		AvailableSlots: in.TotalSlots,
		Status:         models.StationActive,
		PricePerHour:   in.PricePerHour,
	}
	if err := s.stations.Create(ctx, station); err != nil {
		return nil, err
	}
	s.logger.Info("station created", zap.String("station_id", station.ID), zap.String("name", station.Name))
	return station, nil
}

// Get returns one station.
func (s *StationService) Get(ctx context.Context, id string) (*models.Station, error) {
	return s.stations.GetByID(ctx, id)
}

// List returns all stations; activeOnly restricts to bookable ones.
func (s *StationService) List(ctx context.Context, activeOnly bool) ([]models.Station, error) {
	return s.stations.List(ctx, activeOnly)
}

// Update rewrites a station's catalog fields.
func (s *StationService) Update(ctx context.Context, id string, in StationInput) (*models.Station, error) {
	station, err := s.stations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(in.Name); v != "" {
		station.Name = v
	}
	if v := strings.TrimSpace(in.Location); v != "" {
		station.Location = v
	}
	station.Type = in.Type
	if in.TotalSlots > 0 {
		// Keep the number of taken slots stable across a resize.
		taken := station.TotalSlots - station.AvailableSlots
		station.TotalSlots = in.TotalSlots
		station.AvailableSlots = in.TotalSlots - taken
		if station.AvailableSlots < 0 {
			station.AvailableSlots = 0
		}
	}
	if in.PricePerHour > 0 {
		station.PricePerHour = in.PricePerHour
	}

	if err := s.stations.Update(ctx, station); err != nil {
		return nil, err
	}
	s.logger.Info("station updated", zap.String("station_id", id))
	return station, nil
}

// Deactivate takes a station out of service. Refused while future active
// or confirmed bookings exist.
func (s *StationService) Deactivate(ctx context.Context, id string) error {
	count, err := s.stations.CountUpcomingBookings(ctx, id, time.Now().UTC())
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrStationHasBookings
	}
	if err := s.stations.SetStatus(ctx, id, models.StationInactive); err != nil {
		return err
	}
	s.logger.Info("station deactivated", zap.String("station_id", id))
	return nil
}
