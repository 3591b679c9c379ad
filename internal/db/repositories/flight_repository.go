package repositories

import (
	"context"

	gormlib "gorm.io/gorm"

	models "github.com/5outh/towerlog/internal/models/gorm"
)

// FlightRepository handles flight and waypoint table reads.
type FlightRepository struct {
	db *gormlib.DB
}

func NewFlightRepository(db *gormlib.DB) *FlightRepository {
	return &FlightRepository{db: db}
}

// Recent returns the most recently updated flights.
func (r *FlightRepository) Recent(ctx context.Context, limit int) ([]models.Flight, error) {
	var flights []models.Flight

	query := r.db.WithContext(ctx).Order("updated_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&flights).Error; err != nil {
		return nil, err
	}
	return flights, nil
}

// WithoutTracks returns flights that have no waypoint samples yet, the
// candidates for a track sync pass.
func (r *FlightRepository) WithoutTracks(ctx context.Context, limit int) ([]models.Flight, error) {
	var flights []models.Flight

	query := r.db.WithContext(ctx).
		Table("flights").
		Select("flights.*").
		Joins("LEFT JOIN waypoints ON waypoints.flight_id = flights.flight_id").
		Where("waypoints.id IS NULL").
		Order("flights.flight_id")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&flights).Error; err != nil {
		return nil, err
	}
	return flights, nil
}

// Results returns earnings rows, most recently recalculated first.
func (r *FlightRepository) Results(ctx context.Context, limit int) ([]models.Result, error) {
	var results []models.Result

	query := r.db.WithContext(ctx).Order("updated_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// WaypointsByFlight returns a flight's track samples in insertion order.
func (r *FlightRepository) WaypointsByFlight(ctx context.Context, flightID string) ([]models.Waypoint, error) {
	var waypoints []models.Waypoint

	err := r.db.WithContext(ctx).
		Where("flight_id = ?", flightID).
		Order("id").
		Find(&waypoints).Error
	if err != nil {
		return nil, err
	}
	return waypoints, nil
}
