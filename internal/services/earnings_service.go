package services

import (
	"context"
	"fmt"
	"math"

	gormlib "gorm.io/gorm"

	"github.com/5outh/towerlog/internal/db/repositories"
	"github.com/5outh/towerlog/internal/ingest"
	"github.com/5outh/towerlog/internal/logging"
	models "github.com/5outh/towerlog/internal/models/gorm"
)

const (
	// Fallback dollars-per-mile when no pay table row matches the flight.
	defaultPayRate = 0.65

	// Proposed earnings model a flat 15% raise over current pay.
	proposedRaiseFactor = 1.15

	earthRadiusMiles = 3958.8
)

// EarningsService computes per-flight pilot earnings from flown distance
// and the pay rate table, nets out state income tax, and persists one
// Result row per flight.
type EarningsService struct {
	db       *gormlib.DB
	entities *repositories.EntityRepository
	flights  *repositories.FlightRepository
	airports *repositories.AirportRepository
}

func NewEarningsService(
	db *gormlib.DB,
	entities *repositories.EntityRepository,
	flights *repositories.FlightRepository,
	airports *repositories.AirportRepository,
) *EarningsService {
	return &EarningsService{
		db:       db,
		entities: entities,
		flights:  flights,
		airports: airports,
	}
}

// RecalculateAll recomputes earnings for every stored flight. Flights
// whose distance cannot be established contribute a zero-earnings row
// rather than failing the pass.
func (s *EarningsService) RecalculateAll(ctx context.Context) (*ingest.Stats, error) {
	log := logging.WithJob("earnings")

	flights, err := s.flights.Recent(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load flights: %w", err)
	}

	stats := ingest.NewStats()
	for _, flight := range flights {
		if ctx.Err() != nil {
			return stats, ctx.Err()
		}
		if err := s.recalculateOne(ctx, flight, stats); err != nil {
			log.Warnw("Skipping flight after earnings failure",
				"flight_id", flight.FlightID,
				"error", err.Error(),
			)
		}
	}

	log.Infow("Earnings recalculated",
		"flights", len(flights),
		"created", stats.Created[ingest.KindResult],
		"updated", stats.Updated[ingest.KindResult],
	)
	return stats, nil
}

func (s *EarningsService) recalculateOne(ctx context.Context, flight models.Flight, stats *ingest.Stats) error {
	miles, err := s.flightDistance(ctx, flight)
	if err != nil {
		return err
	}

	rate := s.payRate(ctx, flight.ALCode, flight.AirplaneCode)
	gross := miles * rate

	taxRate, err := s.taxRate(ctx, flight, gross)
	if err != nil {
		return err
	}

	current := roundCents(gross * (1 - taxRate))
	proposed := roundCents(current * proposedRaiseFactor)

	rec := ingest.Record{
		Kind: ingest.KindResult,
		Fields: ingest.Fields{
			"flight_id":         flight.FlightID,
			"current_earnings":  current,
			"proposed_earnings": proposed,
		},
	}
	created, err := s.entities.Upsert(ctx, rec)
	if err != nil {
		return err
	}
	stats.Add(ingest.KindResult, created)
	return nil
}

// flightDistance sums the haversine legs between consecutive track
// samples. Flights without a usable track fall back to the straight-line
// distance between their departure and destination airports; zero when
// neither source yields coordinates.
func (s *EarningsService) flightDistance(ctx context.Context, flight models.Flight) (float64, error) {
	waypoints, err := s.flights.WaypointsByFlight(ctx, flight.FlightID)
	if err != nil {
		return 0, err
	}

	var miles float64
	var prev *models.Waypoint
	for i := range waypoints {
		wp := &waypoints[i]
		if wp.Lat == nil || wp.Lon == nil {
			continue
		}
		if prev != nil {
			miles += haversineMiles(*prev.Lat, *prev.Lon, *wp.Lat, *wp.Lon)
		}
		prev = wp
	}
	if miles > 0 {
		return miles, nil
	}

	dept, err := s.airports.FindByCode(ctx, flight.Dept)
	if err != nil {
		return 0, err
	}
	dest, err := s.airports.FindByCode(ctx, flight.Dest)
	if err != nil {
		return 0, err
	}
	if dept == nil || dest == nil ||
		dept.Lat == nil || dept.Lon == nil || dest.Lat == nil || dest.Lon == nil {
		return 0, nil
	}
	return haversineMiles(*dept.Lat, *dept.Lon, *dest.Lat, *dest.Lon), nil
}

// payRate resolves the pay table row for the flight's airline and
// equipment, falling back to the airline's generic rate, then to the
// default.
func (s *EarningsService) payRate(ctx context.Context, alCode, airplaneCode string) float64 {
	var pay models.PilotPay

	err := s.db.WithContext(ctx).
		Where("al_code = ? AND airplane_code = ?", alCode, airplaneCode).
		First(&pay).Error
	if err == nil {
		return pay.Rate
	}

	err = s.db.WithContext(ctx).
		Where("al_code = ?", alCode).
		Order("id").
		First(&pay).Error
	if err == nil {
		return pay.Rate
	}

	return defaultPayRate
}

// taxRate looks up the income-tax bracket for the departure airport's
// state. No matching bracket means no tax. A bracket_end of zero is
// open-ended.
func (s *EarningsService) taxRate(ctx context.Context, flight models.Flight, gross float64) (float64, error) {
	dept, err := s.airports.FindByCode(ctx, flight.Dept)
	if err != nil {
		return 0, err
	}
	if dept == nil || dept.StateCode == "" || dept.StateCode == ingest.Unknown {
		return 0, nil
	}

	var bracket models.Tax
	err = s.db.WithContext(ctx).
		Where("state_code = ? AND bracket_start <= ? AND (bracket_end >= ? OR bracket_end = 0)",
			dept.StateCode, gross, gross).
		Order("bracket_start DESC").
		First(&bracket).Error
	if err != nil {
		if err == gormlib.ErrRecordNotFound {
			return 0, nil
		}
		return 0, err
	}
	return bracket.IncomeTax, nil
}

func haversineMiles(lat1, lon1, lat2, lon2 float64) float64 {
	const degToRad = math.Pi / 180

	dLat := (lat2 - lat1) * degToRad
	dLon := (lon2 - lon1) * degToRad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*degToRad)*math.Cos(lat2*degToRad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusMiles * math.Asin(math.Sqrt(a))
}

func roundCents(x float64) float64 {
	return math.Round(x*100) / 100
}
