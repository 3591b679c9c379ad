package api

import (
	"github.com/5outh/towerlog/internal/auth"
	"github.com/5outh/towerlog/internal/common"
	"github.com/5outh/towerlog/internal/db"
	"github.com/5outh/towerlog/internal/db/repositories"
	"github.com/5outh/towerlog/internal/providers"
	"github.com/5outh/towerlog/internal/services"
)

type Repositories struct {
	Entities *repositories.EntityRepository
	Airports *repositories.AirportRepository
	Airlines *repositories.AirlineRepository
	States   *repositories.StateRepository
	Flights  *repositories.FlightRepository
	Logs     *repositories.LogRepository
	Keys     *repositories.KeysRepo
}

type Services struct {
	Cache       common.CacheInterface
	FlightStats *providers.FlightStatsProvider
	Geocoder    *providers.GeocodeProvider
	Earnings    *services.EarningsService
	Tokens      *auth.TokenService
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
}

func InitDependencies() (*Dependencies, error) {

	repos := &Repositories{
		Entities: repositories.NewEntityRepository(db.PgDB),
		Airports: repositories.NewAirportRepository(db.PgDB),
		Airlines: repositories.NewAirlineRepository(db.PgDB),
		States:   repositories.NewStateRepository(db.PgDB),
		Flights:  repositories.NewFlightRepository(db.PgDB),
		Logs:     repositories.NewLogRepository(db.DB),
		Keys:     repositories.NewApiKeysRepo(db.DB),
	}

	cacheSvc := common.NewCacheFromEnv()
	tokens, err := auth.NewTokenServiceFromEnv()
	if err != nil {
		return nil, err
	}

	svcs := &Services{
		Cache:       cacheSvc,
		FlightStats: providers.NewFlightStatsProvider(),
		Geocoder:    providers.NewGeocodeProvider(cacheSvc),
		Earnings:    services.NewEarningsService(db.PgDB, repos.Entities, repos.Flights, repos.Airports),
		Tokens:      tokens,
	}

	return &Dependencies{
		Repo:     repos,
		Services: svcs,
	}, nil
}
