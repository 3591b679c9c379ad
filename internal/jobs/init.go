package jobs

import (
	"context"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	gormlib "gorm.io/gorm"

	"github.com/5outh/towerlog/internal/common"
	"github.com/5outh/towerlog/internal/db/repositories"
	"github.com/5outh/towerlog/internal/logging"
	"github.com/5outh/towerlog/internal/metrics"
	"github.com/5outh/towerlog/internal/providers"
)

const defaultIngestInterval = 24 * time.Hour

// Jobs bundles every ingestion job behind one handle for the routes and
// the scheduler.
type Jobs struct {
	DailyUpdate   *DailyUpdateJob
	AirportImport *AirportImportJob
	AirlineImport *AirlineImportJob
	TrackSync     *TrackSyncJob
}

// InitializeJobs wires the repositories and providers into the job set.
func InitializeJobs(orm *gormlib.DB, sqlxDB *sqlx.DB, cache common.CacheInterface, metricsReg *metrics.MetricsRegistry) *Jobs {
	entities := repositories.NewEntityRepository(orm)
	airports := repositories.NewAirportRepository(orm)
	states := repositories.NewStateRepository(orm)
	flights := repositories.NewFlightRepository(orm)
	auditLog := repositories.NewLogRepository(sqlxDB)

	flightStats := providers.NewFlightStatsProvider()
	geocoder := providers.NewGeocodeProvider(cache)

	return &Jobs{
		DailyUpdate:   NewDailyUpdateJob(entities, airports, states, auditLog, flightStats, metricsReg),
		AirportImport: NewAirportImportJob(entities, auditLog, flightStats, geocoder, metricsReg),
		AirlineImport: NewAirlineImportJob(entities, auditLog, flightStats, metricsReg),
		TrackSync:     NewTrackSyncJob(entities, flights, auditLog, flightStats, metricsReg),
	}
}

// StartScheduler kicks off the recurring daily update in the background.
// The interval comes from INGEST_INTERVAL (Go duration syntax).
func (j *Jobs) StartScheduler(ctx context.Context) {
	interval := defaultIngestInterval
	if raw := os.Getenv("INGEST_INTERVAL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			logging.Warn("Invalid INGEST_INTERVAL, using default",
				"raw", raw,
				"default", defaultIngestInterval.String(),
			)
		} else {
			interval = parsed
		}
	}

	logging.Info("Starting ingestion scheduler", "interval", interval.String())
	go j.DailyUpdate.RunScheduled(ctx, interval)
}
