package jobs

import (
	"context"
	"fmt"

	"github.com/5outh/towerlog/internal/constants"
	"github.com/5outh/towerlog/internal/db/repositories"
	"github.com/5outh/towerlog/internal/ingest"
	"github.com/5outh/towerlog/internal/logging"
	"github.com/5outh/towerlog/internal/metrics"
	"github.com/5outh/towerlog/internal/providers"
)

const defaultTrackBatchSize = 25

// TrackSyncJob backfills waypoint tracks for flights that were ingested
// from status payloads but have no position samples yet.
type TrackSyncJob struct {
	entities *repositories.EntityRepository
	flights  *repositories.FlightRepository
	auditLog AuditLog
	provider *providers.FlightStatsProvider
	metrics  *metrics.MetricsRegistry
}

func NewTrackSyncJob(
	entities *repositories.EntityRepository,
	flights *repositories.FlightRepository,
	auditLog AuditLog,
	provider *providers.FlightStatsProvider,
	metricsReg *metrics.MetricsRegistry,
) *TrackSyncJob {
	return &TrackSyncJob{
		entities: entities,
		flights:  flights,
		auditLog: auditLog,
		provider: provider,
		metrics:  metricsReg,
	}
}

// Run fetches tracks for up to limit trackless flights. limit <= 0 uses
// the default batch size.
func (j *TrackSyncJob) Run(ctx context.Context, limit int) (*RunReport, error) {
	if limit <= 0 {
		limit = defaultTrackBatchSize
	}

	report := NewRunReport()
	log := logging.WithJob("track_sync")

	flights, err := j.flights.WithoutTracks(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load trackless flights: %w", err)
	}

	log.Infow("Syncing flight tracks", "flights", len(flights))
	j.auditLog.Append(ctx, constants.LogCategoryData,
		fmt.Sprintf("Track sync: %d flights without waypoints", len(flights)))

	for _, flight := range flights {
		if ctx.Err() != nil {
			report.AddDiagnostic("orchestrator", "RUN_CANCELLED", ctx.Err().Error())
			break
		}

		raw, err := j.provider.FlightTracks(ctx, flight.FlightID, 0)
		if err != nil {
			j.metrics.ProviderRequestsTotal.WithLabelValues("flight_track", "error").Inc()
			report.AddDiagnostic("provider", "FETCH_FAILED",
				fmt.Sprintf("flight %s: %v", flight.FlightID, err))
			continue
		}
		j.metrics.ProviderRequestsTotal.WithLabelValues("flight_track", "ok").Inc()

		batch, err := ingest.ExtractResponse(raw)
		if err != nil {
			report.AddDiagnostic("extract", "MALFORMED_RESPONSE",
				fmt.Sprintf("flight %s: %v", flight.FlightID, err))
			continue
		}
		report.Diagnostics = append(report.Diagnostics, batch.Diagnostics...)

		j.entities.MassUpsert(ctx, batch, report.Stats)
	}

	report.Finish()
	observeReport(j.metrics, "track_sync", report)
	log.Infow("Track sync done",
		"elapsed", report.Elapsed.String(),
		"waypoints", report.Stats.Created[ingest.KindWaypoint],
	)
	return report, nil
}
