package jobs

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/5outh/towerlog/internal/constants"
	"github.com/5outh/towerlog/internal/db/repositories"
	"github.com/5outh/towerlog/internal/ingest"
	"github.com/5outh/towerlog/internal/logging"
	"github.com/5outh/towerlog/internal/metrics"
	"github.com/5outh/towerlog/internal/providers"
)

// A day of departures is paged through four 6-hour windows.
var hourWindows = [4]int{0, 6, 12, 18}

const (
	windowSpan        = 6
	defaultMaxFlights = 5
)

// DailyUpdateJob drives the full ingestion workflow: for every known
// state, fetch each airport's departing flights in four time slices,
// extract and upsert whatever comes back. One fetch at a time; a failed
// slice yields a diagnostic and the loop moves on.
type DailyUpdateJob struct {
	entities *repositories.EntityRepository
	airports *repositories.AirportRepository
	states   *repositories.StateRepository
	auditLog AuditLog
	provider *providers.FlightStatsProvider
	metrics  *metrics.MetricsRegistry

	// Weight-1 guard so the scheduler and a manual admin trigger can
	// never run the pipeline concurrently.
	sem *semaphore.Weighted
}

func NewDailyUpdateJob(
	entities *repositories.EntityRepository,
	airports *repositories.AirportRepository,
	states *repositories.StateRepository,
	auditLog AuditLog,
	provider *providers.FlightStatsProvider,
	metricsReg *metrics.MetricsRegistry,
) *DailyUpdateJob {
	return &DailyUpdateJob{
		entities: entities,
		airports: airports,
		states:   states,
		auditLog: auditLog,
		provider: provider,
		metrics:  metricsReg,
		sem:      semaphore.NewWeighted(1),
	}
}

// Run executes the daily update across every state.
func (j *DailyUpdateJob) Run(ctx context.Context) (*RunReport, error) {
	if !j.sem.TryAcquire(1) {
		return nil, ErrRunInProgress
	}
	defer j.sem.Release(1)

	report := NewRunReport()
	log := logging.WithJob("daily_update")

	log.Infow("Starting daily update", "started", report.Started.Format(time.RFC3339))
	j.auditLog.Append(ctx, constants.LogCategoryData,
		fmt.Sprintf("Call to daily update at %s", report.Started.Format(time.RFC3339)))

	states, err := j.states.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load states: %w", err)
	}

	for _, state := range states {
		if ctx.Err() != nil {
			report.AddDiagnostic("orchestrator", "RUN_CANCELLED", ctx.Err().Error())
			break
		}
		j.runState(ctx, state.StateCode, report)
	}

	report.Finish()
	observeReport(j.metrics, "daily_update", report)

	j.auditLog.Append(ctx, constants.LogCategoryDebug,
		fmt.Sprintf("Daily update start: %s; elapsed: %s;",
			report.Started.Format(time.RFC3339), report.Elapsed.Truncate(time.Millisecond)))
	for _, msg := range report.Messages() {
		j.auditLog.Append(ctx, constants.LogCategoryData, "dailyUpdate - "+msg)
	}

	log.Infow("Completed daily update",
		"elapsed", report.Elapsed.Truncate(time.Millisecond).String(),
		"states", len(states),
		"diagnostics", len(report.Diagnostics),
	)
	return report, nil
}

// RunState executes the update for one state only, for the admin
// "update flights" action.
func (j *DailyUpdateJob) RunState(ctx context.Context, stateCode string) (*RunReport, error) {
	if !j.sem.TryAcquire(1) {
		return nil, ErrRunInProgress
	}
	defer j.sem.Release(1)

	report := NewRunReport()
	j.runState(ctx, stateCode, report)
	report.Finish()
	observeReport(j.metrics, "state_update", report)
	return report, nil
}

// runState fetches and ingests one state's airports. Caller holds the
// run guard.
func (j *DailyUpdateJob) runState(ctx context.Context, stateCode string, report *RunReport) {
	log := logging.WithJob("daily_update")

	airports, err := j.airports.ByState(ctx, stateCode)
	if err != nil {
		report.AddDiagnostic("store", "AIRPORT_LOOKUP_FAILED",
			fmt.Sprintf("state %s: %v", stateCode, err))
		return
	}

	day := time.Now().UTC()
	j.auditLog.Append(ctx, constants.LogCategoryData,
		fmt.Sprintf("Flight update for state %s: %d airports on %s",
			stateCode, len(airports), day.Format("2006-01-02")))

	start := time.Now()
	flightsBefore := report.Stats.Created[ingest.KindFlight] + report.Stats.Updated[ingest.KindFlight]

	for _, airport := range airports {
		for _, hour := range hourWindows {
			raw, err := j.provider.AirportStatus(ctx, airport.APCode, day, hour, windowSpan, defaultMaxFlights)
			if err != nil {
				// Non-fatal: the slice contributes no records and the
				// failure stays visible on the report.
				j.metrics.ProviderRequestsTotal.WithLabelValues("airport_status", "error").Inc()
				report.AddDiagnostic("provider", "FETCH_FAILED",
					fmt.Sprintf("%s hour %d: %v", airport.APCode, hour, err))
				continue
			}
			j.metrics.ProviderRequestsTotal.WithLabelValues("airport_status", "ok").Inc()

			batch, err := ingest.ExtractResponse(raw)
			if err != nil {
				report.AddDiagnostic("extract", "MALFORMED_RESPONSE",
					fmt.Sprintf("%s hour %d: %v", airport.APCode, hour, err))
				continue
			}
			report.Diagnostics = append(report.Diagnostics, batch.Diagnostics...)

			j.entities.MassUpsert(ctx, batch, report.Stats)
		}
	}

	flights := report.Stats.Created[ingest.KindFlight] + report.Stats.Updated[ingest.KindFlight] - flightsBefore
	elapsed := time.Since(start)
	j.auditLog.Append(ctx, constants.LogCategoryDebug,
		fmt.Sprintf("State %s: %d airports have ( %d ) flights. elapsed: %s;",
			stateCode, len(airports), flights, elapsed.Truncate(time.Millisecond)))
	log.Infow("State update done",
		"state", stateCode,
		"airports", len(airports),
		"flights", flights,
		"elapsed", elapsed.Truncate(time.Millisecond).String(),
	)
}

// RunScheduled runs the daily update on a fixed interval until the
// context is cancelled.
func (j *DailyUpdateJob) RunScheduled(ctx context.Context, interval time.Duration) {
	log := logging.WithJob("daily_update")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Run immediately on start
	if _, err := j.Run(ctx); err != nil {
		log.Warnw("Initial scheduled run failed", "error", err.Error())
	}

	for {
		select {
		case <-ticker.C:
			if _, err := j.Run(ctx); err != nil {
				log.Warnw("Scheduled run failed", "error", err.Error())
			}
		case <-ctx.Done():
			log.Infow("Shutting down scheduled daily update")
			return
		}
	}
}
