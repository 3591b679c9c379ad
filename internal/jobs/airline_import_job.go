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

// AirlineImportJob pulls the vendor's full airline directory and upserts
// every carrier by its fs code.
type AirlineImportJob struct {
	entities *repositories.EntityRepository
	auditLog AuditLog
	provider *providers.FlightStatsProvider
	metrics  *metrics.MetricsRegistry
}

func NewAirlineImportJob(
	entities *repositories.EntityRepository,
	auditLog AuditLog,
	provider *providers.FlightStatsProvider,
	metricsReg *metrics.MetricsRegistry,
) *AirlineImportJob {
	return &AirlineImportJob{
		entities: entities,
		auditLog: auditLog,
		provider: provider,
		metrics:  metricsReg,
	}
}

func (j *AirlineImportJob) Run(ctx context.Context) (*RunReport, error) {
	report := NewRunReport()
	log := logging.WithJob("airline_import")

	airlines, err := j.provider.AllAirlines(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch airlines: %w", err)
	}

	log.Infow("Importing airlines", "count", len(airlines))
	j.auditLog.Append(ctx, constants.LogCategoryData,
		fmt.Sprintf("Airline import: %d entries", len(airlines)))

	for _, data := range airlines {
		rec, err := ingest.ExtractAirline(data)
		if err != nil {
			report.AddDiagnostic("extract", "RECORD_SKIPPED", err.Error())
			continue
		}
		created, err := j.entities.Upsert(ctx, rec)
		if err != nil {
			report.AddDiagnostic("store", "UPSERT_FAILED",
				fmt.Sprintf("%s: %v", rec.Kind, err))
			continue
		}
		report.Stats.Add(rec.Kind, created)
	}

	report.Finish()
	observeReport(j.metrics, "airline_import", report)
	log.Infow("Airline import done",
		"elapsed", report.Elapsed.String(),
		"created", report.Stats.Created[ingest.KindAirline],
		"updated", report.Stats.Updated[ingest.KindAirline],
	)
	return report, nil
}
