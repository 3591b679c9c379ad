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

// AirportImportJob pulls the vendor's airport directory for a country
// and upserts a State, City, and Airport per entry. Cities are enriched
// with coordinates from the geolocation directory when it knows them.
type AirportImportJob struct {
	entities *repositories.EntityRepository
	auditLog AuditLog
	provider *providers.FlightStatsProvider
	geocoder *providers.GeocodeProvider
	metrics  *metrics.MetricsRegistry
}

func NewAirportImportJob(
	entities *repositories.EntityRepository,
	auditLog AuditLog,
	provider *providers.FlightStatsProvider,
	geocoder *providers.GeocodeProvider,
	metricsReg *metrics.MetricsRegistry,
) *AirportImportJob {
	return &AirportImportJob{
		entities: entities,
		auditLog: auditLog,
		provider: provider,
		geocoder: geocoder,
		metrics:  metricsReg,
	}
}

// Run imports every airport the vendor lists for the country code.
func (j *AirportImportJob) Run(ctx context.Context, countryCode string) (*RunReport, error) {
	report := NewRunReport()
	log := logging.WithJob("airport_import")

	airports, err := j.provider.AirportsByCountry(ctx, countryCode)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch airports for %s: %w", countryCode, err)
	}

	log.Infow("Importing airports", "country", countryCode, "count", len(airports))
	j.auditLog.Append(ctx, constants.LogCategoryData,
		fmt.Sprintf("Airport import for country %s: %d entries", countryCode, len(airports)))

	for _, data := range airports {
		j.importOne(ctx, data, report)
	}

	report.Finish()
	observeReport(j.metrics, "airport_import", report)
	log.Infow("Airport import done",
		"elapsed", report.Elapsed.String(),
		"created", report.Stats.Created[ingest.KindAirport],
		"updated", report.Stats.Updated[ingest.KindAirport],
	)
	return report, nil
}

func (j *AirportImportJob) importOne(ctx context.Context, data map[string]any, report *RunReport) {
	airportRec, err := ingest.ExtractAirport(data)
	if err != nil {
		report.AddDiagnostic("extract", "RECORD_SKIPPED", err.Error())
		return
	}
	cityRec := ingest.ExtractCity(data)
	stateRec := ingest.ExtractState(data)

	j.enrichCity(ctx, &cityRec, report)

	// Parents first so the airport's code references resolve.
	for _, rec := range []ingest.Record{stateRec, cityRec, airportRec} {
		created, err := j.entities.Upsert(ctx, rec)
		if err != nil {
			report.AddDiagnostic("store", "UPSERT_FAILED",
				fmt.Sprintf("%s: %v", rec.Kind, err))
			continue
		}
		report.Stats.Add(rec.Kind, created)
	}
}

// enrichCity fills in coordinates from the geolocation directory,
// touching only fields the extractor did not produce.
func (j *AirportImportJob) enrichCity(ctx context.Context, cityRec *ingest.Record, report *RunReport) {
	cityName, _ := cityRec.Fields["city_name"].(string)
	stateCode, _ := cityRec.Fields["state_code"].(string)
	if cityName == ingest.Unknown || stateCode == ingest.Unknown {
		return
	}

	info, err := j.geocoder.CityInfo(ctx, cityName, stateCode)
	if err != nil {
		report.AddDiagnostic("provider", "GEOCODE_FAILED",
			fmt.Sprintf("%s/%s: %v", cityName, stateCode, err))
		return
	}
	if info == nil {
		return
	}

	if _, present := cityRec.Fields["lat"]; !present {
		cityRec.Fields["lat"] = info.Lat
	}
	if _, present := cityRec.Fields["lon"]; !present {
		cityRec.Fields["lon"] = info.Lon
	}
}
