package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/5outh/towerlog/internal/db/repositories"
	"github.com/5outh/towerlog/internal/ingest"
	"github.com/5outh/towerlog/internal/jobs"
	"github.com/5outh/towerlog/internal/models/dtos/responses"
	"github.com/5outh/towerlog/internal/services"
)

// AdminUpdateHandler handles POST /admin/update/{what}. The path segment
// selects which ingestion action runs; the response carries the per-kind
// tally lines and any diagnostics the run produced.
func AdminUpdateHandler(jobSet *jobs.Jobs, earnings *services.EarningsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var (
			report *jobs.RunReport
			err    error
		)

		switch chi.URLParam(r, "what") {
		case "all":
			report, err = jobSet.DailyUpdate.Run(ctx)

		case "airports":
			country := r.URL.Query().Get("country")
			if country == "" {
				country = "US"
			}
			report, err = jobSet.AirportImport.Run(ctx, country)

		case "airlines":
			report, err = jobSet.AirlineImport.Run(ctx)

		case "flights":
			state := r.URL.Query().Get("state")
			if state == "" {
				respondWithError(w, http.StatusBadRequest, "state query parameter is required")
				return
			}
			report, err = jobSet.DailyUpdate.RunState(ctx, state)

		case "tracks":
			limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
			report, err = jobSet.TrackSync.Run(ctx, limit)

		case "earnings":
			started := time.Now()
			var stats *ingest.Stats
			stats, err = earnings.RecalculateAll(ctx)
			if err == nil {
				summary := &responses.RunSummary{
					Messages: stats.Messages(),
					Elapsed:  time.Since(started).Truncate(time.Millisecond).String(),
				}
				respondWithSuccess(w, http.StatusOK, summary)
				return
			}

		default:
			respondWithError(w, http.StatusBadRequest, "Did not recognize that")
			return
		}

		if err != nil {
			if errors.Is(err, jobs.ErrRunInProgress) {
				respondWithError(w, http.StatusConflict, err.Error())
				return
			}
			respondWithError(w, http.StatusBadGateway, err.Error())
			return
		}

		respondWithSuccess(w, http.StatusOK, summarize(report))
	}
}

// AdminDeleteHandler handles POST /admin/delete/{what}. Only the audit
// log can be deleted; anything else is refused.
func AdminDeleteHandler(auditLog *repositories.LogRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch chi.URLParam(r, "what") {
		case "Logger":
			if err := auditLog.Purge(r.Context()); err != nil {
				respondWithError(w, http.StatusInternalServerError, err.Error())
				return
			}
			summary := &responses.RunSummary{Messages: []string{"Deleted logs"}}
			respondWithSuccess(w, http.StatusOK, summary)

		default:
			respondWithError(w, http.StatusBadRequest, "Probably don't want to do that")
		}
	}
}

// AdminLogsHandler handles GET /admin/logs.
func AdminLogsHandler(auditLog *repositories.LogRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		rows, err := auditLog.Recent(r.Context(), limit)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondWithSuccess(w, http.StatusOK, &rows)
	}
}

func summarize(report *jobs.RunReport) *responses.RunSummary {
	summary := &responses.RunSummary{
		Messages: report.Messages(),
		Elapsed:  report.Elapsed.Truncate(time.Millisecond).String(),
	}
	for _, d := range report.Diagnostics {
		summary.Diagnostics = append(summary.Diagnostics, responses.RunDiagnostic{
			Source:  d.Source,
			Code:    d.Code,
			Message: d.Message,
		})
	}
	return summary
}
