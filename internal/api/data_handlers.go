package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/5outh/towerlog/internal/db/repositories"
)

// DataViewHandler handles GET /data/view/{type}: read-only listings of
// the stored entities for the admin console.
func DataViewHandler(repo *Repositories) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		switch chi.URLParam(r, "type") {
		case "states":
			rows, err := repo.States.All(ctx)
			respondList(w, &rows, err)

		case "airports":
			state := r.URL.Query().Get("state")
			if state == "" {
				respondWithError(w, http.StatusBadRequest, "state query parameter is required")
				return
			}
			rows, err := repo.Airports.ByState(ctx, state)
			respondList(w, &rows, err)

		case "airlines":
			rows, err := repo.Airlines.All(ctx, limit)
			respondList(w, &rows, err)

		case "flights":
			rows, err := repo.Flights.Recent(ctx, limit)
			respondList(w, &rows, err)

		case "waypoints":
			flightID := r.URL.Query().Get("flight_id")
			if flightID == "" {
				respondWithError(w, http.StatusBadRequest, "flight_id query parameter is required")
				return
			}
			rows, err := repo.Flights.WaypointsByFlight(ctx, flightID)
			respondList(w, &rows, err)

		case "results":
			rows, err := repo.Flights.Results(ctx, limit)
			respondList(w, &rows, err)

		case "logs":
			rows, err := repo.Logs.Recent(ctx, limit)
			respondList(w, &rows, err)

		default:
			respondWithError(w, http.StatusBadRequest, "Did not recognize that")
		}
	}
}

// AirportLookupHandler handles GET /data/airports/{code}.
func AirportLookupHandler(airports *repositories.AirportRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		airport, err := airports.FindByCode(r.Context(), chi.URLParam(r, "code"))
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if airport == nil {
			respondWithError(w, http.StatusNotFound, "No such airport")
			return
		}
		respondWithSuccess(w, http.StatusOK, airport)
	}
}

func respondList[T any](w http.ResponseWriter, rows *T, err error) {
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondWithSuccess(w, http.StatusOK, rows)
}
