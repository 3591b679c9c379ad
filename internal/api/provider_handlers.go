package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/5outh/towerlog/internal/constants"
	"github.com/5outh/towerlog/internal/providers"
)

// AirportStatusHandler handles GET /api/airports/{code}/status: a live
// passthrough to the vendor, no persistence.
func AirportStatusHandler(provider *providers.FlightStatsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		hour, err := strconv.Atoi(q.Get("hour"))
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "hour query parameter is required")
			return
		}
		numHours := 1
		if raw := q.Get("numHours"); raw != "" {
			numHours, _ = strconv.Atoi(raw)
		}
		maxFlights := 5
		if raw := q.Get("maxFlights"); raw != "" {
			maxFlights, _ = strconv.Atoi(raw)
		}

		body, err := provider.AirportStatus(r.Context(),
			chi.URLParam(r, "code"), time.Now().UTC(), hour, numHours, maxFlights)
		if err != nil {
			respondWithProviderError(w, err)
			return
		}
		passthroughJSON(w, body)
	}
}

// FlightStatusHandler handles GET /api/flights/{id}/status.
func FlightStatusHandler(provider *providers.FlightStatsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := provider.FlightStatus(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondWithProviderError(w, err)
			return
		}
		passthroughJSON(w, body)
	}
}

// FlightTrackHandler handles GET /api/flights/{id}/track.
func FlightTrackHandler(provider *providers.FlightStatsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		maxPositions, _ := strconv.Atoi(r.URL.Query().Get("maxPositions"))

		body, err := provider.FlightTracks(r.Context(), chi.URLParam(r, "id"), maxPositions)
		if err != nil {
			respondWithProviderError(w, err)
			return
		}
		passthroughJSON(w, body)
	}
}

// AirportDirectoryHandler handles GET /api/airports: the vendor's
// airport directory for one country.
func AirportDirectoryHandler(provider *providers.FlightStatsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		country := r.URL.Query().Get("country")
		if country == "" {
			country = "US"
		}

		airports, err := provider.AirportsByCountry(r.Context(), country)
		if err != nil {
			respondWithProviderError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, &airports)
	}
}

// AirlineDirectoryHandler handles GET /api/airlines.
func AirlineDirectoryHandler(provider *providers.FlightStatsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		airlines, err := provider.AllAirlines(r.Context())
		if err != nil {
			respondWithProviderError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, &airlines)
	}
}

// ReverseGeocodeHandler handles GET /api/geo/state.
func ReverseGeocodeHandler(geocoder *providers.GeocodeProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
		lon, lonErr := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
		if latErr != nil || lonErr != nil {
			respondWithError(w, http.StatusBadRequest, "lat and lon query parameters are required")
			return
		}

		state, err := geocoder.StateForLatLon(r.Context(), lat, lon)
		if err != nil {
			respondWithProviderError(w, err)
			return
		}
		if state == "" {
			respondWithError(w, http.StatusNotFound, "No state for that position")
			return
		}

		result := map[string]string{"state_code": state}
		respondWithSuccess(w, http.StatusOK, &result)
	}
}

// respondWithProviderError maps upstream failure codes onto HTTP
// statuses.
func respondWithProviderError(w http.ResponseWriter, err error) {
	var pErr *providers.ProviderError
	if !errors.As(err, &pErr) {
		respondWithError(w, http.StatusBadGateway, err.Error())
		return
	}

	status := http.StatusBadGateway
	switch pErr.Code {
	case constants.ErrCodeInvalidParams:
		status = http.StatusBadRequest
	case constants.ErrCodeMissingCredentials:
		status = http.StatusServiceUnavailable
	case constants.ErrCodeRateLimited:
		status = http.StatusTooManyRequests
	}
	respondWithError(w, status, pErr.Message)
}

func passthroughJSON(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
