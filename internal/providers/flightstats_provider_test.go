package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/5outh/towerlog/internal/constants"
)

func testProvider(baseURL string) *FlightStatsProvider {
	return &FlightStatsProvider{
		TracksBaseURL:   baseURL,
		AirportsBaseURL: baseURL,
		AirlinesBaseURL: baseURL,
		AppID:           "test-id",
		AppKey:          "test-key",
		Client:          &http.Client{Timeout: 5 * time.Second},
	}
}

func TestAirportStatusRejectsBadWindowBeforeNetwork(t *testing.T) {
	// Any request reaching the server means validation failed to short
	// circuit.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Request must not reach the network on invalid params")
	}))
	defer server.Close()

	provider := testProvider(server.URL)
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		hour     int
		numHours int
	}{
		{"hour too large", 24, 6},
		{"hour negative", -1, 6},
		{"numHours too large", 0, 7},
		{"numHours zero", 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := provider.AirportStatus(context.Background(), "JFK", day, tc.hour, tc.numHours, 5)
			var pErr *ProviderError
			if !errors.As(err, &pErr) {
				t.Fatalf("Expected ProviderError, got %v", err)
			}
			if pErr.Code != constants.ErrCodeInvalidParams {
				t.Errorf("Expected %s, got %s", constants.ErrCodeInvalidParams, pErr.Code)
			}
		})
	}
}

func TestAirportStatusSuccess(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if r.URL.Query().Get("appId") != "test-id" {
			t.Errorf("Missing appId credential, query: %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"flightStatuses": []}`))
	}))
	defer server.Close()

	provider := testProvider(server.URL)
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	body, err := provider.AirportStatus(context.Background(), "JFK", day, 12, 6, 5)
	if err != nil {
		t.Fatalf("AirportStatus failed: %v", err)
	}
	if string(body) != `{"flightStatuses": []}` {
		t.Errorf("Unexpected body: %s", body)
	}
	if gotPath != "/airport/status/JFK/dep/2026/8/30/12" {
		t.Errorf("Unexpected path: %s", gotPath)
	}
}

func TestDoGETMissingCredentials(t *testing.T) {
	provider := testProvider("http://localhost:0")
	provider.AppKey = ""

	_, err := provider.FlightStatus(context.Background(), "42")
	var pErr *ProviderError
	if !errors.As(err, &pErr) {
		t.Fatalf("Expected ProviderError, got %v", err)
	}
	if pErr.Code != constants.ErrCodeMissingCredentials {
		t.Errorf("Expected %s, got %s", constants.ErrCodeMissingCredentials, pErr.Code)
	}
}

func TestDoGETRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	provider := testProvider(server.URL)

	_, err := provider.FlightStatus(context.Background(), "42")
	var pErr *ProviderError
	if !errors.As(err, &pErr) {
		t.Fatalf("Expected ProviderError, got %v", err)
	}
	if pErr.Code != constants.ErrCodeRateLimited {
		t.Errorf("Expected %s, got %s", constants.ErrCodeRateLimited, pErr.Code)
	}
}

func TestDoGETServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	provider := testProvider(server.URL)

	_, err := provider.FlightTracks(context.Background(), "42", 0)
	var pErr *ProviderError
	if !errors.As(err, &pErr) {
		t.Fatalf("Expected ProviderError, got %v", err)
	}
	if pErr.Code != constants.ErrCodeNetworkError {
		t.Errorf("Expected %s, got %s", constants.ErrCodeNetworkError, pErr.Code)
	}
}

func TestAirportsByCountryDecodesDirectory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"airports": [{"fs": "JFK"}, {"fs": "LGA"}]}`))
	}))
	defer server.Close()

	provider := testProvider(server.URL)

	airports, err := provider.AirportsByCountry(context.Background(), "US")
	if err != nil {
		t.Fatalf("AirportsByCountry failed: %v", err)
	}
	if len(airports) != 2 {
		t.Fatalf("Expected 2 airports, got %d", len(airports))
	}
	if airports[0]["fs"] != "JFK" {
		t.Errorf("Expected JFK first, got %v", airports[0]["fs"])
	}
}

func TestAllAirlinesDecodesDirectory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"airlines": [{"fs": "AA", "name": "American Airlines"}]}`))
	}))
	defer server.Close()

	provider := testProvider(server.URL)

	airlines, err := provider.AllAirlines(context.Background())
	if err != nil {
		t.Fatalf("AllAirlines failed: %v", err)
	}
	if len(airlines) != 1 {
		t.Fatalf("Expected 1 airline, got %d", len(airlines))
	}
}
