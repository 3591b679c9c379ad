package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/5outh/towerlog/internal/common"
)

func testGeocoder(cityURL, reverseURL string) *GeocodeProvider {
	return &GeocodeProvider{
		CityInfoBaseURL: cityURL,
		ReverseBaseURL:  reverseURL,
		APIKey:          "test-key",
		Client:          &http.Client{Timeout: 5 * time.Second},
		cache:           common.NewCacheService(60, 600),
	}
}

func TestCityInfoParsesAndCaches(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`[{"name": "Atlanta", "primary_latitude": "33.749", "primary_longitude": "-84.388", "state_abbreviation": "GA"}]`))
	}))
	defer server.Close()

	geocoder := testGeocoder(server.URL, server.URL)
	ctx := context.Background()

	info, err := geocoder.CityInfo(ctx, "Atlanta", "GA")
	if err != nil {
		t.Fatalf("CityInfo failed: %v", err)
	}
	if info == nil {
		t.Fatal("Expected a city info result")
	}
	if info.Lat != 33.749 || info.Lon != -84.388 {
		t.Errorf("Unexpected coordinates: %v, %v", info.Lat, info.Lon)
	}

	// Second lookup is served from cache.
	if _, err := geocoder.CityInfo(ctx, "Atlanta", "GA"); err != nil {
		t.Fatalf("Cached CityInfo failed: %v", err)
	}
	if hits != 1 {
		t.Errorf("Expected 1 upstream hit, got %d", hits)
	}
}

func TestCityInfoNoMatchIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	geocoder := testGeocoder(server.URL, server.URL)

	info, err := geocoder.CityInfo(context.Background(), "Nowhere", "ZZ")
	if err != nil {
		t.Fatalf("CityInfo failed: %v", err)
	}
	if info != nil {
		t.Errorf("Expected nil for unknown city, got %+v", info)
	}
}

func TestStateForLatLonFindsAdminArea(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"status": "OK",
			"results": [{
				"address_components": [
					{"short_name": "Fulton County", "types": ["administrative_area_level_2"]},
					{"short_name": "GA", "types": ["administrative_area_level_1", "political"]}
				]
			}]
		}`))
	}))
	defer server.Close()

	geocoder := testGeocoder(server.URL, server.URL)

	state, err := geocoder.StateForLatLon(context.Background(), 33.749, -84.388)
	if err != nil {
		t.Fatalf("StateForLatLon failed: %v", err)
	}
	if state != "GA" {
		t.Errorf("Expected GA, got %q", state)
	}
}

func TestStateForLatLonZeroResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	}))
	defer server.Close()

	geocoder := testGeocoder(server.URL, server.URL)

	state, err := geocoder.StateForLatLon(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("StateForLatLon failed: %v", err)
	}
	if state != "" {
		t.Errorf("Expected empty state for open ocean, got %q", state)
	}
}
