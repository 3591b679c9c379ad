package jobs

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	gormlib "gorm.io/gorm"

	"github.com/5outh/towerlog/internal/db/repositories"
	"github.com/5outh/towerlog/internal/ingest"
	"github.com/5outh/towerlog/internal/metrics"
	models "github.com/5outh/towerlog/internal/models/gorm"
	"github.com/5outh/towerlog/internal/providers"
)

// Prometheus collectors register globally, so the test binary shares one
// registry.
var (
	testMetrics     *metrics.MetricsRegistry
	testMetricsOnce sync.Once
)

func testRegistry() *metrics.MetricsRegistry {
	testMetricsOnce.Do(func() {
		testMetrics = metrics.NewMetricsRegistry()
	})
	return testMetrics
}

type fakeAuditLog struct {
	mu      sync.Mutex
	entries []string
}

func (f *fakeAuditLog) Append(ctx context.Context, category, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, category+": "+message)
}

func setupTestDB(t *testing.T) *gormlib.DB {
	db, err := gormlib.Open(sqlite.Open(":memory:"), &gormlib.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.State{},
		&models.City{},
		&models.Airport{},
		&models.Airline{},
		&models.Airplane{},
		&models.Flight{},
		&models.Waypoint{},
		&models.Result{},
	); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return db
}

func testFlightStats(baseURL string) *providers.FlightStatsProvider {
	return &providers.FlightStatsProvider{
		TracksBaseURL:   baseURL,
		AirportsBaseURL: baseURL,
		AirlinesBaseURL: baseURL,
		AppID:           "test-id",
		AppKey:          "test-key",
		Client:          &http.Client{Timeout: 5 * time.Second},
	}
}

func newTestDailyUpdateJob(db *gormlib.DB, provider *providers.FlightStatsProvider, audit *fakeAuditLog) *DailyUpdateJob {
	return NewDailyUpdateJob(
		repositories.NewEntityRepository(db),
		repositories.NewAirportRepository(db),
		repositories.NewStateRepository(db),
		audit,
		provider,
		testRegistry(),
	)
}

func seedStateAndAirport(t *testing.T, db *gormlib.DB) {
	if err := db.Create(&models.State{StateCode: "NY"}).Error; err != nil {
		t.Fatalf("Failed to seed state: %v", err)
	}
	if err := db.Create(&models.Airport{APCode: "JFK", StateCode: "NY"}).Error; err != nil {
		t.Fatalf("Failed to seed airport: %v", err)
	}
}

const statusResponse = `{
	"appendix": {
		"airports": [{"fs": "JFK", "stateCode": "NY"}, {"fs": "LAX", "stateCode": "CA"}],
		"airlines": [{"fs": "AA", "name": "American Airlines"}]
	},
	"flightStatuses": [
		{"flightId": 1, "carrierFsCode": "AA", "departureAirportFsCode": "JFK", "status": "S"},
		{"flightId": 2, "carrierFsCode": "AA", "departureAirportFsCode": "JFK", "status": "A"},
		{"flightId": 3, "carrierFsCode": "AA", "departureAirportFsCode": "JFK", "status": "L"}
	]
}`

func TestDailyUpdateRunIngestsEveryWindow(t *testing.T) {
	fetches := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		w.Write([]byte(statusResponse))
	}))
	defer server.Close()

	db := setupTestDB(t)
	seedStateAndAirport(t, db)
	audit := &fakeAuditLog{}
	job := newTestDailyUpdateJob(db, testFlightStats(server.URL), audit)

	report, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// One airport, four hour windows.
	if fetches != 4 {
		t.Errorf("Expected 4 fetches, got %d", fetches)
	}

	// The same three flights come back every window: created once,
	// updated on the remaining three.
	if report.Stats.Created[ingest.KindFlight] != 3 {
		t.Errorf("Expected 3 created flights, got %d", report.Stats.Created[ingest.KindFlight])
	}
	if report.Stats.Updated[ingest.KindFlight] != 9 {
		t.Errorf("Expected 9 updated flights, got %d", report.Stats.Updated[ingest.KindFlight])
	}
	if report.Stats.Created[ingest.KindAirline] != 1 {
		t.Errorf("Expected 1 created airline, got %d", report.Stats.Created[ingest.KindAirline])
	}

	// LAX is new; JFK was seeded so its first sighting is an update.
	if report.Stats.Created[ingest.KindAirport] != 1 {
		t.Errorf("Expected 1 created airport, got %d", report.Stats.Created[ingest.KindAirport])
	}

	if len(audit.entries) == 0 {
		t.Error("Expected audit entries from the run")
	}

	var flightCount int64
	if err := db.Model(&models.Flight{}).Count(&flightCount).Error; err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if flightCount != 3 {
		t.Errorf("Expected 3 flight rows, got %d", flightCount)
	}
}

func TestDailyUpdateFetchFailureIsNonFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	defer server.Close()

	db := setupTestDB(t)
	seedStateAndAirport(t, db)
	job := newTestDailyUpdateJob(db, testFlightStats(server.URL), &fakeAuditLog{})

	report, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("Run must not fail on fetch errors: %v", err)
	}

	if len(report.Diagnostics) != 4 {
		t.Fatalf("Expected 4 diagnostics, got %d", len(report.Diagnostics))
	}
	for _, d := range report.Diagnostics {
		if d.Code != "FETCH_FAILED" {
			t.Errorf("Expected FETCH_FAILED, got %s", d.Code)
		}
	}
	if report.Stats.Created[ingest.KindFlight] != 0 {
		t.Errorf("Expected no flights, got %d", report.Stats.Created[ingest.KindFlight])
	}
}

func TestDailyUpdateSingleRunGuard(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	db := setupTestDB(t)
	seedStateAndAirport(t, db)
	job := newTestDailyUpdateJob(db, testFlightStats(server.URL), &fakeAuditLog{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = job.Run(context.Background())
	}()

	// Give the first run time to take the guard.
	time.Sleep(100 * time.Millisecond)

	if _, err := job.Run(context.Background()); !errors.Is(err, ErrRunInProgress) {
		t.Errorf("Expected ErrRunInProgress, got %v", err)
	}

	close(release)
	<-done
}

func TestTrackSyncBackfillsWaypoints(t *testing.T) {
	trackResponse := `{
		"flightTrack": {
			"flightId": 99,
			"positions": [
				{"lat": 40.64, "lon": -73.78, "date": "2026-08-30T12:00:00.000Z"},
				{"lat": 40.70, "lon": -73.90, "date": "2026-08-30T12:01:00.000Z"}
			]
		}
	}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(trackResponse))
	}))
	defer server.Close()

	db := setupTestDB(t)
	if err := db.Create(&models.Flight{FlightID: "99", Status: "L"}).Error; err != nil {
		t.Fatalf("Failed to seed flight: %v", err)
	}

	job := NewTrackSyncJob(
		repositories.NewEntityRepository(db),
		repositories.NewFlightRepository(db),
		&fakeAuditLog{},
		testFlightStats(server.URL),
		testRegistry(),
	)

	report, err := job.Run(context.Background(), 0)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report.Stats.Created[ingest.KindWaypoint] != 2 {
		t.Errorf("Expected 2 waypoints, got %d", report.Stats.Created[ingest.KindWaypoint])
	}

	var count int64
	if err := db.Model(&models.Waypoint{}).Where("flight_id = ?", "99").Count(&count).Error; err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 waypoint rows, got %d", count)
	}
}

func TestAirlineImportUpserts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"airlines": [{"fs": "AA", "name": "American Airlines"}, {"name": "codeless"}]}`))
	}))
	defer server.Close()

	db := setupTestDB(t)
	job := NewAirlineImportJob(
		repositories.NewEntityRepository(db),
		&fakeAuditLog{},
		testFlightStats(server.URL),
		testRegistry(),
	)

	report, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report.Stats.Created[ingest.KindAirline] != 1 {
		t.Errorf("Expected 1 created airline, got %d", report.Stats.Created[ingest.KindAirline])
	}
	if len(report.Diagnostics) != 1 {
		t.Errorf("Expected 1 skip diagnostic, got %d", len(report.Diagnostics))
	}
}
