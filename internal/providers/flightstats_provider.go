package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/5outh/towerlog/internal/constants"
)

// FlightStatsProvider is the client for the flight-data vendor. Every
// call is one blocking GET with a fixed timeout: no retries, no backoff.
// Authentication is two static query parameters.
type FlightStatsProvider struct {
	TracksBaseURL   string
	AirportsBaseURL string
	AirlinesBaseURL string
	AppID           string
	AppKey          string
	Client          *http.Client
}

// NewFlightStatsProvider creates a provider configured from the
// environment.
func NewFlightStatsProvider() *FlightStatsProvider {
	tracksURL := os.Getenv("FLIGHTSTATS_TRACKS_URL")
	if tracksURL == "" {
		tracksURL = "https://api.flightstats.com/flex/flightstatus/rest/v2/json"
	}
	airportsURL := os.Getenv("FLIGHTSTATS_AIRPORTS_URL")
	if airportsURL == "" {
		airportsURL = "https://api.flightstats.com/flex/airports/rest"
	}
	airlinesURL := os.Getenv("FLIGHTSTATS_AIRLINES_URL")
	if airlinesURL == "" {
		airlinesURL = "https://api.flightstats.com/flex/airlines/rest/v1/json"
	}

	return &FlightStatsProvider{
		TracksBaseURL:   tracksURL,
		AirportsBaseURL: airportsURL,
		AirlinesBaseURL: airlinesURL,
		AppID:           os.Getenv("FLIGHTSTATS_APP_ID"),
		AppKey:          os.Getenv("FLIGHTSTATS_APP_KEY"),
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// AirportStatus fetches departing-flight statuses for one airport and
// one hour window of the given day. hour must be in [0,23] and numHours
// in [1,6]; violations are rejected before any network call.
func (p *FlightStatsProvider) AirportStatus(ctx context.Context, apCode string, day time.Time, hour, numHours, maxFlights int) ([]byte, error) {
	if hour < 0 || hour > 23 {
		return nil, &ProviderError{
			Code:    constants.ErrCodeInvalidParams,
			Message: fmt.Sprintf("hour is %d, must be in [0,23]", hour),
		}
	}
	if numHours < 1 || numHours > 6 {
		return nil, &ProviderError{
			Code:    constants.ErrCodeInvalidParams,
			Message: fmt.Sprintf("numHours is %d, must be in [1,6]", numHours),
		}
	}

	endpoint := fmt.Sprintf("/airport/status/%s/dep/%d/%d/%d/%d",
		apCode, day.Year(), int(day.Month()), day.Day(), hour)
	url := fmt.Sprintf("%s%s?appId=%s&appKey=%s&numHours=%d&maxFlights=%d",
		p.TracksBaseURL, endpoint, p.AppID, p.AppKey, numHours, maxFlights)

	return p.doGET(ctx, endpoint, url)
}

// FlightStatus fetches the status document for a single flight id.
func (p *FlightStatsProvider) FlightStatus(ctx context.Context, flightID string) ([]byte, error) {
	endpoint := fmt.Sprintf("/flight/status/%s", flightID)
	url := fmt.Sprintf("%s%s?appId=%s&appKey=%s", p.TracksBaseURL, endpoint, p.AppID, p.AppKey)

	return p.doGET(ctx, endpoint, url)
}

// FlightTracks fetches the waypoint track for a single flight id.
// maxPositions <= 0 leaves the vendor default in place.
func (p *FlightStatsProvider) FlightTracks(ctx context.Context, flightID string, maxPositions int) ([]byte, error) {
	endpoint := fmt.Sprintf("/flight/track/%s", flightID)
	url := fmt.Sprintf("%s%s?appId=%s&appKey=%s", p.TracksBaseURL, endpoint, p.AppID, p.AppKey)
	if maxPositions > 0 {
		url += fmt.Sprintf("&maxPositions=%d", maxPositions)
	}

	return p.doGET(ctx, endpoint, url)
}

// AirportsByCountry fetches the vendor's airport directory for one
// country code and returns the decoded airport objects.
func (p *FlightStatsProvider) AirportsByCountry(ctx context.Context, countryCode string) ([]map[string]any, error) {
	endpoint := fmt.Sprintf("/v1/json/countryCode/%s", countryCode)
	url := fmt.Sprintf("%s%s?appId=%s&appKey=%s", p.AirportsBaseURL, endpoint, p.AppID, p.AppKey)

	body, err := p.doGET(ctx, endpoint, url)
	if err != nil {
		return nil, err
	}

	var result struct {
		Airports []map[string]any `json:"airports"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Failed to decode airports directory response",
			Err:     err,
		}
	}
	return result.Airports, nil
}

// AllAirlines fetches the vendor's full airline directory.
func (p *FlightStatsProvider) AllAirlines(ctx context.Context) ([]map[string]any, error) {
	endpoint := "/all"
	url := fmt.Sprintf("%s%s?appId=%s&appKey=%s", p.AirlinesBaseURL, endpoint, p.AppID, p.AppKey)

	body, err := p.doGET(ctx, endpoint, url)
	if err != nil {
		return nil, err
	}

	var result struct {
		Airlines []map[string]any `json:"airlines"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Failed to decode airlines directory response",
			Err:     err,
		}
	}
	return result.Airlines, nil
}

// doGET performs one blocking GET and returns the raw body. The endpoint
// (without credentials) is what shows up in errors.
func (p *FlightStatsProvider) doGET(ctx context.Context, endpoint, url string) ([]byte, error) {
	if p.AppID == "" || p.AppKey == "" {
		return nil, &ProviderError{
			Code:    constants.ErrCodeMissingCredentials,
			Message: constants.GetErrorMessage(constants.ErrCodeMissingCredentials),
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Failed to create request",
			Err:     err,
		}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: constants.GetErrorMessage(constants.ErrCodeNetworkError),
			Details: endpoint,
			Err:     err,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Failed to read response body",
			Details: endpoint,
			Err:     err,
		}
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &ProviderError{
			Code:    constants.ErrCodeRateLimited,
			Message: constants.GetErrorMessage(constants.ErrCodeRateLimited),
			Details: endpoint,
		}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: fmt.Sprintf("HTTP %d from %s", resp.StatusCode, endpoint),
			Details: string(body),
		}
	}

	return body, nil
}
