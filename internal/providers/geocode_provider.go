package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/5outh/towerlog/internal/common"
	"github.com/5outh/towerlog/internal/constants"
	"github.com/5outh/towerlog/internal/logging"
)

const geoCacheTTL = 24 * time.Hour

// CityInfo is the enrichment payload for a city lookup.
type CityInfo struct {
	CityName  string  `json:"city_name"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	StateCode string  `json:"state_code"`
}

// GeocodeProvider wraps the two geolocation upstreams: a city directory
// keyed by name and state, and a reverse geocoder for lat/lon. Lookups
// are cached since city coordinates do not move.
type GeocodeProvider struct {
	CityInfoBaseURL string
	ReverseBaseURL  string
	APIKey          string
	Client          *http.Client

	cache common.CacheInterface
}

func NewGeocodeProvider(cache common.CacheInterface) *GeocodeProvider {
	cityURL := os.Getenv("GEODATA_CITY_URL")
	if cityURL == "" {
		cityURL = "https://api.sba.gov/geodata/all_links_for_city_of"
	}
	reverseURL := os.Getenv("GEOCODE_REVERSE_URL")
	if reverseURL == "" {
		reverseURL = "https://maps.googleapis.com/maps/api/geocode/json"
	}

	return &GeocodeProvider{
		CityInfoBaseURL: cityURL,
		ReverseBaseURL:  reverseURL,
		APIKey:          os.Getenv("GEOCODE_API_KEY"),
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache: cache,
	}
}

// CityInfo looks up coordinates for a city by name and state. Returns
// (nil, nil) when the directory has no entry.
func (g *GeocodeProvider) CityInfo(ctx context.Context, city, stateCode string) (*CityInfo, error) {
	cacheKey := fmt.Sprintf("geo:city:%s:%s", city, stateCode)
	if cached, found := g.cache.Get(cacheKey); found {
		if s, ok := cached.(string); ok {
			var info CityInfo
			if err := json.Unmarshal([]byte(s), &info); err == nil {
				return &info, nil
			}
		}
	}

	url := fmt.Sprintf("%s/%s/%s.json", g.CityInfoBaseURL, city, stateCode)
	body, err := g.doGET(ctx, url)
	if err != nil {
		return nil, err
	}

	// The directory answers with a list of matches; fields arrive as
	// strings.
	var matches []struct {
		Name             string `json:"name"`
		PrimaryLatitude  string `json:"primary_latitude"`
		PrimaryLongitude string `json:"primary_longitude"`
		StateAbbrev      string `json:"state_abbreviation"`
	}
	if err := json.Unmarshal(body, &matches); err != nil {
		return nil, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Failed to decode city info response",
			Err:     err,
		}
	}
	if len(matches) == 0 {
		return nil, nil
	}

	first := matches[0]
	lat, _ := strconv.ParseFloat(first.PrimaryLatitude, 64)
	lon, _ := strconv.ParseFloat(first.PrimaryLongitude, 64)
	info := &CityInfo{
		CityName:  first.Name,
		Lat:       lat,
		Lon:       lon,
		StateCode: first.StateAbbrev,
	}

	if encoded, err := json.Marshal(info); err == nil {
		g.cache.Set(cacheKey, string(encoded), geoCacheTTL)
	}
	return info, nil
}

// StateForLatLon reverse-geocodes a coordinate to its state code by
// scanning the address components for the first-level administrative
// area. Returns "" when the geocoder has no result for the point.
func (g *GeocodeProvider) StateForLatLon(ctx context.Context, lat, lon float64) (string, error) {
	cacheKey := fmt.Sprintf("geo:state:%.5f,%.5f", lat, lon)
	if cached, found := g.cache.Get(cacheKey); found {
		if s, ok := cached.(string); ok {
			return s, nil
		}
	}

	url := fmt.Sprintf("%s?latlng=%f,%f&result_type=administrative_area_level_1&key=%s",
		g.ReverseBaseURL, lat, lon, g.APIKey)
	body, err := g.doGET(ctx, url)
	if err != nil {
		return "", err
	}

	var decoded struct {
		Status  string `json:"status"`
		Results []struct {
			AddressComponents []struct {
				ShortName string   `json:"short_name"`
				Types     []string `json:"types"`
			} `json:"address_components"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Failed to decode reverse geocode response",
			Err:     err,
		}
	}

	if decoded.Status == "ZERO_RESULTS" || len(decoded.Results) == 0 {
		logging.Warn("Reverse geocode found nothing", "lat", lat, "lon", lon)
		return "", nil
	}

	for _, component := range decoded.Results[0].AddressComponents {
		for _, t := range component.Types {
			if t == "administrative_area_level_1" {
				g.cache.Set(cacheKey, component.ShortName, geoCacheTTL)
				return component.ShortName, nil
			}
		}
	}
	return "", nil
}

func (g *GeocodeProvider) doGET(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Failed to create request",
			Err:     err,
		}
	}

	resp, err := g.Client.Do(req)
	if err != nil {
		return nil, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: constants.GetErrorMessage(constants.ErrCodeNetworkError),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Failed to read response body",
			Err:     err,
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: fmt.Sprintf("HTTP %d from geocoder", resp.StatusCode),
			Details: string(body),
		}
	}
	return body, nil
}
