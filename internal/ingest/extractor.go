package ingest

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/5outh/towerlog/internal/constants"
)

// statusEnvelope mirrors the provider's airport-status and flight-track
// response documents. Track endpoints return either a single flightTrack
// or a flightTracks list depending on which one was called.
type statusEnvelope struct {
	Error *struct {
		ErrorID      any    `json:"errorId"`
		ErrorMessage string `json:"errorMessage"`
	} `json:"error"`
	Appendix struct {
		Airports   []map[string]any `json:"airports"`
		Airlines   []map[string]any `json:"airlines"`
		Equipments []map[string]any `json:"equipments"`
	} `json:"appendix"`
	FlightStatuses []map[string]any `json:"flightStatuses"`
	FlightTracks   []map[string]any `json:"flightTracks"`
	FlightTrack    map[string]any   `json:"flightTrack"`
}

// ExtractResponse parses one raw provider document into flat records.
// An upstream error envelope becomes a diagnostic on the batch, and a
// record missing its required field is skipped with a diagnostic; only a
// document that is not JSON at all fails the call.
func ExtractResponse(raw []byte) (*Batch, error) {
	var env statusEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("failed to decode provider response: %w", err)
	}

	batch := &Batch{}

	if env.Error != nil {
		batch.Diagnostics = append(batch.Diagnostics, Diagnostic{
			Source: "provider",
			Code:   constants.ErrCodeUpstreamError,
			Message: fmt.Sprintf("errorId: %v; errorMessage: %s",
				env.Error.ErrorID, env.Error.ErrorMessage),
		})
	}

	for _, data := range env.Appendix.Airports {
		rec, err := ExtractAirport(data)
		if err != nil {
			batch.addSkip("airports", err)
			continue
		}
		batch.Airports = append(batch.Airports, rec)
	}

	for _, data := range env.Appendix.Airlines {
		rec, err := ExtractAirline(data)
		if err != nil {
			batch.addSkip("airlines", err)
			continue
		}
		batch.Airlines = append(batch.Airlines, rec)
	}

	for _, data := range env.Appendix.Equipments {
		batch.Equipment = append(batch.Equipment, extractAirplane(data))
	}

	for _, data := range env.FlightStatuses {
		rec, err := extractFlight(data)
		if err != nil {
			batch.addSkip("flightStatuses", err)
			continue
		}
		batch.FlightStatuses = append(batch.FlightStatuses, rec)
	}

	for _, track := range env.FlightTracks {
		batch.extractTrack(track)
	}
	if env.FlightTrack != nil {
		batch.extractTrack(env.FlightTrack)
	}

	return batch, nil
}

// extractTrack flattens one flight-track entry: the flight itself plus its
// nested positions, each stamped with the parent flight id since the
// payload does not repeat it per waypoint.
func (b *Batch) extractTrack(track map[string]any) {
	rec, err := extractFlight(track)
	if err != nil {
		b.addSkip("flightTracks", err)
		return
	}
	b.FlightStatuses = append(b.FlightStatuses, rec)

	positions, ok := track["positions"].([]any)
	if !ok {
		return
	}
	flightID := asString(track["flightId"])
	for _, p := range positions {
		pos, ok := p.(map[string]any)
		if !ok {
			continue
		}
		b.Positions = append(b.Positions, extractWaypoint(flightID, pos))
	}
}

func (b *Batch) addSkip(category string, err error) {
	b.Diagnostics = append(b.Diagnostics, Diagnostic{
		Source:  "extract",
		Code:    "RECORD_SKIPPED",
		Message: fmt.Sprintf("%s: %v", category, err),
	})
}

// ExtractAirport flattens one provider airport object. The fs code is
// required; everything else defaults to the unknown sentinel.
func ExtractAirport(data map[string]any) (Record, error) {
	code, ok := requiredString(data, "fs")
	if !ok {
		return Record{}, fmt.Errorf("airport record missing required field %q", "fs")
	}

	return Record{Kind: KindAirport, Fields: Fields{
		"ap_code":      code,
		"lat":          opt(data, "latitude"),
		"lon":          opt(data, "longitude"),
		"airport_name": opt(data, "name"),
		"street1":      opt(data, "street1"),
		"street2":      opt(data, "street2"),
		"zip":          optString(data, "postalCode"),
		"city_code":    optString(data, "cityCode"),
		"state_code":   optString(data, "stateCode"),
	}}, nil
}

// ExtractCity pulls the city columns out of a provider airport object.
func ExtractCity(data map[string]any) Record {
	return Record{Kind: KindCity, Fields: Fields{
		"city_code":  optString(data, "cityCode"),
		"city_name":  optString(data, "city"),
		"state_code": optString(data, "stateCode"),
	}}
}

// ExtractState pulls the state code out of a provider airport object.
func ExtractState(data map[string]any) Record {
	return Record{Kind: KindState, Fields: Fields{
		"state_code": optString(data, "stateCode"),
	}}
}

// ExtractAirline flattens one provider airline object. The fs code is
// required.
func ExtractAirline(data map[string]any) (Record, error) {
	code, ok := requiredString(data, "fs")
	if !ok {
		return Record{}, fmt.Errorf("airline record missing required field %q", "fs")
	}

	return Record{Kind: KindAirline, Fields: Fields{
		"al_code":      code,
		"airline_name": optString(data, "name"),
	}}, nil
}

func extractAirplane(data map[string]any) Record {
	return Record{Kind: KindAirplane, Fields: Fields{
		"airplane_code": optString(data, "iata"),
		"airplane_name": optString(data, "name"),
	}}
}

func extractFlight(data map[string]any) (Record, error) {
	id, ok := requiredString(data, "flightId")
	if !ok {
		return Record{}, fmt.Errorf("flight record missing required field %q", "flightId")
	}

	return Record{Kind: KindFlight, Fields: Fields{
		"flight_id":     id,
		"flight_number": optString(data, "flightNumber"),
		"dept":          optString(data, "departureAirportFsCode"),
		"dest":          optString(data, "arrivalAirportFsCode"),
		"time_dept":     optNestedString(data, "departureDate", "dateUtc"),
		"time_dest":     optNestedString(data, "arrivalDate", "dateUtc"),
		"status":        optString(data, "status"),
		"airplane_code": optNestedString(data, "flightEquipment", "actualEquipmentIataCode"),
		"al_code":       optString(data, "carrierFsCode"),
	}}, nil
}

func extractWaypoint(flightID string, data map[string]any) Record {
	return Record{Kind: KindWaypoint, Fields: Fields{
		"flight_id":   flightID,
		"lat":         opt(data, "lat"),
		"lon":         opt(data, "lon"),
		"speed":       opt(data, "speedMph"),
		"altitude":    opt(data, "altitudeFt"),
		"recorded_at": optString(data, "date"),
	}}
}

// requiredString returns the field coerced to a string, or ok=false when
// it is absent or empty.
func requiredString(data map[string]any, key string) (string, bool) {
	v, present := data[key]
	if !present || v == nil {
		return "", false
	}
	s := asString(v)
	if s == "" {
		return "", false
	}
	return s, true
}

// opt returns the raw field value, or the unknown sentinel when absent.
func opt(data map[string]any, key string) any {
	if v, present := data[key]; present && v != nil {
		return v
	}
	return Unknown
}

// optString is opt with string coercion for fields persisted as text.
func optString(data map[string]any, key string) string {
	if v, present := data[key]; present && v != nil {
		return asString(v)
	}
	return Unknown
}

// optNestedString digs one level into a nested object, e.g.
// departureDate.dateUtc, defaulting to the unknown sentinel.
func optNestedString(data map[string]any, key, sub string) string {
	nested, ok := data[key].(map[string]any)
	if !ok {
		return Unknown
	}
	return optString(nested, sub)
}

// asString coerces a decoded JSON value to a string. Numeric ids like
// flightId arrive as float64 and must not pick up an exponent.
func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}
