package ingest

// Unknown is the sentinel stored for optional fields absent from an
// upstream payload.
const Unknown = "-"

// Kind identifies one of the entity types the pipeline can persist.
// The set is closed: every kind carries its table and natural-key column
// so nothing downstream has to dispatch on a type name string.
type Kind int

const (
	KindAirport Kind = iota
	KindCity
	KindState
	KindAirline
	KindAirplane
	KindFlight
	KindWaypoint
	KindResult
)

// AllKinds is the fixed order used when rendering run summaries.
var AllKinds = []Kind{
	KindAirport, KindCity, KindState, KindAirline,
	KindAirplane, KindFlight, KindWaypoint, KindResult,
}

type kindMeta struct {
	name      string
	table     string
	keyColumn string // empty for surrogate-keyed kinds
}

var kindInfo = map[Kind]kindMeta{
	KindAirport:  {name: "Airport", table: "airports", keyColumn: "ap_code"},
	KindCity:     {name: "City", table: "cities", keyColumn: "city_code"},
	KindState:    {name: "State", table: "states", keyColumn: "state_code"},
	KindAirline:  {name: "Airline", table: "airlines", keyColumn: "al_code"},
	KindAirplane: {name: "Airplane", table: "airplanes", keyColumn: "airplane_code"},
	KindFlight:   {name: "Flight", table: "flights", keyColumn: "flight_id"},
	KindWaypoint: {name: "Waypoint", table: "waypoints", keyColumn: ""},
	KindResult:   {name: "Result", table: "results", keyColumn: "flight_id"},
}

func (k Kind) String() string {
	if m, ok := kindInfo[k]; ok {
		return m.name
	}
	return "Unknown"
}

// Table returns the relational table the kind is persisted to.
func (k Kind) Table() string {
	return kindInfo[k].table
}

// KeyColumn returns the natural-key column for the kind, or "" when rows
// are identified by a surrogate id only.
func (k Kind) KeyColumn() string {
	return kindInfo[k].keyColumn
}

// Fields maps column names to extracted values. Only columns that were
// present in (or defaulted by) extraction appear; the upsert engine
// merges exactly these columns onto an existing row.
type Fields map[string]any

// Record is one flat entity extracted from an upstream payload.
type Record struct {
	Kind   Kind
	Fields Fields
}

// Key returns the natural-key column and its value for this record.
// ok is false for surrogate-keyed kinds or when the key value is missing.
func (r Record) Key() (column string, value string, ok bool) {
	column = r.Kind.KeyColumn()
	if column == "" {
		return "", "", false
	}
	raw, present := r.Fields[column]
	if !present {
		return column, "", false
	}
	s, isStr := raw.(string)
	if !isStr || s == "" {
		return column, "", false
	}
	return column, s, true
}
