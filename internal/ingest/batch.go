package ingest

// Diagnostic is a non-fatal event observed during fetching or extraction.
// Keeping these on the batch/report distinguishes "no flights today" from
// "the fetch or payload was broken" without aborting a run.
type Diagnostic struct {
	Source  string `json:"source"` // "provider" or "extract"
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Batch holds the flat records extracted from one upstream response,
// grouped per category in payload order.
type Batch struct {
	Airports       []Record
	Airlines       []Record
	Equipment      []Record
	FlightStatuses []Record
	Positions      []Record

	Diagnostics []Diagnostic
}

// Empty reports whether extraction yielded no records at all.
func (b *Batch) Empty() bool {
	return len(b.Airports) == 0 && len(b.Airlines) == 0 && len(b.Equipment) == 0 &&
		len(b.FlightStatuses) == 0 && len(b.Positions) == 0
}

// Size returns the total number of extracted records.
func (b *Batch) Size() int {
	return len(b.Airports) + len(b.Airlines) + len(b.Equipment) +
		len(b.FlightStatuses) + len(b.Positions)
}
