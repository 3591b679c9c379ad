package ingest

import "testing"

func TestStatsMessagesIncludeZeroCounts(t *testing.T) {
	stats := NewStats()
	stats.Add(KindAirport, true)
	stats.Add(KindAirport, true)
	stats.Add(KindFlight, false)

	messages := stats.Messages()

	// Two lines per kind, creations first, zeros included.
	if len(messages) != 2*len(AllKinds) {
		t.Fatalf("Expected %d messages, got %d", 2*len(AllKinds), len(messages))
	}
	if messages[0] != "Created 2 Airport" {
		t.Errorf("Expected 'Created 2 Airport' first, got %q", messages[0])
	}
	if messages[1] != "Created 0 City" {
		t.Errorf("Expected zero line for City, got %q", messages[1])
	}

	foundUpdate := false
	for _, m := range messages {
		if m == "Updated 1 Flight" {
			foundUpdate = true
		}
	}
	if !foundUpdate {
		t.Error("Expected 'Updated 1 Flight' in messages")
	}
}

func TestStatsMerge(t *testing.T) {
	a := NewStats()
	a.Add(KindAirport, true)

	b := NewStats()
	b.Add(KindAirport, true)
	b.Add(KindAirline, false)

	a.Merge(b)

	if a.Created[KindAirport] != 2 {
		t.Errorf("Expected 2 created airports, got %d", a.Created[KindAirport])
	}
	if a.Updated[KindAirline] != 1 {
		t.Errorf("Expected 1 updated airline, got %d", a.Updated[KindAirline])
	}
}

func TestRecordKeyMissingValue(t *testing.T) {
	rec := Record{Kind: KindAirport, Fields: Fields{"airport_name": "Somewhere"}}
	if _, _, ok := rec.Key(); ok {
		t.Error("Expected no key for record without ap_code")
	}

	way := Record{Kind: KindWaypoint, Fields: Fields{"flight_id": "1"}}
	if _, _, ok := way.Key(); ok {
		t.Error("Expected no key for surrogate-keyed waypoint")
	}
}
