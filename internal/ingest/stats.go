package ingest

import "fmt"

// Stats tallies creations and updates per entity kind for one ingestion
// run. It is plain data passed through the pipeline, never ambient state;
// callers that fan work out must give each worker its own Stats and Merge.
type Stats struct {
	Created map[Kind]int
	Updated map[Kind]int
}

func NewStats() *Stats {
	return &Stats{
		Created: make(map[Kind]int),
		Updated: make(map[Kind]int),
	}
}

// Add records one upsert outcome.
func (s *Stats) Add(kind Kind, created bool) {
	if created {
		s.Created[kind]++
		return
	}
	s.Updated[kind]++
}

// Merge folds another Stats into this one.
func (s *Stats) Merge(other *Stats) {
	if other == nil {
		return
	}
	for k, n := range other.Created {
		s.Created[k] += n
	}
	for k, n := range other.Updated {
		s.Updated[k] += n
	}
}

// Messages renders the human readable run summary, one line per kind,
// creations first. Zero counts are included so the report always has the
// same shape.
func (s *Stats) Messages() []string {
	messages := make([]string, 0, 2*len(AllKinds))
	for _, k := range AllKinds {
		messages = append(messages, fmt.Sprintf("Created %d %s", s.Created[k], k))
	}
	for _, k := range AllKinds {
		messages = append(messages, fmt.Sprintf("Updated %d %s", s.Updated[k], k))
	}
	return messages
}
