package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/5outh/towerlog/internal/ingest"
	"github.com/5outh/towerlog/internal/metrics"
)

// ErrRunInProgress is returned when a run is requested while another
// ingestion run holds the single-run guard.
var ErrRunInProgress = errors.New("an ingestion run is already in progress")

// AuditLog is the write side of the audit trail. Appends must never fail
// a run; implementations swallow their own errors.
type AuditLog interface {
	Append(ctx context.Context, category, message string)
}

// RunReport is the explicit result of one ingestion run: per-kind
// creation/update tallies plus every non-fatal fetch or extraction
// problem encountered along the way. Nothing about a run lives in
// ambient state.
type RunReport struct {
	Stats       *ingest.Stats
	Diagnostics []ingest.Diagnostic
	Started     time.Time
	Elapsed     time.Duration
}

func NewRunReport() *RunReport {
	return &RunReport{
		Stats:   ingest.NewStats(),
		Started: time.Now().UTC(),
	}
}

// Finish stamps the elapsed duration.
func (r *RunReport) Finish() {
	r.Elapsed = time.Since(r.Started)
}

// AddDiagnostic records a non-fatal problem on the report.
func (r *RunReport) AddDiagnostic(source, code, message string) {
	r.Diagnostics = append(r.Diagnostics, ingest.Diagnostic{
		Source:  source,
		Code:    code,
		Message: message,
	})
}

// Messages renders the human readable summary lines for the admin
// surface, e.g. "Created 3 Airport".
func (r *RunReport) Messages() []string {
	return r.Stats.Messages()
}

// observeReport folds a finished report into the Prometheus registry.
func observeReport(m *metrics.MetricsRegistry, jobName string, report *RunReport) {
	if m == nil {
		return
	}
	m.IngestRunDuration.WithLabelValues(jobName).Observe(report.Elapsed.Seconds())

	created := make(map[string]int, len(report.Stats.Created))
	for kind, n := range report.Stats.Created {
		created[kind.String()] = n
	}
	updated := make(map[string]int, len(report.Stats.Updated))
	for kind, n := range report.Stats.Updated {
		updated[kind.String()] = n
	}
	m.ObserveStats(created, updated)
}
