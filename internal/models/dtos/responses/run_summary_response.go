package responses

// RunDiagnostic is one non-fatal problem surfaced by an ingestion run.
type RunDiagnostic struct {
	Source  string `json:"source"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RunSummary is the admin-facing result of one ingestion action: the
// human readable tally lines plus anything that went wrong along the
// way.
type RunSummary struct {
	Messages    []string        `json:"messages"`
	Diagnostics []RunDiagnostic `json:"diagnostics,omitempty"`
	Elapsed     string          `json:"elapsed"`
}
