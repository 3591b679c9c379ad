package constants

// Error codes surfaced by upstream provider clients
const (
	ErrCodeNetworkError       = "NETWORK_ERROR"
	ErrCodeInvalidParams      = "INVALID_PARAMS"
	ErrCodeMissingCredentials = "MISSING_CREDENTIALS"
	ErrCodeRateLimited        = "RATE_LIMITED"
	ErrCodeUpstreamError      = "UPSTREAM_ERROR"
)

var errorMessages = map[string]string{
	ErrCodeNetworkError:       "Failed to reach upstream API",
	ErrCodeInvalidParams:      "Invalid request parameters",
	ErrCodeMissingCredentials: "Upstream API credentials are not configured",
	ErrCodeRateLimited:        "Upstream API rate limit exceeded",
	ErrCodeUpstreamError:      "Upstream API returned an error envelope",
}

// GetErrorMessage returns the human readable message for an error code
func GetErrorMessage(code string) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "Unknown error"
}
