package dto

// FormatDurationRequest represents the API request for formatting a
// millisecond count as a duration string
type FormatDurationRequest struct {
	Milliseconds *float64 `json:"milliseconds" binding:"required"`
}

// FormatDurationResponse represents the API response for a formatted duration
type FormatDurationResponse struct {
	Result string `json:"result"`
}

// ParseDurationRequest represents the API request for parsing a duration
// string. Input is validated by the domain so that silent mode can turn a
// malformed string into a null result instead of an error.
type ParseDurationRequest struct {
	Input  string `json:"input"`
	Silent bool   `json:"silent"`
}

// ParseDurationResponse represents the API response for a parsed duration.
// Milliseconds is null when silent mode suppressed a parse failure.
type ParseDurationResponse struct {
	Milliseconds *float64 `json:"milliseconds"`
}
