package dto

// MomentPayload is the calendar representation of an instant used by the
// date endpoints. Month is 1-based.
type MomentPayload struct {
	Year        int `json:"year"`
	Month       int `json:"month"`
	Day         int `json:"day"`
	Hour        int `json:"hour"`
	Minute      int `json:"minute"`
	Second      int `json:"second"`
	Millisecond int `json:"millisecond"`
}

// FormatDateRequest represents the API request for formatting a moment
// with a pattern. The moment may be given as calendar fields or as a Unix
// millisecond timestamp; calendar fields win when both are present. An
// empty pattern selects the default pattern.
type FormatDateRequest struct {
	Moment     *MomentPayload `json:"moment"`
	UnixMillis *int64         `json:"unixMillis"`
	Pattern    string         `json:"pattern"`
}

// FormatDateResponse represents the API response for a formatted date
type FormatDateResponse struct {
	Result string `json:"result"`
}

// ParseDateRequest represents the API request for parsing a date string.
// An empty pattern selects the default pattern.
type ParseDateRequest struct {
	Input   string `json:"input"`
	Pattern string `json:"pattern"`
	Silent  bool   `json:"silent"`
}

// ParseDateResponse represents the API response for a parsed date. Moment
// is null when silent mode suppressed a parse failure.
type ParseDateResponse struct {
	Moment     *MomentPayload `json:"moment"`
	UnixMillis *int64         `json:"unixMillis,omitempty"`
}
