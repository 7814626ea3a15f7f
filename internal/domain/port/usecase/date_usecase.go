package usecase

import "context"

// MomentFields is the 7-field calendar representation used at the API
// boundary. Month is 1-based.
type MomentFields struct {
	Year        int `json:"year"`
	Month       int `json:"month"`
	Day         int `json:"day"`
	Hour        int `json:"hour"`
	Minute      int `json:"minute"`
	Second      int `json:"second"`
	Millisecond int `json:"millisecond"`
}

// FormatDateRequest represents a request to render a moment with a pattern.
// The moment may be supplied either as calendar fields or as a Unix
// millisecond timestamp; fields win when both are present.
type FormatDateRequest struct {
	Moment     *MomentFields `json:"moment,omitempty"`
	UnixMillis *int64        `json:"unixMillis,omitempty"`
	Pattern    string        `json:"pattern"`
}

// FormatDateResult contains the rendered date string
type FormatDateResult struct {
	Result string
}

// ParseDateRequest represents a request to parse a date string. An empty
// pattern selects the default pattern. Silent selects the failure-handling
// mode.
type ParseDateRequest struct {
	Input   string `json:"input"`
	Pattern string `json:"pattern"`
	Silent  bool   `json:"silent"`
}

// ParseDateResult contains the parsed moment. Moment is nil when silent
// mode suppressed a parse failure.
type ParseDateResult struct {
	Moment     *MomentFields
	UnixMillis *int64
}

// DateUseCase defines calendar date formatting and parsing operations
type DateUseCase interface {
	// FormatDate renders a moment according to a pattern string
	FormatDate(ctx context.Context, req FormatDateRequest) (*FormatDateResult, error)

	// ParseDate parses a date string against a pattern, honoring the
	// request's failure-handling mode
	ParseDate(ctx context.Context, req ParseDateRequest) (*ParseDateResult, error)
}
