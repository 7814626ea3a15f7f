package usecase

import "context"

// FormatDurationRequest represents a request to render milliseconds as a
// compact duration string
type FormatDurationRequest struct {
	Milliseconds float64 `json:"milliseconds"`
}

// FormatDurationResult contains the rendered duration string
type FormatDurationResult struct {
	Result string
}

// ParseDurationRequest represents a request to parse a duration string.
// Silent selects the failure-handling mode: when true, a parse failure
// yields a null result instead of an error.
type ParseDurationRequest struct {
	Input  string `json:"input"`
	Silent bool   `json:"silent"`
}

// ParseDurationResult contains the parsed millisecond count. Milliseconds
// is nil when silent mode suppressed a parse failure.
type ParseDurationResult struct {
	Milliseconds *float64
}

// DurationUseCase defines duration formatting and parsing operations
type DurationUseCase interface {
	// FormatDuration renders a millisecond count as a human-readable string
	FormatDuration(ctx context.Context, req FormatDurationRequest) (*FormatDurationResult, error)

	// ParseDuration converts a duration string to milliseconds, honoring
	// the request's failure-handling mode
	ParseDuration(ctx context.Context, req ParseDurationRequest) (*ParseDurationResult, error)
}
