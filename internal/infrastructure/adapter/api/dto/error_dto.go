package dto

// ErrorResponse represents a standardized error response for the API
type ErrorResponse struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}
