package errors

// ErrorResponse is the standard error payload returned by the API.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// ErrorDetail carries the client facing message plus optional internals.
type ErrorDetail struct {
	Display       string         `json:"message"`
	InternalError string         `json:"internal_error,omitempty"`
	Details       map[string]any `json:"details,omitempty"`
}
