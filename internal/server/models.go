package server

// ErrorResponse is the standardized JSON body for failed API requests.
type ErrorResponse struct {
	// Error is the HTTP status text.
	Error string `json:"error"`
	// Message is a human-readable description of the failure.
	Message string `json:"message"`
}

// RunParseError describes a request-parameter validation failure together
// with the HTTP status code to report it with.
type RunParseError struct {
	// Message is the validation failure description.
	Message string
	// StatusCode is the HTTP status code to respond with.
	StatusCode int
}

// Error implements the error interface.
func (e RunParseError) Error() string {
	return e.Message
}
