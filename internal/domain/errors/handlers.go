package errors

// ErrorInfo contains detailed error information
type ErrorInfo struct {
	Code    string `json:"code"`              // Business error code, e.g., "IDENTITY_ALREADY_CLAIMED"
	Details string `json:"details,omitempty"` // Detailed error information (optional)
}

// Response defines the unified error response payload rendered by the
// HTTP error middleware.
type Response struct {
	Success bool       `json:"success"`
	Code    int        `json:"code"`    // HTTP status code
	Message string     `json:"message"` // User-friendly message
	Error   *ErrorInfo `json:"error,omitempty"`
}
