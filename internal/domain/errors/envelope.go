package errors

import "net/http"

// ErrorInfo is the error half of the local surface's envelope.
type ErrorInfo struct {
	Code    string `json:"code"`              // taxonomy code, e.g. "SESSION_EXPIRED", "ILLEGAL_TRANSITION"
	Message string `json:"message"`           // shown to the user as is
	Details any    `json:"details,omitempty"` // validation or backend detail, never for 5xx or 401
	// Retryable marks failures where repeating the same action may succeed
	// (the backend was unreachable), so the view can offer a retry.
	Retryable bool `json:"retryable,omitempty"`
}

// NewErrorInfo builds the envelope entry for an error rendered with status.
// Details are dropped for server failures and authentication failures.
func NewErrorInfo(status int, code, message string, details any) *ErrorInfo {
	if status >= http.StatusInternalServerError || status == http.StatusUnauthorized {
		details = nil
	}
	if s, ok := details.(string); ok && s == "" {
		details = nil
	}

	return &ErrorInfo{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: status == http.StatusBadGateway || status == http.StatusServiceUnavailable || status == http.StatusGatewayTimeout,
	}
}

// MetaInfo carries the request id echoed in X-Request-ID.
type MetaInfo struct {
	RequestID string `json:"request_id"`
}

// SuccessResponse wraps every 2xx body of the local surface.
type SuccessResponse struct {
	Data any       `json:"data"`
	Meta *MetaInfo `json:"meta"`
}

// ErrorResponse wraps every non-2xx body of the local surface.
type ErrorResponse struct {
	Error *ErrorInfo `json:"error"`
	Meta  *MetaInfo  `json:"meta"`
}
