package errors

import (
	"fmt"
	"net/http"

	"cooked/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information.
// The copy still matches the original under errors.Is.
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Is matches BaseErrors by error code so detailed copies compare equal.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == t.errorCode
}

// Predefined error types
var (
	// Session-related errors
	ErrNoSession = NewBaseError(
		http.StatusUnauthorized,
		"NO_SESSION",
		"Not signed in",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Incorrect identifier or password",
		"",
	)

	ErrForbiddenRole = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN_ROLE",
		"This action is not available for your role",
		"",
	)

	// Booking-related errors
	ErrBookingNotFound = NewBaseError(
		http.StatusNotFound,
		"BOOKING_NOT_FOUND",
		"Booking not found",
		"",
	)

	ErrActionInFlight = NewBaseError(
		http.StatusConflict,
		"ACTION_IN_FLIGHT",
		"Another action on this booking is still processing",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal error",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)
)

// SessionExpiredError is returned when the backend rejects the credential.
// By the time a caller sees it the expiry coordinator has already run.
type SessionExpiredError struct {
	reason string
}

func NewSessionExpiredError(reason string) *SessionExpiredError {
	return &SessionExpiredError{reason: reason}
}

func (e *SessionExpiredError) Error() string {
	if e.reason == "" {
		return "session expired"
	}

	return "session expired: " + e.reason
}

func (e *SessionExpiredError) HTTPCode() int     { return http.StatusUnauthorized }
func (e *SessionExpiredError) ErrorCode() string { return "SESSION_EXPIRED" }
func (e *SessionExpiredError) Message() string   { return "Session expired. Please sign in again." }
func (e *SessionExpiredError) Details() string   { return e.reason }

// APIError is a non-2xx, non-401 response from the backend.
type APIError struct {
	Status  int
	message string
}

func NewAPIError(status int, message string) *APIError {
	if message == "" {
		message = fmt.Sprintf("%d %s", status, http.StatusText(status))
	}

	return &APIError{Status: status, message: message}
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.message)
}

// HTTPCode passes the backend status through
func (e *APIError) HTTPCode() int {
	if e.Status < http.StatusBadRequest {
		return http.StatusBadGateway
	}

	return e.Status
}

func (e *APIError) ErrorCode() string { return "API_ERROR" }
func (e *APIError) Message() string   { return e.message }
func (e *APIError) Details() string   { return "" }

// TransportError covers network failures and unreadable success bodies.
type TransportError struct {
	err error
}

func NewTransportError(err error) *TransportError {
	return &TransportError{err: err}
}

func (e *TransportError) Error() string {
	return errors.Wrap(e.err, "transport failure").Error()
}

func (e *TransportError) Unwrap() error { return e.err }

func (e *TransportError) HTTPCode() int     { return http.StatusBadGateway }
func (e *TransportError) ErrorCode() string { return "TRANSPORT_ERROR" }
func (e *TransportError) Message() string   { return "Could not reach server" }

func (e *TransportError) Details() string {
	if e.err == nil {
		return ""
	}

	return e.err.Error()
}

// MalformedPushEventError describes a push frame that could not be decoded.
// It is logged and dropped, never surfaced to the view.
type MalformedPushEventError struct {
	err  error
	body string
}

func NewMalformedPushEventError(err error, body []byte) *MalformedPushEventError {
	const maxBody = 256

	b := string(body)
	if len(b) > maxBody {
		b = b[:maxBody]
	}

	return &MalformedPushEventError{err: err, body: b}
}

func (e *MalformedPushEventError) Error() string {
	return errors.Wrap(e.err, "malformed push event").Error()
}

func (e *MalformedPushEventError) Unwrap() error { return e.err }

func (e *MalformedPushEventError) HTTPCode() int     { return http.StatusUnprocessableEntity }
func (e *MalformedPushEventError) ErrorCode() string { return "MALFORMED_PUSH_EVENT" }
func (e *MalformedPushEventError) Message() string   { return "Malformed push event" }
func (e *MalformedPushEventError) Details() string   { return e.body }

// IllegalTransitionError is returned for an action not offered in the booking's current state.
type IllegalTransitionError struct {
	BookingID int64
	From      string
	Action    string
}

func NewIllegalTransitionError(bookingID int64, from, action string) *IllegalTransitionError {
	return &IllegalTransitionError{BookingID: bookingID, From: from, Action: action}
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("action %q not allowed on booking %d in state %s", e.Action, e.BookingID, e.From)
}

func (e *IllegalTransitionError) HTTPCode() int     { return http.StatusConflict }
func (e *IllegalTransitionError) ErrorCode() string { return "ILLEGAL_TRANSITION" }

func (e *IllegalTransitionError) Message() string {
	return fmt.Sprintf("Cannot %s a booking that is %s", e.Action, e.From)
}

func (e *IllegalTransitionError) Details() string { return "" }

// IsSessionExpired reports whether err carries a SessionExpiredError
func IsSessionExpired(err error) bool {
	var target *SessionExpiredError

	return errors.As(err, &target)
}
