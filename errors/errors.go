package errors

import (
	stderrors "errors"
	"fmt"
)

// User-facing messages for synthetic failures.
const (
	MessageNetwork         = "Unable to connect to the server. Please check your internet connection."
	MessageUnknown         = "An unexpected error occurred. Please try again."
	MessageInvalidResponse = "Invalid response format from server"
	MessageInvalidFormat   = "Received invalid data format from server."
	MessageInvalidRequest  = "Invalid request data."
)

// APIError is the normalized failure returned by every client call.
type APIError struct {
	// Message is safe to show to end users.
	Message string `json:"message"`
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// StatusCode is the HTTP status of the response that produced the error,
	// 0 for synthetic errors.
	StatusCode int `json:"status_code,omitempty"`
	// Cause is kept for diagnostics only and never rendered into Message.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *APIError) Unwrap() error { return e.Cause }

// Is matches another *APIError with the same code, so sentinel comparisons
// such as errors.Is(err, ErrNotFound) work regardless of message.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// HasStatus reports whether the error came from an HTTP response.
func (e *APIError) HasStatus() bool { return e.StatusCode > 0 }

// Sentinels for errors.Is comparisons.
var (
	ErrBadRequest         = &APIError{Code: ErrCodeBadRequest}
	ErrUnauthorized       = &APIError{Code: ErrCodeUnauthorized}
	ErrForbidden          = &APIError{Code: ErrCodeForbidden}
	ErrNotFound           = &APIError{Code: ErrCodeNotFound}
	ErrConflict           = &APIError{Code: ErrCodeConflict}
	ErrValidation         = &APIError{Code: ErrCodeValidation}
	ErrServer             = &APIError{Code: ErrCodeServer}
	ErrServiceUnavailable = &APIError{Code: ErrCodeServiceUnavailable}
	ErrNetwork            = &APIError{Code: ErrCodeNetwork}
	ErrUnknown            = &APIError{Code: ErrCodeUnknown}
)

// New creates an APIError with an explicit code and status.
func New(code ErrorCode, message string, statusCode int) *APIError {
	return &APIError{Code: code, Message: message, StatusCode: statusCode}
}

// Network creates a NETWORK_ERROR for a transport that failed before responding.
func Network(cause error) *APIError {
	return &APIError{Code: ErrCodeNetwork, Message: MessageNetwork, Cause: cause}
}

// Unknown creates an UNKNOWN_ERROR wrapping an unclassified failure.
func Unknown(cause error) *APIError {
	return &APIError{Code: ErrCodeUnknown, Message: MessageUnknown, Cause: cause}
}

// InvalidResponse creates a VALIDATION_ERROR for a success body that failed
// schema validation.
func InvalidResponse(cause error) *APIError {
	return &APIError{Code: ErrCodeValidation, Message: MessageInvalidResponse, Cause: cause}
}

// InvalidFormat creates a VALIDATION_ERROR for a success body that could not
// be decoded.
func InvalidFormat(cause error) *APIError {
	return &APIError{Code: ErrCodeValidation, Message: MessageInvalidFormat, Cause: cause}
}

// Mock creates a MOCK_ERROR as raised by scripted test transports.
func Mock(message string) *APIError {
	return &APIError{Code: ErrCodeMock, Message: message}
}

// As extracts an *APIError from err.
func As(err error) (*APIError, bool) {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// CodeOf returns the code of err, or "" if err is not an APIError.
func CodeOf(err error) ErrorCode {
	if apiErr, ok := As(err); ok {
		return apiErr.Code
	}
	return ""
}

// IsCode reports whether err is an APIError with the given code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// IsNetwork checks if an error is a network error.
func IsNetwork(err error) bool { return IsCode(err, ErrCodeNetwork) }

// IsUnauthorized checks if an error is an authentication error.
func IsUnauthorized(err error) bool { return IsCode(err, ErrCodeUnauthorized) }

// IsNotFound checks if an error is a not-found error.
func IsNotFound(err error) bool { return IsCode(err, ErrCodeNotFound) }

// IsConflict checks if an error is a conflict error.
func IsConflict(err error) bool { return IsCode(err, ErrCodeConflict) }

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool { return IsCode(err, ErrCodeValidation) }
