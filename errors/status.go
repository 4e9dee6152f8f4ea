package errors

import (
	"fmt"
	"net/http"
)

var statusCodes = map[int]ErrorCode{
	http.StatusBadRequest:          ErrCodeBadRequest,
	http.StatusUnauthorized:        ErrCodeUnauthorized,
	http.StatusForbidden:           ErrCodeForbidden,
	http.StatusNotFound:            ErrCodeNotFound,
	http.StatusConflict:            ErrCodeConflict,
	http.StatusUnprocessableEntity: ErrCodeValidation,
	http.StatusInternalServerError: ErrCodeServer,
	http.StatusServiceUnavailable:  ErrCodeServiceUnavailable,
}

var statusMessages = map[int]string{
	http.StatusBadRequest:          "Invalid request. Please check your input.",
	http.StatusUnauthorized:        "Authentication failed. Please log in again.",
	http.StatusForbidden:           "Access denied.",
	http.StatusNotFound:            "Resource not found.",
	http.StatusConflict:            "This resource already exists.",
	http.StatusUnprocessableEntity: "Invalid data provided.",
	http.StatusInternalServerError: "Server error. Please try again later.",
	http.StatusServiceUnavailable:  "Service unavailable. Please try again later.",
}

// CodeForStatus maps an HTTP status to its error code. Statuses outside the
// table map to ErrCodeHTTP.
func CodeForStatus(status int) ErrorCode {
	if code, ok := statusCodes[status]; ok {
		return code
	}
	return ErrCodeHTTP
}

// DefaultMessage returns the user-facing fallback message for a status.
func DefaultMessage(status int) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}
	return fmt.Sprintf("Request failed with status %d.", status)
}

// FromStatus creates a status-driven APIError. An empty message is replaced
// by DefaultMessage(status).
func FromStatus(status int, message string) *APIError {
	if message == "" {
		message = DefaultMessage(status)
	}
	return &APIError{
		Message:    message,
		Code:       CodeForStatus(status),
		StatusCode: status,
	}
}
