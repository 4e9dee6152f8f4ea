package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Status-driven codes
const (
	// ErrCodeBadRequest is produced by HTTP 400.
	ErrCodeBadRequest ErrorCode = "BAD_REQUEST"
	// ErrCodeUnauthorized is produced by HTTP 401.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeForbidden is produced by HTTP 403.
	ErrCodeForbidden ErrorCode = "FORBIDDEN"
	// ErrCodeNotFound is produced by HTTP 404.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeConflict is produced by HTTP 409.
	ErrCodeConflict ErrorCode = "CONFLICT"
	// ErrCodeValidation is produced by HTTP 422 and by success bodies that
	// cannot be decoded or fail schema validation.
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"
	// ErrCodeServer is produced by HTTP 500.
	ErrCodeServer ErrorCode = "SERVER_ERROR"
	// ErrCodeServiceUnavailable is produced by HTTP 503.
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	// ErrCodeHTTP is produced by any other non-2xx status.
	ErrCodeHTTP ErrorCode = "HTTP_ERROR"
)

// Synthetic codes (no status code)
const (
	// ErrCodeNetwork indicates the transport failed before a response was obtained.
	ErrCodeNetwork ErrorCode = "NETWORK_ERROR"
	// ErrCodeUnknown indicates a failure that fits no other classification.
	ErrCodeUnknown ErrorCode = "UNKNOWN_ERROR"
)

// ErrCodeMock is raised only by scripted test transports.
const ErrCodeMock ErrorCode = "MOCK_ERROR"

var knownCodes = map[ErrorCode]bool{
	ErrCodeBadRequest:         true,
	ErrCodeUnauthorized:       true,
	ErrCodeForbidden:          true,
	ErrCodeNotFound:           true,
	ErrCodeConflict:           true,
	ErrCodeValidation:         true,
	ErrCodeServer:             true,
	ErrCodeServiceUnavailable: true,
	ErrCodeHTTP:               true,
	ErrCodeNetwork:            true,
	ErrCodeUnknown:            true,
	ErrCodeMock:               true,
}

// IsKnownCode reports whether code belongs to the taxonomy.
func IsKnownCode(code ErrorCode) bool {
	return knownCodes[code]
}

// String returns the code as a plain string.
func (c ErrorCode) String() string { return string(c) }
