// Package errors defines the single failure type returned by the API client,
// APIError, and the closed set of machine-readable codes it carries.
//
// Status-driven codes are derived from the HTTP status of a failed response
// via CodeForStatus; synthetic codes (NETWORK_ERROR, UNKNOWN_ERROR, and
// VALIDATION_ERROR raised for undecodable or schema-violating success bodies)
// never carry a status code.
//
//	var apiErr *errors.APIError
//	if errors.As(err, &apiErr) && apiErr.Code == errors.ErrCodeConflict {
//	    // show apiErr.Message next to the username field
//	}
package errors
