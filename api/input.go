package api

import (
	"strings"

	apierrors "github.com/kbukum/tripclient/errors"
	"github.com/kbukum/tripclient/schema"
)

// CheckInput applies v's validate tags before a request is sent. A failure
// is a VALIDATION_ERROR without a status code, listing each offending field.
func CheckInput(v any) error {
	err := schema.ValidateValue(v)
	if err == nil {
		return nil
	}
	ve, ok := schema.AsValidationError(err)
	if !ok || len(ve.Issues) == 0 {
		return &apierrors.APIError{Code: apierrors.ErrCodeValidation, Message: apierrors.MessageInvalidRequest, Cause: err}
	}
	msgs := make([]string, len(ve.Issues))
	for i, issue := range ve.Issues {
		msgs[i] = strings.TrimSpace(issue.Path + " " + issue.Message)
	}
	return &apierrors.APIError{
		Code:    apierrors.ErrCodeValidation,
		Message: strings.Join(msgs, ", "),
		Cause:   err,
	}
}
