package schema

import (
	stderrors "errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
)

// Schema validates decoded data and converts it to T.
type Schema[T any] interface {
	Parse(data any) (T, error)
}

// Issue is a single structural violation.
type Issue struct {
	// Path is the dotted location of the offending value ("" for the root).
	Path string `json:"path"`
	// Message describes the violation.
	Message string `json:"message"`
}

// String renders the issue as "path: message".
func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// ValidationError reports every violation found while parsing.
type ValidationError struct {
	Issues []Issue
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	return "schema: " + strings.Join(parts, "; ")
}

// NewValidationError builds a ValidationError from issues.
func NewValidationError(issues ...Issue) *ValidationError {
	return &ValidationError{Issues: issues}
}

// AsValidationError extracts a *ValidationError from err.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if stderrors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// Func adapts an ordinary function to Schema.
type Func[T any] func(data any) (T, error)

// Parse calls f(data).
func (f Func[T]) Parse(data any) (T, error) {
	return f(data)
}

// Decode returns a schema that only converts data into T, applying no rules
// beyond what the type itself enforces.
func Decode[T any]() Schema[T] {
	return Func[T](decodeInto[T])
}

// decodeInto converts a decoded JSON value into T by re-encoding it. Type
// mismatches are reported as a ValidationError.
func decodeInto[T any](data any) (T, error) {
	var out T
	if v, ok := data.(T); ok {
		return v, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return out, fmt.Errorf("schema: re-encode value: %w", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, NewValidationError(decodeIssue(err))
	}
	return out, nil
}

func decodeIssue(err error) Issue {
	var typeErr *json.UnmarshalTypeError
	if stderrors.As(err, &typeErr) {
		return Issue{
			Path:    typeErr.Field,
			Message: fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value),
		}
	}
	return Issue{Message: err.Error()}
}
