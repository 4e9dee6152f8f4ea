package schema

import (
	stderrors "errors"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// getValidator returns the singleton validator instance.
func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Use json tag names for field names in issue paths
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return toSnakeCase(fld.Name)
			}
			return name
		})
	})
	return validate
}

type structSchema[T any] struct{}

// Struct returns a schema that decodes data into T and then enforces T's
// `validate` struct tags. Slices and maps of structs are validated element
// by element.
func Struct[T any]() Schema[T] {
	return structSchema[T]{}
}

// Parse implements Schema.
func (structSchema[T]) Parse(data any) (T, error) {
	out, err := decodeInto[T](data)
	if err != nil {
		return out, err
	}
	if err := ValidateValue(out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// ValidateValue applies struct tag rules to v. Non-struct values (after
// dereferencing pointers and descending into slices and maps) pass.
func ValidateValue(v any) error {
	issues := collectIssues(reflect.ValueOf(v), "")
	if len(issues) > 0 {
		return NewValidationError(issues...)
	}
	return nil
}

func collectIssues(rv reflect.Value, prefix string) []Issue {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		return structIssues(rv, prefix)
	case reflect.Slice, reflect.Array:
		var issues []Issue
		for i := 0; i < rv.Len(); i++ {
			issues = append(issues, collectIssues(rv.Index(i), joinPath(prefix, "["+strconv.Itoa(i)+"]"))...)
		}
		return issues
	case reflect.Map:
		var issues []Issue
		iter := rv.MapRange()
		for iter.Next() {
			key := iter.Key()
			if key.Kind() != reflect.String {
				continue
			}
			issues = append(issues, collectIssues(iter.Value(), joinPath(prefix, key.String()))...)
		}
		return issues
	default:
		return nil
	}
}

func structIssues(rv reflect.Value, prefix string) []Issue {
	err := getValidator().Struct(rv.Interface())
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !stderrors.As(err, &validationErrors) {
		return []Issue{{Path: prefix, Message: err.Error()}}
	}

	issues := make([]Issue, 0, len(validationErrors))
	for _, e := range validationErrors {
		issues = append(issues, Issue{
			Path:    joinPath(prefix, fieldPath(e.Namespace())),
			Message: formatValidationError(e),
		})
	}
	return issues
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return ns
}

func joinPath(prefix, part string) string {
	switch {
	case prefix == "":
		return part
	case strings.HasPrefix(part, "["):
		return prefix + part
	default:
		return prefix + "." + part
	}
}

// formatValidationError creates a human-readable error message.
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + e.Param()
	case "max":
		return "must be at most " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	case "url":
		return "must be a valid URL"
	case "uuid":
		return "must be a valid UUID"
	case "oneof":
		return "must be one of: " + e.Param()
	case "latitude":
		return "must be a valid latitude"
	case "longitude":
		return "must be a valid longitude"
	default:
		return "is invalid"
	}
}

// toSnakeCase converts a field name to snake_case.
func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune('_')
		}
		if r >= 'A' && r <= 'Z' {
			result.WriteRune(r + 32) // lowercase
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}
