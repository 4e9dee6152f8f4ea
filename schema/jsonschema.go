package schema

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

type jsonSchema[T any] struct {
	compiled *gojsonschema.Schema
}

// JSONSchema compiles a JSON Schema document and returns a schema that checks
// decoded data against it before converting to T.
func JSONSchema[T any](document []byte) (Schema[T], error) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return nil, fmt.Errorf("schema: compile json schema: %w", err)
	}
	return &jsonSchema[T]{compiled: compiled}, nil
}

// MustJSONSchema is like JSONSchema but panics on an invalid document. It is
// intended for package-level schema variables.
func MustJSONSchema[T any](document []byte) Schema[T] {
	s, err := JSONSchema[T](document)
	if err != nil {
		panic(err)
	}
	return s
}

// Parse implements Schema.
func (s *jsonSchema[T]) Parse(data any) (T, error) {
	var zero T
	result, err := s.compiled.Validate(gojsonschema.NewGoLoader(data))
	if err != nil {
		return zero, fmt.Errorf("schema: validate: %w", err)
	}
	if !result.Valid() {
		issues := make([]Issue, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			path := e.Field()
			if path == "(root)" {
				path = ""
			}
			issues = append(issues, Issue{Path: path, Message: e.Description()})
		}
		return zero, NewValidationError(issues...)
	}
	return decodeInto[T](data)
}
