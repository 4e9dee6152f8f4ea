// Package schema defines the structural validation contract used by the API
// client for success responses.
//
// A Schema[T] turns a decoded JSON value (maps, slices, strings, float64s)
// into a T, coercing primitives where the target type asks for it (RFC 3339
// strings into time.Time, for example) and rejecting mismatches with a
// *ValidationError. Three implementations are provided:
//
//   - Struct[T]: decodes into T and applies `validate:"..."` struct tags
//     (go-playground/validator).
//   - JSONSchema[T]: checks the value against a JSON Schema document
//     (gojsonschema), then decodes into T.
//   - Func[T]: adapts a plain function.
package schema
