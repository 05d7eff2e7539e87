// Package execution loads observed execution results, the values CSR is
// computed against. Results are a flat YAML or JSON object mapping
// constraint names to numbers:
//
//	time: 85
//	budget: 10.5
//	serves: 6
package execution

import (
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// Schema is the JSON Schema every results document must satisfy.
const Schema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "PSL execution results",
  "type": "object",
  "propertyNames": {"pattern": "^[A-Za-z_][A-Za-z0-9_\\-]*$"},
  "additionalProperties": {"type": "number"}
}`

// Results maps constraint names to observed values.
type Results map[string]float64

// ValidationError lists every schema violation in a results document.
type ValidationError struct {
	Source string
	Errors []FieldError
}

// FieldError is a single schema violation.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("invalid execution results %s:\n", ve.Source))
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// LoadFile reads execution results from a YAML or JSON file.
func LoadFile(path string) (Results, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read execution results: %w", err)
	}
	return Parse(data, path)
}

// Parse decodes and validates execution results. JSON is accepted since it
// is a subset of YAML. source names the input in error messages.
func Parse(data []byte, source string) (Results, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse execution results %s: %w", source, err)
	}
	if raw == nil {
		return Results{}, nil
	}

	if err := validate(raw, source); err != nil {
		return nil, err
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, &ValidationError{
			Source: source,
			Errors: []FieldError{{Field: "(root)", Message: "Invalid type. Expected: object"}},
		}
	}

	results := make(Results, len(obj))
	for name, value := range obj {
		f, ok := toFloat(value)
		if !ok {
			return nil, &ValidationError{
				Source: source,
				Errors: []FieldError{{Field: name, Message: fmt.Sprintf("unsupported number %v", value)}},
			}
		}
		results[name] = f
	}
	return results, nil
}

// validate checks a decoded document against Schema.
func validate(doc any, source string) error {
	schemaLoader := gojsonschema.NewStringLoader(Schema)
	documentLoader := gojsonschema.NewGoLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("failed to validate execution results %s: %w", source, err)
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Source: source,
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
