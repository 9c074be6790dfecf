package recovery

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
)

// FieldType is the expected JSON type of a schema field.
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeNumber  FieldType = "number"
	TypeInteger FieldType = "integer"
	TypeBoolean FieldType = "boolean"
	TypeObject  FieldType = "object"
	TypeArray   FieldType = "array"
	TypeAny     FieldType = "any"
)

// Format names a string format constraint.
type Format string

const (
	// FormatHexAddress matches a 20-byte 0x-prefixed hex address.
	FormatHexAddress Format = "hex_address"

	// FormatHexHash matches a 32-byte 0x-prefixed hex hash.
	FormatHexHash Format = "hex_hash"
)

var formatPatterns = map[Format]*regexp.Regexp{
	FormatHexAddress: regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`),
	FormatHexHash:    regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`),
}

// FieldSchema constrains a single field of a recovered object.
type FieldSchema struct {
	Type     FieldType
	Required bool
	Enum     []any    // allowed values, any type
	Min      *float64 // numeric lower bound, inclusive
	Max      *float64 // numeric upper bound, inclusive
	Format   Format   // string format constraint
}

// Schema describes the expected shape of a recovered object.
type Schema struct {
	Fields map[string]FieldSchema

	// AllowUnknown permits fields not listed in Fields. Unknown fields
	// produce warnings, not errors.
	AllowUnknown bool
}

// ConfidenceLevel grades how trustworthy a recovered value is.
type ConfidenceLevel string

const (
	ConfidenceVeryLow  ConfidenceLevel = "very_low"
	ConfidenceLow      ConfidenceLevel = "low"
	ConfidenceMedium   ConfidenceLevel = "medium"
	ConfidenceHigh     ConfidenceLevel = "high"
	ConfidenceVeryHigh ConfidenceLevel = "very_high"
)

// ValidationResult reports the outcome of schema validation.
type ValidationResult struct {
	Valid           bool
	Errors          []string
	Warnings        []string
	ConfidenceLevel ConfidenceLevel
}

// Validate checks value against the schema. The value must be a JSON
// object (map). Confidence is assigned later by the pipeline from the
// combination of parse outcome and validation issues.
func (s *Schema) Validate(value any) ValidationResult {
	result := ValidationResult{Valid: true}

	obj, ok := value.(map[string]any)
	if !ok {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("expected object, got %T", value))
		return result
	}

	for name, field := range s.Fields {
		v, present := obj[name]
		if !present {
			if field.Required {
				result.Valid = false
				result.Errors = append(result.Errors, fieldIssue(name, "required field missing"))
			}
			continue
		}
		s.validateField(name, field, v, &result)
	}

	if !s.AllowUnknown {
		for name := range obj {
			if _, known := s.Fields[name]; !known {
				result.Warnings = append(result.Warnings, fieldIssue(name, "unknown field"))
			}
		}
	}

	return result
}

func (s *Schema) validateField(name string, field FieldSchema, v any, result *ValidationResult) {
	if !typeMatches(field.Type, v) {
		result.Valid = false
		result.Errors = append(result.Errors, fieldIssue(name, "expected %s, got %T", field.Type, v))
		return
	}

	if len(field.Enum) > 0 && !enumContains(field.Enum, v) {
		result.Valid = false
		result.Errors = append(result.Errors, fieldIssue(name, "value %v not in allowed set", v))
		return
	}

	if n, isNum := asFloat(v); isNum {
		if field.Min != nil && n < *field.Min {
			result.Valid = false
			result.Errors = append(result.Errors, fieldIssue(name, "value %v below minimum %v", n, *field.Min))
		}
		if field.Max != nil && n > *field.Max {
			result.Valid = false
			result.Errors = append(result.Errors, fieldIssue(name, "value %v above maximum %v", n, *field.Max))
		}
	}

	if field.Format != "" {
		str, isStr := v.(string)
		if !isStr {
			result.Valid = false
			result.Errors = append(result.Errors, fieldIssue(name, "format %s requires a string", field.Format))
			return
		}
		pattern, known := formatPatterns[field.Format]
		if !known {
			result.Warnings = append(result.Warnings, fieldIssue(name, "unknown format %s", field.Format))
			return
		}
		if !pattern.MatchString(str) {
			result.Valid = false
			result.Errors = append(result.Errors, fieldIssue(name, "value does not match format %s", field.Format))
		}
	}
}

func typeMatches(ft FieldType, v any) bool {
	switch ft {
	case TypeAny, "":
		return true
	case TypeString:
		_, ok := v.(string)
		return ok
	case TypeNumber:
		_, ok := asFloat(v)
		return ok
	case TypeInteger:
		n, ok := asFloat(v)
		return ok && n == math.Trunc(n)
	case TypeBoolean:
		_, ok := v.(bool)
		return ok
	case TypeObject:
		_, ok := v.(map[string]any)
		return ok
	case TypeArray:
		_, ok := v.([]any)
		return ok
	default:
		return false
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func enumContains(enum []any, v any) bool {
	for _, e := range enum {
		if reflect.DeepEqual(e, v) {
			return true
		}
		// JSON numbers decode as float64; allow numeric equality
		// across integer-typed enum entries.
		en, eok := asFloat(e)
		vn, vok := asFloat(v)
		if eok && vok && en == vn {
			return true
		}
	}
	return false
}
