package sphinxpoetry

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Error codes for validation failures.
const (
	ErrCodeRequired       = "required"
	ErrCodeInvalidType    = "invalid_type"
	ErrCodeMissingSection = "missing_section"
	ErrCodeInvalidName    = "invalid_name"
	ErrCodeEmpty          = "empty"
)

// ErrNilConfig is returned when a nil *Config is passed where one is required.
var ErrNilConfig = errors.New("sphinxpoetry: config is nil")

// ValidationError aggregates field-level validation failures.
type ValidationError struct {
	Source      string // Document path, when known
	FieldErrors []FieldError
}

// Error formats validation errors as a multi-line message.
func (e *ValidationError) Error() string {
	header := "config validation failed"
	if e.Source != "" {
		header += " for " + e.Source
	}

	if len(e.FieldErrors) == 0 {
		return header + ": no errors"
	}

	var b strings.Builder
	if len(e.FieldErrors) == 1 {
		fmt.Fprintf(&b, "%s: 1 error\n", header)
	} else {
		fmt.Fprintf(&b, "%s: %d errors\n", header, len(e.FieldErrors))
	}

	for _, fe := range e.FieldErrors {
		fmt.Fprintf(&b, "  - %s: %s (%s)\n", fe.FieldPath, fe.Code, fe.Message)
	}

	return strings.TrimRight(b.String(), "\n")
}

// Has reports whether any field error carries the given code.
func (e *ValidationError) Has(code string) bool {
	for _, fe := range e.FieldErrors {
		if fe.Code == code {
			return true
		}
	}
	return false
}

// FieldError represents a single field validation failure.
type FieldError struct {
	FieldPath string // Key path (e.g., "tool.poetry.authors[1].name")
	Code      string // Error code (e.g., "required", "invalid_type")
	Message   string // Human-readable description
}

func typeError(path, want string, got any) FieldError {
	return FieldError{
		FieldPath: path,
		Code:      ErrCodeInvalidType,
		Message:   fmt.Sprintf("expected %s, got %s", want, typeName(got)),
	}
}

// typeName names a decoded value the way a TOML author would.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "integer"
	case float32, float64:
		return "float"
	case json.Number:
		return "number"
	case []any, []string:
		return "array"
	case map[string]any:
		return "table"
	default:
		return fmt.Sprintf("%T", v)
	}
}
