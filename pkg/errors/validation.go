package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// typeNameRegex matches valid converter type names: an identifier with an
// optional trailing cardinality marker (?, +, *).
var typeNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*[?+*]?$`)

// ValidateTypeName validates a converter type name.
// Names are identifiers (letters, digits, underscore, not starting with a
// digit) with an optional trailing cardinality marker.
func ValidateTypeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "type name cannot be empty")
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidName, "type name too long (max 64 characters)")
	}

	if !typeNameRegex.MatchString(name) {
		return New(ErrCodeInvalidName, "invalid type name: %q", name)
	}

	return nil
}

// schemaNameRegex matches valid schema names for the store and HTTP API.
var schemaNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// ValidateSchemaName validates a named schema identifier.
// Schema names appear in URLs and store keys, so the rules are conservative:
//   - Lowercase letters, digits, dot, dash, underscore
//   - Must start with a letter or digit
//   - Maximum length of 128 characters
func ValidateSchemaName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "schema name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidName, "schema name too long (max 128 characters)")
	}

	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidName, "schema name cannot contain path traversal sequences (..)")
	}

	if !schemaNameRegex.MatchString(name) {
		return New(ErrCodeInvalidName, "invalid schema name: %q", name)
	}

	return nil
}

// ValidateFormatString performs cheap sanity checks on a format string
// before compilation. Full validation happens during compile; this catches
// inputs that should never reach the compiler.
func ValidateFormatString(format string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format string cannot be empty")
	}

	const maxFormatLength = 4096
	if len(format) > maxFormatLength {
		return New(ErrCodeInvalidFormat, "format string too long (max %d characters)", maxFormatLength)
	}

	for _, r := range format {
		if r == '\x00' || (unicode.IsControl(r) && r != '\t' && r != '\n' && r != '\r') {
			return New(ErrCodeInvalidFormat, "format string contains invalid control characters")
		}
	}

	return nil
}
