package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrCodeNoMatch, "text does not match %q", "{n:d}")

	if !strings.HasPrefix(err.Error(), "NO_MATCH: ") {
		t.Errorf("Error() = %q, want NO_MATCH prefix", err.Error())
	}
	if !strings.Contains(err.Error(), "{n:d}") {
		t.Errorf("Error() = %q missing format argument", err.Error())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(ErrCodeStore, cause, "save schema %q", "orders")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error does not unwrap to cause")
	}
	if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Error() = %q missing cause", err.Error())
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeUnknownType, "unknown type")

	if !Is(err, ErrCodeUnknownType) {
		t.Error("Is() = false for matching code")
	}
	if Is(err, ErrCodeNoMatch) {
		t.Error("Is() = true for different code")
	}
	if Is(stderrors.New("plain"), ErrCodeNoMatch) {
		t.Error("Is() = true for non-structured error")
	}
	if Is(nil, ErrCodeNoMatch) {
		t.Error("Is(nil) = true")
	}

	// Code survives wrapping with fmt.Errorf.
	wrapped := fmt.Errorf("compile: %w", err)
	if !Is(wrapped, ErrCodeUnknownType) {
		t.Error("Is() lost code through fmt.Errorf wrapping")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeCache, "x")); got != ErrCodeCache {
		t.Errorf("GetCode() = %q, want CACHE_ERROR", got)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidFormat, "unclosed field at offset 3")
	if got := UserMessage(err); got != "unclosed field at offset 3" {
		t.Errorf("UserMessage() = %q", got)
	}
	if strings.Contains(UserMessage(err), "INVALID_FORMAT") {
		t.Error("UserMessage() leaks the code prefix")
	}

	plain := stderrors.New("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestValidateTypeName(t *testing.T) {
	valid := []string{"Number", "snake_case", "_hidden", "Number?", "Number+", "Number*", "T2"}
	for _, name := range valid {
		if err := ValidateTypeName(name); err != nil {
			t.Errorf("ValidateTypeName(%q) error: %v", name, err)
		}
	}

	invalid := []string{"", "2Fast", "has space", "a-b", "Number??", "?Number", strings.Repeat("x", 65)}
	for _, name := range invalid {
		if err := ValidateTypeName(name); !Is(err, ErrCodeInvalidName) {
			t.Errorf("ValidateTypeName(%q) error = %v, want INVALID_NAME", name, err)
		}
	}
}

func TestValidateSchemaName(t *testing.T) {
	valid := []string{"orders", "app.logs", "a-b_c", "v1.2", "7days"}
	for _, name := range valid {
		if err := ValidateSchemaName(name); err != nil {
			t.Errorf("ValidateSchemaName(%q) error: %v", name, err)
		}
	}

	invalid := []string{"", "Orders", "-lead", ".lead", "a..b", "has space", strings.Repeat("x", 129)}
	for _, name := range invalid {
		if err := ValidateSchemaName(name); !Is(err, ErrCodeInvalidName) {
			t.Errorf("ValidateSchemaName(%q) error = %v, want INVALID_NAME", name, err)
		}
	}
}

func TestValidateFormatString(t *testing.T) {
	if err := ValidateFormatString("{n:d}\tdone\n"); err != nil {
		t.Errorf("ValidateFormatString(tab/newline) error: %v", err)
	}

	tests := []struct {
		name   string
		format string
	}{
		{"empty", ""},
		{"nul byte", "a\x00b"},
		{"control char", "a\x07b"},
		{"too long", strings.Repeat("x", 4097)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateFormatString(tt.format); !Is(err, ErrCodeInvalidFormat) {
				t.Errorf("ValidateFormatString() error = %v, want INVALID_FORMAT", err)
			}
		})
	}
}
