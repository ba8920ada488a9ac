package parse

import (
	"testing"

	"github.com/a-detiste/parse-type/pkg/errors"
)

func TestBuiltinConversions(t *testing.T) {
	tests := []struct {
		code string
		text string
		want any
	}{
		{"l", "Hello", "Hello"},
		{"w", "snake_case1", "snake_case1"},
		{"S", "a-b/c", "a-b/c"},
		{"d", "42", int64(42)},
		{"d", "-42", int64(-42)},
		{"d", "+7", int64(7)},
		{"n", "1,234,567", int64(1234567)},
		{"n", "-12,000", int64(-12000)},
		{"b", "101", int64(5)},
		{"b", "0b101", int64(5)},
		{"o", "17", int64(15)},
		{"o", "0o17", int64(15)},
		{"x", "ff", int64(255)},
		{"x", "0xFF", int64(255)},
		{"x", "-0x10", int64(-16)},
		// Leading 0B and 0b are hex digits here, not binary prefixes.
		{"x", "0B12", int64(0x0B12)},
		{"x", "0b10", int64(0x0B10)},
		{"f", "3.14", 3.14},
		{"f", "-.5", -0.5},
		{"e", "1.5e3", 1500.0},
		{"e", "2E-2", 0.02},
		{"g", "42", int64(42)},
		{"g", "4.2", 4.2},
		{"g", "1e2", 100.0},
		{"%", "50%", 0.5},
		{"%", "2.5%", 0.025},
	}

	for _, tt := range tests {
		t.Run(tt.code+"/"+tt.text, func(t *testing.T) {
			f, err := Compile("{v:"+tt.code+"}", nil)
			if err != nil {
				t.Fatalf("Compile() error: %v", err)
			}
			r, err := f.Parse(tt.text)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.text, err)
			}
			if got := r.Named["v"]; got != tt.want {
				t.Errorf("v = %v (%T), want %v (%T)", got, got, tt.want, tt.want)
			}
		})
	}
}

func TestBuiltinMismatches(t *testing.T) {
	tests := []struct {
		code string
		text string
	}{
		{"l", "abc1"},
		{"d", "abc"},
		{"b", "102"},
		{"o", "18"},
		{"x", "fg"},
		{"f", "3"},
		{"e", "3.14"},
		{"%", "50"},
		{"ti", "not-a-date"},
	}

	for _, tt := range tests {
		t.Run(tt.code+"/"+tt.text, func(t *testing.T) {
			f, err := Compile("{v:"+tt.code+"}", nil)
			if err != nil {
				t.Fatalf("Compile() error: %v", err)
			}
			if _, err := f.Parse(tt.text); !errors.Is(err, errors.ErrCodeNoMatch) {
				t.Errorf("Parse(%q) error = %v, want NO_MATCH", tt.text, err)
			}
		})
	}
}

func TestParseISO8601Layouts(t *testing.T) {
	texts := []string{
		"2024-01-15",
		"2024-01-15T10:30",
		"2024-01-15 10:30:00",
		"2024-01-15T10:30:00.123",
		"2024-01-15T10:30:00Z",
		"2024-01-15T10:30:00+02:00",
	}
	for _, text := range texts {
		if _, err := parseISO8601(text); err != nil {
			t.Errorf("parseISO8601(%q) error: %v", text, err)
		}
	}

	if _, err := parseISO8601("2024-13-40"); err == nil {
		t.Error("parseISO8601(2024-13-40) accepted an invalid date")
	}
}

func TestBuiltinsTable(t *testing.T) {
	infos := Builtins()
	if len(infos) == 0 {
		t.Fatal("Builtins() is empty")
	}

	seen := make(map[string]bool)
	for _, info := range infos {
		if info.Code == "" || info.Pattern == "" || info.Doc == "" {
			t.Errorf("incomplete builtin entry: %+v", info)
		}
		if seen[info.Code] {
			t.Errorf("duplicate builtin code %q", info.Code)
		}
		seen[info.Code] = true
	}

	for _, code := range []string{"d", "w", "f", "ti"} {
		if !seen[code] {
			t.Errorf("builtin %q missing from table", code)
		}
	}
}
