package convert

import (
	"strconv"
	"testing"

	"github.com/a-detiste/parse-type/pkg/errors"
)

func TestNew(t *testing.T) {
	c, err := New("Number", `\d+`, func(s string) (any, error) {
		return strconv.ParseInt(s, 10, 64)
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if c.Name != "Number" {
		t.Errorf("Name = %q, want Number", c.Name)
	}
	if c.Pattern != `\d+` {
		t.Errorf("Pattern = %q", c.Pattern)
	}
	if c.GroupCount() != 0 {
		t.Errorf("GroupCount() = %d, want 0", c.GroupCount())
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name    string
		tname   string
		pattern string
		code    errors.Code
	}{
		{"empty name", "", `\d+`, errors.ErrCodeInvalidName},
		{"bad name", "2Fast", `\d+`, errors.ErrCodeInvalidName},
		{"empty pattern", "Number", "", errors.ErrCodeInvalidPattern},
		{"invalid pattern", "Number", `[`, errors.ErrCodeInvalidPattern},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.tname, tt.pattern, nil)
			if !errors.Is(err, tt.code) {
				t.Errorf("New(%q, %q) error = %v, want %s", tt.tname, tt.pattern, err, tt.code)
			}
		})
	}
}

func TestConverterGroupCount(t *testing.T) {
	c := MustNew("Pair", `(\d+)-(\d+)`, nil)
	if c.GroupCount() != 2 {
		t.Errorf("GroupCount() = %d, want 2", c.GroupCount())
	}
}

func TestConvert(t *testing.T) {
	number := MustNew("Number", `\d+`, func(s string) (any, error) {
		return strconv.ParseInt(s, 10, 64)
	})

	v, err := number.Convert("42")
	if err != nil {
		t.Fatalf("Convert(42) error: %v", err)
	}
	if v != int64(42) {
		t.Errorf("Convert(42) = %v (%T), want int64(42)", v, v)
	}

	// Text outside the pattern is rejected even before the function runs.
	if _, err := number.Convert("4x2"); !errors.Is(err, errors.ErrCodeNoMatch) {
		t.Errorf("Convert(4x2) error = %v, want NO_MATCH", err)
	}
}

func TestConvertIdentity(t *testing.T) {
	word := MustNew("Word", `\w+`, nil)

	v, err := word.Convert("hello")
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if v != "hello" {
		t.Errorf("Convert() = %v, want hello", v)
	}
}

func TestMatches(t *testing.T) {
	c := MustNew("Hex", `0x[0-9a-f]+`, nil)

	if !c.Matches("0xff") {
		t.Error("Matches(0xff) = false")
	}
	// The pattern is anchored: partial matches do not count.
	if c.Matches("see 0xff here") {
		t.Error("Matches(see 0xff here) = true")
	}
}

func TestMustNewPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustNew did not panic on invalid pattern")
		}
	}()
	MustNew("Bad", `[`, nil)
}

func TestRegistryRegisterAndLookup(t *testing.T) {
	reg := NewRegistry()
	number := MustNew("Number", `\d+`, nil)

	if err := reg.Register(number); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	got, ok := reg.Lookup("Number")
	if !ok || got != number {
		t.Errorf("Lookup(Number) = %v, %v", got, ok)
	}
	if _, ok := reg.Lookup("Missing"); ok {
		t.Error("Lookup(Missing) found a converter")
	}
}

func TestRegistryDuplicate(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(MustNew("Number", `\d+`, nil)); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	err := reg.Register(MustNew("Number", `[0-9]+`, nil))
	if !errors.Is(err, errors.ErrCodeDuplicateType) {
		t.Errorf("Register(duplicate) error = %v, want DUPLICATE_TYPE", err)
	}
}

func TestRegistryNames(t *testing.T) {
	reg, err := BuildTypeDict(
		MustNew("Zebra", `z+`, nil),
		MustNew("Alpha", `a+`, nil),
	)
	if err != nil {
		t.Fatalf("BuildTypeDict() error: %v", err)
	}

	names := reg.Names()
	if len(names) != 2 || names[0] != "Alpha" || names[1] != "Zebra" {
		t.Errorf("Names() = %v, want [Alpha Zebra]", names)
	}
	if reg.Len() != 2 {
		t.Errorf("Len() = %d, want 2", reg.Len())
	}
}

func TestBuildTypeDictDuplicate(t *testing.T) {
	_, err := BuildTypeDict(
		MustNew("Number", `\d+`, nil),
		MustNew("Number", `\d+`, nil),
	)
	if !errors.Is(err, errors.ErrCodeDuplicateType) {
		t.Errorf("BuildTypeDict(duplicate) error = %v, want DUPLICATE_TYPE", err)
	}
}
