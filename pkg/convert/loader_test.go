package convert

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/a-detiste/parse-type/pkg/errors"
)

const sampleTOML = `
[types.Color]
kind = "string"
pattern = "red|green|blue"

[types.Count]
kind = "int"

[types.Ratio]
kind = "float"

[types.Severity]
kind = "enum"
[types.Severity.values]
low = 1
high = 3
`

func TestParseTOML(t *testing.T) {
	convs, err := ParseTOML([]byte(sampleTOML))
	if err != nil {
		t.Fatalf("ParseTOML() error: %v", err)
	}

	if len(convs) != 4 {
		t.Fatalf("len(convs) = %d, want 4", len(convs))
	}

	// Sorted by name.
	wantNames := []string{"Color", "Count", "Ratio", "Severity"}
	for i, c := range convs {
		if c.Name != wantNames[i] {
			t.Errorf("convs[%d].Name = %q, want %q", i, c.Name, wantNames[i])
		}
	}
}

func TestParseTOMLConversions(t *testing.T) {
	convs, err := ParseTOML([]byte(sampleTOML))
	if err != nil {
		t.Fatalf("ParseTOML() error: %v", err)
	}
	byName := make(map[string]*Converter, len(convs))
	for _, c := range convs {
		byName[c.Name] = c
	}

	if v, err := byName["Color"].Convert("green"); err != nil || v != "green" {
		t.Errorf("Color.Convert(green) = %v, %v", v, err)
	}
	if v, err := byName["Count"].Convert("-12"); err != nil || v != int64(-12) {
		t.Errorf("Count.Convert(-12) = %v, %v", v, err)
	}
	if v, err := byName["Ratio"].Convert("0.75"); err != nil || v != 0.75 {
		t.Errorf("Ratio.Convert(0.75) = %v, %v", v, err)
	}
	if v, err := byName["Severity"].Convert("high"); err != nil || v != int64(3) {
		t.Errorf("Severity.Convert(high) = %v, %v", v, err)
	}
	if _, err := byName["Severity"].Convert("medium"); !errors.Is(err, errors.ErrCodeNoMatch) {
		t.Errorf("Severity.Convert(medium) error = %v, want NO_MATCH", err)
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "types.toml")
	if err := os.WriteFile(path, []byte(sampleTOML), 0o644); err != nil {
		t.Fatal(err)
	}

	convs, err := LoadTOML(path)
	if err != nil {
		t.Fatalf("LoadTOML() error: %v", err)
	}
	if len(convs) != 4 {
		t.Errorf("len(convs) = %d, want 4", len(convs))
	}
}

func TestLoadTOMLMissingFile(t *testing.T) {
	_, err := LoadTOML(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("LoadTOML(missing) error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestParseTOMLInvalid(t *testing.T) {
	_, err := ParseTOML([]byte("not [ valid = toml"))
	if !errors.Is(err, errors.ErrCodeInvalidTypedef) {
		t.Errorf("ParseTOML(garbage) error = %v, want INVALID_TYPEDEF", err)
	}
}

func TestFromDefErrors(t *testing.T) {
	tests := []struct {
		name string
		def  TypeDef
	}{
		{"string without pattern", TypeDef{Kind: KindString}},
		{"unknown kind", TypeDef{Kind: "complex", Pattern: `\d+`}},
		{"enum without values", TypeDef{Kind: KindEnum}},
		{"bad pattern", TypeDef{Kind: KindString, Pattern: `[`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromDef("T", tt.def); err == nil {
				t.Errorf("FromDef(%+v) accepted invalid definition", tt.def)
			}
		})
	}
}

func TestFromDefDefaultKind(t *testing.T) {
	// An empty kind means string and still needs a pattern.
	c, err := FromDef("Word", TypeDef{Pattern: `\w+`})
	if err != nil {
		t.Fatalf("FromDef() error: %v", err)
	}
	if v, err := c.Convert("abc"); err != nil || v != "abc" {
		t.Errorf("Convert(abc) = %v, %v", v, err)
	}
}

func TestAlternation(t *testing.T) {
	// Longer values come first so prefixes don't shadow.
	got := Alternation([]string{"li", "light", "lit"})
	want := `light|lit|li`
	if got != want {
		t.Errorf("Alternation() = %q, want %q", got, want)
	}
}

func TestAlternationQuotesMeta(t *testing.T) {
	got := Alternation([]string{"a.b"})
	if got != `a\.b` {
		t.Errorf("Alternation() = %q, want %q", got, `a\.b`)
	}
}

func TestNewEnumEmptyKey(t *testing.T) {
	_, err := NewEnum("Bad", map[string]any{"": 1})
	if !errors.Is(err, errors.ErrCodeInvalidTypedef) {
		t.Errorf("NewEnum(empty key) error = %v, want INVALID_TYPEDEF", err)
	}
}
