package cardinality

import (
	"reflect"
	"strconv"
	"testing"

	"github.com/a-detiste/parse-type/pkg/convert"
)

func numberConverter(t *testing.T) *convert.Converter {
	t.Helper()
	c, err := convert.New("Number", `\d+`, func(s string) (any, error) {
		return strconv.ParseInt(s, 10, 64)
	})
	if err != nil {
		t.Fatalf("New(Number) error: %v", err)
	}
	return c
}

func TestFromSuffix(t *testing.T) {
	tests := []struct {
		name string
		base string
		card Cardinality
	}{
		{"Number", "Number", One},
		{"Number?", "Number", ZeroOrOne},
		{"Number+", "Number", OneOrMore},
		{"Number*", "Number", ZeroOrMore},
		{"", "", One},
	}

	for _, tt := range tests {
		base, card := FromSuffix(tt.name)
		if base != tt.base || card != tt.card {
			t.Errorf("FromSuffix(%q) = %q, %v, want %q, %v", tt.name, base, card, tt.base, tt.card)
		}
	}
}

func TestSuffixRoundTrip(t *testing.T) {
	for _, card := range []Cardinality{One, ZeroOrOne, OneOrMore, ZeroOrMore} {
		name := "T" + card.Suffix()
		base, got := FromSuffix(name)
		if base != "T" || got != card {
			t.Errorf("FromSuffix(%q) = %q, %v, want T, %v", name, base, got, card)
		}
	}
}

func TestPattern(t *testing.T) {
	tests := []struct {
		card Cardinality
		want string
	}{
		{One, `\d+`},
		{ZeroOrOne, `(?:\d+)?`},
		{OneOrMore, `(?:\d+)(?:\s*,\s*(?:\d+))*`},
		{ZeroOrMore, `(?:(?:\d+)(?:\s*,\s*(?:\d+))*)?`},
	}

	for _, tt := range tests {
		t.Run(tt.card.String(), func(t *testing.T) {
			if got := tt.card.Pattern(`\d+`, ","); got != tt.want {
				t.Errorf("Pattern() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapOne(t *testing.T) {
	number := numberConverter(t)
	wrapped, err := Wrap(number, One)
	if err != nil {
		t.Fatalf("Wrap() error: %v", err)
	}
	if wrapped != number {
		t.Error("Wrap(One) did not return the converter unchanged")
	}
}

func TestWrapZeroOrOne(t *testing.T) {
	opt, err := Wrap(numberConverter(t), ZeroOrOne)
	if err != nil {
		t.Fatalf("Wrap() error: %v", err)
	}

	if opt.Name != "Number?" {
		t.Errorf("Name = %q, want Number?", opt.Name)
	}

	v, err := opt.Convert("42")
	if err != nil {
		t.Fatalf("Convert(42) error: %v", err)
	}
	if v != int64(42) {
		t.Errorf("Convert(42) = %v, want int64(42)", v)
	}

	v, err = opt.Convert("")
	if err != nil {
		t.Fatalf("Convert(empty) error: %v", err)
	}
	if v != nil {
		t.Errorf("Convert(empty) = %v, want nil", v)
	}
}

func TestWrapOneOrMore(t *testing.T) {
	many, err := Wrap(numberConverter(t), OneOrMore)
	if err != nil {
		t.Fatalf("Wrap() error: %v", err)
	}

	if many.Name != "Number+" {
		t.Errorf("Name = %q, want Number+", many.Name)
	}

	v, err := many.Convert("1, 2, 3")
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if !reflect.DeepEqual(v, []any{int64(1), int64(2), int64(3)}) {
		t.Errorf("Convert() = %v, want [1 2 3]", v)
	}

	// A single item is a one-element list.
	v, err = many.Convert("7")
	if err != nil {
		t.Fatalf("Convert(7) error: %v", err)
	}
	if !reflect.DeepEqual(v, []any{int64(7)}) {
		t.Errorf("Convert(7) = %v, want [7]", v)
	}
}

func TestWrapZeroOrMore(t *testing.T) {
	many, err := Wrap(numberConverter(t), ZeroOrMore)
	if err != nil {
		t.Fatalf("Wrap() error: %v", err)
	}

	v, err := many.Convert("")
	if err != nil {
		t.Fatalf("Convert(empty) error: %v", err)
	}
	if !reflect.DeepEqual(v, []any{}) {
		t.Errorf("Convert(empty) = %v, want []", v)
	}
}

func TestWrapSeparator(t *testing.T) {
	many, err := Wrap(numberConverter(t), OneOrMore, WithSeparator(";"))
	if err != nil {
		t.Fatalf("Wrap() error: %v", err)
	}

	v, err := many.Convert("1; 2")
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if !reflect.DeepEqual(v, []any{int64(1), int64(2)}) {
		t.Errorf("Convert() = %v, want [1 2]", v)
	}

	// The default separator no longer applies.
	if _, err := many.Convert("1, 2"); err == nil {
		t.Error("Convert(1, 2) accepted comma with ; separator")
	}
}

func TestWrapNil(t *testing.T) {
	if _, err := Wrap(nil, OneOrMore); err == nil {
		t.Error("Wrap(nil) did not error")
	}
}

func TestCreateMissingVariants(t *testing.T) {
	reg, err := convert.BuildTypeDict(numberConverter(t))
	if err != nil {
		t.Fatalf("BuildTypeDict() error: %v", err)
	}

	names := []string{"Number+", "Number?", "Number", "Missing*"}
	if err := CreateMissingVariants(names, reg); err != nil {
		t.Fatalf("CreateMissingVariants() error: %v", err)
	}

	for _, name := range []string{"Number+", "Number?"} {
		if _, ok := reg.Lookup(name); !ok {
			t.Errorf("variant %q not registered", name)
		}
	}
	// Unknown base types are left for compile-time reporting.
	if _, ok := reg.Lookup("Missing*"); ok {
		t.Error("Missing* registered despite absent base type")
	}

	// Running again is a no-op rather than a duplicate error.
	if err := CreateMissingVariants(names, reg); err != nil {
		t.Errorf("CreateMissingVariants() second run error: %v", err)
	}
}
