package builder

import (
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/a-detiste/parse-type/pkg/convert"
	"github.com/a-detiste/parse-type/pkg/errors"
)

func TestMakeChoice(t *testing.T) {
	person, err := MakeChoice("Person", []string{"Alice", "Bob", "Charly"}, nil)
	if err != nil {
		t.Fatalf("MakeChoice() error: %v", err)
	}

	for _, name := range []string{"Alice", "Bob", "Charly"} {
		v, err := person.Convert(name)
		if err != nil {
			t.Fatalf("Convert(%q) error: %v", name, err)
		}
		if v != name {
			t.Errorf("Convert(%q) = %v", name, v)
		}
	}

	for _, text := range []string{"", "Boby", "BAlice", "alice"} {
		if _, err := person.Convert(text); !errors.Is(err, errors.ErrCodeNoMatch) {
			t.Errorf("Convert(%q) error = %v, want NO_MATCH", text, err)
		}
	}
}

func TestMakeChoiceTransform(t *testing.T) {
	upper, err := MakeChoice("Shout", []string{"yes", "no"}, func(s string) any {
		return strings.ToUpper(s)
	})
	if err != nil {
		t.Fatalf("MakeChoice() error: %v", err)
	}

	v, err := upper.Convert("yes")
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if v != "YES" {
		t.Errorf("Convert(yes) = %v, want YES", v)
	}
}

func TestMakeChoiceEmpty(t *testing.T) {
	if _, err := MakeChoice("Empty", nil, nil); err == nil {
		t.Error("MakeChoice(no values) did not error")
	}
}

func TestMakeEnum(t *testing.T) {
	level, err := MakeEnum("Level", map[string]any{"low": 1, "high": 3})
	if err != nil {
		t.Fatalf("MakeEnum() error: %v", err)
	}

	v, err := level.Convert("high")
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if v != 3 {
		t.Errorf("Convert(high) = %v, want 3", v)
	}

	if _, err := level.Convert("medium"); !errors.Is(err, errors.ErrCodeNoMatch) {
		t.Errorf("Convert(medium) error = %v, want NO_MATCH", err)
	}
}

func TestMakeVariant(t *testing.T) {
	number := convert.MustNew("Number", `\d+`, func(s string) (any, error) {
		return strconv.ParseInt(s, 10, 64)
	})
	word := convert.MustNew("Word", `[a-z]+`, nil)

	either, err := MakeVariant("NumberOrWord", []*convert.Converter{number, word})
	if err != nil {
		t.Fatalf("MakeVariant() error: %v", err)
	}

	v, err := either.Convert("42")
	if err != nil {
		t.Fatalf("Convert(42) error: %v", err)
	}
	if v != int64(42) {
		t.Errorf("Convert(42) = %v (%T), want int64(42)", v, v)
	}

	v, err = either.Convert("abc")
	if err != nil {
		t.Fatalf("Convert(abc) error: %v", err)
	}
	if v != "abc" {
		t.Errorf("Convert(abc) = %v, want abc", v)
	}

	if _, err := either.Convert("ABC"); !errors.Is(err, errors.ErrCodeNoMatch) {
		t.Errorf("Convert(ABC) error = %v, want NO_MATCH", err)
	}
}

func TestMakeVariantOrder(t *testing.T) {
	// Members are tried in declaration order; the first full match wins.
	hex := convert.MustNew("Hex", `[0-9a-f]+`, func(s string) (any, error) {
		return strconv.ParseInt(s, 16, 64)
	})
	dec := convert.MustNew("Dec", `\d+`, func(s string) (any, error) {
		return strconv.ParseInt(s, 10, 64)
	})

	either, err := MakeVariant("HexFirst", []*convert.Converter{hex, dec})
	if err != nil {
		t.Fatalf("MakeVariant() error: %v", err)
	}

	v, err := either.Convert("10")
	if err != nil {
		t.Fatalf("Convert(10) error: %v", err)
	}
	if v != int64(16) {
		t.Errorf("Convert(10) = %v, want int64(16) via hex member", v)
	}
}

func TestCardinalityHelpers(t *testing.T) {
	number := convert.MustNew("Number", `\d+`, func(s string) (any, error) {
		return strconv.ParseInt(s, 10, 64)
	})

	opt, err := WithZeroOrOne(number)
	if err != nil {
		t.Fatalf("WithZeroOrOne() error: %v", err)
	}
	if opt.Name != "Number?" {
		t.Errorf("optional Name = %q, want Number?", opt.Name)
	}

	many, err := WithOneOrMore(number)
	if err != nil {
		t.Fatalf("WithOneOrMore() error: %v", err)
	}
	v, err := many.Convert("1, 2")
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if !reflect.DeepEqual(v, []any{int64(1), int64(2)}) {
		t.Errorf("Convert(1, 2) = %v", v)
	}

	star, err := WithZeroOrMore(number)
	if err != nil {
		t.Fatalf("WithZeroOrMore() error: %v", err)
	}
	if star.Name != "Number*" {
		t.Errorf("list Name = %q, want Number*", star.Name)
	}
}
