package parse

import (
	"strconv"
	"testing"
	"time"

	"github.com/a-detiste/parse-type/pkg/builder"
	"github.com/a-detiste/parse-type/pkg/convert"
	"github.com/a-detiste/parse-type/pkg/errors"
)

// numberConverter returns the canonical custom type used throughout the
// tests: a positive integer converted to int64.
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

func registryWith(t *testing.T, convs ...*convert.Converter) *convert.Registry {
	t.Helper()
	reg, err := convert.BuildTypeDict(convs...)
	if err != nil {
		t.Fatalf("BuildTypeDict() error: %v", err)
	}
	return reg
}

func TestParseBuiltins(t *testing.T) {
	f, err := Compile("{name:w} is {age:d} years old", nil)
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}

	r, err := f.Parse("Ada is 36 years old")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if got := r.Named["name"]; got != "Ada" {
		t.Errorf("name = %v, want Ada", got)
	}
	if got := r.Named["age"]; got != int64(36) {
		t.Errorf("age = %v (%T), want int64(36)", got, got)
	}
}

func TestParseCustomType(t *testing.T) {
	reg := registryWith(t, numberConverter(t))
	f, err := Compile("Test: {number:Number}", reg)
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}

	matches := map[string]int64{
		"Test: 1":   1,
		"Test: 42":  42,
		"Test: 123": 123,
	}
	for text, want := range matches {
		r, err := f.Parse(text)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", text, err)
		}
		if got := r.Named["number"]; got != want {
			t.Errorf("Parse(%q) number = %v, want %d", text, got, want)
		}
	}

	mismatches := []string{"Test: x", "Test: -1", "Test: a, b", "Test: ", "Test 42"}
	for _, text := range mismatches {
		if _, err := f.Parse(text); !errors.Is(err, errors.ErrCodeNoMatch) {
			t.Errorf("Parse(%q) error = %v, want NO_MATCH", text, err)
		}
	}
}

func TestParseChoice(t *testing.T) {
	person, err := builder.MakeChoice("Person", []string{"Alice", "Bob", "Charly"}, nil)
	if err != nil {
		t.Fatalf("MakeChoice() error: %v", err)
	}
	f, err := Compile("Hello {person:Person}", registryWith(t, person))
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}

	for _, name := range []string{"Alice", "Bob", "Charly"} {
		r, err := f.Parse("Hello " + name)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", name, err)
		}
		if got := r.Named["person"]; got != name {
			t.Errorf("person = %v, want %s", got, name)
		}
	}

	for _, text := range []string{"Hello ", "Hello Boby", "Hello BAlice", "Hello alice"} {
		if _, err := f.Parse(text); !errors.Is(err, errors.ErrCodeNoMatch) {
			t.Errorf("Parse(%q) error = %v, want NO_MATCH", text, err)
		}
	}
}

func TestParsePositionalFields(t *testing.T) {
	f, err := Compile("{} to {}", nil)
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}

	r, err := f.Parse("here to there")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if len(r.Positional) != 2 {
		t.Fatalf("len(Positional) = %d, want 2", len(r.Positional))
	}
	if r.Positional[0] != "here" || r.Positional[1] != "there" {
		t.Errorf("Positional = %v, want [here there]", r.Positional)
	}
}

func TestParseEscapedBraces(t *testing.T) {
	f, err := Compile("{{{v:d}}}", nil)
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}

	r, err := f.Parse("{7}")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if got := r.Named["v"]; got != int64(7) {
		t.Errorf("v = %v, want int64(7)", got)
	}
}

func TestParseRepeatedNames(t *testing.T) {
	f, err := Compile("{x:d} + {x:d}", nil)
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}

	r, err := f.Parse("2 + 2")
	if err != nil {
		t.Fatalf("Parse(2 + 2) error: %v", err)
	}
	if got := r.Named["x"]; got != int64(2) {
		t.Errorf("x = %v, want int64(2)", got)
	}

	// Same name bound to different text is not a match.
	if _, err := f.Parse("2 + 3"); !errors.Is(err, errors.ErrCodeNoMatch) {
		t.Errorf("Parse(2 + 3) error = %v, want NO_MATCH", err)
	}
}

func TestCompileRepeatedNameConflictingTypes(t *testing.T) {
	_, err := Compile("{x:d} {x:w}", nil)
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Compile() error = %v, want INVALID_FORMAT", err)
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name   string
		format string
		code   errors.Code
	}{
		{"empty", "", errors.ErrCodeInvalidFormat},
		{"unclosed field", "{name", errors.ErrCodeInvalidFormat},
		{"single closing brace", "a}b", errors.ErrCodeInvalidFormat},
		{"bad field name", "{9bad}", errors.ErrCodeInvalidFormat},
		{"unknown type", "{a:Nope}", errors.ErrCodeUnknownType},
		{"bare precision", "{v:.f}", errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.format, nil)
			if !errors.Is(err, tt.code) {
				t.Errorf("Compile(%q) error = %v, want %s", tt.format, err, tt.code)
			}
		})
	}
}

func TestSearch(t *testing.T) {
	f, err := Compile("Test: {n:d}", nil)
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}

	r, err := f.Search("ignore this Test: 12 and the rest")
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if got := r.Named["n"]; got != int64(12) {
		t.Errorf("n = %v, want int64(12)", got)
	}

	span, ok := r.Spans["n"]
	if !ok {
		t.Fatal("Spans missing entry for n")
	}
	if span != [2]int{18, 20} {
		t.Errorf("span = %v, want [18 20]", span)
	}

	if _, err := f.Search("no number here"); !errors.Is(err, errors.ErrCodeNoMatch) {
		t.Errorf("Search() error = %v, want NO_MATCH", err)
	}
}

func TestFindAll(t *testing.T) {
	f, err := Compile("<{n:d}>", nil)
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}

	results, err := f.FindAll("<1> and <22> and <333>")
	if err != nil {
		t.Fatalf("FindAll() error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}

	want := []int64{1, 22, 333}
	for i, r := range results {
		if got := r.Named["n"]; got != want[i] {
			t.Errorf("results[%d] n = %v, want %d", i, got, want[i])
		}
	}

	// No match is an empty slice, not an error.
	results, err = f.FindAll("nothing")
	if err != nil {
		t.Fatalf("FindAll(nothing) error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("len(results) = %d, want 0", len(results))
	}
}

func TestCardinalityVariants(t *testing.T) {
	reg := registryWith(t, numberConverter(t))

	t.Run("one or more", func(t *testing.T) {
		f, err := Compile("List: {nums:Number+}", reg)
		if err != nil {
			t.Fatalf("Compile() error: %v", err)
		}

		r, err := f.Parse("List: 1, 2, 3")
		if err != nil {
			t.Fatalf("Parse() error: %v", err)
		}
		nums, ok := r.Named["nums"].([]any)
		if !ok {
			t.Fatalf("nums = %T, want []any", r.Named["nums"])
		}
		want := []int64{1, 2, 3}
		if len(nums) != len(want) {
			t.Fatalf("len(nums) = %d, want %d", len(nums), len(want))
		}
		for i, v := range nums {
			if v != want[i] {
				t.Errorf("nums[%d] = %v, want %d", i, v, want[i])
			}
		}

		if _, err := f.Parse("List: "); !errors.Is(err, errors.ErrCodeNoMatch) {
			t.Errorf("Parse(empty list) error = %v, want NO_MATCH", err)
		}
	})

	t.Run("zero or one", func(t *testing.T) {
		f, err := Compile("n={n:Number?}", reg)
		if err != nil {
			t.Fatalf("Compile() error: %v", err)
		}

		r, err := f.Parse("n=42")
		if err != nil {
			t.Fatalf("Parse(n=42) error: %v", err)
		}
		if got := r.Named["n"]; got != int64(42) {
			t.Errorf("n = %v, want int64(42)", got)
		}

		r, err = f.Parse("n=")
		if err != nil {
			t.Fatalf("Parse(n=) error: %v", err)
		}
		if got := r.Named["n"]; got != nil {
			t.Errorf("n = %v, want nil for absent value", got)
		}
	})

	t.Run("zero or more", func(t *testing.T) {
		f, err := Compile("List: {nums:Number*}", reg)
		if err != nil {
			t.Fatalf("Compile() error: %v", err)
		}

		r, err := f.Parse("List: ")
		if err != nil {
			t.Fatalf("Parse(empty) error: %v", err)
		}
		nums, ok := r.Named["nums"].([]any)
		if !ok || len(nums) != 0 {
			t.Errorf("nums = %v (%T), want empty []any", r.Named["nums"], r.Named["nums"])
		}
	})
}

func TestConverterInternalGroups(t *testing.T) {
	// A converter pattern with its own capture groups must not shift the
	// groups of later fields.
	pair, err := convert.New("Pair", `(\d+)-(\d+)`, nil)
	if err != nil {
		t.Fatalf("New(Pair) error: %v", err)
	}
	f, err := Compile("{p:Pair} {n:d}", registryWith(t, pair))
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}

	r, err := f.Parse("1-2 9")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if got := r.Named["p"]; got != "1-2" {
		t.Errorf("p = %v, want 1-2", got)
	}
	if got := r.Named["n"]; got != int64(9) {
		t.Errorf("n = %v, want int64(9)", got)
	}
}

func TestAlignmentPadding(t *testing.T) {
	tests := []struct {
		name   string
		format string
		text   string
		want   string
	}{
		{"right aligned", "{name:>10}", "       Ada", "Ada"},
		{"left aligned", "{name:<10}", "Ada       ", "Ada"},
		{"centered", "{name:^11}", "    Ada    ", "Ada"},
		{"custom fill", "{name:_>6}", "___Ada", "Ada"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Compile(tt.format, nil)
			if err != nil {
				t.Fatalf("Compile(%q) error: %v", tt.format, err)
			}
			r, err := f.Parse(tt.text)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.text, err)
			}
			if got := r.Named["name"]; got != tt.want {
				t.Errorf("name = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestZeroPaddedWidth(t *testing.T) {
	f, err := Compile("{n:03d}", nil)
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	r, err := f.Parse("007")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if got := r.Named["n"]; got != int64(7) {
		t.Errorf("n = %v, want int64(7)", got)
	}
}

func TestTimestampBuiltin(t *testing.T) {
	f, err := Compile("at {t:ti}", nil)
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}

	r, err := f.Parse("at 2024-01-15 10:30:00")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	got, ok := r.Named["t"].(time.Time)
	if !ok {
		t.Fatalf("t = %T, want time.Time", r.Named["t"])
	}
	want := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("t = %v, want %v", got, want)
	}
}

func TestRegistryOverridesBuiltin(t *testing.T) {
	// A registered converter named like a builtin code wins.
	letter, err := convert.New("d", `[a-z]`, nil)
	if err != nil {
		t.Fatalf("New(d) error: %v", err)
	}
	f, err := Compile("{v:d}", registryWith(t, letter))
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}

	r, err := f.Parse("q")
	if err != nil {
		t.Fatalf("Parse(q) error: %v", err)
	}
	if got := r.Named["v"]; got != "q" {
		t.Errorf("v = %v, want q", got)
	}
	if _, err := f.Parse("7"); !errors.Is(err, errors.ErrCodeNoMatch) {
		t.Errorf("Parse(7) error = %v, want NO_MATCH", err)
	}
}

func TestFormatAccessors(t *testing.T) {
	f := MustCompile("{a:d}-{b:w}", nil)

	if got := f.Source(); got != "{a:d}-{b:w}" {
		t.Errorf("Source() = %q", got)
	}
	if f.Pattern() == "" {
		t.Error("Pattern() is empty")
	}

	fields := f.Fields()
	if len(fields) != 2 {
		t.Fatalf("len(Fields()) = %d, want 2", len(fields))
	}
	if fields[0].Name != "a" || fields[0].Type != "d" {
		t.Errorf("fields[0] = %+v", fields[0])
	}
	if fields[1].Name != "b" || fields[1].Type != "w" {
		t.Errorf("fields[1] = %+v", fields[1])
	}
}

func TestMustCompilePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustCompile did not panic on invalid format")
		}
	}()
	MustCompile("{unclosed", nil)
}
