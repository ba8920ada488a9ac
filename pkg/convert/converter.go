// Package convert defines typed text converters and the registry that makes
// them available to format-string compilation.
//
// A Converter pairs a regular expression with a conversion function. When a
// format string references the converter by name, the pattern constrains
// what the field matches and the function turns the matched text into a
// typed Go value:
//
//	number := convert.MustNew("Number", `\d+`, func(s string) (any, error) {
//	    return strconv.ParseInt(s, 10, 64)
//	})
//	reg, _ := convert.BuildTypeDict(number)
//	f, _ := parse.Compile("Test: {number:Number}", reg)
//
// Converter patterns use Go's regexp (RE2) syntax. Patterns may contain
// their own capture groups; the compiled group count is recorded so the
// format engine can map capture indices correctly.
package convert

import (
	"regexp"

	"github.com/a-detiste/parse-type/pkg/errors"
)

// ConvertFunc turns matched text into a typed value.
type ConvertFunc func(text string) (any, error)

// Converter is a named, reusable type converter: a regexp pattern plus a
// conversion function applied to the matched text.
type Converter struct {
	Name    string      // Registry name referenced from format strings
	Pattern string      // Regexp source constraining the match
	Func    ConvertFunc // Conversion applied to matched text (nil = identity)

	re     *regexp.Regexp // Compiled pattern, anchored
	groups int            // Capture groups inside Pattern
}

// New creates a converter and validates that its pattern compiles.
// A nil fn leaves the matched text as a string.
func New(name, pattern string, fn ConvertFunc) (*Converter, error) {
	if err := errors.ValidateTypeName(name); err != nil {
		return nil, err
	}
	if pattern == "" {
		return nil, errors.New(errors.ErrCodeInvalidPattern, "converter %q has empty pattern", name)
	}

	re, err := regexp.Compile(`\A(?:` + pattern + `)\z`)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPattern, err, "converter %q", name)
	}

	return &Converter{
		Name:    name,
		Pattern: pattern,
		Func:    fn,
		re:      re,
		groups:  re.NumSubexp(),
	}, nil
}

// MustNew is like New but panics on error.
// Intended for package-level converter declarations.
func MustNew(name, pattern string, fn ConvertFunc) *Converter {
	c, err := New(name, pattern, fn)
	if err != nil {
		panic(err)
	}
	return c
}

// GroupCount returns the number of capture groups in the pattern.
func (c *Converter) GroupCount() int {
	return c.groups
}

// Matches reports whether text matches the full converter pattern.
func (c *Converter) Matches(text string) bool {
	return c.re.MatchString(text)
}

// Convert applies the conversion function to text.
// Text that does not match the pattern is rejected with NO_MATCH.
func (c *Converter) Convert(text string) (any, error) {
	if !c.re.MatchString(text) {
		return nil, errors.New(errors.ErrCodeNoMatch, "%q does not match type %s", text, c.Name)
	}
	if c.Func == nil {
		return text, nil
	}
	return c.Func(text)
}
