package parse

import (
	"regexp"
	"strings"

	"github.com/a-detiste/parse-type/pkg/cardinality"
	"github.com/a-detiste/parse-type/pkg/convert"
	"github.com/a-detiste/parse-type/pkg/errors"
)

// Format is a compiled format string, ready to match text.
//
// A Format is safe for concurrent use once compiled.
type Format struct {
	source   string
	segments []segment
	fields   []*Field

	anchored   *regexp.Regexp // \A...\z, for Parse
	unanchored *regexp.Regexp // for Search and FindAll

	// groupOf maps each field position to its capture-group index in the
	// compiled regexps. Converter-internal groups occupy the indices in
	// between.
	groupOf []int
}

// Compile compiles a format string against a converter registry.
// The registry may be nil, in which case only builtin type codes are
// available. Cardinality variants (Type?, Type+, Type*) of registered
// base types are derived on demand.
func Compile(format string, reg *convert.Registry) (*Format, error) {
	if err := errors.ValidateFormatString(format); err != nil {
		return nil, err
	}

	segments, err := scanFormat(format)
	if err != nil {
		return nil, err
	}

	f := &Format{source: format, segments: segments}

	var pattern strings.Builder
	group := 1
	for i := range segments {
		seg := &segments[i]
		if seg.field == nil {
			pattern.WriteString(regexp.QuoteMeta(seg.literal))
			continue
		}

		field := seg.field
		if err := resolveType(field, reg); err != nil {
			return nil, err
		}

		f.fields = append(f.fields, field)
		f.groupOf = append(f.groupOf, group)
		group += 1 + field.groupCount()

		writeFieldPattern(&pattern, field)
	}

	f.unanchored, err = regexp.Compile(pattern.String())
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "compile %q", format)
	}
	f.anchored, err = regexp.Compile(`\A(?:` + pattern.String() + `)\z`)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "compile %q", format)
	}

	if err := checkRepeatedNames(f.fields); err != nil {
		return nil, err
	}
	return f, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(format string, reg *convert.Registry) *Format {
	f, err := Compile(format, reg)
	if err != nil {
		panic(err)
	}
	return f
}

// resolveType binds a field to its converter or builtin type.
// Registry entries take precedence over builtin codes, so users can
// override a builtin by registering a converter under the same name.
func resolveType(f *Field, reg *convert.Registry) error {
	if f.Type == "" {
		return nil
	}

	if reg != nil {
		if c, ok := reg.Lookup(f.Type); ok {
			f.conv = c
			return nil
		}

		// Derive a cardinality variant when the base type exists.
		if base, card := cardinality.FromSuffix(f.Type); card != cardinality.One {
			if baseConv, ok := reg.Lookup(base); ok {
				c, err := cardinality.Wrap(baseConv, card)
				if err != nil {
					return err
				}
				f.conv = c
				return nil
			}
		}
	}

	if b, ok := builtinIndex[f.Type]; ok {
		f.builtin = b
		return nil
	}

	return errors.New(errors.ErrCodeUnknownType, "unknown type %q in field %q", f.Type, f.label())
}

// writeFieldPattern appends the capture group for a field, with padding
// admitted around the value according to the alignment spec.
func writeFieldPattern(pattern *strings.Builder, f *Field) {
	pad := f.paddingPattern()

	if f.Align == '>' || f.Align == '^' {
		pattern.WriteString(pad)
	}
	pattern.WriteString("(")
	pattern.WriteString(f.valuePattern())
	pattern.WriteString(")")
	if f.Align == '<' || f.Align == '^' {
		pattern.WriteString(pad)
	}
}

// checkRepeatedNames verifies that repeated field names declare the same
// type. Their matched text is compared post-match, so the declared types
// must agree for the comparison to be meaningful.
func checkRepeatedNames(fields []*Field) error {
	types := make(map[string]string)
	for _, f := range fields {
		if f.Name == "" {
			continue
		}
		if prev, ok := types[f.Name]; ok && prev != f.Type {
			return errors.New(errors.ErrCodeInvalidFormat,
				"field %q declared with conflicting types %q and %q", f.Name, prev, f.Type)
		}
		types[f.Name] = f.Type
	}
	return nil
}

// Source returns the original format string.
func (f *Format) Source() string {
	return f.source
}

// Pattern returns the generated regexp source, for debugging.
func (f *Format) Pattern() string {
	return f.unanchored.String()
}

// Fields returns the compiled fields in format-string order.
func (f *Format) Fields() []Field {
	out := make([]Field, len(f.fields))
	for i, fld := range f.fields {
		out[i] = *fld
	}
	return out
}

// Parse matches text against the whole format string.
// Text that does not match returns an error with code NO_MATCH.
func (f *Format) Parse(text string) (*Result, error) {
	idx := f.anchored.FindStringSubmatchIndex(text)
	if idx == nil {
		return nil, errors.New(errors.ErrCodeNoMatch, "text does not match format %q", f.source)
	}

	r, err := f.buildResult(text, idx, 0)
	if err != nil {
		return nil, err
	}
	if r == nil {
		// Repeated fields bound to different text.
		return nil, errors.New(errors.ErrCodeNoMatch, "text does not match format %q", f.source)
	}
	return r, nil
}

// Search finds the first match of the format anywhere in text.
func (f *Format) Search(text string) (*Result, error) {
	results, err := f.find(text, 1)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, errors.New(errors.ErrCodeNoMatch, "no match for format %q", f.source)
	}
	return results[0], nil
}

// FindAll returns every non-overlapping match, left to right.
// No match yields an empty slice, not an error.
func (f *Format) FindAll(text string) ([]*Result, error) {
	return f.find(text, -1)
}

// find scans text for up to limit matches (limit < 0 means all).
// Matches whose repeated fields disagree are skipped.
func (f *Format) find(text string, limit int) ([]*Result, error) {
	var results []*Result
	offset := 0

	for offset <= len(text) {
		idx := f.unanchored.FindStringSubmatchIndex(text[offset:])
		if idx == nil {
			break
		}

		r, err := f.buildResult(text, idx, offset)
		if err != nil {
			return nil, err
		}

		// Advance past this match; on an empty match advance one byte to
		// guarantee progress.
		next := offset + idx[1]
		if idx[1] == idx[0] {
			next = offset + idx[0] + 1
		}

		if r != nil {
			results = append(results, r)
			if limit > 0 && len(results) >= limit {
				break
			}
		}
		offset = next
	}
	return results, nil
}

// buildResult converts the capture groups of one regexp match into a
// Result. It returns (nil, nil) when repeated named fields matched
// different text, which callers treat as a non-match.
func (f *Format) buildResult(text string, idx []int, offset int) (*Result, error) {
	r := &Result{
		Named: make(map[string]any),
		Spans: make(map[string][2]int),
	}

	seenText := make(map[string]string)
	for i, field := range f.fields {
		g := f.groupOf[i]
		start, end := idx[2*g], idx[2*g+1]

		var raw string
		matched := start >= 0
		if matched {
			raw = text[offset+start : offset+end]
		}

		if field.Name != "" {
			if prev, ok := seenText[field.Name]; ok {
				if prev != raw {
					return nil, nil
				}
				continue
			}
			seenText[field.Name] = raw
		}

		value, err := field.convertValue(raw)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "field %q", field.label())
		}

		if field.Name != "" {
			r.Named[field.Name] = value
			if matched {
				r.Spans[field.Name] = [2]int{offset + start, offset + end}
			}
		} else {
			r.Positional = append(r.Positional, value)
		}
	}
	return r, nil
}
