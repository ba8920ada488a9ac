package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/a-detiste/parse-type/pkg/convert"
	"github.com/a-detiste/parse-type/pkg/errors"
)

// Field is one {name:spec} placeholder in a format string.
type Field struct {
	Name      string // Field name; empty for positional fields
	Index     int    // Positional index; -1 for named fields
	Type      string // Builtin code or converter name; empty for default
	Fill      rune   // Padding character (default space)
	Align     rune   // '<', '>', '^' or 0 when unspecified
	ZeroPad   bool   // 0 flag before width
	Width     int    // Declared width (0 = unspecified)
	Precision int    // Declared precision (-1 = unspecified)

	conv    *convert.Converter
	builtin *builtinType
}

// fieldNameRegex matches field names: identifiers, optionally dotted.
var fieldNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// segment is a compiled piece of a format string: either literal text or
// a field.
type segment struct {
	literal string
	field   *Field // nil for literal segments
}

// scanFormat splits a format string into literal and field segments.
// {{ and }} escape literal braces.
func scanFormat(format string) ([]segment, error) {
	var segments []segment
	var literal strings.Builder
	positional := 0

	for i := 0; i < len(format); {
		c := format[i]
		switch c {
		case '{':
			if i+1 < len(format) && format[i+1] == '{' {
				literal.WriteByte('{')
				i += 2
				continue
			}
			end := strings.IndexByte(format[i:], '}')
			if end < 0 {
				return nil, errors.New(errors.ErrCodeInvalidFormat, "unclosed field at offset %d", i)
			}
			if literal.Len() > 0 {
				segments = append(segments, segment{literal: literal.String()})
				literal.Reset()
			}

			field, err := parseField(format[i+1 : i+end])
			if err != nil {
				return nil, err
			}
			if field.Name == "" {
				field.Index = positional
				positional++
			}
			segments = append(segments, segment{field: field})
			i += end + 1

		case '}':
			if i+1 < len(format) && format[i+1] == '}' {
				literal.WriteByte('}')
				i += 2
				continue
			}
			return nil, errors.New(errors.ErrCodeInvalidFormat, "single '}' at offset %d (use }} for a literal brace)", i)

		default:
			literal.WriteByte(c)
			i++
		}
	}

	if literal.Len() > 0 {
		segments = append(segments, segment{literal: literal.String()})
	}
	return segments, nil
}

// parseField parses the contents between { and }: [name][:spec].
func parseField(content string) (*Field, error) {
	f := &Field{Index: -1, Fill: ' ', Precision: -1}

	name := content
	spec := ""
	if idx := strings.IndexByte(content, ':'); idx >= 0 {
		name = content[:idx]
		spec = content[idx+1:]
	}

	if name != "" && !fieldNameRegex.MatchString(name) {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid field name %q", name)
	}
	f.Name = name

	if err := parseSpec(f, spec); err != nil {
		return nil, err
	}
	return f, nil
}

// parseSpec parses the format spec: [[fill]align][0][width][.precision][type].
func parseSpec(f *Field, spec string) error {
	rest := spec

	// Alignment: either "<fill><align>" or a bare align character. A fill
	// character is only recognized when followed by an align character.
	runes := []rune(rest)
	if len(runes) >= 2 && isAlign(runes[1]) {
		f.Fill = runes[0]
		f.Align = runes[1]
		rest = string(runes[2:])
	} else if len(runes) >= 1 && isAlign(runes[0]) {
		f.Align = runes[0]
		rest = string(runes[1:])
	}

	// Zero-pad flag, only meaningful before a width.
	if len(rest) >= 2 && rest[0] == '0' && rest[1] >= '0' && rest[1] <= '9' {
		f.ZeroPad = true
		rest = rest[1:]
	}

	// Width.
	digits := 0
	for digits < len(rest) && rest[digits] >= '0' && rest[digits] <= '9' {
		digits++
	}
	if digits > 0 {
		w, err := strconv.Atoi(rest[:digits])
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidFormat, err, "field width")
		}
		f.Width = w
		rest = rest[digits:]
	}

	// Precision.
	if len(rest) > 0 && rest[0] == '.' {
		rest = rest[1:]
		digits = 0
		for digits < len(rest) && rest[digits] >= '0' && rest[digits] <= '9' {
			digits++
		}
		if digits == 0 {
			return errors.New(errors.ErrCodeInvalidFormat, "precision requires digits in spec %q", spec)
		}
		p, err := strconv.Atoi(rest[:digits])
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidFormat, err, "field precision")
		}
		f.Precision = p
		rest = rest[digits:]
	}

	f.Type = rest
	if f.Type != "" {
		if _, ok := builtinIndex[f.Type]; !ok {
			if err := errors.ValidateTypeName(f.Type); err != nil {
				return errors.New(errors.ErrCodeInvalidFormat, "invalid type %q in spec %q", f.Type, spec)
			}
		}
	}
	return nil
}

func isAlign(r rune) bool {
	return r == '<' || r == '>' || r == '^'
}

// valuePattern returns the regexp source for the field value, without the
// enclosing capture group and without padding.
func (f *Field) valuePattern() string {
	switch {
	case f.conv != nil:
		return f.conv.Pattern
	case f.builtin != nil:
		return f.builtin.pattern
	case f.Width > 0:
		// Default type with a width: at least Width characters.
		return `.{` + strconv.Itoa(f.Width) + `,}?`
	default:
		return `.+?`
	}
}

// groupCount returns the number of capture groups inside valuePattern.
func (f *Field) groupCount() int {
	if f.conv != nil {
		return f.conv.GroupCount()
	}
	return 0
}

// paddingPattern returns the regexp for one run of fill characters.
func (f *Field) paddingPattern() string {
	fill := regexp.QuoteMeta(string(f.Fill))
	return fill + "*"
}

// convertValue applies the field's conversion to the matched text.
// Padding declared by the alignment spec is stripped first.
func (f *Field) convertValue(text string) (any, error) {
	if f.Align != 0 {
		text = strings.Trim(text, string(f.Fill))
	}

	switch {
	case f.conv != nil:
		return f.conv.Convert(text)
	case f.builtin != nil:
		if f.builtin.convert == nil {
			return text, nil
		}
		return f.builtin.convert(text)
	default:
		return text, nil
	}
}

// label returns the field's display name for error messages and tooling.
func (f *Field) label() string {
	if f.Name != "" {
		return f.Name
	}
	return strconv.Itoa(f.Index)
}
