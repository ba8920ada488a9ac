package parse

import (
	"strconv"
	"strings"
	"time"

	"github.com/a-detiste/parse-type/pkg/errors"
)

// builtinType is a predefined field type addressed by a short code.
type builtinType struct {
	code    string
	pattern string
	doc     string
	convert func(text string) (any, error)
}

// isoLayouts are tried in order when parsing ti timestamps.
// The list covers date-only, minute and second precision, fractional
// seconds, and numeric or Z zone designators with either T or space
// separating date and time.
var isoLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999-0700",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseISO8601(text string) (any, error) {
	// Normalize the space separator so each layout only needs the T form.
	normalized := text
	if len(normalized) > 10 && normalized[10] == ' ' {
		normalized = normalized[:10] + "T" + normalized[11:]
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, normalized); err == nil {
			return t, nil
		}
	}
	return nil, errors.New(errors.ErrCodeNoMatch, "%q is not an ISO 8601 timestamp", text)
}

// parseSignedInt parses an optionally signed integer with an optional
// base prefix, 0b for base 2, 0o for 8, 0x for 16. Only the prefix
// belonging to the requested base is stripped: in base 16 the leading
// "0B" of "0B12" is two hex digits, not a binary prefix.
func parseSignedInt(text string, base int) (any, error) {
	s := text
	neg := false
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	if len(s) > 2 && s[0] == '0' {
		switch {
		case base == 2 && (s[1] == 'b' || s[1] == 'B'),
			base == 8 && (s[1] == 'o' || s[1] == 'O'),
			base == 16 && (s[1] == 'x' || s[1] == 'X'):
			s = s[2:]
		}
	}
	v, err := strconv.ParseInt(s, base, 64)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse integer %q", text)
	}
	if neg {
		v = -v
	}
	return v, nil
}

// builtins is the table of predefined type codes, modeled on the type
// table of classic format-string parsing libraries.
var builtins = []builtinType{
	{
		code:    "l",
		pattern: `[A-Za-z]+`,
		doc:     "letters",
	},
	{
		code:    "w",
		pattern: `\w+`,
		doc:     "letters, digits and underscore",
	},
	{
		code:    "W",
		pattern: `\W+`,
		doc:     "anything but letters, digits and underscore",
	},
	{
		code:    "s",
		pattern: `\s+`,
		doc:     "whitespace",
	},
	{
		code:    "S",
		pattern: `\S+`,
		doc:     "non-whitespace",
	},
	{
		code:    "d",
		pattern: `[-+]?\d+`,
		doc:     "signed decimal integer",
		convert: func(s string) (any, error) { return parseSignedInt(s, 10) },
	},
	{
		code:    "n",
		pattern: `[-+]?\d{1,3}(?:,\d{3})*`,
		doc:     "integer with thousands separators",
		convert: func(s string) (any, error) {
			return parseSignedInt(strings.ReplaceAll(s, ",", ""), 10)
		},
	},
	{
		code:    "b",
		pattern: `[-+]?(?:0[bB])?[01]+`,
		doc:     "binary integer",
		convert: func(s string) (any, error) { return parseSignedInt(s, 2) },
	},
	{
		code:    "o",
		pattern: `[-+]?(?:0[oO])?[0-7]+`,
		doc:     "octal integer",
		convert: func(s string) (any, error) { return parseSignedInt(s, 8) },
	},
	{
		code:    "x",
		pattern: `[-+]?(?:0[xX])?[0-9a-fA-F]+`,
		doc:     "hexadecimal integer",
		convert: func(s string) (any, error) { return parseSignedInt(s, 16) },
	},
	{
		code:    "f",
		pattern: `[-+]?\d*\.\d+`,
		doc:     "fixed-point number",
		convert: func(s string) (any, error) { return strconv.ParseFloat(s, 64) },
	},
	{
		code:    "e",
		pattern: `[-+]?\d+(?:\.\d+)?[eE][-+]?\d+`,
		doc:     "scientific-notation number",
		convert: func(s string) (any, error) { return strconv.ParseFloat(s, 64) },
	},
	{
		code:    "g",
		pattern: `[-+]?(?:\d+\.\d+(?:[eE][-+]?\d+)?|\d+[eE][-+]?\d+|\d+)`,
		doc:     "general number (int when integral, float otherwise)",
		convert: func(s string) (any, error) {
			if !strings.ContainsAny(s, ".eE") {
				return parseSignedInt(s, 10)
			}
			return strconv.ParseFloat(s, 64)
		},
	},
	{
		code:    "%",
		pattern: `[-+]?\d+(?:\.\d+)?%`,
		doc:     "percentage, divided by 100",
		convert: func(s string) (any, error) {
			v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
			if err != nil {
				return nil, err
			}
			return v / 100, nil
		},
	},
	{
		code:    "ti",
		pattern: `\d{4}-\d{2}-\d{2}(?:[ T]\d{2}:\d{2}(?::\d{2}(?:\.\d+)?)?(?:Z|[-+]\d{2}:?\d{2})?)?`,
		doc:     "ISO 8601 timestamp",
		convert: parseISO8601,
	},
}

var builtinIndex = func() map[string]*builtinType {
	m := make(map[string]*builtinType, len(builtins))
	for i := range builtins {
		m[builtins[i].code] = &builtins[i]
	}
	return m
}()

// BuiltinInfo describes a builtin type code for tooling (types list, TUI).
type BuiltinInfo struct {
	Code    string
	Pattern string
	Doc     string
}

// Builtins returns the builtin type table in declaration order.
func Builtins() []BuiltinInfo {
	infos := make([]BuiltinInfo, len(builtins))
	for i, b := range builtins {
		infos[i] = BuiltinInfo{Code: b.code, Pattern: b.pattern, Doc: b.doc}
	}
	return infos
}
