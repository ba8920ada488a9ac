// Package cardinality derives optional and list converters from scalar
// ones.
//
// A converter for type Number matching a single value can be wrapped to
// match "no value" (Number?), "one or more comma-separated values"
// (Number+), or "zero or more" (Number*). The wrapped converter returns
// nil for an absent optional value and []any for the list forms.
package cardinality

import (
	"regexp"
	"strings"

	"github.com/a-detiste/parse-type/pkg/convert"
	"github.com/a-detiste/parse-type/pkg/errors"
)

// Cardinality describes how many values a field matches.
type Cardinality int

const (
	// One matches exactly one value (the unwrapped converter).
	One Cardinality = iota
	// ZeroOrOne matches an optional value, suffix "?".
	ZeroOrOne
	// OneOrMore matches a separated list with at least one item, suffix "+".
	OneOrMore
	// ZeroOrMore matches a possibly empty separated list, suffix "*".
	ZeroOrMore
)

// DefaultSeparator separates list items in the many forms.
const DefaultSeparator = ","

// String returns the cardinality name.
func (c Cardinality) String() string {
	switch c {
	case ZeroOrOne:
		return "zero_or_one"
	case OneOrMore:
		return "one_or_more"
	case ZeroOrMore:
		return "zero_or_more"
	default:
		return "one"
	}
}

// Suffix returns the type-name marker for the cardinality: "?", "+", "*",
// or the empty string for One.
func (c Cardinality) Suffix() string {
	switch c {
	case ZeroOrOne:
		return "?"
	case OneOrMore:
		return "+"
	case ZeroOrMore:
		return "*"
	default:
		return ""
	}
}

// FromSuffix splits a type name into its base name and cardinality.
// "Number+" yields ("Number", OneOrMore); names without a marker yield
// the name unchanged and One.
func FromSuffix(name string) (string, Cardinality) {
	if name == "" {
		return name, One
	}
	switch name[len(name)-1] {
	case '?':
		return name[:len(name)-1], ZeroOrOne
	case '+':
		return name[:len(name)-1], OneOrMore
	case '*':
		return name[:len(name)-1], ZeroOrMore
	default:
		return name, One
	}
}

// Pattern composes the regexp for the wrapped form around an inner
// pattern. The separator is taken literally and may be surrounded by
// whitespace in the input.
func (c Cardinality) Pattern(inner, sep string) string {
	if sep == "" {
		sep = DefaultSeparator
	}
	item := `(?:` + inner + `)`
	sepPat := `\s*` + regexp.QuoteMeta(sep) + `\s*`

	switch c {
	case ZeroOrOne:
		return item + `?`
	case OneOrMore:
		return item + `(?:` + sepPat + item + `)*`
	case ZeroOrMore:
		return `(?:` + item + `(?:` + sepPat + item + `)*)?`
	default:
		return inner
	}
}

// Option configures Wrap.
type Option func(*options)

type options struct {
	separator string
}

// WithSeparator sets the list separator for the many forms.
func WithSeparator(sep string) Option {
	return func(o *options) { o.separator = sep }
}

// Wrap derives a converter with the given cardinality from a scalar one.
// Wrapping with One returns the converter unchanged. The derived
// converter's name carries the cardinality suffix.
func Wrap(conv *convert.Converter, c Cardinality, opts ...Option) (*convert.Converter, error) {
	if conv == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "cannot wrap nil converter")
	}
	if c == One {
		return conv, nil
	}

	o := options{separator: DefaultSeparator}
	for _, opt := range opts {
		opt(&o)
	}

	name := conv.Name + c.Suffix()
	pattern := c.Pattern(conv.Pattern, o.separator)

	switch c {
	case ZeroOrOne:
		return convert.New(name, pattern, func(text string) (any, error) {
			if text == "" {
				return nil, nil
			}
			return conv.Convert(text)
		})

	case OneOrMore, ZeroOrMore:
		sep := o.separator
		return convert.New(name, pattern, func(text string) (any, error) {
			if text == "" {
				return []any{}, nil
			}
			items := strings.Split(text, sep)
			values := make([]any, 0, len(items))
			for _, item := range items {
				v, err := conv.Convert(strings.TrimSpace(item))
				if err != nil {
					return nil, err
				}
				values = append(values, v)
			}
			return values, nil
		})

	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported cardinality %d", c)
	}
}
