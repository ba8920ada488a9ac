// Package builder provides convenience constructors for common converter
// shapes: cardinality wrappers, literal choices, enums, and variants.
package builder

import (
	"github.com/a-detiste/parse-type/pkg/cardinality"
	"github.com/a-detiste/parse-type/pkg/convert"
	"github.com/a-detiste/parse-type/pkg/errors"
)

// WithZeroOrOne derives the optional form of a converter ("Type?").
func WithZeroOrOne(conv *convert.Converter, opts ...cardinality.Option) (*convert.Converter, error) {
	return cardinality.Wrap(conv, cardinality.ZeroOrOne, opts...)
}

// WithOneOrMore derives the non-empty list form of a converter ("Type+").
func WithOneOrMore(conv *convert.Converter, opts ...cardinality.Option) (*convert.Converter, error) {
	return cardinality.Wrap(conv, cardinality.OneOrMore, opts...)
}

// WithZeroOrMore derives the possibly-empty list form of a converter
// ("Type*").
func WithZeroOrMore(conv *convert.Converter, opts ...cardinality.Option) (*convert.Converter, error) {
	return cardinality.Wrap(conv, cardinality.ZeroOrMore, opts...)
}

// MakeChoice builds a converter matching one of a fixed set of literal
// values. The transform, when non-nil, maps the matched text to the
// returned value; otherwise the text itself is returned.
func MakeChoice(name string, values []string, transform func(string) any) (*convert.Converter, error) {
	if len(values) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "choice %q requires at least one value", name)
	}

	fn := convert.ConvertFunc(nil)
	if transform != nil {
		fn = func(text string) (any, error) {
			return transform(text), nil
		}
	}
	return convert.New(name, convert.Alternation(values), fn)
}

// MakeEnum builds a converter matching the mapping keys and returning the
// mapped values.
func MakeEnum(name string, mapping map[string]any) (*convert.Converter, error) {
	if len(mapping) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "enum %q requires at least one value", name)
	}
	return convert.NewEnum(name, mapping)
}

// MakeVariant builds a converter matching any member of a converter list.
// Conversion tries members in declaration order and returns the first
// whose pattern matches the text in full.
func MakeVariant(name string, convs []*convert.Converter) (*convert.Converter, error) {
	if len(convs) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "variant %q requires at least one converter", name)
	}

	pattern := ""
	for i, c := range convs {
		if c == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "variant %q has a nil member", name)
		}
		if i > 0 {
			pattern += "|"
		}
		pattern += `(?:` + c.Pattern + `)`
	}

	members := make([]*convert.Converter, len(convs))
	copy(members, convs)

	return convert.New(name, pattern, func(text string) (any, error) {
		for _, member := range members {
			if member.Matches(text) {
				return member.Convert(text)
			}
		}
		return nil, errors.New(errors.ErrCodeNoMatch, "%q matches no member of variant %s", text, name)
	})
}
