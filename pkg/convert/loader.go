package convert

import (
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/a-detiste/parse-type/pkg/errors"
)

// TypeDef is a declarative converter definition, loadable from TOML.
//
//	[types.Color]
//	kind = "string"
//	pattern = "red|green|blue"
//
//	[types.Severity]
//	kind = "enum"
//	[types.Severity.values]
//	low = 1
//	high = 3
type TypeDef struct {
	Kind    string         `toml:"kind" json:"kind"`
	Pattern string         `toml:"pattern" json:"pattern,omitempty"`
	Values  map[string]any `toml:"values" json:"values,omitempty"`
}

type typeDefFile struct {
	Types map[string]TypeDef `toml:"types"`
}

// Converter kinds accepted in type definition files.
const (
	KindString = "string"
	KindInt    = "int"
	KindFloat  = "float"
	KindEnum   = "enum"
)

// LoadTOML reads declarative converter definitions from a TOML file.
// Converters are returned in sorted name order.
func LoadTOML(path string) ([]*Converter, error) {
	defs, err := LoadDefs(path)
	if err != nil {
		return nil, err
	}
	return FromDefs(defs)
}

// LoadDefs reads the raw definitions table from a TOML file without
// compiling it. Callers that need both the table and the converters
// build the converters with [FromDefs].
func LoadDefs(path string) (map[string]TypeDef, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "type definitions %s", path)
	}
	if err != nil {
		return nil, err
	}
	return ParseDefs(data)
}

// ParseDefs parses the raw definitions table from TOML data.
func ParseDefs(data []byte) (map[string]TypeDef, error) {
	var file typeDefFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTypedef, err, "parse type definitions")
	}
	return file.Types, nil
}

// ParseTOML parses declarative converter definitions from TOML data.
func ParseTOML(data []byte) ([]*Converter, error) {
	defs, err := ParseDefs(data)
	if err != nil {
		return nil, err
	}
	return FromDefs(defs)
}

// FromDefs builds converters from a definitions table in sorted name
// order.
func FromDefs(defs map[string]TypeDef) ([]*Converter, error) {
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)

	convs := make([]*Converter, 0, len(names))
	for _, name := range names {
		c, err := FromDef(name, defs[name])
		if err != nil {
			return nil, err
		}
		convs = append(convs, c)
	}
	return convs, nil
}

// FromDef builds a converter from a declarative definition.
func FromDef(name string, def TypeDef) (*Converter, error) {
	kind := def.Kind
	if kind == "" {
		kind = KindString
	}

	switch kind {
	case KindString:
		if def.Pattern == "" {
			return nil, errors.New(errors.ErrCodeInvalidTypedef, "type %q: string kind requires a pattern", name)
		}
		return New(name, def.Pattern, nil)

	case KindInt:
		pattern := def.Pattern
		if pattern == "" {
			pattern = `[-+]?\d+`
		}
		return New(name, pattern, func(s string) (any, error) {
			return strconv.ParseInt(s, 10, 64)
		})

	case KindFloat:
		pattern := def.Pattern
		if pattern == "" {
			pattern = `[-+]?\d*\.?\d+(?:[eE][-+]?\d+)?`
		}
		return New(name, pattern, func(s string) (any, error) {
			return strconv.ParseFloat(s, 64)
		})

	case KindEnum:
		if len(def.Values) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidTypedef, "type %q: enum kind requires a values table", name)
		}
		return NewEnum(name, def.Values)

	default:
		return nil, errors.New(errors.ErrCodeInvalidTypedef, "type %q: unknown kind %q", name, kind)
	}
}

// NewEnum builds an alternation converter over the mapping keys.
// The converter returns the mapped value for the matched key.
func NewEnum(name string, mapping map[string]any) (*Converter, error) {
	keys := make([]string, 0, len(mapping))
	for k := range mapping {
		if k == "" {
			return nil, errors.New(errors.ErrCodeInvalidTypedef, "type %q: enum value names cannot be empty", name)
		}
		keys = append(keys, k)
	}

	return New(name, Alternation(keys), func(s string) (any, error) {
		v, ok := mapping[s]
		if !ok {
			return nil, errors.New(errors.ErrCodeNoMatch, "%q is not a value of enum %s", s, name)
		}
		return v, nil
	})
}

// Alternation builds a regexp alternation of literal values.
// Longer values come first so that no value is shadowed by one of its
// prefixes (e.g. "light" before "li").
func Alternation(values []string) string {
	sorted := make([]string, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool {
		if len(sorted[i]) != len(sorted[j]) {
			return len(sorted[i]) > len(sorted[j])
		}
		return sorted[i] < sorted[j]
	})

	quoted := make([]string, len(sorted))
	for i, v := range sorted {
		quoted[i] = regexp.QuoteMeta(v)
	}
	return strings.Join(quoted, "|")
}
