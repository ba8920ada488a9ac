package cardinality

import (
	"github.com/a-detiste/parse-type/pkg/convert"
)

// CreateMissingVariants registers cardinality variants for every
// referenced type name whose base converter exists in the registry but
// whose variant does not.
//
// Given names ["Number?", "Color+"] and a registry containing Number and
// Color, the derived Number? and Color+ converters are registered. Names
// without a cardinality marker, names already registered, and names whose
// base type is missing are skipped; the latter are left for format
// compilation to report as unknown types.
func CreateMissingVariants(names []string, reg *convert.Registry, opts ...Option) error {
	for _, name := range names {
		base, card := FromSuffix(name)
		if card == One {
			continue
		}
		if _, ok := reg.Lookup(name); ok {
			continue
		}
		baseConv, ok := reg.Lookup(base)
		if !ok {
			continue
		}

		derived, err := Wrap(baseConv, card, opts...)
		if err != nil {
			return err
		}
		if err := reg.Register(derived); err != nil {
			return err
		}
	}
	return nil
}
