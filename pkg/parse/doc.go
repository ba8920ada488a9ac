// Package parse compiles format strings into typed text matchers.
//
// A format string is literal text with embedded fields, the inverse of
// template formatting:
//
//	f, err := parse.Compile("{name:w} is {age:d} years old", nil)
//	r, err := f.Parse("Ada is 36 years old")
//	// r.Named["name"] == "Ada", r.Named["age"] == int64(36)
//
// Fields are written {name:spec}. The name is optional; unnamed fields
// produce positional results. The spec is an optional alignment prefix
// (fill character, one of < > ^, zero-pad flag, width, precision) followed
// by a type: either a builtin type code (see [Builtins]) or the name of a
// converter registered in a [convert.Registry].
//
// Literal braces are escaped by doubling: {{ and }}.
//
// # Matching modes
//
// [Format.Parse] matches the whole input, [Format.Search] finds the first
// match anywhere, and [Format.FindAll] returns every non-overlapping
// match. A field name used twice must match the same text in every
// occurrence.
//
// # Custom types
//
// Custom converters come from package convert. Cardinality variants
// (Type?, Type+, Type*) referenced in a format string are derived
// automatically when the base type is registered; see package cardinality.
package parse
