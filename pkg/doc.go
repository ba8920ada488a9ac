// Package pkg provides the core libraries for parse-type format-string
// parsing.
//
// # Overview
//
// parse-type turns format strings into typed text matchers, the inverse
// of template formatting. The pkg directory is organized by concern:
//
//  1. [parse] - Format-string compilation and matching
//  2. [convert] - Typed converters and the converter registry
//  3. [cardinality] - Optional and list forms of converters
//  4. [builder] - Choice, enum, and variant converter constructors
//  5. [cache] - Compiled-format and result caching backends
//  6. [store] - Named schema persistence (memory, MongoDB)
//  7. [viz] - Graphviz rendering of compiled formats
//
// # Quick Start
//
// Compile a format and extract typed values:
//
//	import (
//	    "github.com/a-detiste/parse-type/pkg/convert"
//	    "github.com/a-detiste/parse-type/pkg/parse"
//	)
//
//	number := convert.MustNew("Number", `\d+`, func(s string) (any, error) {
//	    return strconv.ParseInt(s, 10, 64)
//	})
//	reg, _ := convert.BuildTypeDict(number)
//
//	f, _ := parse.Compile("Test: {number:Number}", reg)
//	r, _ := f.Parse("Test: 42")
//	// r.Named["number"] == int64(42)
//
// Derive cardinality variants:
//
//	many, _ := builder.WithOneOrMore(number)
//	// many matches "1, 2, 3" and yields []any{1, 2, 3}
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/parse/...    # Specific package
//
// [parse]: https://pkg.go.dev/github.com/a-detiste/parse-type/pkg/parse
// [convert]: https://pkg.go.dev/github.com/a-detiste/parse-type/pkg/convert
// [cardinality]: https://pkg.go.dev/github.com/a-detiste/parse-type/pkg/cardinality
// [builder]: https://pkg.go.dev/github.com/a-detiste/parse-type/pkg/builder
// [cache]: https://pkg.go.dev/github.com/a-detiste/parse-type/pkg/cache
// [store]: https://pkg.go.dev/github.com/a-detiste/parse-type/pkg/store
// [viz]: https://pkg.go.dev/github.com/a-detiste/parse-type/pkg/viz
package pkg
