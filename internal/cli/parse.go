package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/a-detiste/parse-type/pkg/cache"
	"github.com/a-detiste/parse-type/pkg/convert"
	"github.com/a-detiste/parse-type/pkg/errors"
	"github.com/a-detiste/parse-type/pkg/parse"
)

// Matching modes accepted by the parse command.
const (
	modeParse   = "parse"
	modeSearch  = "search"
	modeFindAll = "findall"
)

// cachedOutcome is the JSON shape written to the result cache and to
// stdout with --json.
type cachedOutcome struct {
	Matched bool            `json:"matched"`
	Results []*parse.Result `json:"results,omitempty"`
}

// parseCommand creates the parse command.
func (c *CLI) parseCommand() *cobra.Command {
	var (
		format    string
		typesPath string
		mode      string
		asJSON    bool
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "parse [TEXT|-]",
		Short: "Match text against a format string and extract typed values",
		Long: `Match text against a format string and extract typed values.

The format string mixes literal text with {name:type} fields:

  parsetype parse --format "{name:w} is {age:d} years old" "Ada is 36 years old"

Builtin types cover strings, integers (decimal, binary, octal, hex),
floats, percentages, and ISO 8601 timestamps; see 'parsetype types list'.
Custom types are loaded from a TOML definitions file with --types.

Reading from stdin:

  echo "Ada is 36 years old" | parsetype parse --format "..." -

Modes: parse matches the whole input, search finds the first occurrence,
findall reports every occurrence.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if mode != modeParse && mode != modeSearch && mode != modeFindAll {
				return errors.New(errors.ErrCodeInvalidInput, "mode must be parse, search, or findall")
			}

			text, err := readText(args[0])
			if err != nil {
				return err
			}
			return c.runParse(cmd.Context(), format, typesPath, mode, text, asJSON, noCache)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "format string with {name:type} fields (required)")
	cmd.Flags().StringVarP(&typesPath, "types", "t", "", "TOML file with custom type definitions")
	cmd.Flags().StringVarP(&mode, "mode", "m", modeParse, "matching mode: parse, search, findall")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit results as JSON")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")
	_ = cmd.MarkFlagRequired("format")

	return cmd
}

// readText reads the input argument, or stdin when the argument is "-".
func readText(arg string) (string, error) {
	if arg != "-" {
		return arg, nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

// runParse compiles the format, consults the result cache, and matches.
func (c *CLI) runParse(ctx context.Context, format, typesPath, mode, text string, asJSON, noCache bool) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	reg, defs, err := loadRegistry(typesPath)
	if err != nil {
		return err
	}

	results, cached, err := matchWithCache(ctx, format, reg, defs, mode, text, noCache)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(cachedOutcome{Matched: len(results) > 0, Results: results})
	}

	if len(results) == 0 {
		printWarning("no match")
		return errors.New(errors.ErrCodeNoMatch, "text does not match format %q", format)
	}

	for i, r := range results {
		if len(results) > 1 {
			printInfo("match %d", i+1)
		}
		printResult(r)
	}

	fieldCount := len(results[0].Named) + len(results[0].Positional)
	printMatchStats(fieldCount, len(results), cached)
	prog.done(fmt.Sprintf("Matched %d result(s)", len(results)))
	return nil
}

// matchWithCache runs one matching mode with a file-cache fast path.
// The boolean reports whether the outcome came from cache.
func matchWithCache(ctx context.Context, format string, reg *convert.Registry, defs map[string]convert.TypeDef, mode, text string, noCache bool) ([]*parse.Result, bool, error) {
	resultCache, err := newCache(noCache)
	if err != nil {
		return nil, false, err
	}
	defer resultCache.Close()

	key := cache.ResultKey(format, text, mode, defs)
	if data, ok, err := resultCache.Get(ctx, key); err == nil && ok {
		var outcome cachedOutcome
		if json.Unmarshal(data, &outcome) == nil {
			return outcome.Results, true, nil
		}
	}

	f, err := parse.Compile(format, reg)
	if err != nil {
		return nil, false, err
	}

	var results []*parse.Result
	switch mode {
	case modeSearch:
		r, err := f.Search(text)
		if err != nil && !errors.Is(err, errors.ErrCodeNoMatch) {
			return nil, false, err
		}
		if r != nil {
			results = []*parse.Result{r}
		}
	case modeFindAll:
		results, err = f.FindAll(text)
		if err != nil {
			return nil, false, err
		}
	default:
		r, err := f.Parse(text)
		if err != nil && !errors.Is(err, errors.ErrCodeNoMatch) {
			return nil, false, err
		}
		if r != nil {
			results = []*parse.Result{r}
		}
	}

	if data, err := json.Marshal(cachedOutcome{Matched: len(results) > 0, Results: results}); err == nil {
		_ = resultCache.Set(ctx, key, data, cache.DefaultTTL)
	}
	return results, false, nil
}

// printResult prints one result's fields in name order, positional values
// first.
func printResult(r *parse.Result) {
	for i, v := range r.Positional {
		printKeyValue(fmt.Sprintf("#%d", i), formatValue(v))
	}

	names := r.Names()
	sort.Strings(names)
	for _, name := range names {
		printKeyValue(name, formatValue(r.Named[name]))
	}
}

// formatValue renders a converted value for terminal display.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return StyleDim.Render("(absent)")
	case time.Time:
		return val.Format(time.RFC3339)
	case []any:
		out := "["
		for i, item := range val {
			if i > 0 {
				out += ", "
			}
			out += formatValue(item)
		}
		return out + "]"
	default:
		return fmt.Sprintf("%v", v)
	}
}
