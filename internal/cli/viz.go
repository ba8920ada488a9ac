package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/a-detiste/parse-type/pkg/errors"
	"github.com/a-detiste/parse-type/pkg/parse"
	"github.com/a-detiste/parse-type/pkg/viz"
)

// vizCommand creates the viz command for rendering a compiled format.
func (c *CLI) vizCommand() *cobra.Command {
	var (
		format    string
		typesPath string
		outFormat string
		output    string
		detailed  bool
	)

	cmd := &cobra.Command{
		Use:   "viz",
		Short: "Render a compiled format string as a graph",
		Long: `Render a compiled format string as a graph.

The viz command compiles the format string and draws its segments
(literal text and typed fields) as a left-to-right Graphviz diagram.
A quick way to see what a format string will actually match.

Output formats: dot (text, default), svg, png.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outFormat != "dot" && outFormat != "svg" && outFormat != "png" {
				return errors.New(errors.ErrCodeInvalidInput, "output format must be dot, svg, or png")
			}
			return c.runViz(cmd.Context(), format, typesPath, outFormat, output, detailed)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "format string to visualize (required)")
	cmd.Flags().StringVarP(&typesPath, "types", "t", "", "TOML file with custom type definitions")
	cmd.Flags().StringVar(&outFormat, "output-format", "dot", "output format: dot, svg, png")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout for dot)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include value patterns in node labels")
	_ = cmd.MarkFlagRequired("format")

	return cmd
}

func (c *CLI) runViz(ctx context.Context, format, typesPath, outFormat, output string, detailed bool) error {
	reg, _, err := loadRegistry(typesPath)
	if err != nil {
		return err
	}

	f, err := parse.Compile(format, reg)
	if err != nil {
		return fmt.Errorf("compile format: %w", err)
	}

	dot := viz.ToDOT(f, viz.Options{Detailed: detailed})

	var data []byte
	switch outFormat {
	case "svg":
		spinner := newSpinnerWithContext(ctx, "Rendering SVG...")
		spinner.Start()
		data, err = viz.RenderSVG(ctx, dot)
		spinner.Stop()
	case "png":
		spinner := newSpinnerWithContext(ctx, "Rendering PNG...")
		spinner.Start()
		data, err = viz.RenderPNG(ctx, dot)
		spinner.Stop()
	default:
		data = []byte(dot)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", outFormat, err)
	}

	if output == "" {
		if outFormat != "dot" {
			return errors.New(errors.ErrCodeInvalidInput, "--output is required for %s output", outFormat)
		}
		fmt.Print(string(data))
		return nil
	}

	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printSuccess("Rendered %d field(s)", len(f.Fields()))
	printFile(output)
	return nil
}
