// Package viz renders compiled formats as graphs.
//
// A compiled format is a sequence of literal and field segments. ToDOT
// turns that sequence into a Graphviz DOT digraph with literal nodes as
// plain boxes and field nodes annotated with their type and cardinality.
// [RenderSVG] and [RenderPNG] rasterize the DOT via Graphviz. The output
// is a debugging aid for understanding what a format string will match.
package viz

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/a-detiste/parse-type/pkg/cardinality"
	"github.com/a-detiste/parse-type/pkg/parse"
)

// Options configures DOT generation.
type Options struct {
	// Detailed includes the field's value pattern in node labels.
	Detailed bool
}

// ToDOT converts a compiled format to Graphviz DOT.
// Segments are laid out left to right; field nodes are filled and carry
// the declared type, literal nodes are plain.
func ToDOT(f *parse.Format, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph format {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.15,0.08\"];\n")
	buf.WriteString("\n")

	ids := writeNodes(&buf, f, opts)

	buf.WriteString("\n")
	for i := 1; i < len(ids); i++ {
		fmt.Fprintf(&buf, "  %s -> %s;\n", ids[i-1], ids[i])
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeNodes(buf *bytes.Buffer, f *parse.Format, opts Options) []string {
	var ids []string

	emit := func(label string, attrs string) {
		id := fmt.Sprintf("n%d", len(ids))
		fmt.Fprintf(buf, "  %s [label=%q%s];\n", id, label, attrs)
		ids = append(ids, id)
	}

	fields := f.Fields()
	fieldIdx := 0
	for _, piece := range splitSource(f) {
		if !piece.isField {
			emit(piece.text, "")
			continue
		}

		field := fields[fieldIdx]
		fieldIdx++
		emit(fieldLabel(field, opts), ", fillcolor=lightblue")
	}
	return ids
}

// sourcePiece is one segment of the original format string.
type sourcePiece struct {
	text    string
	isField bool
}

// splitSource re-scans the format source into literal and field pieces.
// Escaped braces are rendered as literal braces.
func splitSource(f *parse.Format) []sourcePiece {
	var pieces []sourcePiece
	src := f.Source()
	var literal strings.Builder

	flush := func() {
		if literal.Len() > 0 {
			pieces = append(pieces, sourcePiece{text: literal.String()})
			literal.Reset()
		}
	}

	for i := 0; i < len(src); {
		switch {
		case strings.HasPrefix(src[i:], "{{"):
			literal.WriteByte('{')
			i += 2
		case strings.HasPrefix(src[i:], "}}"):
			literal.WriteByte('}')
			i += 2
		case src[i] == '{':
			end := strings.IndexByte(src[i:], '}')
			flush()
			pieces = append(pieces, sourcePiece{text: src[i : i+end+1], isField: true})
			i += end + 1
		default:
			literal.WriteByte(src[i])
			i++
		}
	}
	flush()
	return pieces
}

// fieldLabel builds the display label for a field node.
func fieldLabel(f parse.Field, opts Options) string {
	name := f.Name
	if name == "" {
		name = fmt.Sprintf("#%d", f.Index)
	}

	typeName := f.Type
	if typeName == "" {
		typeName = "any"
	}
	base, card := cardinality.FromSuffix(typeName)

	label := name + ": " + base
	if card != cardinality.One {
		label += " (" + card.String() + ")"
	}
	if opts.Detailed {
		label += "\n" + fieldPattern(f)
	}
	return label
}

// fieldPattern returns a short pattern description for detailed labels.
func fieldPattern(f parse.Field) string {
	const maxLen = 40
	p := f.Type
	if p == "" {
		p = ".+?"
	}
	if len(p) > maxLen {
		p = p[:maxLen] + "..."
	}
	return p
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	var buf bytes.Buffer
	if err := render(ctx, dot, graphviz.SVG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	var buf bytes.Buffer
	if err := render(ctx, dot, graphviz.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func render(ctx context.Context, dot string, format graphviz.Format, out *bytes.Buffer) error {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	if err := gv.Render(ctx, g, format, out); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}
