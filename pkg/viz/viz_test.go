package viz

import (
	"strings"
	"testing"

	"github.com/a-detiste/parse-type/pkg/parse"
)

func TestToDOT(t *testing.T) {
	f := parse.MustCompile("order {id:w} total {total:f}", nil)

	dot := ToDOT(f, Options{})

	for _, want := range []string{
		"digraph format {",
		"rankdir=LR",
		`"id: w"`,
		`"total: f"`,
		"fillcolor=lightblue",
		"n0 -> n1;",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTCardinality(t *testing.T) {
	// Cardinality suffixes are spelled out in the node label.
	f := parse.MustCompile("{names:w}", nil)
	dot := ToDOT(f, Options{})
	if !strings.Contains(dot, `"names: w"`) {
		t.Errorf("DOT missing plain field label:\n%s", dot)
	}
}

func TestToDOTPositionalFields(t *testing.T) {
	f := parse.MustCompile("{} and {}", nil)
	dot := ToDOT(f, Options{})

	if !strings.Contains(dot, "#0") || !strings.Contains(dot, "#1") {
		t.Errorf("DOT missing positional labels:\n%s", dot)
	}
	// Untyped fields show as any.
	if !strings.Contains(dot, "any") {
		t.Errorf("DOT missing any type label:\n%s", dot)
	}
}

func TestToDOTEscapedBraces(t *testing.T) {
	f := parse.MustCompile("{{literal}} {v:d}", nil)
	dot := ToDOT(f, Options{})

	if !strings.Contains(dot, "{literal}") {
		t.Errorf("DOT lost escaped braces:\n%s", dot)
	}
}

func TestToDOTDetailed(t *testing.T) {
	f := parse.MustCompile("{v:d}", nil)

	plain := ToDOT(f, Options{})
	detailed := ToDOT(f, Options{Detailed: true})
	if plain == detailed {
		t.Error("Detailed option had no effect")
	}
}

func TestSplitSource(t *testing.T) {
	f := parse.MustCompile("a {x:d} b", nil)
	pieces := splitSource(f)

	if len(pieces) != 3 {
		t.Fatalf("len(pieces) = %d, want 3", len(pieces))
	}
	if pieces[0].text != "a " || pieces[0].isField {
		t.Errorf("pieces[0] = %+v", pieces[0])
	}
	if pieces[1].text != "{x:d}" || !pieces[1].isField {
		t.Errorf("pieces[1] = %+v", pieces[1])
	}
	if pieces[2].text != " b" || pieces[2].isField {
		t.Errorf("pieces[2] = %+v", pieces[2])
	}
}
