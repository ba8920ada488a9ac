package parse

import (
	"testing"
)

func TestParseFieldSpec(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Field
	}{
		{"bare name", "host", Field{Name: "host", Fill: ' '}},
		{"dotted name", "req.id", Field{Name: "req.id", Fill: ' '}},
		{"type only", "n:d", Field{Name: "n", Type: "d", Fill: ' '}},
		{"align", "v:>", Field{Name: "v", Align: '>', Fill: ' '}},
		{"fill and align", "v:_^10", Field{Name: "v", Fill: '_', Align: '^', Width: 10}},
		{"zero pad", "v:08d", Field{Name: "v", Type: "d", ZeroPad: true, Width: 8, Fill: ' '}},
		{"precision", "v:.2f", Field{Name: "v", Type: "f", Precision: 2, Fill: ' '}},
		{"width and type", "v:10w", Field{Name: "v", Type: "w", Width: 10, Fill: ' '}},
		{"cardinality suffix", "v:Number+", Field{Name: "v", Type: "Number+", Fill: ' '}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := parseField(tt.content)
			if err != nil {
				t.Fatalf("parseField(%q) error: %v", tt.content, err)
			}
			if f.Name != tt.want.Name {
				t.Errorf("Name = %q, want %q", f.Name, tt.want.Name)
			}
			if f.Type != tt.want.Type {
				t.Errorf("Type = %q, want %q", f.Type, tt.want.Type)
			}
			if f.Fill != tt.want.Fill {
				t.Errorf("Fill = %q, want %q", f.Fill, tt.want.Fill)
			}
			if f.Align != tt.want.Align {
				t.Errorf("Align = %q, want %q", f.Align, tt.want.Align)
			}
			if f.Width != tt.want.Width {
				t.Errorf("Width = %d, want %d", f.Width, tt.want.Width)
			}
			if f.ZeroPad != tt.want.ZeroPad {
				t.Errorf("ZeroPad = %v, want %v", f.ZeroPad, tt.want.ZeroPad)
			}
			wantPrec := tt.want.Precision
			if wantPrec == 0 {
				wantPrec = -1
			}
			if f.Precision != wantPrec {
				t.Errorf("Precision = %d, want %d", f.Precision, wantPrec)
			}
		})
	}
}

func TestParseFieldErrors(t *testing.T) {
	contents := []string{
		"9bad",       // name starting with a digit
		"a b",        // space in name
		"v:.x",       // precision without digits
		"v:With Gap", // space in type name
	}
	for _, content := range contents {
		if _, err := parseField(content); err == nil {
			t.Errorf("parseField(%q) accepted invalid content", content)
		}
	}
}

func TestScanFormatSegments(t *testing.T) {
	segments, err := scanFormat("a {x:d} b {{c}}")
	if err != nil {
		t.Fatalf("scanFormat() error: %v", err)
	}

	// Expect: literal "a ", field x, literal " b {c}".
	if len(segments) != 3 {
		t.Fatalf("len(segments) = %d, want 3", len(segments))
	}
	if segments[0].literal != "a " {
		t.Errorf("segments[0] = %q, want %q", segments[0].literal, "a ")
	}
	if segments[1].field == nil || segments[1].field.Name != "x" {
		t.Errorf("segments[1] not field x: %+v", segments[1])
	}
	if segments[2].literal != " b {c}" {
		t.Errorf("segments[2] = %q, want %q", segments[2].literal, " b {c}")
	}
}

func TestScanFormatPositionalIndices(t *testing.T) {
	segments, err := scanFormat("{} {named} {}")
	if err != nil {
		t.Fatalf("scanFormat() error: %v", err)
	}

	var indices []int
	for _, seg := range segments {
		if seg.field != nil && seg.field.Name == "" {
			indices = append(indices, seg.field.Index)
		}
	}
	if len(indices) != 2 || indices[0] != 0 || indices[1] != 1 {
		t.Errorf("positional indices = %v, want [0 1]", indices)
	}
}
