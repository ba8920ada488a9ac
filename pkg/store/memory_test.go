package store

import (
	"context"
	"testing"

	"github.com/a-detiste/parse-type/pkg/convert"
	"github.com/a-detiste/parse-type/pkg/errors"
)

func validSchema() *Schema {
	return &Schema{
		Name:   "orders",
		Format: "order {id:OrderID} total {total:f}",
		Types: map[string]convert.TypeDef{
			"OrderID": {Kind: convert.KindString, Pattern: `ORD-\d+`},
		},
	}
}

func TestSchemaValidate(t *testing.T) {
	if err := validSchema().Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Schema)
		code   errors.Code
	}{
		{"empty name", func(s *Schema) { s.Name = "" }, errors.ErrCodeInvalidName},
		{"uppercase name", func(s *Schema) { s.Name = "Orders" }, errors.ErrCodeInvalidName},
		{"path traversal", func(s *Schema) { s.Name = "a..b" }, errors.ErrCodeInvalidName},
		{"empty format", func(s *Schema) { s.Format = "" }, errors.ErrCodeInvalidFormat},
		{"bad type pattern", func(s *Schema) {
			s.Types["OrderID"] = convert.TypeDef{Kind: convert.KindString, Pattern: `[`}
		}, errors.ErrCodeInvalidPattern},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSchema()
			tt.mutate(s)
			if err := s.Validate(); !errors.Is(err, tt.code) {
				t.Errorf("Validate() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestSchemaRegistry(t *testing.T) {
	reg, err := validSchema().Registry()
	if err != nil {
		t.Fatalf("Registry() error: %v", err)
	}

	c, ok := reg.Lookup("OrderID")
	if !ok {
		t.Fatal("Lookup(OrderID) not found")
	}
	if v, err := c.Convert("ORD-17"); err != nil || v != "ORD-17" {
		t.Errorf("Convert(ORD-17) = %v, %v", v, err)
	}
}

func TestMemoryStorePutGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.Put(ctx, validSchema()); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	got, err := s.Get(ctx, "orders")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.Format != validSchema().Format {
		t.Errorf("Format = %q", got.Format)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Error("timestamps not set on Put")
	}
}

func TestMemoryStoreReplacePreservesCreatedAt(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.Put(ctx, validSchema()); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	first, err := s.Get(ctx, "orders")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}

	replacement := validSchema()
	replacement.Format = "order {id:OrderID}"
	if err := s.Put(ctx, replacement); err != nil {
		t.Fatalf("Put(replace) error: %v", err)
	}

	second, err := s.Get(ctx, "orders")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Error("CreatedAt changed on replace")
	}
	if second.Format != "order {id:OrderID}" {
		t.Errorf("Format = %q not replaced", second.Format)
	}
}

func TestMemoryStoreNotFound(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, errors.ErrCodeSchemaNotFound) {
		t.Errorf("Get(missing) error = %v, want SCHEMA_NOT_FOUND", err)
	}
	if err := s.Delete(ctx, "missing"); !errors.Is(err, errors.ErrCodeSchemaNotFound) {
		t.Errorf("Delete(missing) error = %v, want SCHEMA_NOT_FOUND", err)
	}
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	for _, name := range []string{"zeta", "alpha", "mid"} {
		schema := validSchema()
		schema.Name = name
		if err := s.Put(ctx, schema); err != nil {
			t.Fatalf("Put(%s) error: %v", name, err)
		}
	}

	schemas, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(schemas) != 3 {
		t.Fatalf("len(schemas) = %d, want 3", len(schemas))
	}
	want := []string{"alpha", "mid", "zeta"}
	for i, schema := range schemas {
		if schema.Name != want[i] {
			t.Errorf("schemas[%d].Name = %q, want %q", i, schema.Name, want[i])
		}
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.Put(ctx, validSchema()); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	if err := s.Delete(ctx, "orders"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := s.Get(ctx, "orders"); !errors.Is(err, errors.ErrCodeSchemaNotFound) {
		t.Errorf("Get() after Delete error = %v, want SCHEMA_NOT_FOUND", err)
	}
}
