// Package store persists named schemas: a format string bundled with the
// declarative type definitions it depends on.
//
// Serve mode uses a Store so clients can parse by schema name instead of
// shipping the format string with every request. MemoryStore is the
// default backend; MongoStore shares schemas between replicas.
package store

import (
	"context"
	"time"

	"github.com/a-detiste/parse-type/pkg/convert"
	"github.com/a-detiste/parse-type/pkg/errors"
)

// Schema is a stored format string with its type definitions.
type Schema struct {
	Name      string                     `json:"name" bson:"_id"`
	Format    string                     `json:"format" bson:"format"`
	Types     map[string]convert.TypeDef `json:"types,omitempty" bson:"types,omitempty"`
	CreatedAt time.Time                  `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time                  `json:"updated_at" bson:"updated_at"`
}

// Validate checks the schema's name, format string, and type definitions.
// The type definitions are compiled to surface pattern errors at store
// time rather than at first use.
func (s *Schema) Validate() error {
	if err := errors.ValidateSchemaName(s.Name); err != nil {
		return err
	}
	if err := errors.ValidateFormatString(s.Format); err != nil {
		return err
	}
	for name, def := range s.Types {
		if _, err := convert.FromDef(name, def); err != nil {
			return err
		}
	}
	return nil
}

// Registry compiles the schema's type definitions into a registry.
func (s *Schema) Registry() (*convert.Registry, error) {
	reg := convert.NewRegistry()
	for name, def := range s.Types {
		c, err := convert.FromDef(name, def)
		if err != nil {
			return nil, err
		}
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Store persists schemas by name.
type Store interface {
	// Put creates or replaces the schema stored under its name.
	Put(ctx context.Context, schema *Schema) error

	// Get returns the schema stored under name.
	// A missing name yields an error with code SCHEMA_NOT_FOUND.
	Get(ctx context.Context, name string) (*Schema, error)

	// List returns all stored schemas in name order.
	List(ctx context.Context) ([]*Schema, error)

	// Delete removes the schema stored under name.
	// A missing name yields an error with code SCHEMA_NOT_FOUND.
	Delete(ctx context.Context, name string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
