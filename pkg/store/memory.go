package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/a-detiste/parse-type/pkg/errors"
)

// MemoryStore keeps schemas in process memory.
// It is the default backend for the CLI and for tests.
type MemoryStore struct {
	mu      sync.RWMutex
	schemas map[string]Schema
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{schemas: make(map[string]Schema)}
}

// Put creates or replaces a schema. CreatedAt is preserved on replace.
func (s *MemoryStore) Put(ctx context.Context, schema *Schema) error {
	if err := schema.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	stored := *schema
	stored.UpdatedAt = now
	if prev, ok := s.schemas[schema.Name]; ok {
		stored.CreatedAt = prev.CreatedAt
	} else {
		stored.CreatedAt = now
	}
	s.schemas[schema.Name] = stored
	return nil
}

// Get returns a copy of the schema stored under name.
func (s *MemoryStore) Get(ctx context.Context, name string) (*Schema, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	schema, ok := s.schemas[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeSchemaNotFound, "schema %q not found", name)
	}
	out := schema
	return &out, nil
}

// List returns all schemas in name order.
func (s *MemoryStore) List(ctx context.Context) ([]*Schema, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Schema, 0, len(s.schemas))
	for name := range s.schemas {
		schema := s.schemas[name]
		out = append(out, &schema)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Delete removes a schema.
func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.schemas[name]; !ok {
		return errors.New(errors.ErrCodeSchemaNotFound, "schema %q not found", name)
	}
	delete(s.schemas, name)
	return nil
}

// Close discards all schemas.
func (s *MemoryStore) Close(ctx context.Context) error {
	s.mu.Lock()
	s.schemas = make(map[string]Schema)
	s.mu.Unlock()
	return nil
}

var _ Store = (*MemoryStore)(nil)
