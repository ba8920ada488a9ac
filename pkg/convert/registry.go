package convert

import (
	"sort"
	"sync"

	"github.com/a-detiste/parse-type/pkg/errors"
)

// Registry is a named set of converters consulted during format
// compilation. The zero value is not usable; create one with NewRegistry
// or BuildTypeDict.
//
// Registry is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	types map[string]*Converter
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]*Converter)}
}

// Register adds a converter to the registry.
// Registering a name twice is an error with code DUPLICATE_TYPE.
func (r *Registry) Register(c *Converter) error {
	if c == nil {
		return errors.New(errors.ErrCodeInvalidInput, "cannot register nil converter")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.types[c.Name]; ok {
		return errors.New(errors.ErrCodeDuplicateType, "type %q already registered", c.Name)
	}
	r.types[c.Name] = c
	return nil
}

// Lookup returns the converter registered under name.
func (r *Registry) Lookup(name string) (*Converter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.types[name]
	return c, ok
}

// Names returns all registered type names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered converters.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.types)
}

// BuildTypeDict creates a registry from a list of converters.
// Duplicate names abort with DUPLICATE_TYPE.
func BuildTypeDict(convs ...*Converter) (*Registry, error) {
	reg := NewRegistry()
	for _, c := range convs {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
