package parse

// Result holds the typed values extracted by one match.
type Result struct {
	// Named maps field names to converted values.
	Named map[string]any `json:"named,omitempty"`

	// Positional holds converted values of unnamed fields, in order.
	Positional []any `json:"positional,omitempty"`

	// Spans maps field names to [start, end) byte offsets in the input.
	// Fields whose optional value was absent have no span.
	Spans map[string][2]int `json:"spans,omitempty"`
}

// Get returns the value bound to a named field.
func (r *Result) Get(name string) (any, bool) {
	v, ok := r.Named[name]
	return v, ok
}

// Names returns the matched field names in unspecified order.
func (r *Result) Names() []string {
	names := make([]string, 0, len(r.Named))
	for name := range r.Named {
		names = append(names, name)
	}
	return names
}
