package sim

import "sort"

// Registry holds the schemas sharing one configuration document. Section
// keys must be unique: two models reading the same section would silently
// share parameters, so registration fails fast instead.
type Registry struct {
	bySection map[string]*Schema
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{bySection: make(map[string]*Schema)}
}

// Register adds a schema. A duplicate section key is a *SchemaError.
func (r *Registry) Register(s *Schema) error {
	if _, ok := r.bySection[s.section]; ok {
		return schemaErrf(s.section, "section key already registered")
	}
	r.bySection[s.section] = s
	return nil
}

// Lookup returns the schema registered under section, or nil.
func (r *Registry) Lookup(section string) *Schema {
	return r.bySection[section]
}

// Sections returns the registered section keys, sorted.
func (r *Registry) Sections() []string {
	out := make([]string, 0, len(r.bySection))
	for k := range r.bySection {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
