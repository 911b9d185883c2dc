package tool

import "sort"

// Registry is a name-keyed mapping of tools built at agent construction.
// Lookup is exact-match; absence is reported via the boolean, never as an
// error. The registry is not guarded: register all tools before running.
type Registry struct {
	tools map[string]Tool
}

// NewRegistry builds a registry from the provided tools, keyed by each
// tool's declared name. Later duplicates overwrite earlier ones.
func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{tools: make(map[string]Tool, len(tools))}
	for _, t := range tools {
		r.Register(t)
	}
	return r
}

// Register adds a tool under its declared name.
func (r *Registry) Register(t Tool) { r.tools[t.Name()] = t }

// Lookup resolves a tool by exact name.
func (r *Registry) Lookup(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Names returns the registered tool names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
