package engine

import (
	"fmt"
	"log/slog"
	"sort"
)

// Registry maps plugin names to their implementations, partitioned by role.
// Plugins are discovered and registered at startup; duplicate registration
// is a programmer error and panics.
type Registry struct {
	generators   map[string]Generator
	optimizers   map[string]Optimizer
	priorSources map[string]PriorSource
}

// NewRegistry creates and initializes an empty plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		generators:   make(map[string]Generator),
		optimizers:   make(map[string]Optimizer),
		priorSources: make(map[string]PriorSource),
	}
}

// RegisterGenerator registers a candidate generator under its name.
func (r *Registry) RegisterGenerator(g Generator) {
	name := g.Name()
	if _, exists := r.generators[name]; exists {
		panic(fmt.Sprintf("generator %q already registered", name))
	}
	slog.Debug("Registering generator plugin.", "name", name)
	r.generators[name] = g
}

// RegisterOptimizer registers an optimizer under its name.
func (r *Registry) RegisterOptimizer(o Optimizer) {
	name := o.Name()
	if _, exists := r.optimizers[name]; exists {
		panic(fmt.Sprintf("optimizer %q already registered", name))
	}
	slog.Debug("Registering optimizer plugin.", "name", name)
	r.optimizers[name] = o
}

// RegisterPriorSource registers a prior source under its name.
func (r *Registry) RegisterPriorSource(p PriorSource) {
	name := p.Name()
	if _, exists := r.priorSources[name]; exists {
		panic(fmt.Sprintf("prior source %q already registered", name))
	}
	slog.Debug("Registering prior source plugin.", "name", name)
	r.priorSources[name] = p
}

// Generator looks up a generator by the name a design block's model field
// carries.
func (r *Registry) Generator(name string) (Generator, bool) {
	g, ok := r.generators[name]
	return g, ok
}

// Optimizer looks up an optimizer by the name an optimize block's strategy
// carries.
func (r *Registry) Optimizer(name string) (Optimizer, bool) {
	o, ok := r.optimizers[name]
	return o, ok
}

// PriorSource looks up a prior source by name.
func (r *Registry) PriorSource(name string) (PriorSource, bool) {
	p, ok := r.priorSources[name]
	return p, ok
}

// Names returns every registered plugin name, sorted, for discovery output.
func (r *Registry) Names() []string {
	var names []string
	for n := range r.generators {
		names = append(names, n)
	}
	for n := range r.optimizers {
		names = append(names, n)
	}
	for n := range r.priorSources {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
