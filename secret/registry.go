package secret

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ProviderFactory builds a secret backend from its configuration block,
// e.g. an env backend with a prefix, or a static backend seeded from a
// test fixture.
type ProviderFactory func(cfg map[string]any) (Provider, error)

// Registry maps backend names to factories so deployments can choose
// secret backends in configuration rather than code. Like the adapter
// registry, it is an explicit instance with no package-level global.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]ProviderFactory
}

// NewRegistry creates an empty backend registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]ProviderFactory)}
}

// Register adds a factory under name. Unlike the resolver's backend
// set, factory names are fixed once registered; a duplicate is a
// wiring bug and is rejected.
func (r *Registry) Register(name string, factory ProviderFactory) error {
	name = strings.TrimSpace(name)
	if name == "" || factory == nil {
		return fmt.Errorf("secret: invalid factory registration for %q", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[name]; exists {
		return fmt.Errorf("secret: factory %q already registered", name)
	}
	r.providers[name] = factory
	return nil
}

// Create builds a backend by factory name.
func (r *Registry) Create(name string, cfg map[string]any) (Provider, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyRef
	}

	r.mu.RLock()
	factory, ok := r.providers[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrProviderNotRegistered, name)
	}

	return factory(cfg)
}

// List returns registered factory names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
