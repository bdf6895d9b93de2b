package repositories

import (
	"context"
	"fmt"
	"sort"

	domainRepos "github.com/rios0rios0/autopublish/internal/domain/repositories"
)

// HostingFactory is a constructor function that creates a HostingRepository given an
// auth token and an optional API base URL.
type HostingFactory func(ctx context.Context, token, baseURL string) (domainRepos.HostingRepository, error)

// HostingRegistry manages all registered hosting service implementations.
type HostingRegistry struct {
	factories map[string]HostingFactory
}

// NewHostingRegistry creates an empty hosting registry.
func NewHostingRegistry() *HostingRegistry {
	return &HostingRegistry{
		factories: make(map[string]HostingFactory),
	}
}

// Register adds a hosting factory under the given name (e.g. "github").
func (r *HostingRegistry) Register(name string, factory HostingFactory) {
	r.factories[name] = factory
}

// Get returns a configured hosting client for the given name, token and base URL.
func (r *HostingRegistry) Get(
	ctx context.Context,
	name, token, baseURL string,
) (domainRepos.HostingRepository, error) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown hosting provider: %q (available: %v)", name, r.Names())
	}
	return factory(ctx, token, baseURL)
}

// Names returns the registered provider names in sorted order.
func (r *HostingRegistry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
