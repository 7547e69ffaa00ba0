// Package registry holds the set of usage providers keyed by service.
package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/davidbz/gemcost/internal/domain"
	"github.com/davidbz/gemcost/internal/observability"
)

// Registry is a thread-safe usage provider registry.
type Registry struct {
	mu        sync.RWMutex
	providers map[domain.Service]domain.UsageProvider
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[domain.Service]domain.UsageProvider),
	}
}

// Register adds a provider under its service name. Registering the same
// service twice is an error.
func (r *Registry) Register(ctx context.Context, provider domain.UsageProvider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	service := provider.Service()
	if _, exists := r.providers[service]; exists {
		return fmt.Errorf("usage provider already registered for service %q", service)
	}
	r.providers[service] = provider

	observability.FromContext(ctx).Info("usage provider registered",
		observability.String("service", string(service)),
	)

	return nil
}

// Get returns the provider for a service.
func (r *Registry) Get(_ context.Context, service domain.Service) (domain.UsageProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	provider, ok := r.providers[service]
	if !ok {
		return nil, fmt.Errorf("no usage provider registered for service %q", service)
	}

	return provider, nil
}

// List returns all registered services in stable order.
func (r *Registry) List(_ context.Context) ([]domain.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	services := make([]domain.Service, 0, len(r.providers))
	for service := range r.providers {
		services = append(services, service)
	}
	sort.Slice(services, func(i, j int) bool { return services[i] < services[j] })

	return services, nil
}
