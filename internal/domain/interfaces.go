package domain

import "context"

// UsageProvider supplies usage records for one service family.
type UsageProvider interface {
	// Usage returns the usage records observed inside the query window.
	Usage(ctx context.Context, query UsageQuery) ([]Usage, error)

	// Service returns the service family this provider covers.
	Service() Service
}

// UsageProviderRegistry manages the available usage providers.
type UsageProviderRegistry interface {
	// Register adds a provider to the registry.
	Register(ctx context.Context, provider UsageProvider) error

	// Get retrieves a provider by service family.
	Get(ctx context.Context, service Service) (UsageProvider, error)

	// List returns all registered service families.
	List(ctx context.Context) ([]Service, error)
}

// PricingSource supplies raw pricing material: unstructured documentation
// text per service family plus the list of currently available models.
// Each method may fail independently.
type PricingSource interface {
	AvailableModels(ctx context.Context) (ModelList, error)
	GeminiPricingText(ctx context.Context) (string, error)
	VertexPricingText(ctx context.Context) (string, error)

	// Sources describes where the material comes from, for provenance.
	Sources() UpdateSource
}

// UpdateCache persists pricing update snapshots between runs. Load returns
// ErrCacheMiss when no snapshot exists.
type UpdateCache interface {
	Load(ctx context.Context) (*PricingUpdate, error)
	Store(ctx context.Context, update *PricingUpdate) error
}

// Formatter renders a cost report for presentation.
type Formatter interface {
	Format(report *CostReport) (string, error)
}
