// Package vertex provides the usage provider for Vertex AI.
package vertex

import (
	"context"

	"github.com/davidbz/gemcost/internal/domain"
	"github.com/davidbz/gemcost/internal/observability"
	"github.com/davidbz/gemcost/internal/provider"
)

const (
	defaultProject = "vertex-ai-project"
	defaultRegion  = "us-central1"
)

// Adapter implements domain.UsageProvider for Vertex AI.
type Adapter struct {
	models []string
}

// NewAdapter creates a Vertex AI usage provider. Empty models fall back
// to text-bison-001.
func NewAdapter(models []string) *Adapter {
	if len(models) == 0 {
		models = []string{"text-bison-001"}
	}

	return &Adapter{models: models}
}

// Service identifies this provider.
func (a *Adapter) Service() domain.Service {
	return domain.ServiceVertexAI
}

// Usage returns usage records for the query window.
func (a *Adapter) Usage(ctx context.Context, query domain.UsageQuery) ([]domain.Usage, error) {
	usage, err := provider.SimulateUsage(a.Service(), a.models, defaultProject, defaultRegion, query)
	if err != nil {
		return nil, err
	}

	observability.FromContext(ctx).Debug("collected vertex usage",
		observability.Int("records", len(usage)),
	)

	return usage, nil
}
