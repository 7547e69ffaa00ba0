// Package gemini provides the usage provider for the Gemini API.
package gemini

import (
	"context"

	"github.com/davidbz/gemcost/internal/domain"
	"github.com/davidbz/gemcost/internal/observability"
	"github.com/davidbz/gemcost/internal/provider"
)

const (
	defaultProject = "gemini-api-project"
	defaultRegion  = "us-central1"
)

// Adapter implements domain.UsageProvider for the Gemini API.
type Adapter struct {
	models []string
}

// NewAdapter creates a Gemini usage provider. Empty models fall back to
// gemini-pro.
func NewAdapter(models []string) *Adapter {
	if len(models) == 0 {
		models = []string{"gemini-pro"}
	}

	return &Adapter{models: models}
}

// Service identifies this provider.
func (a *Adapter) Service() domain.Service {
	return domain.ServiceGemini
}

// Usage returns usage records for the query window.
func (a *Adapter) Usage(ctx context.Context, query domain.UsageQuery) ([]domain.Usage, error) {
	usage, err := provider.SimulateUsage(a.Service(), a.models, defaultProject, defaultRegion, query)
	if err != nil {
		return nil, err
	}

	observability.FromContext(ctx).Debug("collected gemini usage",
		observability.Int("records", len(usage)),
	)

	return usage, nil
}
