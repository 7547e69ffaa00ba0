package domain_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/gemcost/internal/domain"
)

// stubProvider is a fixed-output usage provider for testing.
type stubProvider struct {
	service domain.Service
	usage   []domain.Usage
	err     error
}

func (p *stubProvider) Usage(_ context.Context, _ domain.UsageQuery) ([]domain.Usage, error) {
	return p.usage, p.err
}

func (p *stubProvider) Service() domain.Service {
	return p.service
}

// stubRegistry is a minimal in-memory registry for testing.
type stubRegistry struct {
	providers map[domain.Service]domain.UsageProvider
}

func newStubRegistry(providers ...domain.UsageProvider) *stubRegistry {
	r := &stubRegistry{providers: make(map[domain.Service]domain.UsageProvider)}
	for _, p := range providers {
		r.providers[p.Service()] = p
	}
	return r
}

func (r *stubRegistry) Register(_ context.Context, provider domain.UsageProvider) error {
	r.providers[provider.Service()] = provider
	return nil
}

func (r *stubRegistry) Get(_ context.Context, service domain.Service) (domain.UsageProvider, error) {
	provider, ok := r.providers[service]
	if !ok {
		return nil, domain.NewError(domain.CodeValidation, "unknown service %q", service)
	}
	return provider, nil
}

func (r *stubRegistry) List(_ context.Context) ([]domain.Service, error) {
	services := make([]domain.Service, 0, len(r.providers))
	for service := range r.providers {
		services = append(services, service)
	}
	return services, nil
}

func validQuery() domain.UsageQuery {
	return domain.UsageQuery{
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
	}
}

func TestReportService_CollectUsage(t *testing.T) {
	ctx := context.Background()

	geminiUsage := []domain.Usage{
		{ID: "g1", Service: domain.ServiceGemini, Model: "gemini-pro", InputTokens: 1000, OutputTokens: 500,
			Timestamp: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)},
	}
	vertexUsage := []domain.Usage{
		{ID: "v1", Service: domain.ServiceVertexAI, Model: "text-bison-001", InputTokens: 2000, OutputTokens: 1000,
			Timestamp: time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)},
	}

	registry := newStubRegistry(
		&stubProvider{service: domain.ServiceGemini, usage: geminiUsage},
		&stubProvider{service: domain.ServiceVertexAI, usage: vertexUsage},
	)
	service := domain.NewReportService(registry, newEngine())

	t.Run("invalid date range", func(t *testing.T) {
		query := validQuery()
		query.EndDate = query.StartDate
		_, err := service.CollectUsage(ctx, "", query)
		require.Error(t, err)
		require.True(t, domain.IsCode(err, domain.CodeValidation))
	})

	t.Run("empty service collects from all providers", func(t *testing.T) {
		records, err := service.CollectUsage(ctx, "", validQuery())
		require.NoError(t, err)
		require.Len(t, records, 2)
	})

	t.Run("named service collects from one provider", func(t *testing.T) {
		records, err := service.CollectUsage(ctx, domain.ServiceGemini, validQuery())
		require.NoError(t, err)
		require.Len(t, records, 1)
		require.Equal(t, "g1", records[0].ID)
	})

	t.Run("unknown service fails", func(t *testing.T) {
		_, err := service.CollectUsage(ctx, domain.Service("bedrock"), validQuery())
		require.Error(t, err)
	})
}

func TestReportService_Report(t *testing.T) {
	ctx := context.Background()

	registry := newStubRegistry(&stubProvider{
		service: domain.ServiceGemini,
		usage: []domain.Usage{
			{ID: "g1", Service: domain.ServiceGemini, Model: "gemini-pro", InputTokens: 1000, OutputTokens: 500,
				Timestamp: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)},
			{ID: "g2", Service: domain.ServiceGemini, Model: "gemini-pro", InputTokens: 1000, OutputTokens: 500,
				Timestamp: time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)},
		},
	})
	service := domain.NewReportService(registry, newEngine())

	query := validQuery()
	report, err := service.Report(ctx, domain.ServiceGemini, query, "USD")
	require.NoError(t, err)

	require.Equal(t, query.StartDate, report.Period.Start)
	require.Equal(t, query.EndDate, report.Period.End)
	require.Equal(t, int64(2000), report.Summary.TotalInputTokens)
	require.InDelta(t, 2*0.0003125, report.Summary.TotalCost, 1e-9)
	// Most recent record first.
	require.Equal(t, "g2", report.Details[0].Usage.ID)
}

func TestReportService_Breakdowns(t *testing.T) {
	ctx := context.Background()

	registry := newStubRegistry(&stubProvider{
		service: domain.ServiceGemini,
		usage: []domain.Usage{
			{ID: "g1", Service: domain.ServiceGemini, Model: "gemini-pro", InputTokens: 1000, OutputTokens: 500,
				Timestamp: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)},
			{ID: "g2", Service: domain.ServiceGemini, Model: "gemini-1.5-flash", InputTokens: 4000, OutputTokens: 2000,
				Timestamp: time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)},
		},
	})
	service := domain.NewReportService(registry, newEngine())

	daily, err := service.DailyBreakdown(ctx, "", validQuery(), "USD")
	require.NoError(t, err)
	require.Len(t, daily, 2)

	models, err := service.ModelBreakdown(ctx, "", validQuery(), "USD")
	require.NoError(t, err)
	require.Len(t, models, 2)
	require.Equal(t, 1, models["gemini-pro"].UsageCount)

	top, err := service.TopExpensiveUsage(ctx, "", validQuery(), 1, "USD")
	require.NoError(t, err)
	require.Len(t, top, 1)
	require.Equal(t, "g2", top[0].Usage.ID)
}
