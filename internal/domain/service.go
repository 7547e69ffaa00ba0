package domain

import (
	"context"
	"fmt"

	"github.com/davidbz/gemcost/internal/observability"
)

// ReportService orchestrates usage collection and report generation.
type ReportService struct {
	registry UsageProviderRegistry
	engine   *CostEngine
}

// NewReportService creates a new report service (DI constructor).
func NewReportService(registry UsageProviderRegistry, engine *CostEngine) *ReportService {
	return &ReportService{
		registry: registry,
		engine:   engine,
	}
}

// Engine exposes the underlying cost engine for breakdown queries.
func (s *ReportService) Engine() *CostEngine {
	return s.engine
}

// CollectUsage gathers usage records for the query window. An empty
// service collects from every registered provider.
func (s *ReportService) CollectUsage(ctx context.Context, service Service, query UsageQuery) ([]Usage, error) {
	if !query.StartDate.Before(query.EndDate) {
		return nil, NewError(CodeValidation, "invalid date range: start date must be before end date")
	}

	logger := observability.FromContext(ctx)

	var services []Service
	if service != "" {
		services = []Service{service}
	} else {
		all, err := s.registry.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list usage providers: %w", err)
		}
		services = all
	}

	records := make([]Usage, 0)
	for _, svc := range services {
		provider, err := s.registry.Get(ctx, svc)
		if err != nil {
			return nil, fmt.Errorf("usage provider not found: %w", err)
		}

		usage, err := provider.Usage(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("failed to collect %s usage: %w", svc, err)
		}
		records = append(records, usage...)
	}

	logger.Info("usage collected",
		observability.Int("records", len(records)),
		observability.Int("providers", len(services)))

	return records, nil
}

// Report collects usage for the window and aggregates it into a report.
func (s *ReportService) Report(ctx context.Context, service Service, query UsageQuery, currency string) (*CostReport, error) {
	records, err := s.CollectUsage(ctx, service, query)
	if err != nil {
		return nil, err
	}

	period := Period{Start: query.StartDate, End: query.EndDate}
	return s.engine.GenerateReport(ctx, records, period, currency)
}

// DailyBreakdown collects usage and groups cost by UTC day.
func (s *ReportService) DailyBreakdown(ctx context.Context, service Service, query UsageQuery, currency string) (map[string]DailyBreakdown, error) {
	records, err := s.CollectUsage(ctx, service, query)
	if err != nil {
		return nil, err
	}
	return s.engine.DailyBreakdown(ctx, records, currency)
}

// ModelBreakdown collects usage and groups cost by model.
func (s *ReportService) ModelBreakdown(ctx context.Context, service Service, query UsageQuery, currency string) (map[string]ModelBreakdown, error) {
	records, err := s.CollectUsage(ctx, service, query)
	if err != nil {
		return nil, err
	}
	return s.engine.ModelBreakdown(ctx, records, currency)
}

// TopExpensiveUsage collects usage and returns the costliest records.
func (s *ReportService) TopExpensiveUsage(ctx context.Context, service Service, query UsageQuery, limit int, currency string) ([]RankedUsage, error) {
	records, err := s.CollectUsage(ctx, service, query)
	if err != nil {
		return nil, err
	}
	return s.engine.TopExpensiveUsage(ctx, records, limit, currency)
}
