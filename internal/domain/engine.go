package domain

import (
	"context"
	"sort"
	"time"

	"github.com/davidbz/gemcost/internal/observability"
)

const tokensPerK = 1000.0

// CostEngine turns usage records into money, single-record and aggregate.
// It reads the active catalog snapshot once per operation, so concurrent
// report generations never observe a half-replaced price table.
type CostEngine struct {
	catalog *CatalogHolder
}

// NewCostEngine creates a cost engine bound to a catalog holder.
func NewCostEngine(catalog *CatalogHolder) *CostEngine {
	return &CostEngine{catalog: catalog}
}

// CalculateCost prices a single usage record in the target currency.
// Unknown models price at the catalog default; token counts are taken as
// given, including negative or extreme values.
func (e *CostEngine) CalculateCost(ctx context.Context, usage Usage, targetCurrency string) (Cost, error) {
	return e.calculate(e.catalog.Load(), usage, targetCurrency)
}

func (e *CostEngine) calculate(catalog *PriceCatalog, usage Usage, targetCurrency string) (Cost, error) {
	if usage.Model == "" {
		return Cost{}, NewError(CodeCostCalculation, "failed to calculate cost for usage %s: model is empty", usage.ID)
	}

	price := catalog.PriceModelFor(usage.Model)

	inputCostUSD := float64(usage.InputTokens) / tokensPerK * price.InputTokenPrice
	outputCostUSD := float64(usage.OutputTokens) / tokensPerK * price.OutputTokenPrice
	totalCostUSD := inputCostUSD + outputCostUSD

	return Cost{
		UsageID:      usage.ID,
		InputCost:    catalog.ConvertPrice(inputCostUSD, DefaultCurrency, targetCurrency),
		OutputCost:   catalog.ConvertPrice(outputCostUSD, DefaultCurrency, targetCurrency),
		TotalCost:    catalog.ConvertPrice(totalCostUSD, DefaultCurrency, targetCurrency),
		Currency:     targetCurrency,
		CalculatedAt: time.Now(),
	}, nil
}

// GenerateReport aggregates usage records into a cost report. A nil record
// collection is an error; an empty one yields a zeroed report. Details are
// sorted by date descending, ties keeping input order.
func (e *CostEngine) GenerateReport(ctx context.Context, records []Usage, period Period, currency string) (*CostReport, error) {
	if records == nil {
		return nil, NewError(CodeReportGeneration, "usage records collection is nil")
	}

	logger := observability.FromContext(ctx)
	logger.Info("generating cost report",
		observability.Int("records", len(records)),
		observability.String("currency", currency))

	catalog := e.catalog.Load()
	details := make([]ReportDetail, 0, len(records))

	var totalInputTokens, totalOutputTokens int64
	var totalCost float64

	for _, usage := range records {
		cost, err := e.calculate(catalog, usage, currency)
		if err != nil {
			return nil, err
		}

		details = append(details, ReportDetail{
			Date:    usage.Timestamp,
			Service: usage.Service,
			Model:   usage.Model,
			Usage:   usage,
			Cost:    cost,
		})

		totalInputTokens += usage.InputTokens
		totalOutputTokens += usage.OutputTokens
		totalCost += cost.TotalCost
	}

	sort.SliceStable(details, func(i, j int) bool {
		return details[i].Date.After(details[j].Date)
	})

	logger.Info("cost report generated",
		observability.Float64("total_cost", totalCost),
		observability.String("currency", currency))

	return &CostReport{
		Period: period,
		Summary: ReportSummary{
			TotalInputTokens:  totalInputTokens,
			TotalOutputTokens: totalOutputTokens,
			TotalCost:         totalCost,
			Currency:          currency,
		},
		Details: details,
	}, nil
}

// DailyBreakdown groups cost by the UTC calendar day of each record, with
// a per-service cost split inside each day. Keys are YYYY-MM-DD.
func (e *CostEngine) DailyBreakdown(ctx context.Context, records []Usage, currency string) (map[string]DailyBreakdown, error) {
	catalog := e.catalog.Load()
	breakdown := make(map[string]DailyBreakdown)

	for _, usage := range records {
		cost, err := e.calculate(catalog, usage, currency)
		if err != nil {
			return nil, err
		}

		key := usage.Timestamp.UTC().Format(time.DateOnly)
		day, ok := breakdown[key]
		if !ok {
			day = DailyBreakdown{ServiceCost: make(map[Service]float64)}
		}

		day.InputTokens += usage.InputTokens
		day.OutputTokens += usage.OutputTokens
		day.TotalCost += cost.TotalCost
		day.ServiceCost[usage.Service] += cost.TotalCost
		breakdown[key] = day
	}

	return breakdown, nil
}

// ModelBreakdown groups cost and usage counts by model.
func (e *CostEngine) ModelBreakdown(ctx context.Context, records []Usage, currency string) (map[string]ModelBreakdown, error) {
	catalog := e.catalog.Load()
	breakdown := make(map[string]ModelBreakdown)

	for _, usage := range records {
		cost, err := e.calculate(catalog, usage, currency)
		if err != nil {
			return nil, err
		}

		model := breakdown[usage.Model]
		model.InputTokens += usage.InputTokens
		model.OutputTokens += usage.OutputTokens
		model.TotalCost += cost.TotalCost
		model.UsageCount++
		breakdown[usage.Model] = model
	}

	return breakdown, nil
}

// TopExpensiveUsage returns the most expensive records, sorted by total
// cost descending, ties keeping input order. The result holds at most
// limit entries.
func (e *CostEngine) TopExpensiveUsage(ctx context.Context, records []Usage, limit int, currency string) ([]RankedUsage, error) {
	catalog := e.catalog.Load()
	ranked := make([]RankedUsage, 0, len(records))

	for _, usage := range records {
		cost, err := e.calculate(catalog, usage, currency)
		if err != nil {
			return nil, err
		}
		ranked = append(ranked, RankedUsage{Usage: usage, Cost: cost})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Cost.TotalCost > ranked[j].Cost.TotalCost
	})

	if limit < 0 {
		limit = 0
	}
	if limit < len(ranked) {
		ranked = ranked[:limit]
	}

	return ranked, nil
}
