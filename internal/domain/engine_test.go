package domain_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/gemcost/internal/domain"
)

func newEngine() *domain.CostEngine {
	return domain.NewCostEngine(domain.NewCatalogHolder(domain.DefaultCatalog()))
}

func TestCostEngine_CalculateCost(t *testing.T) {
	ctx := context.Background()
	engine := newEngine()

	tests := []struct {
		name           string
		usage          domain.Usage
		currency       string
		expectedInput  float64
		expectedOutput float64
		expectedTotal  float64
		expectError    bool
	}{
		{
			name: "gemini-pro standard usage",
			usage: domain.Usage{
				ID:           "usage-1",
				Model:        "gemini-pro",
				InputTokens:  1000,
				OutputTokens: 500,
			},
			currency:       "USD",
			expectedInput:  0.000125,
			expectedOutput: 0.0001875,
			expectedTotal:  0.0003125,
		},
		{
			name: "unknown model priced at default",
			usage: domain.Usage{
				ID:           "usage-2",
				Model:        "mystery-model",
				InputTokens:  1000,
				OutputTokens: 1000,
			},
			currency:       "USD",
			expectedInput:  0.001,
			expectedOutput: 0.001,
			expectedTotal:  0.002,
		},
		{
			name: "jpy conversion applies the rate",
			usage: domain.Usage{
				ID:           "usage-3",
				Model:        "gemini-pro",
				InputTokens:  1000,
				OutputTokens: 500,
			},
			currency:       "JPY",
			expectedInput:  0.000125 * 150,
			expectedOutput: 0.0001875 * 150,
			expectedTotal:  0.0003125 * 150,
		},
		{
			name: "zero tokens cost nothing",
			usage: domain.Usage{
				ID:    "usage-4",
				Model: "gemini-pro",
			},
			currency: "USD",
		},
		{
			name: "negative tokens pass through",
			usage: domain.Usage{
				ID:          "usage-5",
				Model:       "gemini-pro",
				InputTokens: -1000,
			},
			currency:      "USD",
			expectedInput: -0.000125,
			expectedTotal: -0.000125,
		},
		{
			name: "empty model is an error",
			usage: domain.Usage{
				ID:          "usage-6",
				InputTokens: 1000,
			},
			currency:    "USD",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cost, err := engine.CalculateCost(ctx, tt.usage, tt.currency)
			if tt.expectError {
				require.Error(t, err)
				require.True(t, domain.IsCode(err, domain.CodeCostCalculation))
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.usage.ID, cost.UsageID)
			require.Equal(t, tt.currency, cost.Currency)
			require.InDelta(t, tt.expectedInput, cost.InputCost, 1e-9)
			require.InDelta(t, tt.expectedOutput, cost.OutputCost, 1e-9)
			require.InDelta(t, tt.expectedTotal, cost.TotalCost, 1e-9)
			require.False(t, cost.CalculatedAt.IsZero())
		})
	}
}

func TestCostEngine_GenerateReport(t *testing.T) {
	ctx := context.Background()
	engine := newEngine()
	period := domain.Period{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC),
	}

	t.Run("nil records is an error", func(t *testing.T) {
		_, err := engine.GenerateReport(ctx, nil, period, "USD")
		require.Error(t, err)
		require.True(t, domain.IsCode(err, domain.CodeReportGeneration))
	})

	t.Run("empty records yields a zeroed report", func(t *testing.T) {
		report, err := engine.GenerateReport(ctx, []domain.Usage{}, period, "USD")
		require.NoError(t, err)
		require.Zero(t, report.Summary.TotalInputTokens)
		require.Zero(t, report.Summary.TotalOutputTokens)
		require.Zero(t, report.Summary.TotalCost)
		require.Equal(t, "USD", report.Summary.Currency)
		require.Empty(t, report.Details)
		require.Equal(t, period, report.Period)
	})

	t.Run("totals match details and dates sort descending", func(t *testing.T) {
		records := []domain.Usage{
			{ID: "a", Model: "gemini-pro", Service: domain.ServiceGemini, InputTokens: 1000, OutputTokens: 500,
				Timestamp: time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)},
			{ID: "b", Model: "gemini-pro", Service: domain.ServiceGemini, InputTokens: 2000, OutputTokens: 1000,
				Timestamp: time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)},
			{ID: "c", Model: "text-bison-001", Service: domain.ServiceVertexAI, InputTokens: 500, OutputTokens: 250,
				Timestamp: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)},
		}

		report, err := engine.GenerateReport(ctx, records, period, "USD")
		require.NoError(t, err)
		require.Len(t, report.Details, 3)

		require.Equal(t, "b", report.Details[0].Usage.ID)
		require.Equal(t, "a", report.Details[1].Usage.ID)
		require.Equal(t, "c", report.Details[2].Usage.ID)

		var sumInput, sumOutput int64
		var sumCost float64
		for _, detail := range report.Details {
			sumInput += detail.Usage.InputTokens
			sumOutput += detail.Usage.OutputTokens
			sumCost += detail.Cost.TotalCost
		}
		require.Equal(t, sumInput, report.Summary.TotalInputTokens)
		require.Equal(t, sumOutput, report.Summary.TotalOutputTokens)
		require.InDelta(t, sumCost, report.Summary.TotalCost, 1e-9)
	})

	t.Run("record with empty model fails the report", func(t *testing.T) {
		_, err := engine.GenerateReport(ctx, []domain.Usage{{ID: "x", InputTokens: 10}}, period, "USD")
		require.Error(t, err)
		require.True(t, domain.IsCode(err, domain.CodeCostCalculation))
	})
}

func TestCostEngine_DailyBreakdown(t *testing.T) {
	ctx := context.Background()
	engine := newEngine()

	records := []domain.Usage{
		{ID: "a", Model: "gemini-pro", Service: domain.ServiceGemini, InputTokens: 1000, OutputTokens: 500,
			Timestamp: time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)},
		{ID: "b", Model: "gemini-pro", Service: domain.ServiceGemini, InputTokens: 1000, OutputTokens: 500,
			Timestamp: time.Date(2024, 1, 2, 20, 0, 0, 0, time.UTC)},
		{ID: "c", Model: "text-bison-001", Service: domain.ServiceVertexAI, InputTokens: 2000, OutputTokens: 1000,
			Timestamp: time.Date(2024, 1, 3, 8, 0, 0, 0, time.UTC)},
	}

	breakdown, err := engine.DailyBreakdown(ctx, records, "USD")
	require.NoError(t, err)
	require.Len(t, breakdown, 2)

	day2 := breakdown["2024-01-02"]
	require.Equal(t, int64(2000), day2.InputTokens)
	require.Equal(t, int64(1000), day2.OutputTokens)
	require.InDelta(t, 2*0.0003125, day2.TotalCost, 1e-9)
	require.InDelta(t, day2.TotalCost, day2.ServiceCost[domain.ServiceGemini], 1e-9)

	day3 := breakdown["2024-01-03"]
	require.Equal(t, int64(2000), day3.InputTokens)
	require.InDelta(t, day3.TotalCost, day3.ServiceCost[domain.ServiceVertexAI], 1e-9)

	// Breakdown total equals report total for the same records.
	report, err := engine.GenerateReport(ctx, records, domain.Period{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC),
	}, "USD")
	require.NoError(t, err)
	require.InDelta(t, report.Summary.TotalCost, day2.TotalCost+day3.TotalCost, 1e-9)
}

func TestCostEngine_ModelBreakdown(t *testing.T) {
	ctx := context.Background()
	engine := newEngine()

	records := []domain.Usage{
		{ID: "a", Model: "gemini-pro", InputTokens: 1000, OutputTokens: 500},
		{ID: "b", Model: "gemini-pro", InputTokens: 1000, OutputTokens: 500},
		{ID: "c", Model: "text-bison-001", InputTokens: 500, OutputTokens: 250},
	}

	breakdown, err := engine.ModelBreakdown(ctx, records, "USD")
	require.NoError(t, err)
	require.Len(t, breakdown, 2)

	gemini := breakdown["gemini-pro"]
	require.Equal(t, 2, gemini.UsageCount)
	require.Equal(t, int64(2000), gemini.InputTokens)
	require.InDelta(t, 2*0.0003125, gemini.TotalCost, 1e-9)

	bison := breakdown["text-bison-001"]
	require.Equal(t, 1, bison.UsageCount)
}

func TestCostEngine_TopExpensiveUsage(t *testing.T) {
	ctx := context.Background()
	engine := newEngine()

	records := []domain.Usage{
		{ID: "cheap", Model: "gemini-pro", InputTokens: 100, OutputTokens: 50},
		{ID: "expensive", Model: "gemini-pro", InputTokens: 10000, OutputTokens: 5000},
		{ID: "middle", Model: "gemini-pro", InputTokens: 1000, OutputTokens: 500},
	}

	t.Run("sorted by cost descending and truncated", func(t *testing.T) {
		ranked, err := engine.TopExpensiveUsage(ctx, records, 2, "USD")
		require.NoError(t, err)
		require.Len(t, ranked, 2)
		require.Equal(t, "expensive", ranked[0].Usage.ID)
		require.Equal(t, "middle", ranked[1].Usage.ID)
	})

	t.Run("limit above record count returns everything", func(t *testing.T) {
		ranked, err := engine.TopExpensiveUsage(ctx, records, 10, "USD")
		require.NoError(t, err)
		require.Len(t, ranked, 3)
	})

	t.Run("negative limit returns nothing", func(t *testing.T) {
		ranked, err := engine.TopExpensiveUsage(ctx, records, -1, "USD")
		require.NoError(t, err)
		require.Empty(t, ranked)
	})
}
