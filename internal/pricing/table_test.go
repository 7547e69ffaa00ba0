package pricing_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/gemcost/internal/domain"
	"github.com/davidbz/gemcost/internal/pricing"
	"github.com/davidbz/gemcost/internal/source/static"
)

func tableTestUpdate() *domain.PricingUpdate {
	return &domain.PricingUpdate{
		Timestamp: time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC),
		GeminiModels: map[string]domain.PriceModel{
			"gemini-pro": {Model: "gemini-pro", InputTokenPrice: 0.000125, OutputTokenPrice: 0.000375, Currency: "USD"},
		},
		VertexModels: map[string]domain.PriceModel{
			"text-bison-001": {Model: "text-bison-001", InputTokenPrice: 0.001, OutputTokenPrice: 0.001, Currency: "USD"},
		},
		UpdatedCount: 2,
		Source: domain.UpdateSource{
			Gemini: "https://example.test/gemini",
			Vertex: "https://example.test/vertex",
		},
	}
}

func TestGenerateUpdatedPriceTable(t *testing.T) {
	ctx := context.Background()
	updater := pricing.NewUpdater(static.NewSource(), &memoryCache{})

	source, err := updater.GenerateUpdatedPriceTable(ctx, tableTestUpdate())
	require.NoError(t, err)

	require.Contains(t, source, "package domain")
	require.Contains(t, source, "func defaultPriceTable() map[string]PriceModel {")
	require.Contains(t, source, `"gemini-pro": {Model: "gemini-pro", InputTokenPrice: 0.000125, OutputTokenPrice: 0.000375, Currency: "USD"},`)
	require.Contains(t, source, `"text-bison-001":`)
	require.Contains(t, source, "https://example.test/gemini")
	require.Contains(t, source, "func defaultCurrencyRates() map[string]float64 {")
}

func TestModelComparisonReport(t *testing.T) {
	ctx := context.Background()
	updater := pricing.NewUpdater(static.NewSource(), &memoryCache{})

	report, err := updater.ModelComparisonReport(ctx, tableTestUpdate())
	require.NoError(t, err)

	require.Contains(t, report, "# Model Pricing Comparison Report")
	require.Contains(t, report, "## Gemini API Models")
	require.Contains(t, report, "## Vertex AI Models")
	// Prices are reported per 1K tokens.
	require.Contains(t, report, "| gemini-pro | $0.125000 | $0.375000 |")
	require.Contains(t, report, "| text-bison-001 | $1.000000 | $1.000000 |")
}

func TestModelComparisonReport_FetchesWhenNil(t *testing.T) {
	ctx := context.Background()
	updater := pricing.NewUpdater(static.NewSource(), &memoryCache{})

	report, err := updater.ModelComparisonReport(ctx, nil)
	require.NoError(t, err)
	require.Contains(t, report, "gemini-2.5-pro")
}
