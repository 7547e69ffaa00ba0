package pricing

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/davidbz/gemcost/internal/domain"
)

// GenerateUpdatedPriceTable renders a pricing update as Go source text for
// a replacement static price table. With a nil update a fresh one is
// fetched first.
func (u *Updater) GenerateUpdatedPriceTable(ctx context.Context, update *domain.PricingUpdate) (string, error) {
	if update == nil {
		fetched, err := u.UpdatePricing(ctx)
		if err != nil {
			return "", err
		}
		update = fetched
	}

	all := make(map[string]domain.PriceModel, update.ModelCount())
	for name, price := range update.GeminiModels {
		all[name] = price
	}
	for name, price := range update.VertexModels {
		all[name] = price
	}

	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("package domain\n\n")
	fmt.Fprintf(&b, "// Price data updated on %s.\n", update.Timestamp.Format(time.RFC3339))
	b.WriteString("// Sources:\n")
	fmt.Fprintf(&b, "// - Gemini API: %s\n", update.Source.Gemini)
	fmt.Fprintf(&b, "// - Vertex AI: %s\n", update.Source.Vertex)
	b.WriteString("func defaultPriceTable() map[string]PriceModel {\n")
	b.WriteString("\treturn map[string]PriceModel{\n")

	for _, name := range names {
		price := all[name]
		fmt.Fprintf(&b, "\t\t%q: {Model: %q, InputTokenPrice: %s, OutputTokenPrice: %s, Currency: %q},\n",
			name, price.Model,
			formatPrice(price.InputTokenPrice), formatPrice(price.OutputTokenPrice),
			price.Currency)
	}

	b.WriteString("\t}\n")
	b.WriteString("}\n\n")
	b.WriteString("// Currency conversion rates (USD to other currencies).\n")
	b.WriteString("// These should be updated regularly or fetched from an API.\n")
	b.WriteString("func defaultCurrencyRates() map[string]float64 {\n")
	b.WriteString("\treturn map[string]float64{\n")
	b.WriteString("\t\t\"USD\": 1.0,\n")
	b.WriteString("\t\t\"JPY\": 150.0,\n")
	b.WriteString("\t}\n")
	b.WriteString("}\n")

	return b.String(), nil
}

// ModelComparisonReport renders a side-by-side per-model pricing table in
// markdown. With a nil update a fresh one is fetched first.
func (u *Updater) ModelComparisonReport(ctx context.Context, update *domain.PricingUpdate) (string, error) {
	if update == nil {
		fetched, err := u.UpdatePricing(ctx)
		if err != nil {
			return "", err
		}
		update = fetched
	}

	var b strings.Builder
	b.WriteString("# Model Pricing Comparison Report\n\n")
	fmt.Fprintf(&b, "**Generated:** %s\n\n", update.Timestamp.Format(time.RFC3339))

	writeComparisonSection(&b, "Gemini API Models", update.GeminiModels)
	b.WriteString("\n")
	writeComparisonSection(&b, "Vertex AI Models", update.VertexModels)

	return b.String(), nil
}

func writeComparisonSection(b *strings.Builder, title string, models map[string]domain.PriceModel) {
	fmt.Fprintf(b, "## %s\n\n", title)
	b.WriteString("| Model | Input (per 1K tokens) | Output (per 1K tokens) |\n")
	b.WriteString("|-------|----------------------|-----------------------|\n")

	names := make([]string, 0, len(models))
	for name := range models {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		price := models[name]
		fmt.Fprintf(b, "| %s | $%.6f | $%.6f |\n",
			name, price.InputTokenPrice*perKDivisor, price.OutputTokenPrice*perKDivisor)
	}
}

// formatPrice renders a price constant without float artifacts.
func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
