package format

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/guptarohit/asciigraph"

	"github.com/davidbz/gemcost/internal/domain"
)

const (
	chartHeight = 10
	chartWidth  = 60

	comparisonBarWidth = 40
)

// ChartFormatter renders a report as ASCII charts: daily cost and token
// trends plus service and model cost comparisons.
type ChartFormatter struct{}

// NewChartFormatter creates a chart formatter.
func NewChartFormatter() *ChartFormatter {
	return &ChartFormatter{}
}

// Format renders the report.
func (f *ChartFormatter) Format(report *domain.CostReport) (string, error) {
	var b strings.Builder

	b.WriteString("Cost Report - Chart View\n")
	fmt.Fprintf(&b, "Period: %s to %s\n\n",
		report.Period.Start.UTC().Format(time.DateOnly),
		report.Period.End.UTC().Format(time.DateOnly))

	costs := dailyCosts(report)
	if len(costs) > 1 {
		dates := sortedKeys(costs)
		series := make([]float64, len(dates))
		for i, date := range dates {
			series[i] = costs[date]
		}

		b.WriteString("Daily Cost Trend\n")
		b.WriteString(asciigraph.Plot(series,
			asciigraph.Height(chartHeight),
			asciigraph.Width(chartWidth),
			asciigraph.Caption(fmt.Sprintf("%s to %s (%s)",
				dates[0], dates[len(dates)-1], report.Summary.Currency)),
		))
		b.WriteString("\n\n")
	}

	f.writeComparison(&b, "Service Cost Comparison", serviceCosts(report), report.Summary.Currency)
	f.writeComparison(&b, "Model Cost Comparison", modelCosts(report), report.Summary.Currency)

	tokens := dailyTokens(report)
	if len(tokens) > 1 {
		dates := sortedKeys(tokens)
		inputs := make([]float64, len(dates))
		outputs := make([]float64, len(dates))
		for i, date := range dates {
			inputs[i] = float64(tokens[date].input)
			outputs[i] = float64(tokens[date].output)
		}

		b.WriteString("Daily Token Usage Trend (input vs output)\n")
		b.WriteString(asciigraph.PlotMany([][]float64{inputs, outputs},
			asciigraph.Height(chartHeight),
			asciigraph.Width(chartWidth),
			asciigraph.Caption(fmt.Sprintf("%s to %s", dates[0], dates[len(dates)-1])),
		))
		b.WriteString("\n\n")
	}

	f.writeSummary(&b, report)

	return b.String(), nil
}

// writeComparison renders a horizontal bar chart of cost per label,
// sorted by cost descending. Fewer than two entries is skipped.
func (f *ChartFormatter) writeComparison(
	b *strings.Builder,
	title string,
	costs map[string]float64,
	currency string,
) {
	if len(costs) < 2 {
		return
	}

	labels := sortedKeys(costs)
	sort.SliceStable(labels, func(i, j int) bool { return costs[labels[i]] > costs[labels[j]] })

	maxCost := costs[labels[0]]
	maxLabel := 0
	for _, label := range labels {
		if len(label) > maxLabel {
			maxLabel = len(label)
		}
	}

	b.WriteString(title)
	b.WriteString("\n")
	for _, label := range labels {
		barLength := 0
		if maxCost > 0 {
			barLength = int(costs[label]/maxCost*comparisonBarWidth + 0.5)
		}
		fmt.Fprintf(b, "%-*s |%-*s| %s\n",
			maxLabel, label,
			comparisonBarWidth, strings.Repeat("#", barLength),
			formatMoney(costs[label], currency))
	}
	b.WriteString("\n")
}

func (f *ChartFormatter) writeSummary(b *strings.Builder, report *domain.CostReport) {
	totalTokens := report.Summary.TotalInputTokens + report.Summary.TotalOutputTokens

	b.WriteString("Summary:\n")
	fmt.Fprintf(b, "Total Cost: %s\n", formatMoney(report.Summary.TotalCost, report.Summary.Currency))
	fmt.Fprintf(b, "Total Tokens: %d\n", totalTokens)
	if totalTokens > 0 {
		perK := report.Summary.TotalCost / (float64(totalTokens) / 1000)
		fmt.Fprintf(b, "Average Cost per 1K Tokens: %.6f %s\n", perK, report.Summary.Currency)
	}
}

func serviceCosts(report *domain.CostReport) map[string]float64 {
	costs := make(map[string]float64)
	for service, stats := range serviceBreakdown(report) {
		costs[string(service)] = stats.totalCost
	}

	return costs
}

func modelCosts(report *domain.CostReport) map[string]float64 {
	costs := make(map[string]float64)
	for model, stats := range modelBreakdown(report) {
		costs[model] = stats.totalCost
	}

	return costs
}
