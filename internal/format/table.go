package format

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/davidbz/gemcost/internal/domain"
)

const (
	maxDetailRows = 20
	topModelRows  = 5
)

// TableFormatter renders a report as aligned plain-text tables with a
// summary, recent usage details, and service/model breakdowns.
type TableFormatter struct{}

// NewTableFormatter creates a table formatter.
func NewTableFormatter() *TableFormatter {
	return &TableFormatter{}
}

// Format renders the report.
func (f *TableFormatter) Format(report *domain.CostReport) (string, error) {
	var b strings.Builder

	b.WriteString("Cost Report\n")
	fmt.Fprintf(&b, "Period: %s to %s\n\n",
		report.Period.Start.UTC().Format(time.DateOnly),
		report.Period.End.UTC().Format(time.DateOnly))

	f.writeSummary(&b, report)
	f.writeDetails(&b, report)
	f.writeServiceBreakdown(&b, report)
	f.writeTopModels(&b, report)

	return b.String(), nil
}

func (f *TableFormatter) writeSummary(b *strings.Builder, report *domain.CostReport) {
	totalTokens := report.Summary.TotalInputTokens + report.Summary.TotalOutputTokens

	b.WriteString("Summary\n")
	writeRows(b, []string{"Metric", "Value"}, [][]string{
		{"Total Input Tokens", fmt.Sprintf("%d", report.Summary.TotalInputTokens)},
		{"Total Output Tokens", fmt.Sprintf("%d", report.Summary.TotalOutputTokens)},
		{"Total Tokens", fmt.Sprintf("%d", totalTokens)},
		{"Total Cost", formatMoney(report.Summary.TotalCost, report.Summary.Currency)},
	})
	b.WriteString("\n")
}

func (f *TableFormatter) writeDetails(b *strings.Builder, report *domain.CostReport) {
	if len(report.Details) == 0 {
		return
	}

	details := report.Details
	b.WriteString("Usage Details")
	if len(details) > maxDetailRows {
		fmt.Fprintf(b, " (showing latest %d of %d)", maxDetailRows, len(details))
		details = details[:maxDetailRows]
	}
	b.WriteString("\n")

	rows := make([][]string, 0, len(details))
	for _, detail := range details {
		rows = append(rows, []string{
			detail.Date.UTC().Format(time.DateOnly),
			string(detail.Service),
			detail.Model,
			fmt.Sprintf("%d", detail.Usage.InputTokens),
			fmt.Sprintf("%d", detail.Usage.OutputTokens),
			formatMoney(detail.Cost.TotalCost, detail.Cost.Currency),
		})
	}
	writeRows(b, []string{"Date", "Service", "Model", "Input Tokens", "Output Tokens", "Cost"}, rows)
	b.WriteString("\n")
}

func (f *TableFormatter) writeServiceBreakdown(b *strings.Builder, report *domain.CostReport) {
	breakdown := serviceBreakdown(report)
	if len(breakdown) < 2 {
		return
	}

	services := make([]domain.Service, 0, len(breakdown))
	for service := range breakdown {
		services = append(services, service)
	}
	sort.Slice(services, func(i, j int) bool { return services[i] < services[j] })

	rows := make([][]string, 0, len(services))
	for _, service := range services {
		stats := breakdown[service]
		rows = append(rows, []string{
			string(service),
			fmt.Sprintf("%d", stats.count),
			formatMoney(stats.totalCost, report.Summary.Currency),
		})
	}

	b.WriteString("Service Breakdown\n")
	writeRows(b, []string{"Service", "Usage Count", "Total Cost"}, rows)
	b.WriteString("\n")
}

func (f *TableFormatter) writeTopModels(b *strings.Builder, report *domain.CostReport) {
	breakdown := modelBreakdown(report)
	if len(breakdown) == 0 {
		return
	}

	models := sortedKeys(breakdown)
	sort.SliceStable(models, func(i, j int) bool {
		return breakdown[models[i]].totalCost > breakdown[models[j]].totalCost
	})
	if len(models) > topModelRows {
		models = models[:topModelRows]
	}

	rows := make([][]string, 0, len(models))
	for _, model := range models {
		stats := breakdown[model]
		rows = append(rows, []string{
			model,
			fmt.Sprintf("%d", stats.count),
			formatMoney(stats.totalCost, report.Summary.Currency),
		})
	}

	b.WriteString("Top Models by Cost\n")
	writeRows(b, []string{"Model", "Usage Count", "Total Cost"}, rows)
}

// writeRows renders a header row plus data rows with columns padded to
// the widest cell.
func writeRows(b *strings.Builder, header []string, rows [][]string) {
	widths := make([]int, len(header))
	for i, cell := range header {
		widths[i] = len(cell)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	writeRow := func(row []string) {
		for i, cell := range row {
			if i > 0 {
				b.WriteString("  ")
			}
			fmt.Fprintf(b, "%-*s", widths[i], cell)
		}
		b.WriteString("\n")
	}

	writeRow(header)
	for i, width := range widths {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(strings.Repeat("-", width))
	}
	b.WriteString("\n")
	for _, row := range rows {
		writeRow(row)
	}
}
